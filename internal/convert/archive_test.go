package convert

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func archiveEntries(t *testing.T, archive []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("not a zip archive: %v", err)
	}
	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read entry %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestPackIncludesOnlySuccessfulEntries(t *testing.T) {
	responses := []Response{
		{Success: true, FileName: "a.pdf", Data: []byte("aaa")},
		{Success: false, Message: "broken", FileName: "b.pdf", Data: []byte("bbb")},
		{Success: true, FileName: "c.pdf"}, // success but no data
		{Success: true, FileName: "d.pdf", Data: []byte("ddd")},
	}

	archive, err := Pack(responses)
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}

	entries := archiveEntries(t, archive)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries["a.pdf"] != "aaa" || entries["d.pdf"] != "ddd" {
		t.Errorf("unexpected entries: %v", entries)
	}
}

func TestPackAllFailuresYieldsEmptyArchive(t *testing.T) {
	responses := []Response{
		{Success: false, Message: "x"},
		{Success: false, Message: "y"},
	}

	archive, err := Pack(responses)
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	if entries := archiveEntries(t, archive); len(entries) != 0 {
		t.Errorf("expected empty archive, got %v", entries)
	}
}

func TestPackDisambiguatesDuplicateNames(t *testing.T) {
	responses := []Response{
		{Success: true, FileName: "out.pdf", Data: []byte("first")},
		{Success: true, FileName: "out.pdf", Data: []byte("second")},
		{Success: true, FileName: "out.pdf", Data: []byte("third")},
	}

	archive, err := Pack(responses)
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}

	entries := archiveEntries(t, archive)
	if entries["out.pdf"] != "first" {
		t.Errorf("first entry should keep its name, got %v", entries)
	}
	if entries["out_1.pdf"] != "second" || entries["out_2.pdf"] != "third" {
		t.Errorf("duplicates should be suffixed in order, got %v", entries)
	}
}

func TestSuffixName(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want string
	}{
		{"report.pdf", 1, "report_1.pdf"},
		{"archive.tar.gz", 2, "archive.tar_2.gz"},
		{"noext", 3, "noext_3"},
	}
	for _, tt := range tests {
		if got := suffixName(tt.name, tt.n); got != tt.want {
			t.Errorf("suffixName(%q, %d) = %q, want %q", tt.name, tt.n, got, tt.want)
		}
	}
}
