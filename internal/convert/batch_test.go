package convert

import (
	"archive/zip"
	"bytes"
	"testing"

	"convertd/internal/format"
)

func TestRunBatchPreservesSizeAndOrder(t *testing.T) {
	d := NewDispatcher()
	files := []File{
		{Name: "a.png", Data: makePNG(t, 4, 4, false)},
		{Name: "b.png", Data: makePNG(t, 6, 6, false)},
		{Name: "c.png", Data: makePNG(t, 8, 8, false)},
	}

	responses := d.RunBatch(files, format.OpImageToJpeg, DefaultOptions())
	if len(responses) != len(files) {
		t.Fatalf("expected %d responses, got %d", len(files), len(responses))
	}
	for i, want := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		if !responses[i].Success {
			t.Errorf("entry %d: expected success, got: %s", i, responses[i].Message)
		}
		if responses[i].FileName != want {
			t.Errorf("entry %d: expected %s, got %s", i, want, responses[i].FileName)
		}
	}
}

func TestRunBatchAllFailures(t *testing.T) {
	d := NewDispatcher()
	files := []File{
		{Name: "a.png", Data: []byte("junk")},
		{Name: "b.png", Data: []byte("junk")},
	}

	responses := d.RunBatch(files, format.OpImageToJpeg, DefaultOptions())
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}
	for i, r := range responses {
		if r.Success {
			t.Errorf("entry %d: expected failure", i)
		}
	}
}

func TestRunBatchEmptyInput(t *testing.T) {
	d := NewDispatcher()
	responses := d.RunBatch(nil, format.OpImageToJpeg, DefaultOptions())
	if len(responses) != 1 {
		t.Fatalf("expected a single failure entry, got %d", len(responses))
	}
	if responses[0].Success {
		t.Error("expected failure entry for empty batch")
	}
}

// A corrupt file in the middle of a batch fails in place without
// discarding its siblings, and the packed archive holds only the two
// successful outputs.
func TestRunBatchIsolatesFailures(t *testing.T) {
	d := NewDispatcher()
	files := []File{
		{Name: "one.png", Data: makePNG(t, 4, 4, false)},
		{Name: "two.png", Data: []byte("corrupt payload")},
		{Name: "three.png", Data: makePNG(t, 4, 4, false)},
	}

	responses := d.RunBatch(files, format.OpImageToPng, DefaultOptions())
	if len(responses) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(responses))
	}
	if !responses[0].Success || len(responses[0].Data) == 0 {
		t.Error("entry 1 should succeed with data")
	}
	if responses[1].Success {
		t.Error("entry 2 should fail")
	}
	if responses[1].Message == "" {
		t.Error("entry 2 should carry an error message")
	}
	if !responses[2].Success || len(responses[2].Data) == 0 {
		t.Error("entry 3 should succeed with data")
	}

	archive, err := Pack(responses)
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("packed archive is not a zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Errorf("expected 2 archive entries, got %d", len(zr.File))
	}
}
