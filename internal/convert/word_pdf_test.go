package convert

import (
	"strings"
	"testing"

	"convertd/internal/docx"
)

func makeDocx(t *testing.T, blocks []docx.Block) []byte {
	t.Helper()
	data, err := docx.Document{Blocks: blocks}.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestExtractDocxText(t *testing.T) {
	src := makeDocx(t, []docx.Block{
		docx.Paragraph{Text: "first line"},
		docx.Paragraph{Text: "second line"},
	})

	text, err := extractDocxText(src)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "first line") || !strings.Contains(text, "second line") {
		t.Errorf("missing paragraph text: %q", text)
	}
	if strings.Index(text, "first line") > strings.Index(text, "second line") {
		t.Error("paragraph order not preserved")
	}

	t.Run("not a zip", func(t *testing.T) {
		if _, err := extractDocxText([]byte("plain bytes")); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("zip without document part", func(t *testing.T) {
		if _, err := extractDocxText(makeZip(t, map[string][]byte{"other.txt": []byte("x")})); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestConvertWordToPdf(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		src := makeDocx(t, []docx.Block{
			docx.Paragraph{Text: "CONTRACT", Heading: true},
			docx.Paragraph{Text: "This agreement is made between the parties."},
		})
		resp := ConvertWordToPdf(File{Name: "contract.docx", Data: src}, DefaultOptions())
		if !resp.Success {
			t.Fatalf("expected success, got: %s", resp.Message)
		}
		if resp.FileName != "contract.pdf" {
			t.Errorf("expected contract.pdf, got %s", resp.FileName)
		}
		if resp.ContentType != "application/pdf" {
			t.Errorf("unexpected content type %s", resp.ContentType)
		}
		if !isPDF(resp.Data) {
			t.Error("output does not start with a PDF header")
		}

		pages, err := extractPdfPages(resp.Data)
		if err != nil {
			t.Fatalf("reading produced pdf: %v", err)
		}
		joined := strings.Join(pages, "\n")
		if !strings.Contains(joined, "CONTRACT") {
			t.Errorf("rendered pdf missing document text: %q", joined)
		}
	})

	t.Run("corrupt input fails safely", func(t *testing.T) {
		resp := ConvertWordToPdf(File{Name: "x.docx", Data: []byte("nope")}, DefaultOptions())
		if resp.Success {
			t.Fatal("expected failure")
		}
		if !strings.HasPrefix(resp.Message, "conversion failed") {
			t.Errorf("expected a safe message, got: %q", resp.Message)
		}
	})
}
