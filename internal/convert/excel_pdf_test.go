package convert

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func makeXlsx(t *testing.T, sheets map[string][][]string) []byte {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := wb.SetSheetName("Sheet1", name); err != nil {
				t.Fatal(err)
			}
			first = false
		} else {
			if _, err := wb.NewSheet(name); err != nil {
				t.Fatal(err)
			}
		}
		for ri, row := range rows {
			for ci, val := range row {
				cell, err := excelize.CoordinatesToCellName(ci+1, ri+1)
				if err != nil {
					t.Fatal(err)
				}
				if err := wb.SetCellValue(name, cell, val); err != nil {
					t.Fatal(err)
				}
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestConvertExcelToPdf(t *testing.T) {
	t.Run("renders a grid", func(t *testing.T) {
		src := makeXlsx(t, map[string][][]string{
			"Budget": {
				{"Item", "Cost"},
				{"Rent", "1200"},
				{"Food", "400"},
			},
		})
		resp := ConvertExcelToPdf(File{Name: "budget.xlsx", Data: src}, DefaultOptions())
		if !resp.Success {
			t.Fatalf("expected success, got: %s", resp.Message)
		}
		if resp.FileName != "budget.pdf" {
			t.Errorf("expected budget.pdf, got %s", resp.FileName)
		}
		if resp.ContentType != "application/pdf" {
			t.Errorf("unexpected content type %s", resp.ContentType)
		}
		if !isPDF(resp.Data) {
			t.Error("output does not start with a PDF header")
		}
	})

	t.Run("not a spreadsheet fails safely", func(t *testing.T) {
		resp := ConvertExcelToPdf(File{Name: "x.xlsx", Data: []byte("nope")}, DefaultOptions())
		if resp.Success {
			t.Fatal("expected failure")
		}
		if !strings.HasPrefix(resp.Message, "conversion failed") {
			t.Errorf("expected a safe message, got: %q", resp.Message)
		}
	})
}

func TestConvertPdfToExcel(t *testing.T) {
	t.Run("delimited lines land in cells", func(t *testing.T) {
		src := makePDF(t, []string{"name,amount", "rent,1200"})
		resp := ConvertPdfToExcel(File{Name: "ledger.pdf", Data: src}, DefaultOptions())
		if !resp.Success {
			t.Fatalf("expected success, got: %s", resp.Message)
		}
		if resp.FileName != "ledger.xlsx" {
			t.Errorf("expected ledger.xlsx, got %s", resp.FileName)
		}
		if resp.ContentType != excelContentType {
			t.Errorf("unexpected content type %s", resp.ContentType)
		}

		wb, err := excelize.OpenReader(bytes.NewReader(resp.Data))
		if err != nil {
			t.Fatalf("opening produced workbook: %v", err)
		}
		defer wb.Close()
		a1, err := wb.GetCellValue("Sheet1", "A1")
		if err != nil {
			t.Fatal(err)
		}
		if a1 != "name" {
			t.Errorf("A1 = %q, want %q", a1, "name")
		}
	})

	t.Run("garbage input fails safely", func(t *testing.T) {
		resp := ConvertPdfToExcel(File{Name: "x.pdf", Data: []byte("nope")}, DefaultOptions())
		if resp.Success {
			t.Fatal("expected failure")
		}
		if !strings.HasPrefix(resp.Message, "conversion failed") {
			t.Errorf("expected a safe message, got: %q", resp.Message)
		}
	})
}

func TestSplitDelimited(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{"a; b | c", []string{"a", "b", "c"}},
		{"single", []string{"single"}},
	}
	for _, tt := range tests {
		got := splitDelimited(tt.line)
		if len(got) != len(tt.want) {
			t.Fatalf("splitDelimited(%q) = %v, want %v", tt.line, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitDelimited(%q)[%d] = %q, want %q", tt.line, i, got[i], tt.want[i])
			}
		}
	}
}
