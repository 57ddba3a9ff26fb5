// Package format classifies uploaded files into coarse categories and
// defines the catalog of conversion operations legal for each category.
package format

import (
	"path/filepath"
	"strings"
)

// Category is the coarse file category derived from a file name.
// It is recomputed per request and never stored.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryImage
	CategoryPdf
	CategoryWord
	CategoryExcel
)

func (c Category) String() string {
	switch c {
	case CategoryImage:
		return "image"
	case CategoryPdf:
		return "pdf"
	case CategoryWord:
		return "word"
	case CategoryExcel:
		return "excel"
	default:
		return "unknown"
	}
}

// Article returns the category name with its indefinite article,
// for user-facing validation messages ("an image file", "a PDF file").
func (c Category) Article() string {
	switch c {
	case CategoryImage:
		return "an image"
	case CategoryPdf:
		return "a PDF"
	case CategoryWord:
		return "a Word"
	case CategoryExcel:
		return "an Excel"
	default:
		return "a supported"
	}
}

// Operation identifies a single conversion. The set is closed; anything
// outside it is rejected before a converter runs.
type Operation string

const (
	OpImageToPdf    Operation = "img-to-pdf"
	OpImageToJpeg   Operation = "img-to-jpeg"
	OpImageToPng    Operation = "img-to-png"
	OpImageToWebp   Operation = "img-to-webp"
	OpImageToAvif   Operation = "img-to-avif"
	OpImageToIco    Operation = "img-to-ico"
	OpCompressImage Operation = "compress-img"
	OpPdfToWord     Operation = "pdf-to-word"
	OpExcelToPdf    Operation = "excel-to-pdf"
	OpWordToPdf     Operation = "word-to-pdf"
)

// imageExts includes jfif/jif, common jpeg variants accepted on input
// but never produced as an output target.
var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".jfif": true, ".jif": true,
	".png": true, ".gif": true, ".bmp": true, ".webp": true,
	".ico": true, ".avif": true,
}

var excelExts = map[string]bool{".xls": true, ".xlsx": true}

var wordExts = map[string]bool{".doc": true, ".docx": true}

// Classify maps a file name to its category by extension. Extension wins
// over any declared content type because uploaders frequently mislabel
// content types; Excel extensions are checked before Word ones.
func Classify(fileName string) Category {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch {
	case ext == "":
		return CategoryUnknown
	case excelExts[ext]:
		return CategoryExcel
	case wordExts[ext]:
		return CategoryWord
	case ext == ".pdf":
		return CategoryPdf
	case imageExts[ext]:
		return CategoryImage
	default:
		return CategoryUnknown
	}
}

// ClassifyWithContentType classifies by extension first, then falls back to
// substring matching on the declared content type when the extension is
// absent or unrecognized. Excel-specific tokens are checked before the
// generic "document" token so OOXML spreadsheet types don't land on Word.
func ClassifyWithContentType(fileName, contentType string) Category {
	if c := Classify(fileName); c != CategoryUnknown {
		return c
	}
	ct := strings.ToLower(contentType)
	switch {
	case ct == "":
		return CategoryUnknown
	case strings.HasPrefix(ct, "image/"):
		return CategoryImage
	case strings.Contains(ct, "pdf"):
		return CategoryPdf
	case strings.Contains(ct, "spreadsheet"), strings.Contains(ct, "excel"):
		return CategoryExcel
	case strings.Contains(ct, "word"), strings.Contains(ct, "document"):
		return CategoryWord
	default:
		return CategoryUnknown
	}
}

// LegalOperations returns the operations legal for a category, in catalog
// order. Unknown yields nil.
func LegalOperations(c Category) []Operation {
	switch c {
	case CategoryImage:
		return []Operation{
			OpImageToPdf, OpImageToJpeg, OpImageToPng,
			OpImageToWebp, OpImageToAvif, OpImageToIco,
			OpCompressImage,
		}
	case CategoryPdf:
		return []Operation{OpPdfToWord}
	case CategoryExcel:
		return []Operation{OpExcelToPdf}
	case CategoryWord:
		return []Operation{OpWordToPdf}
	default:
		return nil
	}
}

// IsLegal reports whether op may run on a file of category c.
func IsLegal(c Category, op Operation) bool {
	for _, legal := range LegalOperations(c) {
		if legal == op {
			return true
		}
	}
	return false
}

// RequiredCategory returns the category an operation needs, derived from the
// operation identifier's prefix.
func RequiredCategory(op Operation) Category {
	s := string(op)
	switch {
	case strings.HasPrefix(s, "img-"), op == OpCompressImage:
		return CategoryImage
	case strings.HasPrefix(s, "pdf-"):
		return CategoryPdf
	case strings.HasPrefix(s, "excel-"):
		return CategoryExcel
	case strings.HasPrefix(s, "word-"):
		return CategoryWord
	default:
		return CategoryUnknown
	}
}

// Operations returns the full operation catalog, in the order the
// supported-formats endpoint advertises it.
func Operations() []Operation {
	return []Operation{
		OpImageToPdf,
		OpPdfToWord,
		OpExcelToPdf,
		OpImageToJpeg,
		OpImageToPng,
		OpImageToWebp,
		OpImageToAvif,
		OpImageToIco,
		OpCompressImage,
		OpWordToPdf,
	}
}

// Extension catalogs for the supported-formats endpoint.

func ImageInputExtensions() []string {
	return []string{"jpg", "jpeg", "jfif", "jif", "png", "gif", "bmp", "webp", "ico", "avif"}
}

func ImageOutputExtensions() []string {
	return []string{"jpg", "jpeg", "png", "webp", "ico", "avif"}
}

func DocumentInputExtensions() []string {
	return []string{"pdf", "xls", "xlsx", "doc", "docx"}
}

func DocumentOutputExtensions() []string {
	return []string{"docx", "pdf"}
}
