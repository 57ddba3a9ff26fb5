package convert

import (
	"fmt"
	"log/slog"
	"strings"

	"convertd/internal/format"
)

// converterFunc converts a single file. Implementations report failures in
// the envelope, never by panicking; Dispatch still recovers as a backstop.
type converterFunc func(file File, opts Options) Response

// Dispatcher validates a requested operation against the file's classified
// category and routes it to the bound converter. It owns no conversion
// logic itself.
type Dispatcher struct {
	converters map[format.Operation]converterFunc
}

// NewDispatcher builds the dispatcher with the full routed operation set.
// ConvertPdfToExcel exists as a capability but no identifier routes to it.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		converters: map[format.Operation]converterFunc{
			format.OpImageToPdf:    ConvertImageToPdf,
			format.OpImageToJpeg:   recodeTo("jpeg"),
			format.OpImageToPng:    recodeTo("png"),
			format.OpImageToWebp:   recodeTo("webp"),
			format.OpImageToAvif:   recodeTo("avif"),
			format.OpImageToIco:    recodeTo("ico"),
			format.OpCompressImage: CompressImage,
			format.OpPdfToWord:     ConvertPdfToWord,
			format.OpExcelToPdf:    ConvertExcelToPdf,
			format.OpWordToPdf:     ConvertWordToPdf,
		},
	}
}

// Dispatch runs one conversion request. It is total: every outcome,
// including converter panics, becomes a normal Response value.
func (d *Dispatcher) Dispatch(op format.Operation, file File, opts Options) (resp Response) {
	if len(file.Data) == 0 {
		return failure("no file uploaded")
	}

	op = format.Operation(strings.ToLower(strings.TrimSpace(string(op))))
	if op == "" {
		return failure("conversion type not specified")
	}

	fn, ok := d.converters[op]
	if !ok {
		return failure("unsupported conversion type")
	}

	category := format.ClassifyWithContentType(file.Name, file.ContentType)
	if !format.IsLegal(category, op) {
		required := format.RequiredCategory(op)
		return failure(fmt.Sprintf("selected conversion requires %s file", required.Article()))
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("converter panicked",
				"operation", op,
				"file", file.Name,
				"panic", r,
			)
			resp = failure("conversion failed: internal error")
		}
	}()

	return fn(file, opts)
}

// convFailure logs the underlying error server-side and returns a stable,
// library-text-free client message.
func convFailure(op, kind string, err error) Response {
	slog.Error("conversion failed", "operation", op, "kind", kind, "error", err)
	return failure("conversion failed: " + kind)
}
