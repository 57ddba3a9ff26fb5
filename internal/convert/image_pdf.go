package convert

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

// ConvertImageToPdf draws the uploaded image centered and scaled to fit on
// a single A4 page. Width/height options resize the image first; a missing
// dimension keeps the source value.
func ConvertImageToPdf(file File, opts Options) Response {
	img, _, err := decodeImage(file.Data)
	if err != nil {
		return convFailure("img-to-pdf", "could not decode image", err)
	}

	if opts.Width > 0 || opts.Height > 0 {
		img = resizeTo(img, opts.Width, opts.Height)
	}

	// Re-encode as PNG so one embedded format covers every input codec.
	pngBytes, err := encodePNG(img)
	if err != nil {
		return convFailure("img-to-pdf", "could not encode image", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("upload", imgOpts, bytes.NewReader(pngBytes))

	pageW, pageH := pdf.GetPageSize()
	const margin = 10.0
	availW, availH := pageW-2*margin, pageH-2*margin

	b := img.Bounds()
	ratioX := availW / float64(b.Dx())
	ratioY := availH / float64(b.Dy())
	ratio := ratioX
	if ratioY < ratio {
		ratio = ratioY
	}
	drawW := float64(b.Dx()) * ratio
	drawH := float64(b.Dy()) * ratio

	pdf.ImageOptions("upload",
		margin+(availW-drawW)/2,
		margin+(availH-drawH)/2,
		drawW, drawH, false, imgOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return convFailure("img-to-pdf", "could not render PDF", err)
	}

	return Response{
		Success:     true,
		FileName:    baseName(file.Name) + ".pdf",
		Data:        buf.Bytes(),
		ContentType: "application/pdf",
	}
}
