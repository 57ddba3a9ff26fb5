package convert

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	// Decoder registrations for image.Decode. JPEG, PNG and GIF come from
	// the standard library; BMP, WebP, AVIF and ICO register themselves.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/biessek/golang-ico"
	_ "github.com/gen2brain/avif"
	_ "github.com/gen2brain/webp"
	_ "golang.org/x/image/bmp"
)

// decodeImage decodes any registered input codec.
func decodeImage(data []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(data))
}

// decodeDimensions reads image dimensions without decoding pixel data,
// so oversized inputs can be rejected before the expensive decode.
func decodeDimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// ImagePixels reports the pixel count of an encoded image from its header
// alone. Callers use it to enforce pixel ceilings before dispatching.
func ImagePixels(data []byte) (int64, error) {
	w, h, err := decodeDimensions(data)
	if err != nil {
		return 0, err
	}
	return int64(w) * int64(h), nil
}

// hasTransparency reports whether the decoded image carries any
// non-opaque pixel. Formats with an Opaque fast path avoid the scan.
func hasTransparency(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}

// resizeTo scales the image to exactly width x height. A zero dimension
// keeps the source value; aspect ratio is the caller's concern.
func resizeTo(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if width <= 0 {
		width = b.Dx()
	}
	if height <= 0 {
		height = b.Dy()
	}
	if width == b.Dx() && height == b.Dy() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodePNG always uses maximum compression; PNG has no lossy quality knob.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
