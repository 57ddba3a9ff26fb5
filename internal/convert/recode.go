package convert

import (
	"bytes"
	"image"

	icoenc "github.com/Kodeworks/golang-image-ico"
	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"
)

// icoMaxDim is the largest image dimension the ICO container supports.
const icoMaxDim = 256

// recodeTo binds a target codec name into a converterFunc.
func recodeTo(target string) converterFunc {
	return func(file File, opts Options) Response {
		return recodeImage(file, opts, target)
	}
}

// recodeImage decodes the uploaded image and re-encodes it in the target
// codec. JPEG, WebP and AVIF honor the quality option; PNG always packs at
// best compression; ICO downscales oversized images to fit the container.
func recodeImage(file File, opts Options, target string) Response {
	img, _, err := decodeImage(file.Data)
	if err != nil {
		return convFailure("img-to-"+target, "could not decode image", err)
	}

	out, err := encodeAs(img, target, opts.Quality)
	if err != nil {
		return convFailure("img-to-"+target, "could not encode "+target, err)
	}

	return Response{
		Success:     true,
		FileName:    baseName(file.Name) + "." + extensionForTarget(target),
		Data:        out,
		ContentType: contentTypeForTarget(target),
	}
}

func encodeAs(img image.Image, target string, quality int) ([]byte, error) {
	switch target {
	case "jpeg", "jpg":
		return encodeJPEG(img, quality)
	case "png":
		return encodePNG(img)
	case "webp":
		var buf bytes.Buffer
		if err := webp.Encode(&buf, img, webp.Options{Quality: clampQuality(quality)}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "avif":
		var buf bytes.Buffer
		if err := avif.Encode(&buf, img, avif.Options{Quality: clampQuality(quality)}); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "ico":
		if b := img.Bounds(); b.Dx() > icoMaxDim || b.Dy() > icoMaxDim {
			img = fitWithin(img, icoMaxDim)
		}
		var buf bytes.Buffer
		if err := icoenc.Encode(&buf, img); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return encodeJPEG(img, quality)
	}
}

// fitWithin proportionally downscales so the longer edge equals max.
func fitWithin(img image.Image, max int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return resizeTo(img, w, h)
}

func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}

func extensionForTarget(target string) string {
	if target == "jpeg" {
		return "jpg"
	}
	return target
}

func contentTypeForTarget(target string) string {
	switch target {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "avif":
		return "image/avif"
	case "ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
