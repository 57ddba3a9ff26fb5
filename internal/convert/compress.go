package convert

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// Pixel-count brackets for the quality heuristic. Large images tolerate
// more quality loss because compression artifacts are less visible relative
// to detail density; small images keep quality high.
const (
	hugePixels   = 20_000_000
	largePixels  = 8_000_000
	mediumPixels = 2_000_000
	photoPixels  = 1_000_000 // above this, photographs compress better as JPEG
)

// oneClickQuality is the base quality forced by one-click compression.
const oneClickQuality = 50

// CompressImage re-encodes the image with a format and quality chosen from
// its characteristics, and reports estimated vs. actual size reduction.
// Under one-click compression the result is never larger than the input:
// when re-encoding does not help, the original bytes come back unchanged.
func CompressImage(file File, opts Options) Response {
	img, _, err := decodeImage(file.Data)
	if err != nil {
		return convFailure("compress-img", "could not decode image", err)
	}

	b := img.Bounds()
	pixels := int64(b.Dx()) * int64(b.Dy())
	originalSize := int64(len(file.Data))

	base := baseQuality(opts)
	targetFormat := determineBestFormat(img, pixels, file)
	quality := determineOptimalQuality(base, pixels)

	// The estimate is advisory and reflects the requested quality, not the
	// bracket-clamped value the encoder actually uses.
	estimated := estimateCompressedSize(pixels, base, file)
	estimatedInfo := fmt.Sprintf("Estimated reduction: %s (%.1f%% savings)",
		formatFileSize(originalSize-estimated), percentOf(originalSize-estimated, originalSize))

	var out []byte
	switch targetFormat {
	case "png":
		out, err = encodePNG(img)
	default:
		out, err = encodeJPEG(img, quality)
	}
	if err != nil {
		return convFailure("compress-img", "could not encode image", err)
	}

	if opts.OneClickCompression && int64(len(out)) >= originalSize {
		// Hand back the original rather than a larger "compressed" file.
		ext := strings.ToLower(filepath.Ext(file.Name))
		if ext == "" {
			ext = "." + extensionForTarget(targetFormat)
		}
		return Response{
			Success:     true,
			FileName:    baseName(file.Name) + "_compressed" + ext,
			Data:        file.Data,
			ContentType: originalContentType(file, ext),
			Message: fmt.Sprintf("Original file was already optimally compressed. Estimation: %s. Actual: No reduction achieved.",
				estimatedInfo),
		}
	}

	actual := originalSize - int64(len(out))
	return Response{
		Success:     true,
		FileName:    baseName(file.Name) + "_compressed." + extensionForTarget(targetFormat),
		Data:        out,
		ContentType: contentTypeForTarget(targetFormat),
		Message: fmt.Sprintf("Compression completed. Estimation: %s. Actual: Reduced by %s (%.1f%% savings).",
			estimatedInfo, formatFileSize(actual), percentOf(actual, originalSize)),
	}
}

func baseQuality(opts Options) int {
	if opts.OneClickCompression {
		return oneClickQuality
	}
	return opts.Quality
}

// determineBestFormat picks the output codec: PNG when the image actually
// carries transparency, JPEG for anything photograph-sized, otherwise the
// declared PNG-ness of the input decides, defaulting to JPEG.
func determineBestFormat(img image.Image, pixels int64, file File) string {
	if hasTransparency(img) {
		return "png"
	}
	if pixels > photoPixels {
		return "jpeg"
	}
	if strings.HasPrefix(strings.ToLower(file.ContentType), "image/png") ||
		strings.HasSuffix(strings.ToLower(file.Name), ".png") {
		return "png"
	}
	return "jpeg"
}

// determineOptimalQuality clamps the base quality by pixel-count bracket:
// upward floors for big images, a ceiling for small ones.
func determineOptimalQuality(base int, pixels int64) int {
	switch {
	case pixels > hugePixels:
		return max(60, base)
	case pixels > largePixels:
		return max(70, base)
	case pixels > mediumPixels:
		return max(75, base)
	default:
		return min(90, base)
	}
}

// estimateCompressedSize is advisory only: a fixed per-format multiplier on
// the pixel count scaled by the quality fraction. It feeds the statistics
// message and never gates behavior.
func estimateCompressedSize(pixels int64, quality int, file File) int64 {
	factor := 0.6
	name := strings.ToLower(file.Name)
	ct := strings.ToLower(file.ContentType)
	switch {
	case strings.HasPrefix(ct, "image/jpeg"),
		strings.HasSuffix(name, ".jpg"),
		strings.HasSuffix(name, ".jpeg"):
		factor = 0.5
	case strings.HasPrefix(ct, "image/png"), strings.HasSuffix(name, ".png"):
		factor = 0.8
	}
	return int64(float64(pixels) * factor * float64(quality) / 100.0)
}

func originalContentType(file File, ext string) string {
	if file.ContentType != "" {
		return file.ContentType
	}
	switch ext {
	case ".jpg", ".jpeg", ".jfif", ".jif":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".webp":
		return "image/webp"
	case ".avif":
		return "image/avif"
	case ".ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}

func percentOf(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100.0 / float64(whole)
}

func formatFileSize(bytes int64) string {
	abs := bytes
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < 1024:
		return fmt.Sprintf("%d B", bytes)
	case abs < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	}
}
