// Package convert implements the conversion dispatcher and the per-format
// converters behind it. Every converter is a function from input bytes plus
// options to a uniform response envelope; failures are folded into the
// envelope and never escape as errors or panics.
package convert

import (
	"path/filepath"
	"strings"
)

// File is an uploaded payload. The declared content type may be absent or
// wrong; classification trusts the file name first.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Options is the per-request configuration bag shared by all converters.
type Options struct {
	Quality             int  // JPEG/WebP/AVIF quality, 1-100
	OneClickCompression bool // forces quality 50 in compress-img
	Width               int  // optional target width (img-to-pdf), 0 = keep
	Height              int  // optional target height (img-to-pdf), 0 = keep
	DPI                 int  // accepted but unused downstream
	MaintainAspectRatio bool // advisory to the client only
}

// DefaultOptions mirrors the form-field defaults.
func DefaultOptions() Options {
	return Options{
		Quality:             80,
		DPI:                 300,
		MaintainAspectRatio: true,
	}
}

// Response is the uniform conversion envelope. Data is present iff Success
// is true, except the compress-img no-improvement case where Data holds the
// original bytes.
type Response struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	Data        []byte `json:"-"`
	ContentType string `json:"contentType,omitempty"`
}

func failure(msg string) Response {
	return Response{Success: false, Message: msg}
}

// baseName strips the directory and extension from an uploaded file name.
func baseName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	if base == "" || base == "." {
		base = "converted"
	}
	return base
}
