package convert

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Pack serializes the successful outputs of a batch into one zip archive.
// Only responses with Success and non-empty Data are included. Duplicate
// file names are disambiguated deterministically: the first occurrence
// keeps its name, later ones get _1, _2, ... before the extension.
func Pack(responses []Response) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := make(map[string]int)

	for _, r := range responses {
		if !r.Success || len(r.Data) == 0 {
			continue
		}
		name := r.FileName
		if name == "" {
			name = "converted"
		}
		entry := name
		if n := seen[name]; n > 0 {
			entry = suffixName(name, n)
		}
		seen[name]++

		w, err := zw.Create(entry)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("create archive entry %s: %w", entry, err)
		}
		if _, err := w.Write(r.Data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("write archive entry %s: %w", entry, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// suffixName inserts _n before the extension: report.pdf -> report_1.pdf.
func suffixName(name string, n int) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + fmt.Sprintf("_%d", n) + ext
}
