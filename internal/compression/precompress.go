// Package compression writes precompressed siblings of static registry files.
package compression

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
)

// Format is a supported precompression format.
type Format string

const (
	FormatGzip Format = "gz"
	FormatXz   Format = "xz"
)

// DefaultFormats are written when precompression is enabled.
var DefaultFormats = []Format{FormatGzip, FormatXz}

// Compress returns data compressed with the given format.
// Output is deterministic for identical input.
func Compress(data []byte, format Format) ([]byte, error) {
	var buf bytes.Buffer

	var w io.WriteCloser
	switch format {
	case FormatGzip:
		gzw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip writer: %w", err)
		}
		w = gzw
	case FormatXz:
		xzw, err := xz.NewWriter(&buf)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		w = xzw
	default:
		return nil, fmt.Errorf("unsupported compression format: %s", format)
	}

	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish compression: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func Decompress(data []byte, format Format) ([]byte, error) {
	var r io.Reader
	switch format {
	case FormatGzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	case FormatXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	default:
		return nil, fmt.Errorf("unsupported compression format: %s", format)
	}

	return io.ReadAll(r)
}

// WriteSiblings writes path.<ext> for every format and returns the written paths.
func WriteSiblings(path string, data []byte, formats []Format) ([]string, error) {
	written := make([]string, 0, len(formats))
	for _, format := range formats {
		compressed, err := Compress(data, format)
		if err != nil {
			return written, err
		}

		target := path + "." + string(format)
		if err := os.WriteFile(target, compressed, 0o644); err != nil { // #nosec G306 - static assets are world readable
			return written, fmt.Errorf("failed to write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}
