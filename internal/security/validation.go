// Package security provides validation helpers for paths and URLs handled by themeregistry.
package security

import (
	"errors"
	"fmt"
	"io"
	"net/netip"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrTooLarge is returned by ReadLimited when the input exceeds the limit.
var ErrTooLarge = errors.New("response size limit exceeded")

// ValidateFetchURL validates a URL the importer is about to fetch.
// Only http:// and https:// are accepted. Local and private hosts are
// rejected unless allowLocal is set.
func ValidateFetchURL(rawURL string, allowLocal bool) error {
	if rawURL == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("URL must start with http:// or https:// (got %q)", parsed.Scheme)
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	if !allowLocal && isLocalHost(host) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", host)
	}

	return nil
}

// ValidateFilePath validates a relative file path to prevent directory traversal.
// The joined path must stay within baseDir.
func ValidateFilePath(filePath, baseDir string) error {
	switch {
	case filePath == "":
		return fmt.Errorf("empty file path")
	case strings.Contains(filePath, ".."):
		return fmt.Errorf("file path contains directory traversal (..) - not allowed")
	case filepath.IsAbs(filePath):
		return fmt.Errorf("absolute paths are not allowed")
	}

	rel, err := filepath.Rel(filepath.Clean(baseDir), filepath.Join(baseDir, filePath))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("file path would escape base directory")
	}

	return nil
}

// ReadLimited reads r to EOF, failing with ErrTooLarge once more than
// maxBytes are available.
func ReadLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

func isLocalHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	return addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsUnspecified()
}
