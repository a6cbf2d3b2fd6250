package compression

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestCompressRoundTrip(t *testing.T) {
	data := []byte(`{"name": "graphite-theme", "type": "registry:theme"}`)

	for _, format := range DefaultFormats {
		t.Run(string(format), func(t *testing.T) {
			compressed, err := Compress(data, format)
			if err != nil {
				t.Fatalf("Compress() error = %v", err)
			}

			again, err := Compress(data, format)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(compressed, again) {
				t.Error("compression output should be deterministic")
			}

			out, err := Decompress(compressed, format)
			if err != nil {
				t.Fatalf("Decompress() error = %v", err)
			}
			if !bytes.Equal(out, data) {
				t.Errorf("round trip mismatch: %q", out)
			}
		})
	}
}

func TestCompressUnknownFormat(t *testing.T) {
	if _, err := Compress([]byte("x"), Format("zst")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestWriteSiblings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "button.json")

	written, err := WriteSiblings(path, []byte(`{}`), DefaultFormats)
	if err != nil {
		t.Fatalf("WriteSiblings() error = %v", err)
	}

	want := []string{path + ".gz", path + ".xz"}
	if len(written) != len(want) {
		t.Fatalf("written = %v, want %v", written, want)
	}
	for i, p := range want {
		if written[i] != p {
			t.Errorf("written[%d] = %s, want %s", i, written[i], p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s not written: %v", p, err)
		}
	}
}
