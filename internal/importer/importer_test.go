package importer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jmylchreest/themeregistry/internal/theme"
	httputil "github.com/jmylchreest/themeregistry/internal/util/http"
)

func colours(prefix string) map[string]any {
	vars := make(map[string]any, len(ColourTokens))
	for _, token := range ColourTokens {
		vars[token] = prefix + "-" + token
	}
	return vars
}

func remoteItem(name string) map[string]any {
	return map[string]any{
		"name":        name,
		"type":        "registry:style",
		"title":       "Amethyst Haze",
		"description": "Lavender tones",
		"cssVars": map[string]any{
			"theme": map[string]any{"font-sans": "Geist, sans-serif", "font-mono": "Geist Mono, monospace"},
			"light": colours("light"),
			"dark":  colours("dark"),
		},
	}
}

// newRegistryServer serves items as a remote registry and counts requests.
func newRegistryServer(t *testing.T, status int, items ...map[string]any) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32

	body, err := json.Marshal(map[string]any{"name": "tweakcn", "items": items})
	if err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func newTestImporter(t *testing.T, url string, allowMissing bool) (*Importer, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "themes")
	return New(Options{
		RegistryURL:  url,
		ThemesDir:    dir,
		AllowMissing: allowMissing,
		AllowLocal:   true,
	}, nil), dir
}

func varValue(t *testing.T, def *theme.Definition, group, key string) string {
	t.Helper()
	vars := def.CSSVars.Light
	switch group {
	case "theme":
		vars = def.CSSVars.Theme
	case "dark":
		vars = def.CSSVars.Dark
	}
	value, ok := vars.Get(key)
	if !ok {
		t.Errorf("%s.%s is missing", group, key)
	}
	return value
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// TestImportWritesTheme tests that a remote theme is converted and saved.
func TestImportWritesTheme(t *testing.T) {
	server, hits := newRegistryServer(t, http.StatusOK, remoteItem("other"), remoteItem("amethyst-haze"))
	imp, dir := newTestImporter(t, server.URL, false)

	result, err := imp.Import(context.Background(), "amethyst-haze")
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if hits.Load() != 1 {
		t.Errorf("registry fetched %d times, want once", hits.Load())
	}
	if want := filepath.Join(dir, "amethyst-haze.json"); result.Path != want {
		t.Errorf("Path = %q, want %q", result.Path, want)
	}
	if len(result.Omitted) != 0 {
		t.Errorf("Omitted = %v, want none", result.Omitted)
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatal(err)
	}
	def, err := theme.Parse(data)
	if err != nil {
		t.Fatalf("written theme does not parse: %v", err)
	}

	if def.Schema != theme.SchemaURL || def.Name != "amethyst-haze-theme" || def.Type != theme.ItemType {
		t.Errorf("unexpected header: schema=%q name=%q type=%q", def.Schema, def.Name, def.Type)
	}
	if def.Title != "Amethyst Haze" || def.Description != "Lavender tones" {
		t.Errorf("title/description not copied: %q / %q", def.Title, def.Description)
	}

	if got, want := def.CSSVars.Theme.Keys(), []string{"font-sans", "font-mono", "font-serif", "radius"}; !reflect.DeepEqual(got, want) {
		t.Errorf("theme keys = %v, want %v", got, want)
	}
	if got := varValue(t, def, "theme", "font-sans"); got != "Geist, sans-serif" {
		t.Errorf("font-sans = %q", got)
	}
	if got := varValue(t, def, "theme", "font-serif"); got != "ui-serif, serif" {
		t.Errorf("font-serif = %q, want fallback", got)
	}
	if got := varValue(t, def, "theme", "radius"); got != "0.5rem" {
		t.Errorf("radius = %q, want fallback", got)
	}

	if got := def.CSSVars.Light.Keys(); !reflect.DeepEqual(got, ColourTokens) {
		t.Errorf("light keys = %v", got)
	}
	if got := def.CSSVars.Dark.Keys(); !reflect.DeepEqual(got, ColourTokens) {
		t.Errorf("dark keys = %v", got)
	}
	if got := varValue(t, def, "dark", "ring"); got != "dark-ring" {
		t.Errorf("dark ring = %q", got)
	}

	if !strings.HasSuffix(string(data), "}\n") {
		t.Error("written file should end with a newline")
	}
}

// TestImportNotFound tests that a missing theme lists what is available and writes nothing.
func TestImportNotFound(t *testing.T) {
	server, _ := newRegistryServer(t, http.StatusOK, remoteItem("amethyst-haze"), remoteItem("catppuccin"))
	imp, dir := newTestImporter(t, server.URL, false)

	_, err := imp.Import(context.Background(), "nonexistent")

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
	if notFound.Name != "nonexistent" {
		t.Errorf("Name = %q", notFound.Name)
	}
	if len(notFound.Available) != 2 || notFound.Available[1].Name != "catppuccin" {
		t.Errorf("Available = %+v", notFound.Available)
	}
	if pathExists(dir) {
		t.Error("themes directory should not be created")
	}
}

// TestImportNon2xx tests that a failed fetch is fatal.
func TestImportNon2xx(t *testing.T) {
	server, _ := newRegistryServer(t, http.StatusServiceUnavailable)
	imp, dir := newTestImporter(t, server.URL, false)

	_, err := imp.Import(context.Background(), "amethyst-haze")

	var statusErr *httputil.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want StatusError", err)
	}
	if statusErr.Code != http.StatusServiceUnavailable {
		t.Errorf("Code = %d", statusErr.Code)
	}
	if pathExists(dir) {
		t.Error("themes directory should not be created")
	}
}

// TestImportMalformedRegistry tests that an unparsable registry is fatal.
func TestImportMalformedRegistry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	imp, _ := newTestImporter(t, server.URL, false)
	_, err := imp.Import(context.Background(), "amethyst-haze")
	if err == nil || !strings.Contains(err.Error(), "failed to parse remote registry") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestImportMissingColours tests both handling modes for absent colour tokens.
func TestImportMissingColours(t *testing.T) {
	item := remoteItem("sparse")
	light := item["cssVars"].(map[string]any)["light"].(map[string]any)
	delete(light, "ring")
	delete(light, "border")
	wantMissing := []string{"light.border", "light.ring"}

	t.Run("fails by default", func(t *testing.T) {
		server, _ := newRegistryServer(t, http.StatusOK, item)
		imp, dir := newTestImporter(t, server.URL, false)

		_, err := imp.Import(context.Background(), "sparse")

		var missing *MissingTokensError
		if !errors.As(err, &missing) {
			t.Fatalf("error = %v, want MissingTokensError", err)
		}
		if !reflect.DeepEqual(missing.Tokens, wantMissing) {
			t.Errorf("Tokens = %v, want %v", missing.Tokens, wantMissing)
		}
		if pathExists(filepath.Join(dir, "sparse.json")) {
			t.Error("nothing should be written")
		}
	})

	t.Run("omitted when allowed", func(t *testing.T) {
		server, _ := newRegistryServer(t, http.StatusOK, item)
		imp, _ := newTestImporter(t, server.URL, true)

		result, err := imp.Import(context.Background(), "sparse")
		if err != nil {
			t.Fatalf("Import failed: %v", err)
		}
		if !reflect.DeepEqual(result.Omitted, wantMissing) {
			t.Errorf("Omitted = %v, want %v", result.Omitted, wantMissing)
		}

		data, err := os.ReadFile(result.Path)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Contains(string(data), "null") {
			t.Error("omitted tokens must not be written as null")
		}
		if result.Definition.CSSVars.Light.Has("ring") {
			t.Error("light ring should be omitted")
		}
		if !result.Definition.CSSVars.Dark.Has("ring") {
			t.Error("dark ring should be kept")
		}
	})
}

// TestImportValidation tests that bad input fails before any request is made.
func TestImportValidation(t *testing.T) {
	server, hits := newRegistryServer(t, http.StatusOK, remoteItem("amethyst-haze"))

	tests := []struct {
		name  string
		opts  Options
		theme string
	}{
		{"empty name", Options{RegistryURL: server.URL, ThemesDir: t.TempDir(), AllowLocal: true}, " "},
		{"traversal", Options{RegistryURL: server.URL, ThemesDir: t.TempDir(), AllowLocal: true}, "../escape"},
		{"local blocked", Options{RegistryURL: server.URL, ThemesDir: t.TempDir()}, "amethyst-haze"},
		{"bad scheme", Options{RegistryURL: "ftp://example.com/r.json", ThemesDir: t.TempDir()}, "amethyst-haze"},
		{"no themes dir", Options{RegistryURL: server.URL, AllowLocal: true}, "amethyst-haze"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts, nil).Import(context.Background(), tt.theme); err == nil {
				t.Error("expected an error")
			}
		})
	}
	if hits.Load() != 0 {
		t.Errorf("registry fetched %d times, want none", hits.Load())
	}
}

// TestConvertNonStringValues tests that non-string tokens count as missing.
func TestConvertNonStringValues(t *testing.T) {
	remote := RemoteItem{
		Name: "odd",
		CSSVars: map[string]map[string]any{
			"theme": {"radius": 4},
			"light": colours("light"),
			"dark":  colours("dark"),
		},
	}
	remote.CSSVars["dark"]["primary"] = nil

	def, omitted, err := Convert(remote, "odd", true)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	if got := varValue(t, def, "theme", "radius"); got != "0.5rem" {
		t.Errorf("radius = %q, want fallback", got)
	}
	if want := []string{"dark.primary"}; !reflect.DeepEqual(omitted, want) {
		t.Errorf("omitted = %v, want %v", omitted, want)
	}
}
