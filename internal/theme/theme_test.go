package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/themeregistry/internal/cssvars"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "twitter.json", `{"name": "twitter-theme", "cssVars": {"light": {"primary": "#1da1f2"}}}`)
	writeFile(t, dir, "bubblegum.json", `{"name": "bubblegum-theme", "cssVars": {"dark": {"primary": "pink"}}}`)
	writeFile(t, dir, "README.md", "not a theme")
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "bubblegum" || entries[1].Name != "twitter" {
		t.Errorf("entries not sorted by name: %s, %s", entries[0].Name, entries[1].Name)
	}
	if entries[0].Definition.CSSVars.Light != nil {
		t.Error("absent light group should stay nil")
	}
	if v, _ := entries[1].Definition.CSSVars.Light.Get("primary"); v != "#1da1f2" {
		t.Errorf("primary = %q", v)
	}
}

func TestLoadDirAbortsOnInvalidTheme(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.json", `{"cssVars": {}}`)
	writeFile(t, dir, "broken.json", `{"cssVars": `)

	_, err := LoadDir(dir)
	if err == nil {
		t.Fatal("expected LoadDir to fail")
	}
	if !strings.Contains(err.Error(), "broken.json") {
		t.Errorf("error should name the broken file: %v", err)
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestStemForItem(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"material-theme", "material"},
		{"graphite", "graphite"},
		{"theme-theme", "theme"},
		{"dark-theme-theme", "dark-theme"},
	}

	for _, tt := range tests {
		if got := StemForItem(tt.name); got != tt.want {
			t.Errorf("StemForItem(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMarshal(t *testing.T) {
	def := &Definition{
		Schema: SchemaURL,
		Name:   "mono-theme",
		Type:   ItemType,
		CSSVars: CSSVars{
			Theme: cssvars.New(cssvars.Entry{Key: "radius", Value: "0.5rem"}),
			Light: cssvars.New(cssvars.Entry{Key: "background", Value: "#fff"}),
		},
	}

	data, err := Marshal(def)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{
  "$schema": "https://shadcn-svelte.com/schema/registry-item.json",
  "name": "mono-theme",
  "type": "registry:theme",
  "cssVars": {
    "theme": {
      "radius": "0.5rem"
    },
    "light": {
      "background": "#fff"
    }
  }
}
`
	if string(data) != want {
		t.Errorf("Marshal output:\n%s\nwant:\n%s", data, want)
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.CSSVars.Dark != nil {
		t.Error("dark group should be absent")
	}
}

func TestLint(t *testing.T) {
	def, err := Parse([]byte(`{
		"cssVars": {
			"light": {"background": "#fff", "primary": "tomato", "radius": "1rem"},
			"dark": {"background": "#00000g", "accent": "oklch(0.5 0.1 20)"}
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}

	got := map[string]Severity{}
	for _, f := range Lint(def) {
		got[f.Group+"."+f.Key] = f.Severity
	}

	want := map[string]Severity{
		"light.primary":   SeverityWarning,
		"light.radius":    SeverityWarning,
		"dark.accent":     SeverityWarning,
		"dark.background": SeverityError,
	}
	if len(got) != len(want) {
		t.Errorf("findings = %v, want %v", got, want)
	}
	for k, sev := range want {
		if got[k] != sev {
			t.Errorf("%s: severity %q, want %q", k, got[k], sev)
		}
	}
}

func TestIsColour(t *testing.T) {
	valid := []string{"#fff", "#ffff", "#a1b2c3", "#a1b2c3d4", "oklch(0.5 0.1 200)", "hsl(210 40% 98%)", "var(--x)", "transparent", "RebeccaPurple", "red"}
	for _, v := range valid {
		if !IsColour(v) {
			t.Errorf("IsColour(%q) = false, want true", v)
		}
	}

	invalid := []string{"", "#ff", "#ggg", "oklch(0.5", "notacolour", "1rem", "0 0% 100%"}
	for _, v := range invalid {
		if IsColour(v) {
			t.Errorf("IsColour(%q) = true, want false", v)
		}
	}
}

func TestIsHSLChannels(t *testing.T) {
	valid := []string{"0 0% 100%", "240 5.9% 10%", " 222.2deg 84% 4.9% ", "240 5.9% 10% / 0.5", "0 0% 0% / 50%"}
	for _, v := range valid {
		if !IsHSLChannels(v) {
			t.Errorf("IsHSLChannels(%q) = false, want true", v)
		}
	}

	invalid := []string{"", "0 0 100", "0 0% 100% 1", "hsl(0 0% 100%)", "red", "0 0% 100% / x"}
	for _, v := range invalid {
		if IsHSLChannels(v) {
			t.Errorf("IsHSLChannels(%q) = true, want false", v)
		}
	}
}

// TestLintColourForms tests that CSS Color 4 names pass and bare HSL channels only warn.
func TestLintColourForms(t *testing.T) {
	def, err := Parse([]byte(`{
		"cssVars": {
			"light": {"primary": "rebeccapurple", "background": "0 0% 100%"},
			"dark": {"primary": "RebeccaPurple", "background": "oklch(0.2 0 0)"}
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}

	findings := Lint(def)
	if len(findings) != 1 {
		t.Fatalf("findings = %v, want only the bare channels warning", findings)
	}
	f := findings[0]
	if f.Group != "light" || f.Key != "background" || f.Severity != SeverityWarning {
		t.Errorf("unexpected finding %+v", f)
	}
	if !strings.Contains(f.Message, "hsl(0 0% 100%)") {
		t.Errorf("message should suggest the hsl() form: %q", f.Message)
	}
}
