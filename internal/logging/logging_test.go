package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "item", "button")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, "themeregistry: shown: item=button") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{JSON: true, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Named("registry").Info("built item", "name", "button")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if line["@module"] != "themeregistry.registry" || line["name"] != "button" {
		t.Errorf("unexpected fields %v", line)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		verbose, quiet bool
		configured     string
		want           string
	}{
		{false, false, "", "info"},
		{false, false, "warn", "warn"},
		{true, false, "warn", "debug"},
		{false, true, "debug", "error"},
		{true, true, "", "error"},
	}

	for _, tt := range tests {
		if got := LevelFor(tt.verbose, tt.quiet, tt.configured); got != tt.want {
			t.Errorf("LevelFor(%v, %v, %q) = %q, want %q", tt.verbose, tt.quiet, tt.configured, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
