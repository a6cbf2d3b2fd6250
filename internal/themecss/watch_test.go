package themecss

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type run struct {
	count int
	err   error
}

func waitRun(t *testing.T, runs <-chan run) run {
	t.Helper()
	select {
	case r := <-runs:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a regeneration")
	}
	return run{}
}

func TestWatchRegenerates(t *testing.T) {
	dir := t.TempDir()
	themes := filepath.Join(dir, "themes")
	if err := os.MkdirAll(themes, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(themes, "a.json"), []byte(`{"cssVars": {"light": {"ring": "red"}}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	gen := &Generator{ThemesDir: themes, Output: filepath.Join(dir, "out.css")}
	runs := make(chan run, 8)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- gen.Watch(ctx, 20*time.Millisecond, func(count int, err error) {
			runs <- run{count, err}
		})
	}()

	first := waitRun(t, runs)
	if first.err != nil || first.count != 1 {
		t.Fatalf("initial run = %+v, want 1 theme", first)
	}

	if err := os.WriteFile(filepath.Join(themes, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(themes, "b.json"), []byte(`{"cssVars": {"dark": {"ring": "blue"}}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	// A run may observe b.json half written; wait for the settled one.
	for {
		r := waitRun(t, runs)
		if r.err == nil && r.count == 2 {
			break
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}

func TestWatchMissingDir(t *testing.T) {
	gen := &Generator{ThemesDir: filepath.Join(t.TempDir(), "absent"), Output: "out.css"}
	err := gen.Watch(context.Background(), 0, func(int, error) {
		t.Error("onRun should not be called")
	})
	if err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
