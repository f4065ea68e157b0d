package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("got %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physbed.yaml")
	src := `
window:
  width: 640
  height: 480
start_paused: true
textured: false
zoom: 35
scenario: scenarios/stack.tengo
capture:
  path: out.mp4
  fps: 30
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Window.Width != 640 || cfg.Window.Height != 480 {
		t.Fatalf("window override lost: %+v", cfg.Window)
	}
	if cfg.Window.Title != "physbed" {
		t.Fatalf("unset title should keep the default, got %q", cfg.Window.Title)
	}
	if !cfg.StartPaused || cfg.Textured {
		t.Fatalf("boolean overrides lost: paused=%v textured=%v", cfg.StartPaused, cfg.Textured)
	}
	if !cfg.DebugDraw {
		t.Fatal("unset debug_draw should keep the default")
	}
	if cfg.Zoom != 35 || cfg.Scenario != "scenarios/stack.tengo" {
		t.Fatalf("overrides lost: %+v", cfg)
	}
}

func TestLoadFillsCaptureDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physbed.yaml")
	src := `
window:
  width: 800
  height: 600
capture:
  path: frames
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Capture.Width != 800 || cfg.Capture.Height != 600 {
		t.Fatalf("capture dimensions should default to the window, got %+v", cfg.Capture)
	}
	if cfg.Capture.FPS != 60 {
		t.Fatalf("capture fps should default to 60, got %d", cfg.Capture.FPS)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("window: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
