package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected default width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected default height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync enabled by default")
	}
	if cfg.References.Folder != "references" {
		t.Errorf("expected default folder %q, got %q", "references", cfg.References.Folder)
	}
	if cfg.References.Thickness != 0.02 {
		t.Errorf("expected default thickness 0.02, got %v", cfg.References.Thickness)
	}
	if cfg.References.SharpLowDeg != 45 || cfg.References.SharpHighDeg != 135 {
		t.Errorf("expected default sharp angle range (45, 135), got (%v, %v)",
			cfg.References.SharpLowDeg, cfg.References.SharpHighDeg)
	}
	if cfg.Timer.IntervalSeconds != 3.0 {
		t.Errorf("expected default timer interval 3.0, got %v", cfg.Timer.IntervalSeconds)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yamlData := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
references:
  folder: /models
  thickness: 0.05
timer:
  interval_seconds: 60
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yamlData), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen true")
	}
	if cfg.References.Folder != "/models" {
		t.Errorf("expected folder /models, got %s", cfg.References.Folder)
	}
	if cfg.References.Thickness != 0.05 {
		t.Errorf("expected thickness 0.05, got %v", cfg.References.Thickness)
	}
	if cfg.Timer.IntervalSeconds != 60 {
		t.Errorf("expected interval 60, got %v", cfg.Timer.IntervalSeconds)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Logging.Level)
	}

	// Values absent from the file keep their defaults.
	if cfg.References.SharpLowDeg != 45 {
		t.Errorf("expected sharp low 45 preserved, got %v", cfg.References.SharpLowDeg)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync default preserved")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(path, []byte("graphics: [not a map"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 800
	cfg.References.Thickness = 0.1
	cfg.Timer.IntervalSeconds = 15

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if loaded.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", loaded.Graphics.Width)
	}
	if loaded.References.Thickness != 0.1 {
		t.Errorf("expected thickness 0.1, got %v", loaded.References.Thickness)
	}
	if loaded.Timer.IntervalSeconds != 15 {
		t.Errorf("expected interval 15, got %v", loaded.Timer.IntervalSeconds)
	}
}
