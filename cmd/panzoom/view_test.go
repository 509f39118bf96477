package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadViewConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panzoom.yaml")
	yaml := "maxScale: 6\nzoomStep: 0.25\ntransitionDuration: 50ms\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newViewCommand()
	if err := cmd.ParseFlags([]string{"--config", path, "--max-scale", "3", "--no-controls"}); err != nil {
		t.Fatal(err)
	}
	opts := viewOptions{configPath: path, maxScale: 3, noControls: true}

	cfg, err := loadViewConfig(cmd, opts)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxScale != 3 {
		t.Errorf("MaxScale = %v, want flag value 3", cfg.MaxScale)
	}
	if cfg.ZoomStep != 0.25 {
		t.Errorf("ZoomStep = %v, want file value 0.25", cfg.ZoomStep)
	}
	if cfg.TransitionDuration != 50*time.Millisecond {
		t.Errorf("TransitionDuration = %v", cfg.TransitionDuration)
	}
	if cfg.ShowControls {
		t.Error("ShowControls should be off")
	}
}

func TestLoadViewConfigInvalidOverride(t *testing.T) {
	cmd := newViewCommand()
	if err := cmd.ParseFlags([]string{"--min-scale", "20"}); err != nil {
		t.Fatal(err)
	}
	if _, err := loadViewConfig(cmd, viewOptions{minScale: 20}); err == nil {
		t.Error("expected min > max to fail validation")
	}
}

func TestCleanAbs(t *testing.T) {
	if got := cleanAbs("a/../b.svg"); !filepath.IsAbs(got) || filepath.Base(got) != "b.svg" {
		t.Errorf("cleanAbs = %q", got)
	}
}
