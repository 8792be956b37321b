package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mj1618/screen-bridge/internal/platform"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Debounce != 50*time.Millisecond || cfg.LabelTTL != time.Minute {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.MouseButton() != platform.MouseLeft {
		t.Errorf("MouseButton() = %v, want left", cfg.MouseButton())
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("debounce: 80ms\nclick_button: right\nreading_row_threshold: 10\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Debounce != 80*time.Millisecond {
		t.Errorf("Debounce = %v, want 80ms", cfg.Debounce)
	}
	if cfg.ReadingRowThreshold != 10 {
		t.Errorf("ReadingRowThreshold = %v, want 10", cfg.ReadingRowThreshold)
	}
	if cfg.MouseButton() != platform.MouseRight {
		t.Errorf("MouseButton() = %v, want right", cfg.MouseButton())
	}
	// untouched keys keep defaults
	if cfg.LabelTTL != time.Minute || cfg.WalkDepth != 50 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad duration", "debounce: soon", "parse config"},
		{"negative", "label_ttl: -1s", "label_ttl must not be negative"},
		{"negative depth", "walk_depth: -3", "walk_depth must not be negative"},
		{"bad button", "click_button: thumb", "unknown mouse button"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse(%q) err = %v, want containing %q", tt.doc, err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bridge.yaml")
	if err := os.WriteFile(path, []byte("settle_delay: 1s\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SettleDelay != time.Second {
		t.Errorf("SettleDelay = %v, want 1s", cfg.SettleDelay)
	}

	t.Setenv(EnvPath, path)
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SettleDelay != time.Second {
		t.Errorf("env path ignored: SettleDelay = %v", cfg.SettleDelay)
	}

	t.Setenv(EnvPath, "")
	cfg, err = Load("")
	if err != nil || cfg != Default() {
		t.Errorf("Load(\"\") = %+v, %v; want defaults", cfg, err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
