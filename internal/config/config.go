// Package config holds the bridge tunables and loads them from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/screen-bridge/internal/platform"
)

// EnvPath names the environment variable that points at a config file when
// no --config flag is given.
const EnvPath = "SCREEN_BRIDGE_CONFIG"

// Config holds every tunable. Durations are written as Go duration strings
// ("50ms", "1m").
type Config struct {
	Debounce            time.Duration `yaml:"debounce"              json:"debounce"`
	LabelTTL            time.Duration `yaml:"label_ttl"             json:"label_ttl"`
	ReadingRowThreshold float64       `yaml:"reading_row_threshold" json:"reading_row_threshold"`
	FocusRowThreshold   float64       `yaml:"focus_row_threshold"   json:"focus_row_threshold"`
	WalkDepth           int           `yaml:"walk_depth"            json:"walk_depth"`
	PanelDepth          int           `yaml:"panel_depth"           json:"panel_depth"`
	RowSearchDepth      int           `yaml:"row_search_depth"      json:"row_search_depth"`
	NearestRadius       float64       `yaml:"nearest_radius"        json:"nearest_radius"`
	SettleDelay         time.Duration `yaml:"settle_delay"          json:"settle_delay"`
	ClickDelay          time.Duration `yaml:"click_delay"           json:"click_delay"`
	ActivationDepth     int           `yaml:"activation_depth"      json:"activation_depth"`
	ClickButton         string        `yaml:"click_button"          json:"click_button"`
	FrameInterval       time.Duration `yaml:"frame_interval"        json:"frame_interval"`
}

// Default returns the stock tunables.
func Default() Config {
	return Config{
		Debounce:            50 * time.Millisecond,
		LabelTTL:            60 * time.Second,
		ReadingRowThreshold: 15,
		FocusRowThreshold:   20,
		WalkDepth:           50,
		PanelDepth:          50,
		RowSearchDepth:      20,
		NearestRadius:       500,
		SettleDelay:         150 * time.Millisecond,
		ClickDelay:          30 * time.Millisecond,
		ActivationDepth:     8,
		ClickButton:         "left",
		FrameInterval:       16 * time.Millisecond,
	}
}

// Parse decodes YAML over the defaults, so omitted keys keep their stock
// values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the config at path. An empty path falls back to $SCREEN_BRIDGE_CONFIG;
// with neither set the defaults are returned.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return Parse(data)
}

// Validate rejects values no component can run with.
func (c Config) Validate() error {
	var errs []error
	for name, d := range map[string]time.Duration{
		"debounce":       c.Debounce,
		"label_ttl":      c.LabelTTL,
		"settle_delay":   c.SettleDelay,
		"click_delay":    c.ClickDelay,
		"frame_interval": c.FrameInterval,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", name, d))
		}
	}
	for name, n := range map[string]float64{
		"reading_row_threshold": c.ReadingRowThreshold,
		"focus_row_threshold":   c.FocusRowThreshold,
		"nearest_radius":        c.NearestRadius,
		"walk_depth":            float64(c.WalkDepth),
		"panel_depth":           float64(c.PanelDepth),
		"row_search_depth":      float64(c.RowSearchDepth),
		"activation_depth":      float64(c.ActivationDepth),
	} {
		if n < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, n))
		}
	}
	if _, err := platform.ParseMouseButton(c.ClickButton); err != nil {
		errs = append(errs, fmt.Errorf("click_button: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// MouseButton returns the parsed click button. Validate has already
// rejected unknown names, so this falls back to the left button.
func (c Config) MouseButton() platform.MouseButton {
	b, _ := platform.ParseMouseButton(c.ClickButton)
	return b
}
