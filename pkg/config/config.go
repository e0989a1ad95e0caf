// Package config loads worksheet settings from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sunfmin/go-debug-worksheets/pkg/catalog"
	"github.com/sunfmin/go-debug-worksheets/pkg/worksheet"
)

// Environment variables that override the file.
const (
	EnvVariant = "WORKSHEET_VARIANT"
	EnvDebug   = "WORKSHEET_DEBUG"
	EnvEnable  = "WORKSHEET_ENABLE"
)

// Config is the worksheet configuration file.
type Config struct {
	Variant    string   `yaml:"variant"`
	Enable     []string `yaml:"enable"`
	Sheets     []string `yaml:"sheets"`
	Debug      bool     `yaml:"debug"`
	SourceRoot string   `yaml:"source_root"`
	Tour       Tour     `yaml:"tour"`
}

// Tour configures the guided debugger walkthrough.
type Tour struct {
	Package  string              `yaml:"package"`
	MaxStops int                 `yaml:"max_stops"`
	Depth    int                 `yaml:"depth"`
	Watch    map[string][]string `yaml:"watch"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Variant:    worksheet.Buggy.String(),
		Sheets:     []string{catalog.All},
		SourceRoot: ".",
		Tour: Tour{
			Package:  "./cmd/worksheet",
			MaxStops: 200,
			Depth:    1,
		},
	}
}

// Load reads path over the defaults and applies environment overrides. An
// empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvVariant); v != "" {
		c.Variant = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		c.Debug = v != "0" && strings.ToLower(v) != "false"
	}
	if v := os.Getenv(EnvEnable); v != "" {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				c.Enable = append(c.Enable, name)
			}
		}
	}
}

// Validate checks every field against the catalog.
func (c Config) Validate() error {
	var errs []error
	if _, err := worksheet.ParseVariant(c.Variant); err != nil {
		errs = append(errs, err)
	}
	if err := catalog.ValidateEnable(c.Enable); err != nil {
		errs = append(errs, err)
	}
	for _, name := range c.Sheets {
		if _, err := catalog.Lookup(name); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Tour.MaxStops < 0 {
		errs = append(errs, fmt.Errorf("tour.max_stops must not be negative, got %d", c.Tour.MaxStops))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// VariantValue returns the parsed variant. Call Validate first.
func (c Config) VariantValue() worksheet.Variant {
	v, _ := worksheet.ParseVariant(c.Variant)
	return v
}
