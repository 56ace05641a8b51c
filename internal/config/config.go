package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config captures CLI options sourced from config files or flags.
type Config struct {
	Paths []string `yaml:"paths"`
	Only  []string `yaml:"only"`
	Skip  []string `yaml:"skip"`
	Jobs  []string `yaml:"jobs"`

	Format         string `yaml:"format"`
	Strict         bool   `yaml:"strict"`
	SkipValidation bool   `yaml:"skip_validation"`
	FailFast       bool   `yaml:"fail_fast"`
	DryRun         bool   `yaml:"dry_run"`
	Verbose        bool   `yaml:"verbose"`
	OutputDir      string `yaml:"output_dir"`
}

const (
	// FormatPretty renders human readable output.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"
)

// Default returns the baseline configuration used when no flags or config
// file specify values.
func Default() Config {
	return Config{Format: FormatPretty}
}

// Load reads .actionsmith.yml from the repository root when present.
// Missing files are ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, ".actionsmith.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg = merge(cfg, fileCfg)
	return cfg, nil
}

func merge(base, override Config) Config {
	out := base

	if len(override.Paths) > 0 {
		out.Paths = append([]string{}, override.Paths...)
	}
	if len(override.Only) > 0 {
		out.Only = append([]string{}, override.Only...)
	}
	if len(override.Skip) > 0 {
		out.Skip = append([]string{}, override.Skip...)
	}
	if len(override.Jobs) > 0 {
		out.Jobs = append([]string{}, override.Jobs...)
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.OutputDir != "" {
		out.OutputDir = override.OutputDir
	}
	if override.Strict {
		out.Strict = true
	}
	if override.SkipValidation {
		out.SkipValidation = true
	}
	if override.FailFast {
		out.FailFast = true
	}
	if override.DryRun {
		out.DryRun = true
	}
	if override.Verbose {
		out.Verbose = true
	}

	return out
}

// StringFlag carries a string flag value and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// BoolFlag carries a boolean flag value and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}

// SliceFlag carries a repeatable flag's values.
type SliceFlag struct {
	Values []string
}

// FlagValues captures CLI flag state; unset flags leave config untouched.
type FlagValues struct {
	Only           SliceFlag
	Skip           SliceFlag
	Jobs           SliceFlag
	Format         StringFlag
	OutputDir      StringFlag
	Strict         BoolFlag
	SkipValidation BoolFlag
	FailFast       BoolFlag
	DryRun         BoolFlag
	Verbose        BoolFlag
}

// ApplyFlags mutates cfg by applying values from CLI flags when present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if len(flags.Only.Values) > 0 {
		cfg.Only = append([]string{}, flags.Only.Values...)
	}
	if len(flags.Skip.Values) > 0 {
		cfg.Skip = append([]string{}, flags.Skip.Values...)
	}
	if len(flags.Jobs.Values) > 0 {
		cfg.Jobs = append([]string{}, flags.Jobs.Values...)
	}
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if flags.OutputDir.Set {
		cfg.OutputDir = flags.OutputDir.Value
	}
	if flags.Strict.Set {
		cfg.Strict = flags.Strict.Value
	}
	if flags.SkipValidation.Set {
		cfg.SkipValidation = flags.SkipValidation.Value
	}
	if flags.FailFast.Set {
		cfg.FailFast = flags.FailFast.Value
	}
	if flags.DryRun.Set {
		cfg.DryRun = flags.DryRun.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
}
