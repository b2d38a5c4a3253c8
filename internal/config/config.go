// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/sysview/internal/readout"
	"github.com/jeranaias/sysview/internal/theme"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete sysview configuration.
type Config struct {
	// Theme names a built-in theme or a file in the themes directory.
	Theme string `toml:"theme" json:"theme"`

	// Show selects and orders readouts. Hide removes readouts from the
	// default set. Only one of the two may be set.
	Show []string `toml:"show" json:"show,omitempty"`
	Hide []string `toml:"hide" json:"hide,omitempty"`

	// Formatting
	LongUptime          bool `toml:"long_uptime" json:"long_uptime"`
	LongShell           bool `toml:"long_shell" json:"long_shell"`
	LongKernel          bool `toml:"long_kernel" json:"long_kernel"`
	PhysicalCores       bool `toml:"physical_cores" json:"physical_cores"`
	CurrentShell        bool `toml:"current_shell" json:"current_shell"`
	MemoryPercentage    bool `toml:"memory_percentage" json:"memory_percentage"`
	DiskSpacePercentage bool `toml:"disk_space_percentage" json:"disk_space_percentage"`

	// Disks are the mount points summed by the disk_space readout.
	Disks []string `toml:"disks" json:"disks,omitempty"`
	// Interface is the network interface read by local_ip.
	Interface string `toml:"interface" json:"interface,omitempty"`
}

// Default returns a new Config with default values.
func Default() *Config {
	return &Config{
		Theme:        theme.DefaultName,
		CurrentShell: true,
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the sysview configuration directory path.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine config directory: %w", err)
	}
	return filepath.Join(dir, "sysview"), nil
}

// ConfigPathTOML returns the path to the config file. SYSVIEW_CONFIG
// overrides the default location.
func ConfigPathTOML() (string, error) {
	if p := os.Getenv("SYSVIEW_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sysview.toml"), nil
}

// ThemeDirs returns the directories searched for custom themes.
func ThemeDirs() []string {
	dir, err := ConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "themes")}
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads the configuration file if it exists and falls back to the
// defaults otherwise. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err == nil {
		cfg, err := LoadFromPath(path)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log.Printf("CONFIG_LOADED | source=defaults theme=%s", cfg.Theme)
	return cfg, nil
}

// LoadTOML decodes the TOML file at path into cfg.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		var errs ValidateErrors
		for _, key := range undecoded {
			errs = append(errs, ValidationError{Field: key.String(), Message: "unknown setting"})
		}
		return errs
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	log.Printf("CONFIG_LOADED | source=%s theme=%s", path, cfg.Theme)
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Save writes cfg to path as TOML, creating the directory if needed. The
// file is written to a temporary file first and renamed into place, so a
// failed save leaves the old file intact.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".sysview-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()
	saved := false
	defer func() {
		if !saved {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return fmt.Errorf("failed to set config permissions: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	saved = true

	log.Printf("CONFIG_SAVED | path=%s", path)
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if len(c.Show) > 0 && len(c.Hide) > 0 {
		errs = append(errs, ValidationError{
			Field:   "show",
			Message: "show and hide cannot be used together",
		})
	}
	for field, names := range map[string][]string{"show": c.Show, "hide": c.Hide} {
		for _, n := range names {
			if _, err := readout.ParseKey(n); err != nil {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("%v, must be one of: %s", err, strings.Join(readout.Names(), ", ")),
				})
			}
		}
	}

	for _, d := range c.Disks {
		if strings.TrimSpace(d) == "" {
			errs = append(errs, ValidationError{Field: "disks", Message: "empty mount point"})
		}
	}

	if len(errs) > 0 {
		// Map iteration above is unordered.
		slices.SortStableFunc(errs, func(a, b ValidationError) int { return strings.Compare(a.Field, b.Field) })
		return errs
	}
	return nil
}

// SetDefaults fills unset values and normalizes lists.
func (c *Config) SetDefaults() {
	if strings.TrimSpace(c.Theme) == "" {
		c.Theme = theme.DefaultName
	}
	c.Show = normalizeList(c.Show)
	c.Hide = normalizeList(c.Hide)
	c.Disks = normalizeList(c.Disks)
}

// normalizeList trims entries and drops empty ones.
func normalizeList(in []string) []string {
	if in == nil {
		return nil
	}
	out := in[:0:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitList splits a comma separated list.
func SplitList(s string) []string {
	return normalizeList(strings.Split(s, ","))
}

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported environment variables:
//   - SYSVIEW_THEME: overrides theme
//   - SYSVIEW_SHOW: comma separated readouts, replaces show
//   - SYSVIEW_HIDE: comma separated readouts, replaces hide
//
// SYSVIEW_CONFIG is read by ConfigPathTOML.
func (c *Config) ApplyEnvOverrides() {
	if t := os.Getenv("SYSVIEW_THEME"); t != "" {
		c.Theme = t
	}
	if show := os.Getenv("SYSVIEW_SHOW"); show != "" {
		c.Show = SplitList(show)
		c.Hide = nil
	}
	if hide := os.Getenv("SYSVIEW_HIDE"); hide != "" {
		c.Hide = SplitList(hide)
		c.Show = nil
	}
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// Keys returns the readouts to display. The config must be valid.
func (c *Config) Keys() []readout.Key {
	show, _ := readout.ParseKeys(c.Show)
	hide, _ := readout.ParseKeys(c.Hide)
	return readout.Select(show, hide)
}

// ReadoutOptions returns the probe formatting options.
func (c *Config) ReadoutOptions() readout.Options {
	return readout.Options{
		LongUptime:       c.LongUptime,
		LongShell:        c.LongShell,
		LongKernel:       c.LongKernel,
		PhysicalCores:    c.PhysicalCores,
		CurrentShell:     c.CurrentShell,
		MemoryPercentage: c.MemoryPercentage,
		DiskPercentage:   c.DiskSpacePercentage,
		Disks:            slices.Clone(c.Disks),
		Interface:        c.Interface,
	}
}

// =============================================================================
// MERGE / CLONE
// =============================================================================

// Merge merges another config into this one, overwriting only non-zero
// values. A non-empty show or hide list in other replaces both lists.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Theme != "" {
		c.Theme = other.Theme
	}
	if len(other.Show) > 0 {
		c.Show = slices.Clone(other.Show)
		c.Hide = nil
	}
	if len(other.Hide) > 0 {
		c.Hide = slices.Clone(other.Hide)
		c.Show = nil
	}
	if len(other.Show) > 0 && len(other.Hide) > 0 {
		// Keep both so Validate reports the conflict.
		c.Show = slices.Clone(other.Show)
	}

	if other.LongUptime {
		c.LongUptime = true
	}
	if other.LongShell {
		c.LongShell = true
	}
	if other.LongKernel {
		c.LongKernel = true
	}
	if other.PhysicalCores {
		c.PhysicalCores = true
	}
	if other.CurrentShell {
		c.CurrentShell = true
	}
	if other.MemoryPercentage {
		c.MemoryPercentage = true
	}
	if other.DiskSpacePercentage {
		c.DiskSpacePercentage = true
	}
	if len(other.Disks) > 0 {
		c.Disks = slices.Clone(other.Disks)
	}
	if other.Interface != "" {
		c.Interface = other.Interface
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Show = slices.Clone(c.Show)
	clone.Hide = slices.Clone(c.Hide)
	clone.Disks = slices.Clone(c.Disks)
	return &clone
}

// String returns a string representation of the config for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
