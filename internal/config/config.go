// Package config holds runtime configuration for a compression run:
// defaults, per-media-type targets, and validation. Flag binding lives in
// the cmd package; nothing here persists between runs.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Target is the per-media-type compression setting. A disabled target
// means the media type is skipped entirely. An enabled target with an
// empty Ext keeps the source extension; a non-empty Ext converts to that
// extension. Ext is used verbatim in output paths.
type Target struct {
	Enabled bool
	Ext     string
}

// Config holds all runtime settings. It is populated by [DefaultConfig]
// and then mutated by the CLI layer before being passed (by pointer) to
// packages that need it. Each job carries an immutable snapshot of the
// fields it needs.
type Config struct {
	// Root directory to index (positional arg; default ".").
	Root string

	// Per-media-type targets.
	Image Target
	Audio Target
	Video Target

	// Behavior.
	KeepOriginals bool // Keep source files; in-place sources become .backup.
	Quality       int  // Image quality 1-100; 0 = encoder default.
	Threads       int  // Worker count. Default: 8.
	DryRun        bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults applied. Used as the
// base before the CLI layer applies flag overrides.
func DefaultConfig() Config {
	return Config{
		Root:      ".",
		Threads:   8,
		ColorMode: ColorAuto,
	}
}

// Validate checks the worker count, quality range, color mode, and target
// extensions. Quality 0 means "unset" and is valid.
func (c *Config) Validate() error {
	if c.Threads < 1 {
		return errors.New("thread count must be at least 1")
	}
	if c.Quality < 0 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100 (got %d)", c.Quality)
	}
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	for _, t := range []struct {
		name   string
		target Target
	}{
		{"image", c.Image},
		{"audio", c.Audio},
		{"video", c.Video},
	} {
		if err := validateTargetExt(t.name, t.target); err != nil {
			return err
		}
	}
	if c.CheckOnly {
		return nil
	}
	if c.Root == "" {
		return errors.New("root directory must not be empty")
	}
	return nil
}

// validateTargetExt rejects target extensions that would escape the
// source file's directory or produce unusable paths. The extension is
// otherwise taken verbatim.
func validateTargetExt(name string, t Target) error {
	if !t.Enabled || t.Ext == "" {
		return nil
	}
	if strings.ContainsAny(t.Ext, "/\\ \t") || strings.HasPrefix(t.Ext, ".") {
		return fmt.Errorf("invalid %s target extension %q (use a bare extension, e.g. webp)", name, t.Ext)
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an
// empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
		return trimmed
	}
	return path
}
