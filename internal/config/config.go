// Package config holds runtime configuration: defaults, file/env loading,
// and validation. Strategy defaults are newlines=2 with delete, retry and
// common-root placement enabled.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Defaults for strategy fields whose zero value is meaningful and therefore
// cannot double as the default.
const (
	DefaultBuildDir  = "target"
	DefaultOriginDir = "classes"
	DefaultMergeDir  = "generated-resources"
	DefaultNewlines  = 2
	DefaultType      = "regex"
)

// Config holds all runtime settings for one resmerge invocation. It is
// populated by [DefaultConfig] and then overridden from the config file,
// environment, and CLI flags before being passed (by pointer) to packages
// that need it.
type Config struct {
	// BuildDir is the build output root. Relative origin/merge directories
	// resolve against it. Created at startup if missing.
	BuildDir string `mapstructure:"build_dir"`

	// Skip bypasses the merge pipeline entirely.
	Skip bool `mapstructure:"skip"`

	// DryRun computes and logs every planned merge and delete without
	// touching the filesystem.
	DryRun bool `mapstructure:"dry_run"`

	// Display and logging.
	Verbose   bool      `mapstructure:"verbose"`
	ColorMode ColorMode `mapstructure:"color"`
	LogFile   string    `mapstructure:"log_file"` // Optional log file path.
	CheckOnly bool      `mapstructure:"-"`        // Run --check diagnostics and exit.

	// Strategies are executed strictly in order; the first failure aborts
	// the remainder.
	Strategies []StrategyConfig `mapstructure:"strategies"`
}

// StrategyConfig describes one merge strategy execution. Boolean fields
// that default to true, and Newlines (whose explicit zero disables the
// separator), are pointers so that absence in the config file is
// distinguishable from an explicit zero value.
type StrategyConfig struct {
	// Type selects the strategy implementation from the registry.
	// Empty means "regex".
	Type string `mapstructure:"type"`

	// FilesRegex matches candidate bare filenames. The whole filename must
	// match (case-sensitive). Required.
	FilesRegex string `mapstructure:"files_regex"`

	// ExcludeFiles lists bare filenames skipped during the scan.
	ExcludeFiles []string `mapstructure:"exclude_files"`

	// OriginDir is the directory scanned for candidates. Absolute, or
	// relative to BuildDir. Default "classes".
	OriginDir string `mapstructure:"origin_dir"`

	// MergeDir is the output directory for merged files. Absolute, or
	// relative to BuildDir. Empty falls back to the group's common root
	// (when UseCommonRoot) or to "generated-resources".
	MergeDir string `mapstructure:"merge_dir"`

	// MergeFile is a static target filename. When set, capture-group
	// derivation is bypassed and every match merges into this one file.
	MergeFile string `mapstructure:"merge_file"`

	// Newlines is the number of newline sequences written before each
	// appended source. Non-positive disables. Default 2.
	Newlines *int `mapstructure:"newlines"`

	// CommentFormat is a fmt format string with one %s placeholder for the
	// source's bare filename, written before its content. Empty disables.
	CommentFormat string `mapstructure:"comment_format"`

	// DeleteMerged controls deletion of consumed sources. Default true.
	DeleteMerged *bool `mapstructure:"delete_merged"`

	// RetryDelete enables the backoff retry loop on delete failure.
	// Default true.
	RetryDelete *bool `mapstructure:"retry_delete"`

	// UseCommonRoot selects the group's common root as the output directory
	// when MergeDir is empty. Default true.
	UseCommonRoot *bool `mapstructure:"use_common_root"`
}

// DefaultConfig returns a Config with all top-level defaults applied.
// Strategy-level pointer defaults are resolved by the accessors below.
func DefaultConfig() Config {
	return Config{
		BuildDir:  DefaultBuildDir,
		ColorMode: ColorAuto,
	}
}

// NewlinesOrDefault resolves the newline count, defaulting to 2.
func (s *StrategyConfig) NewlinesOrDefault() int {
	if s.Newlines == nil {
		return DefaultNewlines
	}
	return *s.Newlines
}

// DeleteMergedOrDefault resolves the delete flag, defaulting to true.
func (s *StrategyConfig) DeleteMergedOrDefault() bool {
	return s.DeleteMerged == nil || *s.DeleteMerged
}

// RetryDeleteOrDefault resolves the retry flag, defaulting to true.
func (s *StrategyConfig) RetryDeleteOrDefault() bool {
	return s.RetryDelete == nil || *s.RetryDelete
}

// UseCommonRootOrDefault resolves the common-root flag, defaulting to true.
func (s *StrategyConfig) UseCommonRootOrDefault() bool {
	return s.UseCommonRoot == nil || *s.UseCommonRoot
}

// TypeOrDefault resolves the strategy type, defaulting to "regex".
func (s *StrategyConfig) TypeOrDefault() string {
	if s.Type == "" {
		return DefaultType
	}
	return s.Type
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an
// empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// ResolveDir resolves child against parent unless child is already
// absolute; empty child falls back to def.
func ResolveDir(parent, child, def string) string {
	if child == "" {
		child = def
	}
	if filepath.IsAbs(child) {
		return child
	}
	return filepath.Join(parent, child)
}

// Validate checks the color mode, the build directory, and every configured
// strategy. When not in CheckOnly/Skip mode it also requires at least one
// strategy, since an invocation with nothing to do is a misconfiguration.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.BuildDir == "" {
		return errors.New("build_dir must not be empty")
	}

	for i := range c.Strategies {
		if err := c.Strategies[i].Validate(); err != nil {
			return fmt.Errorf("strategy %d: %w", i+1, err)
		}
	}

	if c.CheckOnly || c.Skip {
		return nil
	}
	if len(c.Strategies) == 0 {
		return errors.New("require at least one merge strategy (config 'strategies' or --regex)")
	}
	return nil
}

// Validate checks a single strategy configuration: the regex must be
// non-empty and compile, and when no static merge_file is set it must
// define at least one capturing group so a target filename can be derived.
func (s *StrategyConfig) Validate() error {
	if s.FilesRegex == "" {
		return errors.New("files_regex cannot be empty")
	}
	re, err := regexp.Compile(s.FilesRegex)
	if err != nil {
		return fmt.Errorf("invalid files_regex %q: %w", s.FilesRegex, err)
	}
	if s.MergeFile == "" && re.NumSubexp() == 0 {
		return fmt.Errorf("files_regex %q requires a capturing group or setting merge_file", s.FilesRegex)
	}
	return nil
}
