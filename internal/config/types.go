// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/3000studios/themepack/pkg/packager"
	"github.com/3000studios/themepack/pkg/validator"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	// DefaultThemesDir is where packages are written when nothing else is set.
	DefaultThemesDir = "themes"

	// LogLevelDebug logs every skipped file and archive entry.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs created, unpacked and verified packages.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs recoverable problems only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs failures only.
	LogLevelError LogLevel = "error"

	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark styles.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light styles.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidExcludePattern is the sentinel error wrapped by InvalidExcludePatternError.
	ErrInvalidExcludePattern = errors.New("invalid exclude pattern")
	// ErrInvalidLimit is the sentinel error wrapped by InvalidLimitError.
	ErrInvalidLimit = errors.New("invalid limit")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written by the CLI logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// ColorScheme selects lipgloss and glamour styles.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidExcludePatternError reports a package.exclude entry that is not
	// a valid doublestar pattern.
	InvalidExcludePatternError struct {
		Pattern string
	}

	// InvalidLimitError reports a limits.* value outside its allowed range.
	InvalidLimitError struct {
		Field string
		Value string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the application configuration.
	Config struct {
		// ThemesDir is where packages are written and listed.
		ThemesDir string `json:"themes_dir" mapstructure:"themes_dir"`
		// Package configures archive creation.
		Package PackageConfig `json:"package" mapstructure:"package"`
		// Limits bounds file sizes and archive expansion.
		Limits LimitsConfig `json:"limits" mapstructure:"limits"`
		// UI configures output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// PackageConfig configures archive creation.
	PackageConfig struct {
		// Exclude lists doublestar patterns, relative to the theme root, that
		// are left out of packages.
		Exclude []string `json:"exclude" mapstructure:"exclude"`
	}

	// LimitsConfig bounds what the validator accepts and what unpack extracts.
	LimitsConfig struct {
		MaxFileSize         int64   `json:"max_file_size" mapstructure:"max_file_size"`
		MaxCompressionRatio float64 `json:"max_compression_ratio" mapstructure:"max_compression_ratio"`
		MaxTotalSize        uint64  `json:"max_total_size" mapstructure:"max_total_size"`
	}

	// UIConfig configures output.
	UIConfig struct {
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
		LogLevel    LogLevel    `json:"log_level" mapstructure:"log_level"`
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined schemes.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

func (e *InvalidExcludePatternError) Error() string {
	return fmt.Sprintf("invalid package.exclude pattern %q", e.Pattern)
}

func (e *InvalidExcludePatternError) Unwrap() error { return ErrInvalidExcludePattern }

func (e *InvalidLimitError) Error() string {
	return fmt.Sprintf("invalid %s %s: must be greater than zero", e.Field, e.Value)
}

func (e *InvalidLimitError) Unwrap() error { return ErrInvalidLimit }

// IsValid checks every exclude pattern with doublestar.
func (c PackageConfig) IsValid() (bool, []error) {
	var errs []error
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, &InvalidExcludePatternError{Pattern: pattern})
		}
	}
	return len(errs) == 0, errs
}

// IsValid requires every limit to be positive.
func (c LimitsConfig) IsValid() (bool, []error) {
	var errs []error
	if c.MaxFileSize <= 0 {
		errs = append(errs, &InvalidLimitError{Field: "limits.max_file_size", Value: fmt.Sprint(c.MaxFileSize)})
	}
	if c.MaxCompressionRatio <= 0 {
		errs = append(errs, &InvalidLimitError{Field: "limits.max_compression_ratio", Value: fmt.Sprint(c.MaxCompressionRatio)})
	}
	if c.MaxTotalSize == 0 {
		errs = append(errs, &InvalidLimitError{Field: "limits.max_total_size", Value: "0"})
	}
	return len(errs) == 0, errs
}

// IsValid delegates to LogLevel.IsValid() and ColorScheme.IsValid().
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.LogLevel.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	return len(errs) == 0, errs
}

// IsValid collects the field errors of every section. An empty or
// whitespace-only themes_dir is also rejected.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.ThemesDir) == "" {
		errs = append(errs, fmt.Errorf("%w: themes_dir must not be empty", ErrInvalidConfig))
	}
	if valid, fieldErrs := c.Package.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Limits.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap exposes ErrInvalidConfig and every field error to errors.Is/As.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ThemesDir: DefaultThemesDir,
		Package: PackageConfig{
			Exclude: []string{},
		},
		Limits: LimitsConfig{
			MaxFileSize:         validator.DefaultMaxFileSize,
			MaxCompressionRatio: packager.DefaultMaxCompressionRatio,
			MaxTotalSize:        packager.DefaultMaxTotalSize,
		},
		UI: UIConfig{
			Verbose:     false,
			LogLevel:    LogLevelInfo,
			ColorScheme: ColorSchemeAuto,
		},
	}
}
