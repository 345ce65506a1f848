// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/3000studios/themepack/internal/issue"
	"github.com/3000studios/themepack/internal/testutil"
)

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup only applies on linux")
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(xdg, AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestLoad_DefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, source, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if source != "" {
		t.Errorf("source = %q, want empty", source)
	}

	defaults := DefaultConfig()
	if cfg.ThemesDir != defaults.ThemesDir {
		t.Errorf("ThemesDir = %q, want %q", cfg.ThemesDir, defaults.ThemesDir)
	}
	if cfg.Limits != defaults.Limits {
		t.Errorf("Limits = %+v, want %+v", cfg.Limits, defaults.Limits)
	}
	if cfg.UI != defaults.UI {
		t.Errorf("UI = %+v, want %+v", cfg.UI, defaults.UI)
	}
}

func TestLoad_ConfigDirFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := testutil.MustWriteFile(t, dir, "config.cue", []byte(`
themes_dir: "/srv/themes"
package: exclude: ["**/*.psd", "drafts/**"]
limits: max_compression_ratio: 250.5
ui: log_level: "debug"
`))

	cfg, source, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
	if cfg.ThemesDir != "/srv/themes" {
		t.Errorf("ThemesDir = %q", cfg.ThemesDir)
	}
	if strings.Join(cfg.Package.Exclude, ",") != "**/*.psd,drafts/**" {
		t.Errorf("Exclude = %v", cfg.Package.Exclude)
	}
	if cfg.Limits.MaxCompressionRatio != 250.5 {
		t.Errorf("MaxCompressionRatio = %v", cfg.Limits.MaxCompressionRatio)
	}
	if cfg.Limits.MaxTotalSize != DefaultConfig().Limits.MaxTotalSize {
		t.Errorf("unset MaxTotalSize should keep its default, got %d", cfg.Limits.MaxTotalSize)
	}
	if cfg.UI.LogLevel != LogLevelDebug {
		t.Errorf("LogLevel = %q", cfg.UI.LogLevel)
	}
}

func TestLoad_CustomPath(t *testing.T) {
	t.Parallel()

	path := testutil.MustWriteFile(t, t.TempDir(), "custom.cue", []byte(`limits: max_file_size: 2048`))

	cfg, source, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: path,
		ConfigDirPath:  t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
	if cfg.Limits.MaxFileSize != 2048 {
		t.Errorf("MaxFileSize = %d, want 2048", cfg.Limits.MaxFileSize)
	}
}

func TestLoad_CustomPathNotFound(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.cue")
	_, _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: missing})
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}

	ae, ok := errors.AsType[*issue.ActionableError](err)
	if !ok {
		t.Fatalf("error should be *issue.ActionableError, got %T", err)
	}
	if ae.Resource != missing {
		t.Errorf("Resource = %q, want %q", ae.Resource, missing)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions")
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{"syntax error", `themes_dir: "unterminated`, "config.cue"},
		{"schema violation", `ui: log_level: "trace"`, "log_level"},
		{"unknown field", `container_engine: "docker"`, "container_engine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			testutil.MustWriteFile(t, dir, "config.cue", []byte(tt.content))

			_, _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("expected an error")
			}
			if _, ok := errors.AsType[*issue.ActionableError](err); !ok {
				t.Errorf("error should be *issue.ActionableError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should mention %q", err, tt.contains)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, "config.cue", []byte(`themes_dir: "from-file"`))

	t.Setenv("THEMEPACK_THEMES_DIR", "from-env")
	t.Setenv("THEMEPACK_LIMITS_MAX_TOTAL_SIZE", "1048576")
	t.Setenv("THEMEPACK_UI_VERBOSE", "true")
	t.Setenv("THEMEPACK_PACKAGE_EXCLUDE", "*.psd,*.ai")

	cfg, _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ThemesDir != "from-env" {
		t.Errorf("ThemesDir = %q, want from-env", cfg.ThemesDir)
	}
	if cfg.Limits.MaxTotalSize != 1<<20 {
		t.Errorf("MaxTotalSize = %d", cfg.Limits.MaxTotalSize)
	}
	if !cfg.UI.Verbose {
		t.Error("Verbose should be true")
	}
	if strings.Join(cfg.Package.Exclude, ",") != "*.psd,*.ai" {
		t.Errorf("Exclude = %v", cfg.Package.Exclude)
	}
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Setenv("THEMEPACK_UI_LOG_LEVEL", "loud")

	_, _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Fatalf("error = %v, want ErrInvalidLogLevel", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should also wrap ErrInvalidConfig: %v", err)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "themepack")

	path, err := WriteDefaultConfig(dir, false)
	if err != nil {
		t.Fatalf("WriteDefaultConfig() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}

	// The generated file must load back to the defaults.
	cfg, source, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loading generated config: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
	if cfg.Limits != DefaultConfig().Limits || cfg.UI != DefaultConfig().UI {
		t.Errorf("generated config does not round trip: %+v", cfg)
	}

	if _, err := WriteDefaultConfig(dir, false); !errors.Is(err, ErrConfigExists) {
		t.Errorf("second write = %v, want ErrConfigExists", err)
	}
	if _, err := WriteDefaultConfig(dir, true); err != nil {
		t.Errorf("overwrite = %v", err)
	}
}

func TestGenerateCUE(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Package.Exclude = []string{"**/*.psd", `a"b`}
	out := GenerateCUE(cfg)

	for _, want := range []string{
		`themes_dir: "themes"`,
		`exclude: ["**/*.psd", "a\"b"]`,
		"max_compression_ratio: 100\n",
		`log_level:    "info"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCUE() missing %q\n%s", want, out)
		}
	}
}
