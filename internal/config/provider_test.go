// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"testing"
)

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      LoadOptions
		wantCount int
	}{
		{"all empty", LoadOptions{}, 0},
		{"valid paths", LoadOptions{ConfigFilePath: "/tmp/config.cue", ConfigDirPath: "/tmp/themepack"}, 0},
		{"whitespace file path", LoadOptions{ConfigFilePath: "   "}, 1},
		{"whitespace dir path", LoadOptions{ConfigDirPath: "\t"}, 1},
		{"both invalid", LoadOptions{ConfigFilePath: " ", ConfigDirPath: "\n"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.wantCount == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidLoadOptions) {
				t.Fatalf("error should wrap ErrInvalidLoadOptions, got %v", err)
			}
			var loadErr *InvalidLoadOptionsError
			if !errors.As(err, &loadErr) {
				t.Fatalf("error should be *InvalidLoadOptionsError, got %T", err)
			}
			if len(loadErr.FieldErrors) != tt.wantCount {
				t.Errorf("FieldErrors = %d, want %d", len(loadErr.FieldErrors), tt.wantCount)
			}
		})
	}
}

func TestInvalidLoadOptionsError_Error(t *testing.T) {
	t.Parallel()

	single := &InvalidLoadOptionsError{FieldErrors: []error{errors.New("test error")}}
	if got := single.Error(); got != "invalid load options: test error" {
		t.Errorf("Error() = %q", got)
	}
	multiple := &InvalidLoadOptionsError{FieldErrors: []error{errors.New("a"), errors.New("b")}}
	if got := multiple.Error(); got != "invalid load options: 2 field errors" {
		t.Errorf("Error() = %q", got)
	}
}

func TestProvider_Load(t *testing.T) {
	t.Parallel()

	cfg, _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ThemesDir == "" {
		t.Error("Load() should fill defaults")
	}

	if _, _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: "  "}); !errors.Is(err, ErrInvalidLoadOptions) {
		t.Errorf("Load() with whitespace dir = %v, want ErrInvalidLoadOptions", err)
	}
}

func TestProvider_LoadCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := NewProvider().Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() with canceled context = %v, want context.Canceled", err)
	}
}
