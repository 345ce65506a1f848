// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseTheme(t *testing.T) {
	t.Parallel()

	t.Run("valid manifest keeps extra keys", func(t *testing.T) {
		t.Parallel()

		theme, err := ParseTheme([]byte(`{"name":"aurora","version":"1.2.0","author":"jo"}`))
		if err != nil {
			t.Fatalf("ParseTheme() failed: %v", err)
		}
		if theme.Name != "aurora" || theme.Version != "1.2.0" {
			t.Errorf("ParseTheme() = %+v, want name aurora version 1.2.0", theme)
		}
		if theme.Extra["author"] != "jo" {
			t.Errorf("Extra[author] = %v, want jo", theme.Extra["author"])
		}
		if _, ok := theme.Extra["name"]; ok {
			t.Error("Extra should not contain required fields")
		}
	})

	tests := []struct {
		name        string
		input       string
		wantErrs    int
		wantMissing []string
		wantInvalid []string
	}{
		{name: "malformed JSON", input: `{"name":`, wantErrs: 1},
		{name: "array root", input: `[1,2]`, wantErrs: 1},
		{name: "missing version", input: `{"name":"x"}`, wantErrs: 1, wantMissing: []string{"version"}},
		{name: "missing both", input: `{}`, wantErrs: 2, wantMissing: []string{"name", "version"}},
		{name: "numeric version", input: `{"name":"x","version":1}`, wantErrs: 1, wantInvalid: []string{"version"}},
		{name: "empty name", input: `{"name":"","version":"1"}`, wantErrs: 1, wantInvalid: []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseTheme([]byte(tt.input))
			if !errors.Is(err, ErrInvalidManifest) {
				t.Fatalf("ParseTheme() error = %v, want ErrInvalidManifest", err)
			}
			var manifestErr *InvalidManifestError
			if !errors.As(err, &manifestErr) {
				t.Fatalf("expected *InvalidManifestError, got %T", err)
			}
			if len(manifestErr.FieldErrors) != tt.wantErrs {
				t.Fatalf("got %d field errors, want %d: %v", len(manifestErr.FieldErrors), tt.wantErrs, manifestErr.FieldErrors)
			}

			var missing, invalid []string
			for _, fe := range manifestErr.FieldErrors {
				var me *MissingFieldError
				var ie *InvalidFieldError
				switch {
				case errors.As(fe, &me):
					missing = append(missing, me.Field)
				case errors.As(fe, &ie):
					invalid = append(invalid, ie.Field)
				}
			}
			if strings.Join(missing, ",") != strings.Join(tt.wantMissing, ",") {
				t.Errorf("missing fields = %v, want %v", missing, tt.wantMissing)
			}
			if strings.Join(invalid, ",") != strings.Join(tt.wantInvalid, ",") {
				t.Errorf("invalid fields = %v, want %v", invalid, tt.wantInvalid)
			}
		})
	}
}

func TestArchiveEncodeIsCanonical(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 3600))
	a := NewArchive("aurora", "1.0.0", created, map[string]any{"zeta": 1, "alpha": "a"})

	got, err := a.Encode()
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	want := `{"created_at":"2026-03-04T04:06:07Z","metadata":{"alpha":"a","zeta":1},"name":"aurora","version":"1.0.0"}`
	if string(got) != want {
		t.Errorf("Encode() = %s\nwant %s", got, want)
	}
}

func TestNewArchiveNilMetadata(t *testing.T) {
	t.Parallel()

	got, err := NewArchive("a", "1", time.Unix(0, 0), nil).Encode()
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	if !strings.Contains(string(got), `"metadata":{}`) {
		t.Errorf("Encode() = %s, want empty metadata object", got)
	}
}

func TestDecodeArchive(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		data, err := NewArchive("aurora", "2.0.0", time.Unix(0, 0), map[string]any{"k": "v"}).Encode()
		if err != nil {
			t.Fatal(err)
		}
		a, err := DecodeArchive(data)
		if err != nil {
			t.Fatalf("DecodeArchive() failed: %v", err)
		}
		if a.Name != "aurora" || a.Version != "2.0.0" || a.CreatedAt != "1970-01-01T00:00:00Z" {
			t.Errorf("DecodeArchive() = %+v", a)
		}
		if a.Metadata["k"] != "v" {
			t.Errorf("Metadata[k] = %v, want v", a.Metadata["k"])
		}
	})

	t.Run("metadata defaults to empty", func(t *testing.T) {
		t.Parallel()

		a, err := DecodeArchive([]byte(`{"name":"a","version":"1"}`))
		if err != nil {
			t.Fatalf("DecodeArchive() failed: %v", err)
		}
		if a.Metadata == nil {
			t.Error("Metadata should not be nil")
		}
	})

	for name, input := range map[string]string{
		"garbage":         `not json`,
		"missing version": `{"name":"a"}`,
		"empty name":      `{"name":"","version":"1"}`,
		"metadata array":  `{"name":"a","version":"1","metadata":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := DecodeArchive([]byte(input)); !errors.Is(err, ErrMalformedArchiveManifest) {
				t.Errorf("DecodeArchive(%q) error = %v, want ErrMalformedArchiveManifest", input, err)
			}
		})
	}
}
