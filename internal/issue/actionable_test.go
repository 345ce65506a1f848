// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "list packages"},
			expected: "failed to list packages",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "unpack package", Resource: "themes/aurora-1.0.0.zip"},
			expected: "failed to unpack package: themes/aurora-1.0.0.zip",
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "load config", Cause: errors.New("expected '}', found EOF")},
			expected: "failed to load config: expected '}', found EOF",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "create package",
				Resource:  "./aurora",
				Cause:     errors.New("theme source not found"),
			},
			expected: "failed to create package: ./aurora: theme source not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("integrity hash mismatch")
	err := &ActionableError{Operation: "verify package", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	if (&ActionableError{Operation: "verify package"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions are bulleted",
			err: &ActionableError{
				Operation:   "create package",
				Resource:    "./aurora",
				Suggestions: []string{"Run 'themepack validate ./aurora'", "Check file permissions"},
			},
			contains: []string{
				"failed to create package: ./aurora",
				"• Run 'themepack validate ./aurora'",
				"• Check file permissions",
			},
		},
		{
			name:     "no chain when not verbose",
			err:      &ActionableError{Operation: "load config", Cause: errors.New("syntax error")},
			contains: []string{"failed to load config: syntax error"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "nested chain when verbose",
			err: &ActionableError{
				Operation: "unpack package",
				Cause: &ActionableError{
					Operation: "verify package",
					Cause:     errors.New("hash mismatch"),
				},
			},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. failed to verify package: hash mismatch",
				"2. hash mismatch",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("themes").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return a nil interface")
	}

	cause := errors.New("permission denied")
	ae := NewErrorContext().
		WithOperation("write package").
		WithResource("themes/aurora-1.0.0.zip").
		WithSuggestion("Check permissions of the themes directory").
		WithSuggestions("Use --themes-dir", "Run as the directory owner").
		Wrap(cause).
		Build()
	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "write package" || ae.Resource != "themes/aurora-1.0.0.zip" {
		t.Errorf("unexpected context: %+v", ae)
	}
	if !ae.HasSuggestions() || len(ae.Suggestions) != 3 {
		t.Errorf("Suggestions = %v, want 3", ae.Suggestions)
	}
	if !errors.Is(ae, cause) {
		t.Error("built error should wrap the cause")
	}

	if _, ok := errors.AsType[*ActionableError](NewErrorContext().WithOperation("scan theme").BuildError()); !ok {
		t.Error("BuildError() should return *ActionableError")
	}
}

func TestErrorContext_BuildDoesNotAlias(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("scan theme").WithSuggestion("first")
	first := ctx.Build()
	second := ctx.WithSuggestion("second").Build()

	if len(first.Suggestions) != 1 {
		t.Errorf("first build changed after reuse: %v", first.Suggestions)
	}
	if len(second.Suggestions) != 2 {
		t.Errorf("second build Suggestions = %v, want 2", second.Suggestions)
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "list packages", "themes") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	cause := errors.New("boom")
	ae := WrapWithContext(cause, "list packages", "themes")
	if ae.Operation != "list packages" || ae.Resource != "themes" || !errors.Is(ae, cause) {
		t.Errorf("unexpected wrap: %+v", ae)
	}
}
