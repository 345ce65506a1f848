// SPDX-License-Identifier: MPL-2.0

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := New(&buf, Prefix, "warn")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("hidden")
	logger.Warn("skipping unreadable package", "file", "themes/broken-1.0.0.zip")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message written at warn level:\n%s", out)
	}
	for _, want := range []string{"themepack", "skipping unreadable package", "themes/broken-1.0.0.zip"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	if _, err := New(&bytes.Buffer{}, Prefix, "loud"); err == nil {
		t.Error("New() with an unknown level should fail")
	}
}
