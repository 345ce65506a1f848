// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

type (
	// ZipEntry describes one file written by MustWriteZip.
	ZipEntry struct {
		Name string
		Body string
	}
)

// MustWriteTheme creates dir/folder with a theme.json carrying name and
// version, plus the given files keyed by slash-separated relative path.
// It returns the theme directory.
func MustWriteTheme(t testing.TB, dir, folder, name, version string, files map[string]string) string {
	t.Helper()
	themeDir := filepath.Join(dir, folder)
	MustMkdirAll(t, themeDir, 0o755)
	manifest := fmt.Sprintf(`{"name": %q, "version": %q}`, name, version)
	MustWriteFile(t, themeDir, "theme.json", []byte(manifest))

	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, rel := range keys {
		MustWriteFile(t, themeDir, rel, []byte(files[rel]))
	}
	return themeDir
}

// MustWriteZip writes a deflated zip archive at path holding entries in order.
// Entry names are written verbatim, so unsafe names can be produced.
func MustWriteZip(t testing.TB, path string, entries ...ZipEntry) string {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, createErr := zw.Create(e.Name)
		if createErr != nil {
			t.Fatalf("failed to add %s: %v", e.Name, createErr)
		}
		if _, writeErr := w.Write([]byte(e.Body)); writeErr != nil {
			t.Fatalf("failed to write %s: %v", e.Name, writeErr)
		}
	}
	MustClose(t, zw)
	MustClose(t, f)
	return path
}
