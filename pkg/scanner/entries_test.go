// SPDX-License-Identifier: MPL-2.0

package scanner

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/3000studios/themepack/internal/testutil"
)

func TestScanArchiveEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry string
		safe  bool
	}{
		{"plain asset", "css/style.css", true},
		{"dotted file name", "js/app..min.js", true},
		{"parent traversal", "../../evil.txt", false},
		{"nested traversal", "css/../../evil.css", false},
		{"backslash traversal", `css\..\..\evil.css`, false},
		{"absolute", "/etc/passwd", false},
		{"drive letter", "C:/Windows/evil.txt", false},
		{"suspicious extension", "bin/tool.dll", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := testutil.MustWriteZip(t, filepath.Join(t.TempDir(), "p.zip"),
				testutil.ZipEntry{Name: "theme.json", Body: `{"name":"a","version":"1"}`},
				testutil.ZipEntry{Name: tt.entry, Body: "content"},
			)
			if got := New().ScanArchiveEntries(path); got != tt.safe {
				t.Errorf("ScanArchiveEntries() with %q = %v, want %v", tt.entry, got, tt.safe)
			}
		})
	}

	t.Run("not a zip", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.zip")
		if err := os.WriteFile(path, []byte("definitely not a zip"), 0o644); err != nil {
			t.Fatal(err)
		}
		if New().ScanArchiveEntries(path) {
			t.Error("ScanArchiveEntries() = true for corrupt archive")
		}
	})

	t.Run("unsupported compression method", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "method.zip")
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		zw := zip.NewWriter(f)
		w, err := zw.CreateRaw(&zip.FileHeader{
			Name:               "css/style.css",
			Method:             99,
			CompressedSize64:   4,
			UncompressedSize64: 4,
		})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte("body")); err != nil {
			t.Fatal(err)
		}
		testutil.MustClose(t, zw)
		testutil.MustClose(t, f)

		if New().ScanArchiveEntries(path) {
			t.Error("ScanArchiveEntries() = true for an entry that cannot be opened")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		if New().ScanArchiveEntries(filepath.Join(t.TempDir(), "none.zip")) {
			t.Error("ScanArchiveEntries() = true for missing archive")
		}
	})
}

func TestUnsafeEntryReason(t *testing.T) {
	t.Parallel()

	if got := UnsafeEntryReason("../x.css"); got != "path traversal" {
		t.Errorf("UnsafeEntryReason() = %q, want path traversal", got)
	}
	if got := UnsafeEntryReason(`\server\share.css`); got != "absolute path" {
		t.Errorf("UnsafeEntryReason() = %q, want absolute path", got)
	}
	if got := UnsafeEntryReason("a/b.css"); got != "" {
		t.Errorf("UnsafeEntryReason() = %q, want empty", got)
	}
}
