// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"archive/zip"
	"errors"
	"path/filepath"
	"testing"
)

func entry(name string, compressed, uncompressed uint64) *zip.File {
	return &zip.File{FileHeader: zip.FileHeader{
		Name:               name,
		CompressedSize64:   compressed,
		UncompressedSize64: uncompressed,
	}}
}

func TestCheckArchiveSafety(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		files   []*zip.File
		limits  Limits
		wantErr bool
	}{
		{"ratio 200 rejected", []*zip.File{entry("big.txt", 50_000, 10_000_000)}, Limits{}, true},
		{"ratio 50 accepted", []*zip.File{entry("ok.txt", 50_000, 2_500_000)}, Limits{}, false},
		{"ratio exactly 100 accepted", []*zip.File{entry("edge.txt", 1_000, 100_000)}, Limits{}, false},
		{"empty compressed data with content", []*zip.File{entry("zero.txt", 0, 10)}, Limits{}, true},
		{"empty entry", []*zip.File{entry("empty.txt", 0, 0)}, Limits{}, false},
		{"parent traversal", []*zip.File{entry("../../evil.txt", 5, 5)}, Limits{}, true},
		{"absolute path", []*zip.File{entry("/etc/passwd", 5, 5)}, Limits{}, true},
		{
			"running total over limit",
			[]*zip.File{entry("a.css", 60, 60), entry("b.css", 60, 60)},
			Limits{MaxTotalSize: 100},
			true,
		},
		{
			"custom ratio",
			[]*zip.File{entry("a.css", 10, 300)},
			Limits{MaxCompressionRatio: 20},
			true,
		},
		{"default total exceeded", []*zip.File{
			entry("a.bin", 5_000_000, 300*1024*1024),
			entry("b.bin", 5_000_000, 300*1024*1024),
		}, Limits{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckArchiveSafety(tt.files, tt.limits)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckArchiveSafety() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrArchiveSecurityFailed) {
				t.Errorf("error does not wrap ErrArchiveSecurityFailed: %v", err)
			}
			var safetyErr *ArchiveSafetyError
			if !errors.As(err, &safetyErr) || safetyErr.Entry == "" {
				t.Errorf("expected *ArchiveSafetyError with entry, got %T: %v", err, err)
			}
		})
	}
}

func TestDestinationPath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	got, err := destinationPath(root, "css/site.css")
	if err != nil {
		t.Fatalf("destinationPath() failed: %v", err)
	}
	if want := filepath.Join(root, "css", "site.css"); got != want {
		t.Errorf("destinationPath() = %q, want %q", got, want)
	}

	if _, err := destinationPath(root, "../outside.css"); !errors.Is(err, ErrArchiveSecurityFailed) {
		t.Errorf("destinationPath() error = %v, want ErrArchiveSecurityFailed", err)
	}
}
