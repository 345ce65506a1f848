// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"archive/zip"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/3000studios/themepack/pkg/scanner"
)

const (
	// DefaultMaxCompressionRatio is the largest uncompressed/compressed size
	// ratio accepted for a single entry.
	DefaultMaxCompressionRatio = 100.0
	// DefaultMaxTotalSize caps the summed uncompressed size of an archive (500 MiB).
	DefaultMaxTotalSize uint64 = 500 * 1024 * 1024
)

// Limits bounds what Unpack is willing to extract.
type Limits struct {
	MaxCompressionRatio float64
	MaxTotalSize        uint64
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxCompressionRatio: DefaultMaxCompressionRatio,
		MaxTotalSize:        DefaultMaxTotalSize,
	}
}

func (l Limits) withDefaults() Limits {
	if l.MaxCompressionRatio <= 0 {
		l.MaxCompressionRatio = DefaultMaxCompressionRatio
	}
	if l.MaxTotalSize == 0 {
		l.MaxTotalSize = DefaultMaxTotalSize
	}
	return l
}

// CheckArchiveSafety inspects the central directory of an open archive and
// returns an *ArchiveSafetyError for the first entry that is absolute,
// escapes the archive root, expands beyond the ratio limit, or pushes the
// running uncompressed total over the size limit. No entry is decompressed.
func CheckArchiveSafety(files []*zip.File, limits Limits) error {
	limits = limits.withDefaults()

	var total uint64
	for _, f := range files {
		name := f.Name
		if scanner.IsAbsoluteEntry(name) || scanner.HasParentSegment(name) {
			return &ArchiveSafetyError{Entry: name, Reason: "path traversal"}
		}

		compressed := f.CompressedSize64
		uncompressed := f.UncompressedSize64
		switch {
		case compressed == 0 && uncompressed > 0:
			return &ArchiveSafetyError{Entry: name, Reason: "suspicious compression ratio (empty compressed data)"}
		case compressed > 0:
			if ratio := float64(uncompressed) / float64(compressed); ratio > limits.MaxCompressionRatio {
				return &ArchiveSafetyError{
					Entry:  name,
					Reason: fmt.Sprintf("suspicious compression ratio %.1f exceeds %.1f", ratio, limits.MaxCompressionRatio),
				}
			}
		}

		total += uncompressed
		if total > limits.MaxTotalSize {
			return &ArchiveSafetyError{
				Entry:  name,
				Reason: fmt.Sprintf("total uncompressed size exceeds %d bytes", limits.MaxTotalSize),
			}
		}
	}
	return nil
}

// destinationPath joins an entry name onto root and rejects results outside
// root.
func destinationPath(root, name string) (string, error) {
	dest := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", &ArchiveSafetyError{Entry: name, Reason: "entry escapes destination"}
	}
	return dest, nil
}
