// SPDX-License-Identifier: MPL-2.0

package scanner

import (
	"archive/zip"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mholt/archiver"
)

var errUnsafeEntry = errors.New("unsafe archive entry")

// ScanArchiveEntries inspects the entry names of the zip archive at path
// without extracting anything. It returns false at the first entry that is
// absolute, contains a ".." segment or has a suspicious extension, and false
// when the archive cannot be opened or walked.
func (s *Scanner) ScanArchiveEntries(path string) (safe bool) {
	s.logger.Info("scanning archive entries", "archive", path)

	defer func() {
		// archiver v3 closes a nil reader when an entry uses a compression
		// method archive/zip cannot open. Such an archive is reported unsafe.
		if r := recover(); r != nil {
			s.logger.Error("error scanning archive", "archive", path, "error", fmt.Sprint(r))
			safe = false
		}
	}()

	var rejected string
	err := archiver.NewZip().Walk(path, func(f archiver.File) error {
		name := headerName(f)
		if reason := UnsafeEntryReason(name); reason != "" {
			rejected = name
			s.logger.Error("unsafe entry in archive", "archive", path, "entry", name, "reason", reason)
			return errUnsafeEntry
		}
		return nil
	})
	switch {
	case rejected != "":
		return false
	case err != nil:
		s.logger.Error("error scanning archive", "archive", path, "error", err)
		return false
	}
	return true
}

// UnsafeEntryReason returns why an archive entry name must be rejected, or
// an empty string when the name is acceptable.
func UnsafeEntryReason(name string) string {
	switch {
	case IsAbsoluteEntry(name):
		return "absolute path"
	case HasParentSegment(name):
		return "path traversal"
	case IsSuspiciousExtension(extension(name)):
		return "suspicious extension"
	}
	return ""
}

// HasParentSegment reports whether a slash or backslash separated entry name
// contains a ".." element.
func HasParentSegment(name string) bool {
	for _, part := range strings.FieldsFunc(name, isSeparator) {
		if part == ".." {
			return true
		}
	}
	return false
}

// IsAbsoluteEntry reports whether an entry name is rooted or carries a
// volume name such as "C:".
func IsAbsoluteEntry(name string) bool {
	if name == "" {
		return false
	}
	if isSeparator(rune(name[0])) {
		return true
	}
	if filepath.VolumeName(name) != "" {
		return true
	}
	return len(name) >= 2 && name[1] == ':' && isDriveLetter(name[0])
}

func isSeparator(r rune) bool { return r == '/' || r == '\\' }

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func headerName(f archiver.File) string {
	switch h := f.Header.(type) {
	case zip.FileHeader:
		return h.Name
	case *zip.FileHeader:
		return h.Name
	}
	return f.Name()
}
