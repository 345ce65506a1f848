// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"errors"
	"fmt"
	"strings"

	"github.com/3000studios/themepack/pkg/scanner"
	"github.com/3000studios/themepack/pkg/validator"
)

var (
	// ErrSourceNotFound is returned when the theme source directory is missing.
	ErrSourceNotFound = errors.New("source directory not found")
	// ErrStructureInvalid is the sentinel error wrapped by StructureInvalidError.
	ErrStructureInvalid = errors.New("theme structure validation failed")
	// ErrSecurityScanFailed is the sentinel error wrapped by SecurityScanError.
	ErrSecurityScanFailed = errors.New("security scan failed")
	// ErrIntegrityVerificationFailed is the sentinel error wrapped by IntegrityError.
	ErrIntegrityVerificationFailed = errors.New("integrity verification failed")
	// ErrArchiveSecurityFailed is the sentinel error wrapped by ArchiveSafetyError.
	ErrArchiveSecurityFailed = errors.New("potentially unsafe archive")
	// ErrExtractedThemeInvalid is returned when an extracted package does not validate.
	ErrExtractedThemeInvalid = errors.New("extracted theme validation failed")
	// ErrManifestMalformed marks a package whose theme.json cannot be read.
	// List recovers from it locally and skips the package.
	ErrManifestMalformed = errors.New("malformed package manifest")
	// ErrPackageNotFound is returned when the package file does not exist.
	ErrPackageNotFound = errors.New("package not found")
	// ErrInvalidPackageName is returned when a name or version cannot form a
	// package file name.
	ErrInvalidPackageName = errors.New("invalid package name")
)

type (
	// StructureInvalidError carries the validation report of a rejected theme.
	StructureInvalidError struct {
		Dir    string
		Report validator.Report
	}

	// SecurityScanError carries the issues that blocked an operation. Issues
	// is empty when the archive entry scan rejected a package.
	SecurityScanError struct {
		Path   string
		Issues []scanner.Issue
	}

	// IntegrityError describes a digest mismatch or a missing sidecar.
	IntegrityError struct {
		Package  string
		Expected string
		Actual   string
		Reason   string
	}

	// ArchiveSafetyError identifies the entry and limit that made an archive
	// unsafe to extract.
	ArchiveSafetyError struct {
		Entry  string
		Reason string
	}
)

// Error implements the error interface for StructureInvalidError.
func (e *StructureInvalidError) Error() string {
	if len(e.Report.Errors) == 0 {
		return fmt.Sprintf("%v: %s", ErrStructureInvalid, e.Dir)
	}
	return fmt.Sprintf("%v: %s: %s", ErrStructureInvalid, e.Dir, strings.Join(e.Report.Errors, "; "))
}

// Unwrap returns ErrStructureInvalid for errors.Is() compatibility.
func (e *StructureInvalidError) Unwrap() error { return ErrStructureInvalid }

// Error implements the error interface for SecurityScanError.
func (e *SecurityScanError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%v: %s", ErrSecurityScanFailed, e.Path)
	}
	return fmt.Sprintf("%v: %s: %d issue(s)", ErrSecurityScanFailed, e.Path, len(e.Issues))
}

// Unwrap returns ErrSecurityScanFailed for errors.Is() compatibility.
func (e *SecurityScanError) Unwrap() error { return ErrSecurityScanFailed }

// Error implements the error interface for IntegrityError.
func (e *IntegrityError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v: %s: %s", ErrIntegrityVerificationFailed, e.Package, e.Reason)
	}
	return fmt.Sprintf("%v: %s: expected %s, got %s", ErrIntegrityVerificationFailed, e.Package, e.Expected, e.Actual)
}

// Unwrap returns ErrIntegrityVerificationFailed for errors.Is() compatibility.
func (e *IntegrityError) Unwrap() error { return ErrIntegrityVerificationFailed }

// Error implements the error interface for ArchiveSafetyError.
func (e *ArchiveSafetyError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("%v: %s", ErrArchiveSecurityFailed, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrArchiveSecurityFailed, e.Entry, e.Reason)
}

// Unwrap returns ErrArchiveSecurityFailed for errors.Is() compatibility.
func (e *ArchiveSafetyError) Unwrap() error { return ErrArchiveSecurityFailed }
