// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// UnpackOptions contains options for extracting a theme package.
type UnpackOptions struct {
	// PackagePath is the archive to extract.
	PackagePath string
	// SkipVerify disables the sidecar digest check.
	SkipVerify bool
}

// Unpack extracts a package into the unpacked area of the themes directory
// and returns the extraction directory, named after the archive without its
// extension. An existing extraction of the same package is replaced. Nothing
// is written until the digest, entry names and size limits have been checked,
// and the extraction is removed again if it does not validate.
func (p *Packager) Unpack(opts UnpackOptions) (extractDir string, err error) {
	pkg := opts.PackagePath
	p.logger.Info("unpacking theme", "package", pkg)

	info, err := os.Stat(pkg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrPackageNotFound, pkg)
		}
		return "", fmt.Errorf("failed to stat package: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrPackageNotFound, pkg)
	}

	if !opts.SkipVerify {
		if err := p.Verify(pkg); err != nil {
			return "", err
		}
	}

	if !p.scanner.ScanArchiveEntries(pkg) {
		return "", &SecurityScanError{Path: pkg}
	}

	zipReader, err := zip.OpenReader(pkg)
	if err != nil {
		return "", fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if closeErr := zipReader.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := CheckArchiveSafety(zipReader.File, p.limits); err != nil {
		p.logger.Error("unsafe archive", "package", pkg, "error", err)
		return "", err
	}

	dest := filepath.Join(p.unpackedDir, extractionName(pkg))
	if err := os.RemoveAll(dest); err != nil {
		return "", fmt.Errorf("failed to remove previous extraction: %w", err)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", fmt.Errorf("failed to create extraction directory: %w", err)
	}

	if err := p.extractAll(zipReader.File, dest); err != nil {
		_ = os.RemoveAll(dest) // best-effort cleanup
		return "", err
	}

	if !p.validator.ValidateStructure(dest) {
		_ = os.RemoveAll(dest) // best-effort cleanup
		return "", fmt.Errorf("%w: %s", ErrExtractedThemeInvalid, pkg)
	}

	p.logger.Info("theme unpacked successfully", "dir", dest)
	return dest, nil
}

func (p *Packager) extractAll(files []*zip.File, dest string) error {
	for _, file := range files {
		destPath, err := destinationPath(dest, file.Name)
		if err != nil {
			return err
		}

		mode := file.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			continue
		case !mode.IsRegular():
			p.logger.Warn("skipping non-regular archive entry", "entry", file.Name, "mode", mode.String())
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
		if err := extractFile(file, destPath); err != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
	}
	return nil
}

// extractFile copies one entry to destPath. The copy stops one byte past the
// declared uncompressed size so a header that understates its data is caught.
func extractFile(file *zip.File, destPath string) (err error) {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	perm := file.Mode().Perm()&0o755 | 0o600
	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := destFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	limit := int64(file.UncompressedSize64)
	n, err := io.Copy(destFile, io.LimitReader(rc, limit+1))
	if err != nil {
		return err
	}
	if n > limit {
		return &ArchiveSafetyError{Entry: file.Name, Reason: "entry larger than its declared size"}
	}
	return nil
}

// extractionName is the package file name without its extension. A name
// that would not form a child of the unpacked directory, such as the stem
// of ".zip", keeps the full base name.
func extractionName(pkg string) string {
	base := filepath.Base(pkg)
	switch stem := strings.TrimSuffix(base, filepath.Ext(base)); stem {
	case "", ".", "..":
		return base
	default:
		return stem
	}
}
