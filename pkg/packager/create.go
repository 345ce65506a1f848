// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/3000studios/themepack/pkg/manifest"
)

// DefaultVersion is used when CreateOptions.Version is empty.
const DefaultVersion = "1.0.0"

// CreateOptions contains options for creating a theme package.
type CreateOptions struct {
	// SourceDir is the theme directory to package.
	SourceDir string
	// Name is the theme name recorded in the manifest and file name.
	Name string
	// Version defaults to DefaultVersion.
	Version string
	// Metadata is stored verbatim under the manifest's metadata key.
	Metadata map[string]any
}

// Create validates and scans opts.SourceDir, then writes the package archive
// and its digest sidecar into the themes directory. It returns the archive
// path. On failure no archive or sidecar is left behind.
func (p *Packager) Create(opts CreateOptions) (archivePath string, err error) {
	version := opts.Version
	if version == "" {
		version = DefaultVersion
	}
	if err := checkNamePart("name", opts.Name); err != nil {
		return "", err
	}
	if err := checkNamePart("version", version); err != nil {
		return "", err
	}

	p.logger.Info("creating theme package", "name", opts.Name, "version", version, "source", opts.SourceDir)

	info, err := os.Stat(opts.SourceDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, opts.SourceDir)
	}

	if report := p.validator.Check(opts.SourceDir); !report.Valid {
		return "", &StructureInvalidError{Dir: opts.SourceDir, Report: report}
	}

	issues, err := p.scanner.ScanDirectory(opts.SourceDir)
	if err != nil {
		return "", fmt.Errorf("failed to scan source: %w", err)
	}
	if len(issues) > 0 {
		for _, issue := range issues {
			p.logger.Error("security issue", "issue", issue.String())
		}
		return "", &SecurityScanError{Path: opts.SourceDir, Issues: issues}
	}

	metadata, err := NormalizeMetadata(opts.Metadata)
	if err != nil {
		return "", err
	}
	manifestData, err := manifest.NewArchive(opts.Name, version, p.now(), metadata).Encode()
	if err != nil {
		return "", err
	}

	archivePath = p.PackagePath(opts.Name, version)
	defer func() {
		if err != nil {
			// Best-effort cleanup
			_ = os.Remove(archivePath)
			_ = os.Remove(SidecarPath(archivePath))
		}
	}()

	count, err := p.writeArchive(archivePath, opts.SourceDir, manifestData)
	if err != nil {
		return "", fmt.Errorf("failed to archive theme: %w", err)
	}

	digest, err := writeSidecar(archivePath)
	if err != nil {
		return "", err
	}

	p.logger.Info("theme package created", "package", archivePath, "files", count, "sha256", digest)
	return archivePath, nil
}

// writeArchive writes manifestData as the first entry followed by every
// packaged file of srcDir. It returns the number of asset files written.
func (p *Packager) writeArchive(archivePath, srcDir string, manifestData []byte) (count int, err error) {
	absArchive, err := filepath.Abs(archivePath)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve archive path: %w", err)
	}

	zipFile, err := os.Create(archivePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	zipWriter := zip.NewWriter(zipFile)
	defer func() {
		if closeErr := zipWriter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w, err := zipWriter.CreateHeader(&zip.FileHeader{
		Name:     manifest.FileName,
		Method:   zip.Deflate,
		Modified: p.now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create manifest entry: %w", err)
	}
	if _, err = w.Write(manifestData); err != nil {
		return 0, fmt.Errorf("failed to write manifest entry: %w", err)
	}

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == srcDir {
			return nil
		}

		rel, relErr := filepath.Rel(srcDir, path)
		if relErr != nil {
			return fmt.Errorf("failed to get relative path: %w", relErr)
		}
		rel = filepath.ToSlash(rel)

		if strings.HasPrefix(d.Name(), ".") || p.excluded(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() || rel == manifest.FileName {
			return nil
		}
		if abs, absErr := filepath.Abs(path); absErr == nil && abs == absArchive {
			return nil
		}

		if addErr := addFile(zipWriter, path, rel, d); addErr != nil {
			return addErr
		}
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func addFile(zw *zip.Writer, path, rel string, d fs.DirEntry) (err error) {
	info, err := d.Info()
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to create file header: %w", err)
	}
	header.Name = rel
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create archive entry: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err = io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}
