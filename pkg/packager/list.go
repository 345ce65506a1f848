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

	"github.com/3000studios/themepack/pkg/manifest"
)

// maxManifestSize bounds how much of a package manifest List will read.
const maxManifestSize = 1 << 20

// PackageInfo is a package manifest augmented with file details.
type PackageInfo struct {
	Name             string         `json:"name"`
	Version          string         `json:"version"`
	CreatedAt        string         `json:"created_at,omitempty"`
	Metadata         map[string]any `json:"metadata"`
	FileSize         int64          `json:"file_size"`
	FilePath         string         `json:"file_path"`
	HasIntegrityHash bool           `json:"has_integrity_hash"`
}

// List returns every readable package in the themes directory in lexical
// order. Packages whose manifest cannot be read are logged and skipped.
func (p *Packager) List() ([]PackageInfo, error) {
	paths, err := filepath.Glob(filepath.Join(p.themesDir, "*"+PackageExt))
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	packages := make([]PackageInfo, 0, len(paths))
	for _, path := range paths {
		info, err := p.packageInfo(path)
		if err != nil {
			p.logger.Warn("failed to read theme package", "file", path, "error", err)
			continue
		}
		packages = append(packages, info)
	}
	return packages, nil
}

func (p *Packager) packageInfo(path string) (PackageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return PackageInfo{}, err
	}
	if !stat.Mode().IsRegular() {
		return PackageInfo{}, fmt.Errorf("%w: not a regular file", ErrManifestMalformed)
	}

	m, err := ReadManifest(path)
	if err != nil {
		return PackageInfo{}, err
	}

	_, sidecarErr := os.Stat(SidecarPath(path))
	return PackageInfo{
		Name:             m.Name,
		Version:          m.Version,
		CreatedAt:        m.CreatedAt,
		Metadata:         m.Metadata,
		FileSize:         stat.Size(),
		FilePath:         path,
		HasIntegrityHash: sidecarErr == nil,
	}, nil
}

// ReadManifest returns the theme.json embedded in the package at path. Any
// failure wraps ErrManifestMalformed.
func ReadManifest(path string) (m *manifest.Archive, err error) {
	zipReader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestMalformed, err)
	}
	defer func() {
		if closeErr := zipReader.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	rc, err := zipReader.Open(manifest.FileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found in archive", ErrManifestMalformed, manifest.FileName)
		}
		return nil, fmt.Errorf("%w: %w", ErrManifestMalformed, err)
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	data, err := io.ReadAll(io.LimitReader(rc, maxManifestSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestMalformed, err)
	}
	if len(data) > maxManifestSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrManifestMalformed, manifest.FileName, maxManifestSize)
	}

	m, err = manifest.DecodeArchive(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestMalformed, err)
	}
	return m, nil
}
