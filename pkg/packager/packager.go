// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/3000studios/themepack/pkg/scanner"
	"github.com/3000studios/themepack/pkg/validator"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
)

const (
	// PackageExt is the file extension of theme packages.
	PackageExt = ".zip"
	// SidecarExt is appended to a package path to locate its digest file.
	SidecarExt = ".sha256"
	// UnpackedDirName is the directory under the themes dir that receives
	// extracted packages.
	UnpackedDirName = "unpacked"
)

// Packager creates and extracts theme packages stored in a themes directory.
type Packager struct {
	themesDir   string
	unpackedDir string
	logger      *log.Logger
	validator   *validator.Validator
	scanner     *scanner.Scanner
	limits      Limits
	exclude     []string
	now         func() time.Time
}

// New creates a Packager rooted at themesDir, creating it and its unpacked
// subdirectory when missing.
func New(themesDir string, opts ...Option) (*Packager, error) {
	if themesDir == "" {
		return nil, fmt.Errorf("themes directory cannot be empty")
	}

	p := &Packager{
		themesDir:   themesDir,
		unpackedDir: filepath.Join(themesDir, UnpackedDirName),
		logger:      log.New(io.Discard),
		limits:      DefaultLimits(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, pattern := range p.exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	if p.validator == nil {
		p.validator = validator.New(validator.WithLogger(p.logger))
	}
	if p.scanner == nil {
		p.scanner = scanner.New(scanner.WithLogger(p.logger))
	}

	if err := os.MkdirAll(p.unpackedDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create themes directory: %w", err)
	}

	p.logger.Debug("packager initialized", "themes_dir", themesDir)
	return p, nil
}

// ThemesDir returns the directory holding packages.
func (p *Packager) ThemesDir() string { return p.themesDir }

// UnpackedDir returns the directory receiving extracted packages.
func (p *Packager) UnpackedDir() string { return p.unpackedDir }

// PackagePath returns where Create stores the package for name and version.
func (p *Packager) PackagePath(name, version string) string {
	return filepath.Join(p.themesDir, name+"-"+version+PackageExt)
}

// SidecarPath returns the digest file location for a package path.
func SidecarPath(packagePath string) string {
	return packagePath + SidecarExt
}

// excluded reports whether rel (slash separated) matches an exclude pattern.
func (p *Packager) excluded(rel string) bool {
	for _, pattern := range p.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func checkNamePart(field, value string) error {
	switch {
	case strings.TrimSpace(value) == "":
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidPackageName, field)
	case strings.ContainsAny(value, `/\`):
		return fmt.Errorf("%w: %s %q contains a path separator", ErrInvalidPackageName, field, value)
	case strings.Contains(value, ".."):
		return fmt.Errorf("%w: %s %q contains \"..\"", ErrInvalidPackageName, field, value)
	case strings.HasPrefix(value, "."):
		return fmt.Errorf("%w: %s %q starts with a dot", ErrInvalidPackageName, field, value)
	}
	return nil
}
