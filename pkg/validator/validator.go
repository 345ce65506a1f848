// SPDX-License-Identifier: MPL-2.0

package validator

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/3000studios/themepack/pkg/manifest"

	"github.com/charmbracelet/log"
)

// allowedExtensions lists asset extensions (lowercase, without the dot) that
// do not produce a warning. php is kept for WordPress themes.
var allowedExtensions = map[string]struct{}{
	"css": {}, "js": {}, "json": {}, "html": {}, "htm": {},
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "svg": {}, "ico": {},
	"woff": {}, "woff2": {}, "ttf": {}, "eot": {},
	"md": {}, "txt": {}, "php": {},
}

type (
	// Validator checks theme directories. The zero value is not usable; use New.
	Validator struct {
		logger      *log.Logger
		maxFileSize int64
		skipHidden  bool
	}

	// Report is the complete outcome of validating a theme directory.
	Report struct {
		Valid     bool     `json:"valid"`
		Errors    []string `json:"errors"`
		Warnings  []string `json:"warnings"`
		FileCount int      `json:"file_count"`
		TotalSize int64    `json:"total_size"`
	}
)

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		logger:      log.New(io.Discard),
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// MaxFileSize returns the per-file size limit in bytes.
func (v *Validator) MaxFileSize() int64 { return v.maxFileSize }

// ValidateStructure reports whether dir is a valid theme. Errors are logged at
// error level and warnings at warn level.
func (v *Validator) ValidateStructure(dir string) bool {
	return v.Check(dir).Valid
}

// Check is Report with the outcome logged, for callers that need both the
// verdict and the details from a single walk.
func (v *Validator) Check(dir string) Report {
	v.logger.Info("validating theme structure", "dir", dir)

	report := v.Report(dir)
	for _, w := range report.Warnings {
		v.logger.Warn(w, "dir", dir)
	}
	for _, e := range report.Errors {
		v.logger.Error(e, "dir", dir)
	}
	if report.Valid {
		v.logger.Info("theme structure validation passed", "dir", dir, "files", report.FileCount)
	}
	return report
}

// Report validates dir without stopping at the first problem. FileCount and
// TotalSize cover every regular file, whether or not its extension is allowed.
func (v *Validator) Report(dir string) Report {
	r := Report{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	info, err := os.Stat(dir)
	if err != nil {
		r.addError("theme directory not accessible: %v", err)
		return r
	}
	if !info.IsDir() {
		r.addError("theme path is not a directory: %s", dir)
		return r
	}

	v.checkManifest(dir, &r)
	v.checkFiles(dir, &r)
	return r
}

func (v *Validator) checkManifest(dir string, r *Report) {
	data, err := os.ReadFile(filepath.Join(dir, manifest.FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.addError("missing required file: %s", manifest.FileName)
		} else {
			r.addError("cannot read %s: %v", manifest.FileName, err)
		}
		return
	}

	_, err = manifest.ParseTheme(data)
	var manifestErr *manifest.InvalidManifestError
	switch {
	case err == nil:
	case errors.As(err, &manifestErr):
		for _, fe := range manifestErr.FieldErrors {
			var missing *manifest.MissingFieldError
			var invalid *manifest.InvalidFieldError
			if errors.As(fe, &missing) || errors.As(fe, &invalid) {
				r.addError("%v", fe)
			} else {
				r.addError("invalid %s: %v", manifest.FileName, fe)
			}
		}
	default:
		r.addError("invalid %s: %v", manifest.FileName, err)
	}
}

func (v *Validator) checkFiles(dir string, r *Report) {
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			r.addError("cannot read %s: %v", path, err)
			if d != nil && d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if path == dir {
			return nil
		}
		if v.skipHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("symbolic link not followed: %s", relOrBase(dir, path)))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			r.addError("cannot stat %s: %v", relOrBase(dir, path), infoErr)
			return nil
		}

		r.FileCount++
		r.TotalSize += info.Size()

		name := d.Name()
		if ext := Extension(name); !IsAllowedExtension(ext) {
			r.Warnings = append(r.Warnings, fmt.Sprintf("unsupported extension: %s (%s)", name, displayExt(ext)))
		}
		if info.Size() > v.maxFileSize {
			r.addError("file too large: %s (%d bytes)", name, info.Size())
		}
		return nil
	})
	if walkErr != nil {
		r.addError("cannot walk %s: %v", dir, walkErr)
	}
}

func (r *Report) addError(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Extension returns the lowercase extension of name without the leading dot,
// or an empty string when name has none.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// IsAllowedExtension reports whether ext (as returned by Extension) is part of
// the theme asset allow-list.
func IsAllowedExtension(ext string) bool {
	_, ok := allowedExtensions[ext]
	return ok
}

func displayExt(ext string) string {
	if ext == "" {
		return "no extension"
	}
	return "." + ext
}

func relOrBase(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
