// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"time"

	"github.com/3000studios/themepack/pkg/scanner"
	"github.com/3000studios/themepack/pkg/validator"

	"github.com/charmbracelet/log"
)

// Option configures a Packager.
type Option func(*Packager)

// WithLogger sets the diagnostic sink shared with the default validator and
// scanner. Defaults to a discard logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *Packager) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithValidator replaces the validator run before archiving and after
// extraction.
func WithValidator(v *validator.Validator) Option {
	return func(p *Packager) {
		p.validator = v
	}
}

// WithScanner replaces the security scanner.
func WithScanner(s *scanner.Scanner) Option {
	return func(p *Packager) {
		p.scanner = s
	}
}

// WithLimits overrides the archive safety limits. Zero fields keep their
// defaults.
func WithLimits(l Limits) Option {
	return func(p *Packager) {
		p.limits = l.withDefaults()
	}
}

// WithExclude adds doublestar glob patterns, matched against slash separated
// paths relative to the source root, for files left out of archives.
func WithExclude(patterns ...string) Option {
	return func(p *Packager) {
		p.exclude = append(p.exclude, patterns...)
	}
}

// WithNow sets the clock used for the created_at manifest field.
func WithNow(now func() time.Time) Option {
	return func(p *Packager) {
		if now != nil {
			p.now = now
		}
	}
}
