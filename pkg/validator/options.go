// SPDX-License-Identifier: MPL-2.0

package validator

import "github.com/charmbracelet/log"

// DefaultMaxFileSize is the largest asset a theme may carry (10 MiB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the diagnostic sink. Defaults to a discard logger.
func WithLogger(logger *log.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithMaxFileSize overrides DefaultMaxFileSize. Non-positive values are
// ignored.
func WithMaxFileSize(size int64) Option {
	return func(v *Validator) {
		if size > 0 {
			v.maxFileSize = size
		}
	}
}

// WithSkipHidden excludes files and directories whose name starts with a dot
// from the per-file checks.
func WithSkipHidden() Option {
	return func(v *Validator) {
		v.skipHidden = true
	}
}
