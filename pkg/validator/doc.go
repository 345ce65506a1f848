// SPDX-License-Identifier: MPL-2.0

// Package validator checks that a directory is a well-formed theme: a
// theme.json manifest at the root with a name and version, and asset files
// within the allowed extensions and size limits.
//
// Report always walks the whole tree so every problem is listed at once.
// ValidateStructure is a boolean view of the same report that also logs
// every error and warning through the configured logger.
package validator
