// SPDX-License-Identifier: MPL-2.0

// Package scanner detects dangerous content in theme sources and package
// archives using file extensions and a fixed table of regular expressions.
//
// It is a pattern matcher, not a static analyzer: matches are reported
// verbatim with their line number and no attempt is made to interpret code.
package scanner
