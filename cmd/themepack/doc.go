// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the cobra command tree of the themepack CLI: create,
// unpack, verify and list theme packages, validate and scan theme sources,
// and manage the configuration file.
package cmd
