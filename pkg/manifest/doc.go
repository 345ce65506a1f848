// SPDX-License-Identifier: MPL-2.0

// Package manifest models the two theme manifests handled by themepack: the
// author-supplied theme.json at the root of a theme source directory, and the
// canonical manifest the packager writes as the first entry of each archive.
package manifest
