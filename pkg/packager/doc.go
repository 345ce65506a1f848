// SPDX-License-Identifier: MPL-2.0

// Package packager builds, verifies, lists and extracts theme packages.
//
// A package is a deflated zip archive named {name}-{version}.zip whose first
// entry is a synthesized theme.json, stored next to a {archive}.sha256 sidecar
// holding the lowercase hex digest of the archive bytes. Creation runs the
// validator and the security scanner first and never leaves a partial archive
// behind. Extraction verifies the digest, rejects unsafe entry names and
// decompression bombs before writing anything, and removes the extracted tree
// when it does not validate.
package packager
