// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Id identifies a catalogued issue.
type Id int

const (
	SourceNotFoundId Id = iota + 1
	StructureInvalidId
	SecurityScanFailedId
	IntegrityVerificationFailedId
	ArchiveUnsafeId
	ExtractedThemeInvalidId
	PackageNotFoundId
	InvalidPackageNameId
	MetadataInvalidId
	ConfigLoadFailedId
	PermissionDeniedId
)

type (
	// MarkdownMsg is guidance text rendered with glamour.
	MarkdownMsg string

	// HttpLink is a documentation or reference URL.
	HttpLink string

	// Issue is a catalogued failure with markdown guidance for the user.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the guidance with the given glamour style ("dark", "light",
// "notty", or a path to a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	sourceNotFoundIssue = &Issue{
		id: SourceNotFoundId,
		mdMsg: `
# Theme source not found

The directory given to ` + "`themepack create`" + ` does not exist or is not a directory.

## Things you can try
- Check the path for typos
- Pass the directory that contains ` + "`theme.json`" + `, not a file inside it`,
	}

	structureInvalidIssue = &Issue{
		id: StructureInvalidId,
		mdMsg: `
# Theme structure is invalid

The theme directory failed validation. Every error listed above must be fixed.

## Requirements
- A ` + "`theme.json`" + ` at the root with non-empty string ` + "`name`" + ` and ` + "`version`" + ` fields
- No single file larger than the configured limit (10 MiB by default)

## Things you can try
~~~
$ themepack validate ./my-theme
~~~`,
	}

	securityScanFailedIssue = &Issue{
		id: SecurityScanFailedId,
		mdMsg: `
# Security scan failed

The theme contains files or code patterns that are not allowed in a package.

## Common causes
- Executables or server-side scripts (` + "`.exe`, `.sh`, `.php`" + ` and similar)
- Calls such as ` + "`eval(`" + `, ` + "`document.write`" + ` or ` + "`innerHTML =`" + `
- External scripts loaded over http(s)
- Archive entries with absolute paths or ` + "`..`" + ` segments

## Things you can try
~~~
$ themepack scan ./my-theme
~~~`,
	}

	integrityVerificationFailedIssue = &Issue{
		id: IntegrityVerificationFailedId,
		mdMsg: `
# Integrity verification failed

The package does not match the digest stored in its ` + "`.sha256`" + ` file, or that file is missing.
The archive may be corrupted or tampered with.

## Things you can try
- Download or copy the package again together with its ` + "`.sha256`" + ` file
- Recreate the package with ` + "`themepack create`" + `
- Only if you trust the source, skip the check with ` + "`--no-verify`",
	}

	archiveUnsafeIssue = &Issue{
		id: ArchiveUnsafeId,
		mdMsg: `
# Archive is unsafe to extract

An entry escapes the extraction directory, expands far more than its compressed size,
or the archive as a whole is too large once decompressed.

## Things you can try
- Do not extract this package; ask its author for a clean build
- Adjust ` + "`limits.max_compression_ratio`" + ` or ` + "`limits.max_total_size`" + ` only for trusted packages`,
		docLinks: []HttpLink{
			"https://en.wikipedia.org/wiki/Zip_bomb",
			"https://security.snyk.io/research/zip-slip-vulnerability",
		},
	}

	extractedThemeInvalidIssue = &Issue{
		id: ExtractedThemeInvalidId,
		mdMsg: `
# Extracted theme is invalid

The package was extracted but its content did not validate, so the extraction was removed.

## Things you can try
- List the archive content and check that ` + "`theme.json`" + ` is at its root
- Recreate the package with ` + "`themepack create`",
	}

	packageNotFoundIssue = &Issue{
		id: PackageNotFoundId,
		mdMsg: `
# Package not found

## Things you can try
- Check the path for typos
- List available packages:
~~~
$ themepack list
~~~`,
	}

	invalidPackageNameIssue = &Issue{
		id: InvalidPackageNameId,
		mdMsg: `
# Invalid package name

Names and versions become the package file name ` + "`{name}-{version}.zip`" + `.
They must be non-empty, must not start with a dot, and must not contain ` + "`/`, `\\` or `..`" + `.`,
	}

	metadataInvalidIssue = &Issue{
		id: MetadataInvalidId,
		mdMsg: `
# Invalid package metadata

Metadata must be a JSON object (` + "`-m`" + `) or a ` + "`.json`, `.toml` or `.cue`" + ` file (` + "`--metadata-file`" + `).

## Example
~~~
$ themepack create ./my-theme aurora -m '{"author": "Studio"}'
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

## Things you can try
- Check the CUE syntax of your config file
- Print the effective configuration:
~~~
$ themepack config show
~~~
- Write a fresh default file:
~~~
$ themepack config init
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied

## Things you can try
- Check permissions of the themes directory and the theme source
- Point ` + "`--themes-dir`" + ` at a directory you own`,
	}

	issues = map[Id]*Issue{
		sourceNotFoundIssue.Id():              sourceNotFoundIssue,
		structureInvalidIssue.Id():            structureInvalidIssue,
		securityScanFailedIssue.Id():          securityScanFailedIssue,
		integrityVerificationFailedIssue.Id(): integrityVerificationFailedIssue,
		archiveUnsafeIssue.Id():               archiveUnsafeIssue,
		extractedThemeInvalidIssue.Id():       extractedThemeInvalidIssue,
		packageNotFoundIssue.Id():             packageNotFoundIssue,
		invalidPackageNameIssue.Id():          invalidPackageNameIssue,
		metadataInvalidIssue.Id():             metadataInvalidIssue,
		configLoadFailedIssue.Id():            configLoadFailedIssue,
		permissionDeniedIssue.Id():            permissionDeniedIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

// Get returns the issue for id, or nil when it is not catalogued.
func Get(id Id) *Issue {
	return issues[id]
}
