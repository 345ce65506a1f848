// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/3000studios/themepack/internal/config"
	"github.com/3000studios/themepack/internal/issue"
	"github.com/3000studios/themepack/pkg/packager"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
)

// errorHandler prints command failures. ExitErrors without a cause were
// already reported by the command and print nothing. In verbose mode the
// error chain and the matching markdown guidance are added.
func (a *App) errorHandler(w io.Writer, _ fang.Styles, err error) {
	if exitErr, ok := errors.AsType[*ExitError](err); ok && exitErr.Err == nil {
		return
	}

	verbose := a.flags.verbose || a.verbose
	fmt.Fprintln(w, ErrorStyle.Render("✗ Error: ")+formatErrorForDisplay(err, verbose))

	id, hasIssue := issueFor(err)
	if !verbose {
		if ae, ok := errors.AsType[*issue.ActionableError](err); hasIssue && (!ok || !ae.HasSuggestions()) {
			fmt.Fprintln(w, SubtitleStyle.Render("Run again with --verbose for troubleshooting guidance."))
		}
		return
	}
	if hasIssue {
		if rendered, renderErr := issue.Get(id).Render(glamourStyle(a.colorScheme)); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

// formatErrorForDisplay uses ActionableError.Format when err carries one.
func formatErrorForDisplay(err error, verbose bool) string {
	if ae, ok := errors.AsType[*issue.ActionableError](err); ok {
		return ae.Format(verbose)
	}
	return err.Error()
}

// issueFor maps an error to its catalogued guidance.
func issueFor(err error) (issue.Id, bool) {
	switch {
	case errors.Is(err, errConfigLoad):
		return issue.ConfigLoadFailedId, true
	case errors.Is(err, packager.ErrSourceNotFound):
		return issue.SourceNotFoundId, true
	case errors.Is(err, packager.ErrInvalidPackageName):
		return issue.InvalidPackageNameId, true
	case errors.Is(err, packager.ErrInvalidMetadata), errors.Is(err, packager.ErrUnsupportedMetadataFormat):
		return issue.MetadataInvalidId, true
	case errors.Is(err, packager.ErrStructureInvalid):
		return issue.StructureInvalidId, true
	case errors.Is(err, packager.ErrSecurityScanFailed):
		return issue.SecurityScanFailedId, true
	case errors.Is(err, packager.ErrIntegrityVerificationFailed):
		return issue.IntegrityVerificationFailedId, true
	case errors.Is(err, packager.ErrArchiveSecurityFailed):
		return issue.ArchiveUnsafeId, true
	case errors.Is(err, packager.ErrExtractedThemeInvalid):
		return issue.ExtractedThemeInvalidId, true
	case errors.Is(err, packager.ErrPackageNotFound):
		return issue.PackageNotFoundId, true
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId, true
	default:
		return 0, false
	}
}

// suggestionsFor returns short hints for the error kinds users can fix
// themselves.
func suggestionsFor(err error, target string) []string {
	switch {
	case errors.Is(err, packager.ErrStructureInvalid):
		return []string{fmt.Sprintf("Run 'themepack validate %s' for the full report", target)}
	case errors.Is(err, packager.ErrSecurityScanFailed):
		if strings.HasSuffix(target, packager.PackageExt) {
			return []string{"Do not extract this package; it contains unsafe entry names"}
		}
		return []string{fmt.Sprintf("Run 'themepack scan %s' to see every finding", target)}
	case errors.Is(err, packager.ErrIntegrityVerificationFailed):
		return []string{
			"Copy the package again together with its .sha256 file",
			"Use --no-verify only for packages you trust",
		}
	case errors.Is(err, packager.ErrArchiveSecurityFailed):
		return []string{"Raise limits.max_compression_ratio or limits.max_total_size only for trusted packages"}
	case errors.Is(err, packager.ErrPackageNotFound):
		return []string{"Run 'themepack list' to see available packages"}
	case errors.Is(err, packager.ErrInvalidMetadata):
		return []string{`Pass a JSON object, e.g. -m '{"author": "Studio"}'`}
	case errors.Is(err, config.ErrInvalidConfig):
		return []string{"Run 'themepack config show' to see the effective configuration"}
	default:
		return nil
	}
}

// wrapCommandError adds operation context and suggestions to err.
func wrapCommandError(err error, operation, resource string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsType[*issue.ActionableError](err); ok {
		return err
	}
	suggestions := suggestionsFor(err, resource)
	if len(suggestions) == 0 {
		return issue.WrapWithContext(err, operation, resource)
	}
	return issue.NewErrorContext().
		WithOperation(operation).
		WithResource(resource).
		WithSuggestions(suggestions...).
		Wrap(err).
		BuildError()
}

// glamourStyle maps the configured color scheme to a glamour style. Auto
// follows the terminal background.
func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		if lipgloss.HasDarkBackground() {
			return "dark"
		}
		return "light"
	}
}
