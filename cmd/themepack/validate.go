// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/3000studios/themepack/pkg/packager"
	"github.com/3000studios/themepack/pkg/types"
	"github.com/3000studios/themepack/pkg/validator"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newValidateCommand(app *App) *cobra.Command {
	var asJSON bool

	validateCmd := &cobra.Command{
		Use:   "validate <theme-dir>",
		Short: "Validate a theme directory",
		Long: `Validate a theme directory.

Checks that theme.json exists with non-empty name and version fields and that
no file exceeds limits.max_file_size. Unsupported extensions and symbolic
links are reported as warnings. Exits with status 1 when the theme is invalid.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd)
			if err != nil {
				return err
			}
			if err := requireDir(args[0]); err != nil {
				return wrapCommandError(err, "validate theme", args[0])
			}

			report := s.validator.Report(args[0])
			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				renderValidationReport(cmd.OutOrStdout(), report)
			}

			if code := types.FromBool(report.Valid); !code.IsSuccess() {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	validateCmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return validateCmd
}

func renderValidationReport(w io.Writer, report validator.Report) {
	fmt.Fprintln(w, TitleStyle.Render("Theme Validation Report"))
	fmt.Fprintln(w, ruleStyle.Render(strings.Repeat("=", 50)))

	status := SuccessStyle.Render("✓ VALID")
	if !report.Valid {
		status = ErrorStyle.Render("✗ INVALID")
	}
	fmt.Fprintf(w, "Status: %s\n", status)
	fmt.Fprintf(w, "Files: %d\n", report.FileCount)
	fmt.Fprintf(w, "Total Size: %s (%s bytes)\n", humanize.IBytes(uint64(report.TotalSize)), humanize.Comma(report.TotalSize))

	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors (%d):\n", len(report.Errors))
		for _, e := range report.Errors {
			fmt.Fprintf(w, "  %s %s\n", ErrorStyle.Render("✗"), e)
		}
	}
	if len(report.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings (%d):\n", len(report.Warnings))
		for _, warning := range report.Warnings {
			fmt.Fprintf(w, "  %s %s\n", WarningStyle.Render("⚠"), warning)
		}
	}
}

// requireDir reports a missing or non-directory path as ErrSourceNotFound.
func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", packager.ErrSourceNotFound, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", packager.ErrSourceNotFound, path)
	}
	return nil
}
