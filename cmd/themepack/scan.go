// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/3000studios/themepack/pkg/scanner"
	"github.com/3000studios/themepack/pkg/types"

	"github.com/spf13/cobra"
)

func newScanCommand(app *App) *cobra.Command {
	var asJSON bool

	scanCmd := &cobra.Command{
		Use:   "scan <theme-dir>",
		Short: "Scan a theme directory for security issues",
		Long: `Scan a theme directory for security issues.

Every file is checked for suspicious extensions and text assets are matched
against the content rules line by line. Exits with status 1 when any issue is
found.

Content rules:
` + ruleList(),
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd)
			if err != nil {
				return err
			}
			if err := requireDir(args[0]); err != nil {
				return wrapCommandError(err, "scan theme", args[0])
			}

			report, err := s.scanner.Report(args[0])
			if err != nil {
				return wrapCommandError(err, "scan theme", args[0])
			}
			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else {
				renderScanReport(cmd.OutOrStdout(), report)
			}

			if code := types.FromBool(report.TotalIssues == 0); !code.IsSuccess() {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	scanCmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return scanCmd
}

func renderScanReport(w io.Writer, report scanner.Report) {
	fmt.Fprintln(w, TitleStyle.Render("Security Scan Report"))
	fmt.Fprintln(w, ruleStyle.Render(strings.Repeat("=", 50)))
	fmt.Fprintf(w, "Total Issues: %d\n", report.TotalIssues)
	fmt.Fprintf(w, "High Severity: %d\n", report.HighSeverity)
	fmt.Fprintf(w, "Medium Severity: %d\n", report.MediumSeverity)
	fmt.Fprintf(w, "Low Severity: %d\n", report.LowSeverity)

	if len(report.Issues) == 0 {
		fmt.Fprintf(w, "\n%s\n", SuccessStyle.Render("✓ No security issues found!"))
		return
	}

	fmt.Fprintln(w, "\nIssues:")
	for _, is := range report.Issues {
		line := "N/A"
		if is.Line > 0 {
			line = strconv.Itoa(is.Line)
		}
		sev := string(is.Severity)
		fmt.Fprintf(w, "  %s %s:%s\n", severityStyle(sev).Render("["+strings.ToUpper(sev)+"]"), is.File, line)
		fmt.Fprintf(w, "    %s\n", is.Description)
		if is.Match != "" {
			fmt.Fprintf(w, "    Match: %s\n", is.Match)
		}
		fmt.Fprintln(w)
	}
}

func ruleList() string {
	var sb strings.Builder
	for _, rule := range scanner.Rules() {
		fmt.Fprintf(&sb, "  %-22s %s\n", rule.ID, rule.Description)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
