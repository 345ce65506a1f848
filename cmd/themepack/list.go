// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/3000studios/themepack/pkg/packager"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newListCommand(app *App) *cobra.Command {
	var asJSON bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List theme packages in the themes directory",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.newSession(cmd)
			if err != nil {
				return err
			}
			p, err := app.packager(s)
			if err != nil {
				return wrapCommandError(err, "open themes directory", s.cfg.ThemesDir)
			}

			packages, err := p.List()
			if err != nil {
				return wrapCommandError(err, "list theme packages", s.cfg.ThemesDir)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), packages)
			}
			renderPackageList(cmd.OutOrStdout(), packages)
			return nil
		},
	}

	listCmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return listCmd
}

func renderPackageList(w io.Writer, packages []packager.PackageInfo) {
	if len(packages) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("No themes found."))
		return
	}

	fmt.Fprintf(w, "Found %d theme(s):\n\n", len(packages))
	for _, pkg := range packages {
		verified := WarningStyle.Render("No")
		if pkg.HasIntegrityHash {
			verified = SuccessStyle.Render("Yes")
		}
		fmt.Fprintf(w, "  • %s v%s\n", TitleStyle.Render(pkg.Name), pkg.Version)
		fmt.Fprintf(w, "    File: %s\n", CmdStyle.Render(pkg.FilePath))
		fmt.Fprintf(w, "    Size: %s (%s bytes)\n", humanize.IBytes(uint64(pkg.FileSize)), humanize.Comma(pkg.FileSize))
		if pkg.CreatedAt != "" {
			fmt.Fprintf(w, "    Created: %s\n", pkg.CreatedAt)
		}
		fmt.Fprintf(w, "    Verified: %s\n\n", verified)
	}
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
