// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/3000studios/themepack/pkg/packager"

	"github.com/spf13/cobra"
)

func newUnpackCommand(app *App) *cobra.Command {
	var noVerify bool

	unpackCmd := &cobra.Command{
		Use:   "unpack <package>",
		Short: "Verify and extract a theme package",
		Long: `Verify and extract a theme package into <themes-dir>/unpacked/<package name>.

The package must match its .sha256 sidecar, contain no absolute or parent
directory entries, and stay within the compression ratio and total size
limits. A previous extraction of the same package is replaced.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd)
			if err != nil {
				return err
			}
			p, err := app.packager(s)
			if err != nil {
				return wrapCommandError(err, "open themes directory", s.cfg.ThemesDir)
			}

			dir, err := p.Unpack(packager.UnpackOptions{PackagePath: args[0], SkipVerify: noVerify})
			if err != nil {
				return wrapCommandError(err, "unpack theme package", args[0])
			}

			if noVerify {
				fmt.Fprintln(cmd.OutOrStdout(), WarningStyle.Render("⚠ Integrity verification skipped"))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Theme unpacked to: %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(dir))
			return nil
		},
	}

	unpackCmd.Flags().BoolVar(&noVerify, "no-verify", false, "skip integrity verification")

	return unpackCmd
}

func newVerifyCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <package>",
		Short: "Check a package against its sha256 sidecar",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd)
			if err != nil {
				return err
			}
			if err := packager.VerifyPackage(args[0], s.logger); err != nil {
				return wrapCommandError(err, "verify theme package", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Integrity verified: %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(args[0]))
			return nil
		},
	}
}
