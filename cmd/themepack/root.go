// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/3000studios/themepack/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the themepack command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "themepack",
		Short: "Secure theme packaging",
		Long: TitleStyle.Render("themepack") + SubtitleStyle.Render(" - secure theme packaging") + `

themepack turns a theme directory into a verifiable zip package and back.
Themes are validated and scanned for dangerous files and code patterns before
they are packaged, and packages are checked against their sha256 sidecar and
for unsafe entries before they are extracted.

` + SubtitleStyle.Render("Examples:") + `
  themepack validate ./aurora               Check a theme directory
  themepack scan ./aurora                   Report suspicious files and code
  themepack create ./aurora aurora -v 2.0.0 Package a theme
  themepack unpack themes/aurora-2.0.0.zip  Verify and extract a package
  themepack list                            List packages in the themes directory`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: types.ExitUsage, Err: err}
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&app.flags.themesDir, "themes-dir", "d", "themes", "themes directory (overrides themes_dir)")
	flags.StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/themepack/config.cue)")
	flags.BoolVar(&app.flags.verbose, "verbose", false, "show debug logs, error chains and guidance")
	flags.StringVar(&app.flags.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newCreateCommand(app),
		newUnpackCommand(app),
		newVerifyCommand(app),
		newListCommand(app),
		newValidateCommand(app),
		newScanCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// exactArgs is cobra.ExactArgs with failures reported as usage errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &ExitError{Code: types.ExitUsage, Err: err}
		}
		return nil
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the command's exit code. It is called
// by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	rootCmd := NewRootCommand(app)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(app.errorHandler),
	); err != nil {
		if exitErr, ok := errors.AsType[*ExitError](err); ok {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}
