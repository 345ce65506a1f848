// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/3000studios/themepack/internal/config"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the `themepack config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage themepack configuration",
		Long: `Manage themepack configuration.

Configuration is stored in:
  - Linux: ~/.config/themepack/config.cue
  - macOS: ~/Library/Application Support/themepack/config.cue
  - Windows: %APPDATA%\themepack\config.cue

A config.cue in the working directory is used when the user file is absent.
THEMEPACK_* environment variables override the file, and flags override both.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(newConfigShowCommand(app), newConfigInitCommand(), newConfigPathCommand(), newConfigDumpCommand(app))

	return cfgCmd
}

func newConfigShowCommand(app *App) *cobra.Command {
	var asJSON bool

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, source, err := app.loadConfig(cmd)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), cfg)
			}
			renderConfig(cmd.OutOrStdout(), cfg, source)
			return nil
		},
	}

	showCmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return showCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		force bool
		dir   string
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.WriteDefaultConfig(dir, force)
			if err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return wrapCommandError(err, "create configuration file", path)
				}
				return wrapCommandError(err, "create configuration file", dir)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(path))
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	initCmd.Flags().StringVar(&dir, "dir", "", "write into this directory instead of the user config directory")

	return initCmd
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return wrapCommandError(err, "resolve configuration directory", "")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config directory: %s\n", cfgDir)
			fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
			return nil
		},
	}
}

func newConfigDumpCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := app.loadConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	}
}

func renderConfig(w io.Writer, cfg *config.Config, source string) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if source == "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), source)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("themes_dir"), valueStyle.Render(cfg.ThemesDir))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("package"))
	if len(cfg.Package.Exclude) == 0 {
		fmt.Fprintf(w, "  exclude: %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		fmt.Fprintf(w, "  exclude: %s\n", valueStyle.Render(strings.Join(cfg.Package.Exclude, ", ")))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("limits"))
	fmt.Fprintf(w, "  max_file_size: %s\n", valueStyle.Render(humanize.IBytes(uint64(cfg.Limits.MaxFileSize))))
	fmt.Fprintf(w, "  max_compression_ratio: %s\n", valueStyle.Render(strconv.FormatFloat(cfg.Limits.MaxCompressionRatio, 'f', -1, 64)))
	fmt.Fprintf(w, "  max_total_size: %s\n", valueStyle.Render(humanize.IBytes(cfg.Limits.MaxTotalSize)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(strconv.FormatBool(cfg.UI.Verbose)))
	fmt.Fprintf(w, "  log_level: %s\n", valueStyle.Render(cfg.UI.LogLevel.String()))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
}
