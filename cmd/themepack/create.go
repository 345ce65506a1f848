// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/3000studios/themepack/pkg/packager"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newCreateCommand(app *App) *cobra.Command {
	var (
		version      string
		metadata     string
		metadataFile string
	)

	createCmd := &cobra.Command{
		Use:   "create <source-dir> <name>",
		Short: "Create a theme package from a source directory",
		Long: `Create a theme package from a source directory.

The directory is validated and security scanned first. The package is written
to <themes-dir>/<name>-<version>.zip with its sha256 digest next to it in
<name>-<version>.zip.sha256. Hidden files and package.exclude patterns are
left out.`,
		Example: `  themepack create ./aurora aurora
  themepack create ./aurora aurora -v 2.1.0 -m '{"author": "Studio"}'
  themepack create ./aurora aurora --metadata-file meta.toml`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, app, packager.CreateOptions{
				SourceDir: args[0],
				Name:      args[1],
				Version:   version,
			}, metadata, metadataFile)
		},
	}

	createCmd.Flags().StringVarP(&version, "version", "v", packager.DefaultVersion, "theme version")
	createCmd.Flags().StringVarP(&metadata, "metadata", "m", "", "additional metadata as a JSON object")
	createCmd.Flags().StringVar(&metadataFile, "metadata-file", "", "read metadata from a .json, .toml or .cue file")
	createCmd.MarkFlagsMutuallyExclusive("metadata", "metadata-file")

	return createCmd
}

func runCreate(cmd *cobra.Command, app *App, opts packager.CreateOptions, metadata, metadataFile string) error {
	s, err := app.newSession(cmd)
	if err != nil {
		return err
	}

	switch {
	case metadata != "":
		opts.Metadata, err = packager.ParseMetadataJSON(metadata)
	case metadataFile != "":
		opts.Metadata, err = packager.LoadMetadataFile(metadataFile)
	}
	if err != nil {
		return wrapCommandError(err, "read metadata", metadataFile)
	}

	p, err := app.packager(s)
	if err != nil {
		return wrapCommandError(err, "open themes directory", s.cfg.ThemesDir)
	}

	archivePath, err := p.Create(opts)
	if err != nil {
		return wrapCommandError(err, "create theme package", opts.SourceDir)
	}

	size := "unknown size"
	if info, statErr := os.Stat(archivePath); statErr == nil {
		size = humanize.IBytes(uint64(info.Size()))
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s Theme package created: %s %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(archivePath), SubtitleStyle.Render("("+size+")"))
	fmt.Fprintf(w, "%s Integrity hash: %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(packager.SidecarPath(archivePath)))
	return nil
}
