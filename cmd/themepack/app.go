// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/3000studios/themepack/internal/config"
	"github.com/3000studios/themepack/internal/logging"
	"github.com/3000studios/themepack/pkg/packager"
	"github.com/3000studios/themepack/pkg/scanner"
	"github.com/3000studios/themepack/pkg/validator"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// errConfigLoad marks failures to load or validate configuration.
var errConfigLoad = errors.New("configuration error")

type (
	// App wires CLI services and shared dependencies. Every command handler
	// receives the App and builds its components through it.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer
		now    func() time.Time
		flags  rootFlags
		// verbose and colorScheme come from the last session and are used
		// when rendering errors.
		verbose     bool
		colorScheme config.ColorScheme
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
		// Now is the clock recorded in created_at. Defaults to time.Now.
		Now func() time.Time
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, string, error)
	}

	// rootFlags holds the persistent flags shared by every command.
	rootFlags struct {
		themesDir  string
		configPath string
		logLevel   string
		verbose    bool
	}

	// session is the per-invocation state: the effective configuration and
	// the components built from it.
	session struct {
		cfg       *config.Config
		source    string
		verbose   bool
		logger    *log.Logger
		validator *validator.Validator
		scanner   *scanner.Scanner
	}
)

// NewApp builds an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		now:    deps.Now,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	if app.now == nil {
		app.now = time.Now
	}
	return app
}

// loadConfig loads configuration and applies persistent flags set on cmd on
// top of it. Flags win over THEMEPACK_* variables and the config file.
func (a *App) loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, source, err := a.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: a.flags.configPath})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", errConfigLoad, err)
	}

	flags := cmd.Flags()
	if flags.Changed("themes-dir") {
		cfg.ThemesDir = a.flags.themesDir
	}
	if flags.Changed("verbose") {
		cfg.UI.Verbose = a.flags.verbose
	}
	if flags.Changed("log-level") {
		cfg.UI.LogLevel = config.LogLevel(a.flags.logLevel)
	}
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", fmt.Errorf("%w: %w", errConfigLoad, errors.Join(errs...))
	}
	return cfg, source, nil
}

// newSession resolves the effective configuration and builds the logger,
// validator and scanner from it. Verbose mode lowers the log level to debug
// unless --log-level was given.
func (a *App) newSession(cmd *cobra.Command) (*session, error) {
	cfg, source, err := a.loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	level := cfg.UI.LogLevel
	if cfg.UI.Verbose && !cmd.Flags().Changed("log-level") {
		level = config.LogLevelDebug
	}
	logger, err := logging.New(a.stderr, logging.Prefix, level.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfigLoad, err)
	}

	a.verbose = cfg.UI.Verbose
	a.colorScheme = cfg.UI.ColorScheme

	return &session{
		cfg:     cfg,
		source:  source,
		verbose: cfg.UI.Verbose,
		logger:  logger,
		validator: validator.New(
			validator.WithLogger(logger),
			validator.WithMaxFileSize(cfg.Limits.MaxFileSize),
		),
		scanner: scanner.New(scanner.WithLogger(logger)),
	}, nil
}

// packager builds the package engine for the session's themes directory.
func (a *App) packager(s *session) (*packager.Packager, error) {
	return packager.New(s.cfg.ThemesDir,
		packager.WithLogger(s.logger),
		packager.WithValidator(s.validator),
		packager.WithScanner(s.scanner),
		packager.WithLimits(packager.Limits{
			MaxCompressionRatio: s.cfg.Limits.MaxCompressionRatio,
			MaxTotalSize:        s.cfg.Limits.MaxTotalSize,
		}),
		packager.WithExclude(s.cfg.Package.Exclude...),
		packager.WithNow(a.now),
	)
}
