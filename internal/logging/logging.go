// SPDX-License-Identifier: MPL-2.0

// Package logging builds the charmbracelet/log loggers handed to the
// validator, scanner and packager.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Prefix is the logger prefix used by the CLI.
const Prefix = "themepack"

// New returns a logger writing to w at the named level ("debug", "info",
// "warn" or "error"). Debug loggers also report the caller.
func New(w io.Writer, prefix, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:       prefix,
		Level:        lvl,
		ReportCaller: lvl == log.DebugLevel,
	})
	logger.SetStyles(styles())
	return logger, nil
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Prefix = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	s.Keys["file"] = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	s.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	return s
}
