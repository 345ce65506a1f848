// SPDX-License-Identifier: MPL-2.0

package scanner

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

type (
	// Scanner runs the extension and content checks. Use New to create one.
	Scanner struct {
		logger *log.Logger
	}

	// Option configures a Scanner.
	Option func(*Scanner)

	// Issue is a single finding. Line and Match are only set for content
	// matches.
	Issue struct {
		Severity    Severity `json:"severity"`
		File        string   `json:"file"`
		Line        int      `json:"line,omitempty"`
		Description string   `json:"issue"`
		Match       string   `json:"match,omitempty"`
		Rule        string   `json:"rule"`
	}

	// Report aggregates the issues of a directory scan by severity.
	Report struct {
		TotalIssues    int     `json:"total_issues"`
		HighSeverity   int     `json:"high_severity"`
		MediumSeverity int     `json:"medium_severity"`
		LowSeverity    int     `json:"low_severity"`
		Issues         []Issue `json:"issues"`
	}
)

// WithLogger sets the diagnostic sink. Defaults to a discard logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Scanner.
func New(opts ...Option) *Scanner {
	s := &Scanner{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// String renders the issue on one line for logs and CLI output.
func (i Issue) String() string {
	loc := i.File
	if i.Line > 0 {
		loc = fmt.Sprintf("%s:%d", i.File, i.Line)
	}
	if i.Match == "" {
		return fmt.Sprintf("%s %s %s", i.Severity, loc, i.Description)
	}
	return fmt.Sprintf("%s %s %s (%s)", i.Severity, loc, i.Description, i.Match)
}

// ScanDirectory walks dir in lexical order and returns every issue found.
// Files that cannot be read are skipped; only an unreadable dir is an error.
func (s *Scanner) ScanDirectory(dir string) ([]Issue, error) {
	s.logger.Info("scanning directory for security issues", "dir", dir)

	if _, err := os.ReadDir(dir); err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	issues := []Issue{}
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		ext := extension(d.Name())
		if IsSuspiciousExtension(ext) {
			issues = append(issues, Issue{
				Severity:    SeverityHigh,
				File:        path,
				Description: fmt.Sprintf("Suspicious file extension: .%s", ext),
				Rule:        "suspicious_extension",
			})
		}
		if isTextExtension(ext) {
			issues = append(issues, s.scanFile(path)...)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, walkErr)
	}

	if len(issues) > 0 {
		s.logger.Warn("security issues found", "dir", dir, "count", len(issues))
	} else {
		s.logger.Info("no security issues found", "dir", dir)
	}
	return issues, nil
}

// Report scans dir and counts the issues by severity.
func (s *Scanner) Report(dir string) (Report, error) {
	issues, err := s.ScanDirectory(dir)
	if err != nil {
		return Report{}, err
	}
	r := Report{TotalIssues: len(issues), Issues: issues}
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityHigh:
			r.HighSeverity++
		case SeverityMedium:
			r.MediumSeverity++
		case SeverityLow:
			r.LowSeverity++
		}
	}
	return r, nil
}

func (s *Scanner) scanFile(path string) []Issue {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Debug("could not scan file", "file", path, "error", err)
		return nil
	}
	return scanContent(path, strings.ToValidUTF8(string(data), ""))
}

// scanContent applies every rule to content. Each match yields one issue.
func scanContent(file, content string) []Issue {
	var newlines []int
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			newlines = append(newlines, i)
		}
	}

	var issues []Issue
	for _, rule := range contentRules {
		for _, loc := range rule.Pattern.FindAllStringIndex(content, -1) {
			// Number of newlines strictly before the match start.
			before, _ := slices.BinarySearch(newlines, loc[0])
			issues = append(issues, Issue{
				Severity:    SeverityMedium,
				File:        file,
				Line:        before + 1,
				Description: rule.Description,
				Match:       content[loc[0]:loc[1]],
				Rule:        rule.ID,
			})
		}
	}
	return issues
}

func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
