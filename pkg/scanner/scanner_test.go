// SPDX-License-Identifier: MPL-2.0

package scanner

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/3000studios/themepack/internal/testutil"
)

func TestScanDirectory(t *testing.T) {
	t.Parallel()

	t.Run("eval reports one medium issue with line", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := testutil.MustWriteFile(t, dir, "js/app.js", []byte("// header\nconst a = 1;\neval(x)\n"))

		issues, err := New().ScanDirectory(dir)
		if err != nil {
			t.Fatalf("ScanDirectory() failed: %v", err)
		}
		if len(issues) != 1 {
			t.Fatalf("got %d issues, want 1: %v", len(issues), issues)
		}
		got := issues[0]
		if got.Severity != SeverityMedium {
			t.Errorf("Severity = %s, want medium", got.Severity)
		}
		if got.Line != 3 {
			t.Errorf("Line = %d, want 3", got.Line)
		}
		if got.Match != "eval(" {
			t.Errorf("Match = %q, want %q", got.Match, "eval(")
		}
		if got.File != path {
			t.Errorf("File = %q, want %q", got.File, path)
		}
		if got.Rule != "eval_call" {
			t.Errorf("Rule = %q, want eval_call", got.Rule)
		}
	})

	t.Run("exe reports one high issue regardless of content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		testutil.MustWriteFile(t, dir, "setup.EXE", []byte("eval(x) system(y)"))

		issues, err := New().ScanDirectory(dir)
		if err != nil {
			t.Fatalf("ScanDirectory() failed: %v", err)
		}
		if len(issues) != 1 {
			t.Fatalf("got %d issues, want 1: %v", len(issues), issues)
		}
		if issues[0].Severity != SeverityHigh || issues[0].Line != 0 {
			t.Errorf("issue = %+v, want high without line", issues[0])
		}
	})

	t.Run("every match is reported in rule order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		content := "eval(a)\nx.innerHTML = y\neval (b)\nDrop Table users;\n"
		testutil.MustWriteFile(t, dir, "page.html", []byte(content))

		issues, err := New().ScanDirectory(dir)
		if err != nil {
			t.Fatalf("ScanDirectory() failed: %v", err)
		}
		want := []struct {
			rule string
			line int
		}{
			{"eval_call", 1},
			{"eval_call", 3},
			{"inner_html_assign", 2},
			{"sql_drop_table", 4},
		}
		if len(issues) != len(want) {
			t.Fatalf("got %d issues, want %d: %v", len(issues), len(want), issues)
		}
		for i, w := range want {
			if issues[i].Rule != w.rule || issues[i].Line != w.line {
				t.Errorf("issue[%d] = %s:%d, want %s:%d", i, issues[i].Rule, issues[i].Line, w.rule, w.line)
			}
		}
	})

	t.Run("non text files are not matched", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		testutil.MustWriteFile(t, dir, "img/logo.png", []byte("eval(x)"))

		issues, err := New().ScanDirectory(dir)
		if err != nil {
			t.Fatalf("ScanDirectory() failed: %v", err)
		}
		if len(issues) != 0 {
			t.Errorf("got %v, want no issues", issues)
		}
	})

	t.Run("invalid utf-8 is tolerated", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		testutil.MustWriteFile(t, dir, "a.txt", []byte("\xff\xfe\nshell_exec"))

		issues, err := New().ScanDirectory(dir)
		if err != nil {
			t.Fatalf("ScanDirectory() failed: %v", err)
		}
		if len(issues) != 1 || issues[0].Line != 2 {
			t.Errorf("got %v, want one issue on line 2", issues)
		}
	})

	t.Run("unreadable file is skipped", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("file permissions are not enforced")
		}
		dir := t.TempDir()
		path := testutil.MustWriteFile(t, dir, "secret.js", []byte("eval(x)"))
		if err := os.Chmod(path, 0o000); err != nil {
			t.Fatal(err)
		}

		issues, err := New().ScanDirectory(dir)
		if err != nil {
			t.Fatalf("ScanDirectory() failed: %v", err)
		}
		if len(issues) != 0 {
			t.Errorf("got %v, want no issues", issues)
		}
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := New().ScanDirectory(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("ScanDirectory() error = nil, want error")
		}
	})
}

func TestReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.MustWriteFile(t, dir, "run.sh", []byte("echo"))
	testutil.MustWriteFile(t, dir, "app.js", []byte("document.write(1); passthru"))

	r, err := New().Report(dir)
	if err != nil {
		t.Fatalf("Report() failed: %v", err)
	}
	if r.TotalIssues != 3 || r.HighSeverity != 1 || r.MediumSeverity != 2 || r.LowSeverity != 0 {
		t.Errorf("Report() = %+v", r)
	}
	// app.js sorts before run.sh.
	if r.Issues[0].Rule != "document_write" || r.Issues[2].Severity != SeverityHigh {
		t.Errorf("issue order = %v", r.Issues)
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	t.Parallel()

	rules := Rules()
	if len(rules) != 14 {
		t.Fatalf("len(Rules()) = %d, want 14", len(rules))
	}
	rules[0].ID = "changed"
	if Rules()[0].ID != "eval_call" {
		t.Error("Rules() exposes the internal table")
	}
}
