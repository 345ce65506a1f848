// SPDX-License-Identifier: MPL-2.0

package scanner

import "regexp"

// Severity ranks a security issue.
type Severity string

const (
	// SeverityLow marks informational findings.
	SeverityLow Severity = "low"
	// SeverityMedium marks a content pattern match.
	SeverityMedium Severity = "medium"
	// SeverityHigh marks a file that must never ship in a theme.
	SeverityHigh Severity = "high"
)

// Rule is a content pattern checked against every text file.
type Rule struct {
	ID          string
	Pattern     *regexp.Regexp
	Description string
}

// contentRules are evaluated in order; issue order within a file follows it.
var contentRules = []Rule{
	{"eval_call", regexp.MustCompile(`eval\s*\(`), "Potentially dangerous eval() usage"},
	{"function_constructor", regexp.MustCompile(`Function\s*\(`), "Potentially dangerous Function() constructor"},
	{"document_write", regexp.MustCompile(`document\.write`), "Potentially dangerous document.write()"},
	{"inner_html_assign", regexp.MustCompile(`innerHTML\s*=`), "Potentially dangerous innerHTML assignment"},
	{"external_script", regexp.MustCompile(`<script[^>]*src\s*=\s*["']https?://`), "External script loading"},
	{"exec_call", regexp.MustCompile(`exec\s*\(`), "Potentially dangerous exec()"},
	{"system_call", regexp.MustCompile(`system\s*\(`), "Potentially dangerous system() call"},
	{"shell_exec", regexp.MustCompile(`shell_exec`), "Potentially dangerous shell_exec()"},
	{"passthru", regexp.MustCompile(`passthru`), "Potentially dangerous passthru()"},
	{"path_traversal", regexp.MustCompile(`\.\./`), "Path traversal attempt"},
	{"remote_include", regexp.MustCompile(`file_get_contents\s*\(\s*["']https?://`), "Remote file inclusion"},
	{"sql_drop_table", regexp.MustCompile(`(?i)DROP\s+TABLE`), "Potential SQL injection"},
	{"sql_delete_from", regexp.MustCompile(`(?i)DELETE\s+FROM`), "Potential SQL injection"},
	{"sql_insert_into", regexp.MustCompile(`(?i)INSERT\s+INTO`), "Potential SQL injection"},
}

// suspiciousExtensions are executable or server-side script types.
var suspiciousExtensions = map[string]struct{}{
	"exe": {}, "dll": {}, "so": {}, "dylib": {},
	"bat": {}, "sh": {}, "ps1": {},
	"php": {}, "asp": {}, "aspx": {}, "jsp": {}, "cgi": {},
}

// textExtensions are the only files whose content is matched against rules.
var textExtensions = map[string]struct{}{
	"js": {}, "css": {}, "html": {}, "htm": {}, "json": {}, "txt": {}, "md": {},
}

// Rules returns a copy of the content rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(contentRules))
	copy(out, contentRules)
	return out
}

// IsSuspiciousExtension reports whether ext (lowercase, no dot) is flagged
// as a high severity file type.
func IsSuspiciousExtension(ext string) bool {
	_, ok := suspiciousExtensions[ext]
	return ok
}

func isTextExtension(ext string) bool {
	_, ok := textExtensions[ext]
	return ok
}
