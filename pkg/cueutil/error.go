// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue/errors"
)

// FormatError prefixes each CUE error in err with filePath and the field it
// concerns, e.g. "themepack.cue: limits.max_compression_ratio: invalid value
// 0 (out of bound >0)". Several errors are joined one per line.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	list := errors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	lines := make([]string, 0, len(list))
	for _, e := range list {
		lines = append(lines, describe(e))
	}
	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// describe renders one error as "<field>: <message>", dropping the field
// prefix CUE may already have put in the message.
func describe(e errors.Error) string {
	field := formatPath(errors.Path(e))
	msg := e.Error()
	if field == "" {
		return msg
	}
	if rest, ok := strings.CutPrefix(msg, field); ok {
		msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	}
	return field + ": " + msg
}

// formatPath joins CUE path selectors in JSON-path style:
// ["package", "exclude", "0"] becomes "package.exclude[0]".
func formatPath(path []string) string {
	var b strings.Builder
	for i, sel := range path {
		switch _, err := strconv.ParseUint(sel, 10, 64); {
		case err == nil && i > 0:
			b.WriteString("[" + sel + "]")
		case i > 0:
			b.WriteString("." + sel)
		default:
			b.WriteString(sel)
		}
	}
	return b.String()
}

// CheckFileSize returns an error when data is larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
