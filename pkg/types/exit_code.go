// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared by the CLI and its packages.
package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitSuccess reports a completed command, a valid theme or a clean scan.
	ExitSuccess ExitCode = 0
	// ExitFailure reports a failed operation, an invalid theme or scan findings.
	ExitFailure ExitCode = 1
	// ExitUsage reports bad flags or arguments.
	ExitUsage ExitCode = 2
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode is a process exit status in the POSIX range 0-255.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside 0-255.
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode for errors.Is() compatibility.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside 0-255.
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// FromBool maps a pass/fail outcome to ExitSuccess or ExitFailure.
func FromBool(ok bool) ExitCode {
	if ok {
		return ExitSuccess
	}
	return ExitFailure
}
