// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"plugpack/internal/bundle"
	"plugpack/internal/platform"
	"plugpack/internal/release"
	"plugpack/internal/version"
)

// Exit codes, one per failure kind so CI jobs can branch on the cause.
const (
	exitFailure           = 1
	exitInvalidTag        = 2
	exitUnknownPlatform   = 3
	exitSourceMissing     = 4
	exitArchiveWrite      = 5
	exitIncompleteRelease = 6
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps an error to its taxonomy exit code.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, version.ErrInvalidTag):
		return exitInvalidTag
	case errors.Is(err, platform.ErrUnknownPlatform):
		return exitUnknownPlatform
	case errors.Is(err, bundle.ErrSourceMissing):
		return exitSourceMissing
	case errors.Is(err, bundle.ErrArchiveWrite):
		return exitArchiveWrite
	case errors.Is(err, release.ErrIncompleteRelease):
		return exitIncompleteRelease
	default:
		return exitFailure
	}
}

// exitErr wraps err with its taxonomy exit code for propagation through
// fang back to Execute.
func exitErr(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: exitCodeFor(err), Err: err}
}
