// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

// Stage names a step of the packaging pipeline for failure attribution.
type Stage string

const (
	StageResolve Stage = "resolve"
	StageName    Stage = "name"
	StageBundle  Stage = "bundle"
	StageCompose Stage = "compose"
)

// StageError is an error pinned to the pipeline stage and platform it
// occurred on. Every user-visible failure goes through one of these so the
// output always answers "which platform, which stage" — a permission-loss
// bug reported as a bare I/O error would otherwise be chased on the wrong
// machine.
type StageError struct {
	// Stage is the pipeline step that failed.
	Stage Stage

	// Platform names the target the failure belongs to. Empty for
	// platform-independent stages (resolve, compose).
	Platform string

	// Suggestions provides hints on how to fix the issue (optional).
	Suggestions []string

	// Cause is the underlying error (required).
	Cause error
}

// Wrap pins err to a stage and platform. Returns nil if err is nil.
func Wrap(err error, stage Stage, platform string) *StageError {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Platform: platform, Cause: err}
}

// WithSuggestion adds a remediation hint. Can be called multiple times.
func (e *StageError) WithSuggestion(s string) *StageError {
	e.Suggestions = append(e.Suggestions, s)
	return e
}

// Error implements the error interface.
// Returns a concise message suitable for default (non-verbose) output.
func (e *StageError) Error() string {
	var msg strings.Builder

	msg.WriteString(string(e.Stage))
	msg.WriteString(" stage failed")

	if e.Platform != "" {
		msg.WriteString(" for ")
		msg.WriteString(e.Platform)
	}

	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the underlying cause for use with errors.Is/As.
func (e *StageError) Unwrap() error {
	return e.Cause
}

// Format returns a formatted message with optional verbosity.
//
// When verbose is false:
//
//	<stage> stage failed for <platform>: <cause message>
//	  • <suggestion 1>
//	  • <suggestion 2>
//
// When verbose is true, additionally includes the full error chain.
func (e *StageError) Format(verbose bool) string {
	var msg strings.Builder

	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, suggestion := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(suggestion)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		err := e.Cause
		depth := 1
		for err != nil {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			err = errors.Unwrap(err)
			depth++
		}
	}

	return msg.String()
}
