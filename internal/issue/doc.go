// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// It carries two things: a StageError type that pins every failure to the
// pipeline stage and platform it occurred on, and a catalog of Markdown
// remediation texts keyed by failure kind, rendered for the terminal. A lost
// executable bit on a macOS bundle is invisible until an end user's host
// refuses to load the plugin, so failure output here is part of the contract,
// not decoration.
package issue
