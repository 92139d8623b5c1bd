// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for plugpack.
//
// This package implements the Cobra command hierarchy for the plugpack CLI:
// the root command plus subcommands for resolving release tags, deriving
// canonical artifact names, bundling per-platform build outputs, and
// composing the full release set.
package cmd
