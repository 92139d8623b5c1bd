// SPDX-License-Identifier: MPL-2.0

// Package config loads packaging defaults from an optional plugpack.toml
// and PLUGPACK_* environment variables.
//
// Precedence, highest first: command-line flags (applied by the CLI layer),
// environment variables, config file, built-in defaults. The config file is
// looked up in the current directory unless an explicit path is given; a
// missing file is not an error.
package config
