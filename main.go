// SPDX-License-Identifier: MPL-2.0

// plugpack is a release-packaging CLI for compiled audio-plugin builds.
package main

import (
	"plugpack/cmd/plugpack"
)

func main() {
	cmd.Execute()
}
