// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// resolveCmd resolves a version-control tag into a semantic version. Output
// is the bare version string so CI scripts can capture it directly.
var resolveCmd = &cobra.Command{
	Use:   "resolve <tag>",
	Short: "Resolve a release tag into a semantic version",
	Long: `Resolve a release tag into a semantic version.

The tag must be a lowercase 'v' followed by a full major.minor.patch triple,
optionally extended with SemVer pre-release/build suffixes. The prefix check
is case-sensitive: 'v1.2.3' resolves, 'V1.2.3' and '1.2.3' are rejected.

Examples:
  plugpack resolve v1.0.4
  plugpack resolve v2.0.0-beta.1`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	v, err := resolveTag(args[0])
	if err != nil {
		renderFailure(cmd.ErrOrStderr(), err)
		return exitErr(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), v.String())
	return nil
}
