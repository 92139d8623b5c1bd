// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"plugpack/internal/platform"
)

var (
	// nameTag is the release tag to resolve
	nameTag string
	// nameProduct is the product identifier used in the filename
	nameProduct string
	// namePlatform is the target platform
	namePlatform string

	// nameCmd derives the canonical archive filename without producing an
	// archive. Output is the bare filename for CI scripting.
	nameCmd = &cobra.Command{
		Use:   "name",
		Short: "Derive the canonical archive filename",
		Long: `Derive the canonical archive filename for a product, tag, and platform.

The name is fully determined by its inputs:
  <product>-v<major>.<minor>.<patch>[-<prerelease>]-<win64|macos>.zip

Examples:
  plugpack name --tag v1.0.4 --product tape_delay --platform macos
  plugpack name --tag v2.0.0-beta.1 --product tape_delay --platform windows`,
		RunE: runName,
	}
)

func init() {
	nameCmd.Flags().StringVar(&nameTag, "tag", "", "release tag to resolve (required)")
	nameCmd.Flags().StringVar(&nameProduct, "product", "", "product identifier used in the filename (required)")
	nameCmd.Flags().StringVar(&namePlatform, "platform", "", "target platform: windows or macos (required)")
	_ = nameCmd.MarkFlagRequired("tag")
	_ = nameCmd.MarkFlagRequired("platform")
}

func runName(cmd *cobra.Command, args []string) error {
	product := nameProduct
	if product == "" {
		product = cfg.Product
	}

	v, err := resolveTag(nameTag)
	if err != nil {
		renderFailure(cmd.ErrOrStderr(), err)
		return exitErr(err)
	}

	p, err := parsePlatform(namePlatform)
	if err != nil {
		renderFailure(cmd.ErrOrStderr(), err)
		return exitErr(err)
	}

	filename, err := nameArtifact(product, v, p)
	if err != nil {
		renderFailure(cmd.ErrOrStderr(), err)
		return exitErr(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), filename)
	return nil
}

// parsePlatform validates a platform flag value, attributing failures to
// the name stage.
func parsePlatform(s string) (platform.Platform, error) {
	p, err := platform.Parse(s)
	if err != nil {
		return "", wrapPlatformErr(err, s)
	}
	return p, nil
}
