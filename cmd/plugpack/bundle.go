// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"plugpack/internal/platform"
)

var (
	// bundleTag is the release tag to resolve
	bundleTag string
	// bundleProduct is the product identifier used in the filename
	bundleProduct string
	// bundlePlatform is the target platform
	bundlePlatform string
	// bundleSource is the path to the build output (file or directory)
	bundleSource string
	// bundleDest overrides the destination archive path
	bundleDest string

	// bundleCmd produces one platform archive from one build output.
	bundleCmd = &cobra.Command{
		Use:   "bundle",
		Short: "Bundle one platform's build output into a release archive",
		Long: `Bundle one platform's build output into a release archive.

The bundling strategy is chosen by platform. Windows expects a single
renamed dynamic library and applies plain deflate compression. macOS expects
a .vst3 directory bundle and preserves symbolic links as links and POSIX
permission bits on every member — losing the inner binary's executable bit
would leave the plugin unloadable after extraction.

The destination defaults to the canonical archive name inside the dist
directory; --dest overrides it.

Examples:
  plugpack bundle --tag v1.0.4 --product tape_delay --platform windows \
    --source ./target/tape_delay.vst3
  plugpack bundle --tag v1.0.4 --product tape_delay --platform macos \
    --source ./target/bundled/tape_delay.vst3 --dest ./dist/out.zip`,
		RunE: runBundle,
	}
)

func init() {
	bundleCmd.Flags().StringVar(&bundleTag, "tag", "", "release tag to resolve (required)")
	bundleCmd.Flags().StringVar(&bundleProduct, "product", "", "product identifier used in the filename")
	bundleCmd.Flags().StringVar(&bundlePlatform, "platform", "", "target platform: windows or macos (required)")
	bundleCmd.Flags().StringVar(&bundleSource, "source", "", "path to the build output, file or directory (required)")
	bundleCmd.Flags().StringVar(&bundleDest, "dest", "", "destination archive path (default: canonical name in the dist directory)")
	_ = bundleCmd.MarkFlagRequired("tag")
	_ = bundleCmd.MarkFlagRequired("platform")
	_ = bundleCmd.MarkFlagRequired("source")
}

func runBundle(cmd *cobra.Command, args []string) error {
	product := bundleProduct
	if product == "" {
		product = cfg.Product
	}

	v, err := resolveTag(bundleTag)
	if err != nil {
		renderFailure(cmd.ErrOrStderr(), err)
		return exitErr(err)
	}

	p, err := parsePlatform(bundlePlatform)
	if err != nil {
		renderFailure(cmd.ErrOrStderr(), err)
		return exitErr(err)
	}

	a, err := bundleArtifact(cmd.Context(), product, v, p, bundleSource, cfg.Dist, bundleDest)
	if err != nil {
		renderFailure(cmd.ErrOrStderr(), err)
		return exitErr(err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, SuccessStyle.Render("✓ ")+"bundled "+string(a.Platform)+" → "+PathStyle.Render(a.Path))
	if p == platform.MacOS {
		fmt.Fprintln(out, SubtitleStyle.Render("  note: unsigned macOS archives require the consumer to clear the quarantine attribute before first use"))
	}
	return nil
}
