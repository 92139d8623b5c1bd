// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"plugpack/internal/artifact"
	"plugpack/internal/issue"
	"plugpack/internal/platform"
	"plugpack/internal/release"
)

var (
	// releaseTag is the release tag to resolve
	releaseTag string
	// releaseProduct is the product identifier used in filenames
	releaseProduct string
	// releasePlatforms are the platforms the release must cover
	releasePlatforms []string
	// releaseSources maps platform names to build output paths
	releaseSources map[string]string
	// releaseDist is the directory archives and the manifest are written to
	releaseDist string
	// releaseManifest enables writing the TOML release manifest
	releaseManifest bool

	// releaseCmd bundles every required platform and composes the release.
	releaseCmd = &cobra.Command{
		Use:   "release",
		Short: "Bundle all required platforms and compose the release set",
		Long: `Bundle all required platforms and compose the release set.

Per-platform bundling runs in parallel; the platforms are independent and a
failure on one never aborts or corrupts the others. Composition only happens
after every platform has finished, and fails if any required platform is
missing its archive — a release is never published with a partial set.

With --manifest, a release.toml with per-archive SHA-256 checksums is
written next to the archives.

Examples:
  plugpack release --tag v1.0.4 --product tape_delay \
    --source windows=./win/tape_delay.vst3 \
    --source macos=./mac/tape_delay.vst3 --dist ./dist --manifest`,
		RunE: runRelease,
	}
)

func init() {
	releaseCmd.Flags().StringVar(&releaseTag, "tag", "", "release tag to resolve (required)")
	releaseCmd.Flags().StringVar(&releaseProduct, "product", "", "product identifier used in filenames")
	releaseCmd.Flags().StringSliceVar(&releasePlatforms, "platforms", nil, "platforms the release must cover (default: from config)")
	releaseCmd.Flags().StringToStringVar(&releaseSources, "source", nil, "build output path per platform, e.g. --source macos=./tape_delay.vst3")
	releaseCmd.Flags().StringVar(&releaseDist, "dist", "", "directory archives are written to (default: from config)")
	releaseCmd.Flags().BoolVar(&releaseManifest, "manifest", false, "write a release.toml manifest with SHA-256 checksums")
	_ = releaseCmd.MarkFlagRequired("tag")
}

// releaseResult carries one platform's bundling outcome across the join point.
type releaseResult struct {
	platform platform.Platform
	artifact artifact.Artifact
	err      error
}

func runRelease(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()
	out := cmd.OutOrStdout()

	product := releaseProduct
	if product == "" {
		product = cfg.Product
	}
	distDir := releaseDist
	if distDir == "" {
		distDir = cfg.Dist
	}

	v, err := resolveTag(releaseTag)
	if err != nil {
		renderFailure(stderr, err)
		return exitErr(err)
	}

	required, err := requiredPlatforms()
	if err != nil {
		renderFailure(stderr, err)
		return exitErr(err)
	}

	sources := mergedSources()
	for _, p := range required {
		if sources[string(p)] == "" {
			err := issue.Wrap(
				fmt.Errorf("no build output configured for %s", p),
				issue.StageBundle, string(p),
			).WithSuggestion("pass --source " + string(p) + "=<path> or add it to the [sources] table in plugpack.toml")
			renderFailure(stderr, err)
			return exitErr(err)
		}
	}

	fmt.Fprintln(out, TitleStyle.Render("Release "+v.Tag()))

	// One goroutine per platform; no shared mutable state beyond each
	// goroutine's own result slot. Wait is the barrier: composition never
	// starts before every platform has finished, and a failed platform
	// neither cancels nor corrupts the others.
	results := make([]releaseResult, len(required))
	var g errgroup.Group
	for i, p := range required {
		g.Go(func() error {
			a, bundleErr := bundleArtifact(cmd.Context(), product, v, p, sources[string(p)], distDir, "")
			results[i] = releaseResult{platform: p, artifact: a, err: bundleErr}
			return bundleErr
		})
	}
	_ = g.Wait()

	// Report every platform's outcome independently before deciding.
	var artifacts []artifact.Artifact
	var firstErr error
	for _, r := range results {
		if r.err != nil {
			renderFailure(stderr, r.err)
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		fmt.Fprintln(out, SuccessStyle.Render("✓ ")+"bundled "+string(r.platform)+" → "+PathStyle.Render(r.artifact.Path))
		artifacts = append(artifacts, r.artifact)
	}

	rel, err := release.Compose(v, artifacts, required)
	if err != nil {
		err = issue.Wrap(err, issue.StageCompose, "")
		renderFailure(stderr, err)
		if firstErr != nil {
			// The taxonomy code of the underlying bundle failure is more
			// actionable than the composition failure it caused.
			return exitErr(firstErr)
		}
		return exitErr(err)
	}

	if releaseManifest {
		manifestPath := filepath.Join(distDir, "release.toml")
		if err := release.WriteManifest(manifestPath, rel); err != nil {
			err = issue.Wrap(err, issue.StageCompose, "")
			renderFailure(stderr, err)
			return exitErr(err)
		}
		fmt.Fprintln(out, SuccessStyle.Render("✓ ")+"manifest → "+PathStyle.Render(manifestPath))
	}

	fmt.Fprintln(out, SuccessStyle.Render(rel.Title)+" complete: "+fmt.Sprintf("%d artifacts", len(rel.Artifacts)))
	return nil
}

// requiredPlatforms resolves the platform set from flags or config.
func requiredPlatforms() ([]platform.Platform, error) {
	names := releasePlatforms
	if len(names) == 0 {
		names = cfg.Platforms
	}

	required := make([]platform.Platform, 0, len(names))
	for _, name := range names {
		p, err := platform.Parse(name)
		if err != nil {
			return nil, wrapPlatformErr(err, name)
		}
		required = append(required, p)
	}
	return required, nil
}

// mergedSources layers --source flags over the config's [sources] table.
func mergedSources() map[string]string {
	merged := make(map[string]string, len(cfg.Sources)+len(releaseSources))
	for k, v := range cfg.Sources {
		merged[k] = v
	}
	for k, v := range releaseSources {
		merged[k] = v
	}
	return merged
}
