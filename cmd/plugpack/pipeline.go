// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"path/filepath"

	"plugpack/internal/artifact"
	"plugpack/internal/bundle"
	"plugpack/internal/issue"
	"plugpack/internal/platform"
	"plugpack/internal/version"
)

// The pipeline helpers wrap the core packages and pin every failure to its
// stage and platform before it reaches the CLI layer.

// wrapPlatformErr attributes a platform parse failure to the name stage,
// which is the first stage that needs a registered platform.
func wrapPlatformErr(err error, platformName string) error {
	return issue.Wrap(err, issue.StageName, platformName)
}

// resolveTag runs the resolve stage.
func resolveTag(tag string) (version.Version, error) {
	v, err := version.Resolve(tag)
	if err != nil {
		return version.Version{}, issue.Wrap(err, issue.StageResolve, "")
	}
	return v, nil
}

// nameArtifact runs the name stage for one platform.
func nameArtifact(product string, v version.Version, p platform.Platform) (string, error) {
	name, err := artifact.Name(product, v, p)
	if err != nil {
		return "", issue.Wrap(err, issue.StageName, string(p))
	}
	return name, nil
}

// bundleArtifact runs the name and bundle stages for one platform and
// returns the finished artifact record. dest overrides the canonical
// destination (distDir + canonical filename) when non-empty.
func bundleArtifact(ctx context.Context, product string, v version.Version, p platform.Platform, source, distDir, dest string) (artifact.Artifact, error) {
	filename, err := nameArtifact(product, v, p)
	if err != nil {
		return artifact.Artifact{}, err
	}

	if dest == "" {
		dest = filepath.Join(distDir, filename)
	}

	b, err := bundle.For(p)
	if err != nil {
		return artifact.Artifact{}, issue.Wrap(err, issue.StageBundle, string(p))
	}

	logger.Debug("bundling build output",
		"platform", p, "stage", issue.StageBundle, "source", source, "dest", dest)

	if err := b.Bundle(ctx, source, dest); err != nil {
		return artifact.Artifact{}, issue.Wrap(err, issue.StageBundle, string(p)).
			WithSuggestion("run the " + string(p) + " build first if the source is missing")
	}

	return artifact.Artifact{
		Filename: filename,
		Path:     dest,
		Platform: p,
		Version:  v,
	}, nil
}
