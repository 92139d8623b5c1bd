// SPDX-License-Identifier: MPL-2.0

// Package release assembles the published unit for one version: the full
// set of per-platform archive artifacts plus a human-readable title.
package release

import (
	"errors"
	"fmt"
	"strings"

	"plugpack/internal/artifact"
	"plugpack/internal/platform"
	"plugpack/internal/version"
)

// ErrIncompleteRelease indicates the artifact set does not cover every
// required platform. A release is never silently published with fewer
// artifacts than required.
var ErrIncompleteRelease = errors.New("incomplete release")

// Release is the published unit: one version, one title, and an archive
// artifact for every platform in scope.
type Release struct {
	Version   version.Version
	Title     string
	Artifacts []artifact.Artifact
}

// Compose validates that artifacts covers every platform in required and
// assembles the Release. Artifacts are ordered by the required platform
// list, so output is deterministic regardless of bundling completion order.
// Compose has no network or persistence side effects.
func Compose(v version.Version, artifacts []artifact.Artifact, required []platform.Platform) (*Release, error) {
	byPlatform := make(map[platform.Platform]artifact.Artifact, len(artifacts))
	for _, a := range artifacts {
		if _, ok := byPlatform[a.Platform]; !ok {
			byPlatform[a.Platform] = a
		}
	}

	var missing []string
	ordered := make([]artifact.Artifact, 0, len(required))
	for _, p := range required {
		a, ok := byPlatform[p]
		if !ok {
			missing = append(missing, string(p))
			continue
		}
		ordered = append(ordered, a)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing artifacts for %s", ErrIncompleteRelease, strings.Join(missing, ", "))
	}

	return &Release{
		Version:   v,
		Title:     "Release " + v.Tag(),
		Artifacts: ordered,
	}, nil
}
