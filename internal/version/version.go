// SPDX-License-Identifier: MPL-2.0

package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalidTag indicates the tag is not a lowercase 'v' followed by a valid
// full semantic version.
var ErrInvalidTag = errors.New("invalid tag format")

// Version is a resolved semantic version. It is derived from a tag exactly
// once and read-only thereafter.
type Version struct {
	Major int
	Minor int
	Patch int
	// Prerelease is the pre-release identifier without the leading '-'
	// (e.g. "beta.1"). Empty for stable versions.
	Prerelease string
	// Build is the build metadata without the leading '+'. Empty when absent.
	Build string
}

// Resolve parses a version-control tag into a Version.
//
// The prefix check is case-sensitive and mandatory: "V1.2.3" and "1.2.3" are
// rejected. The remainder must be a full major.minor.patch triple — the
// shorthand forms the semver package tolerates ("v1", "v1.2") are not
// accepted for release tags.
func Resolve(tag string) (Version, error) {
	if !strings.HasPrefix(tag, "v") {
		return Version{}, fmt.Errorf("%w: %q must begin with lowercase 'v'", ErrInvalidTag, tag)
	}
	if !semver.IsValid(tag) {
		return Version{}, fmt.Errorf("%w: %q is not valid semver", ErrInvalidTag, tag)
	}

	build := semver.Build(tag)
	prerelease := semver.Prerelease(tag)

	// semver.Canonical completes shorthand forms (v1 -> v1.0.0) and strips
	// build metadata. Comparing it against the tag minus its build suffix
	// rejects tags that do not spell out the full triple.
	withoutBuild := strings.TrimSuffix(tag, build)
	if semver.Canonical(tag) != withoutBuild {
		return Version{}, fmt.Errorf("%w: %q must contain a full major.minor.patch triple", ErrInvalidTag, tag)
	}

	core := strings.TrimSuffix(withoutBuild, prerelease)
	parts := strings.Split(strings.TrimPrefix(core, "v"), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q must contain a full major.minor.patch triple", ErrInvalidTag, tag)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q has non-numeric segment %q", ErrInvalidTag, tag, p)
		}
		nums[i] = n
	}

	return Version{
		Major:      nums[0],
		Minor:      nums[1],
		Patch:      nums[2],
		Prerelease: strings.TrimPrefix(prerelease, "-"),
		Build:      strings.TrimPrefix(build, "+"),
	}, nil
}

// String renders the version without the 'v' prefix, e.g. "2.0.0-beta.1+ci.42".
func (v Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		b.WriteByte('-')
		b.WriteString(v.Prerelease)
	}
	if v.Build != "" {
		b.WriteByte('+')
		b.WriteString(v.Build)
	}
	return b.String()
}

// Tag renders the version as a release tag. For any tag accepted by Resolve,
// Resolve(tag).Tag() == tag.
func (v Version) Tag() string {
	return "v" + v.String()
}
