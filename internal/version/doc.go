// SPDX-License-Identifier: MPL-2.0

// Package version resolves version-control tags into structured semantic
// versions.
//
// A release tag must be the lowercase letter 'v' followed by a full
// major.minor.patch triple, optionally extended with SemVer pre-release
// and build-metadata suffixes (e.g. "v1.0.4", "v2.0.0-beta.1+ci.42").
// Resolution strips exactly the leading 'v' and nothing else; formatting
// the resolved version back with Tag reproduces the original tag.
package version
