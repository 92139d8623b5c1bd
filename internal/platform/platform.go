// SPDX-License-Identifier: MPL-2.0

// Package platform enumerates the distribution targets a plugin build is
// packaged for and the archive conventions attached to each one.
package platform

import (
	"errors"
	"fmt"
)

// Platform identifies a distribution target.
type Platform string

const (
	// Windows builds are a single renamed dynamic library (.vst3 file).
	Windows Platform = "windows"
	// MacOS builds are a .vst3 directory bundle with an executable binary
	// and metadata members inside.
	MacOS Platform = "macos"
)

// ErrUnknownPlatform indicates a platform with no registered packaging rules.
var ErrUnknownPlatform = errors.New("unknown platform")

// rules describes the packaging conventions for one platform.
type rules struct {
	// suffix is the platform component of the archive filename.
	suffix string
	// bundleIsDir is true when the build output is a directory bundle
	// rather than a single file.
	bundleIsDir bool
}

// registry holds per-platform packaging rules. Adding a platform means
// adding an entry here plus a bundling strategy; existing platforms are
// untouched.
var registry = map[Platform]rules{
	Windows: {suffix: "win64"},
	MacOS:   {suffix: "macos", bundleIsDir: true},
}

// All returns the registered platforms in a fixed, deterministic order.
func All() []Platform {
	return []Platform{Windows, MacOS}
}

// Parse validates a platform name from user input (flags, config).
func Parse(s string) (Platform, error) {
	p := Platform(s)
	if _, ok := registry[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return p, nil
}

// Suffix returns the archive filename component for the platform
// (e.g. "win64", "macos").
func (p Platform) Suffix() (string, error) {
	r, ok := registry[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, string(p))
	}
	return r.suffix, nil
}

// BundleIsDir reports whether the platform's build output is a directory
// bundle. Unregistered platforms report false.
func (p Platform) BundleIsDir() bool {
	return registry[p].bundleIsDir
}

// String implements fmt.Stringer for log fields and error messages.
func (p Platform) String() string {
	return string(p)
}
