// SPDX-License-Identifier: MPL-2.0

// Package artifact derives canonical archive filenames and carries the
// record of a produced archive.
package artifact

import (
	"errors"
	"fmt"
	"strings"

	"plugpack/internal/platform"
	"plugpack/internal/version"
)

// ErrInvalidProduct indicates the product identifier cannot be used in an
// archive filename.
var ErrInvalidProduct = errors.New("invalid product name")

// Artifact is the record of a named, compressed archive ready for
// publication. Immutable once the bundler has written it.
type Artifact struct {
	// Filename is the canonical archive name, fully determined by
	// (product, version, platform).
	Filename string
	// Path is where the archive was written.
	Path string
	// Platform the archive was bundled for.
	Platform platform.Platform
	// Version the archive was built from.
	Version version.Version
}

// Name derives the canonical archive filename:
//
//	<product>-v<major>.<minor>.<patch>[-<prerelease>]-<suffix>.zip
//
// The full pre-release string is carried verbatim in the version component.
// Identical inputs always yield byte-identical output — no timestamps, no
// randomness.
func Name(product string, v version.Version, p platform.Platform) (string, error) {
	if err := validateProduct(product); err != nil {
		return "", err
	}
	suffix, err := p.Suffix()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s.zip", product, v.Tag(), suffix), nil
}

// validateProduct rejects product identifiers that would break the archive
// name or its extraction on any target platform.
func validateProduct(product string) error {
	switch {
	case product == "":
		return fmt.Errorf("%w: product must not be empty", ErrInvalidProduct)
	case strings.ContainsAny(product, `/\`):
		return fmt.Errorf("%w: %q must not contain path separators", ErrInvalidProduct, product)
	case strings.ContainsAny(product, " \t\n"):
		return fmt.Errorf("%w: %q must not contain whitespace", ErrInvalidProduct, product)
	case platform.IsWindowsReservedName(product):
		return fmt.Errorf("%w: %q is a reserved filename on Windows", ErrInvalidProduct, product)
	}
	return nil
}
