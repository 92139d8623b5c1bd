// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"context"
	"errors"
	"fmt"
	"os"

	"plugpack/internal/platform"
)

var (
	// ErrSourceMissing indicates the build output path does not exist or
	// does not have the shape the platform strategy expects.
	ErrSourceMissing = errors.New("bundle source missing")

	// ErrArchiveWrite indicates the destination archive could not be
	// created or written.
	ErrArchiveWrite = errors.New("archive write failed")
)

// WriteError provides details about a failed archive write. It wraps
// ErrArchiveWrite so callers can use errors.Is for classification.
type WriteError struct {
	Dest string
	Err  error
}

// Error returns a human-readable description of the write failure.
func (e *WriteError) Error() string {
	return fmt.Sprintf("writing archive %s: %v", e.Dest, e.Err)
}

// Unwrap returns ErrArchiveWrite so callers can use errors.Is.
func (e *WriteError) Unwrap() error { return ErrArchiveWrite }

// Bundler compresses one build output into one archive file at dest.
// Implementations never mutate the source and write exactly one file;
// on failure any partially written destination is removed.
type Bundler interface {
	Bundle(ctx context.Context, source, dest string) error
}

// For returns the bundling strategy registered for the platform.
func For(p platform.Platform) (Bundler, error) {
	switch p {
	case platform.Windows:
		return fileBundler{}, nil
	case platform.MacOS:
		return dirBundler{}, nil
	default:
		return nil, fmt.Errorf("%w: no bundling strategy for %q", platform.ErrUnknownPlatform, string(p))
	}
}

// statSource validates the source path exists and matches the expected
// shape before any archive file is created.
func statSource(source string, wantDir bool) (os.FileInfo, error) {
	info, err := os.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceMissing, source)
		}
		return nil, fmt.Errorf("reading source %s: %w", source, err)
	}
	if wantDir && !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory bundle", ErrSourceMissing, source)
	}
	if !wantDir && info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory, expected a single file", ErrSourceMissing, source)
	}
	return info, nil
}
