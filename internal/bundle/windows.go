// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// fileBundler archives a single-file build output (a renamed dynamic
// library with the plugin's binary-format extension). The file ends up at
// the archive root under its original name; ordinary deflate compression
// is used since Windows loadable binaries have no POSIX metadata to lose.
type fileBundler struct{}

func (fileBundler) Bundle(ctx context.Context, source, dest string) (err error) {
	select {
	case <-ctx.Done():
		return fmt.Errorf("bundle canceled: %w", ctx.Err())
	default:
	}

	info, err := statSource(source, false)
	if err != nil {
		return err
	}

	zipFile, err := os.Create(dest)
	if err != nil {
		return &WriteError{Dest: dest, Err: err}
	}
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = &WriteError{Dest: dest, Err: closeErr}
		}
		if err != nil {
			_ = os.Remove(dest)
		}
	}()

	zw := zip.NewWriter(zipFile)
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = &WriteError{Dest: dest, Err: closeErr}
		}
	}()

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("creating archive header for %s: %w", source, err)
	}
	header.Name = filepath.Base(source)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return &WriteError{Dest: dest, Err: err}
	}

	f, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("opening source %s: %w", source, err)
	}
	defer func() {
		// Read-only handle; close errors are exotic.
		_ = f.Close()
	}()

	if _, err := io.Copy(w, f); err != nil {
		return &WriteError{Dest: dest, Err: err}
	}

	return nil
}
