// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// dirBundler archives a directory bundle (a .vst3 tree) with the bundle
// directory itself as the archive root. Entry headers are built from lstat
// info so POSIX permission bits survive, symbolic links are stored as link
// entries whose body is the link target, and relative paths inside the
// bundle are kept exactly. Plain recursive compression would produce a
// structurally valid archive that loses the inner binary's executable bit —
// the failure only shows up when a host tries to load the extracted plugin.
type dirBundler struct{}

func (dirBundler) Bundle(ctx context.Context, source, dest string) (err error) {
	select {
	case <-ctx.Done():
		return fmt.Errorf("bundle canceled: %w", ctx.Err())
	default:
	}

	if _, err := statSource(source, true); err != nil {
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

	// The bundle directory name is the archive root so extraction yields
	// the .vst3 bundle directly.
	rootName := filepath.Base(source)

	walkErr := filepath.WalkDir(source, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walking %s: %w", path, walkErr)
		}

		relPath, relErr := filepath.Rel(source, path)
		if relErr != nil {
			return fmt.Errorf("relativizing %s: %w", path, relErr)
		}

		// Forward slashes for ZIP compatibility.
		zipPath := filepath.ToSlash(filepath.Join(rootName, relPath))

		// d.Info is lstat-based, so symlink entries describe the link
		// itself rather than its target.
		info, infoErr := d.Info()
		if infoErr != nil {
			return fmt.Errorf("reading metadata for %s: %w", path, infoErr)
		}

		header, headerErr := zip.FileInfoHeader(info)
		if headerErr != nil {
			return fmt.Errorf("creating archive header for %s: %w", path, headerErr)
		}
		header.Name = zipPath

		switch {
		case d.IsDir():
			header.Name += "/"
			if _, createErr := zw.CreateHeader(header); createErr != nil {
				return &WriteError{Dest: dest, Err: createErr}
			}
			return nil

		case info.Mode()&os.ModeSymlink != 0:
			// A dereferenced link would duplicate data and break the
			// relative structure the host expects. Store the target path
			// as the entry body; the mode bits in the header mark the
			// entry as a link.
			target, linkErr := os.Readlink(path)
			if linkErr != nil {
				return fmt.Errorf("reading symlink %s: %w", path, linkErr)
			}
			header.Method = zip.Store
			w, createErr := zw.CreateHeader(header)
			if createErr != nil {
				return &WriteError{Dest: dest, Err: createErr}
			}
			if _, writeErr := w.Write([]byte(target)); writeErr != nil {
				return &WriteError{Dest: dest, Err: writeErr}
			}
			return nil

		default:
			header.Method = zip.Deflate
			w, createErr := zw.CreateHeader(header)
			if createErr != nil {
				return &WriteError{Dest: dest, Err: createErr}
			}

			f, openErr := os.Open(path)
			if openErr != nil {
				return fmt.Errorf("opening %s: %w", path, openErr)
			}
			defer func() {
				// Read-only handle; close errors are exotic.
				_ = f.Close()
			}()

			if _, copyErr := io.Copy(w, f); copyErr != nil {
				return &WriteError{Dest: dest, Err: copyErr}
			}
			return nil
		}
	})
	if walkErr != nil {
		err = walkErr
		return err
	}

	return nil
}
