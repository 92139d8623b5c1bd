// SPDX-License-Identifier: MPL-2.0

package release

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type (
	// Manifest is the TOML record written next to the archives. Publishing
	// tooling reads it to know what belongs to the release and to verify
	// the archives arrived intact.
	Manifest struct {
		Version   string             `toml:"version"`
		Title     string             `toml:"title"`
		Artifacts []ManifestArtifact `toml:"artifact"`
	}

	// ManifestArtifact describes one archive in the release set.
	ManifestArtifact struct {
		Platform string `toml:"platform"`
		Filename string `toml:"filename"`
		SHA256   string `toml:"sha256"`
	}
)

// BuildManifest hashes every artifact in the release and assembles the
// manifest record. Artifact order follows the release's artifact order.
func BuildManifest(rel *Release) (*Manifest, error) {
	m := &Manifest{
		Version: rel.Version.String(),
		Title:   rel.Title,
	}
	for _, a := range rel.Artifacts {
		hash, err := computeFileHash(a.Path)
		if err != nil {
			return nil, fmt.Errorf("hashing artifact for %s: %w", a.Platform, err)
		}
		m.Artifacts = append(m.Artifacts, ManifestArtifact{
			Platform: string(a.Platform),
			Filename: a.Filename,
			SHA256:   hash,
		})
	}
	return m, nil
}

// WriteManifest builds the manifest for rel and writes it as TOML at path.
func WriteManifest(path string, rel *Release) error {
	m, err := BuildManifest(rel)
	if err != nil {
		return err
	}

	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// computeFileHash streams the file at path through SHA256 and returns the
// lowercase hex digest.
func computeFileHash(path string) (_ string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		// Read-only file handle; close errors are exotic.
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing file %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
