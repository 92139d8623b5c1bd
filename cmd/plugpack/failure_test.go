// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"plugpack/internal/bundle"
	"plugpack/internal/issue"
	"plugpack/internal/platform"
	"plugpack/internal/release"
	"plugpack/internal/version"
)

func TestIssueFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"invalid tag", fmt.Errorf("x: %w", version.ErrInvalidTag), issue.InvalidTagFormatId},
		{"unknown platform", fmt.Errorf("x: %w", platform.ErrUnknownPlatform), issue.UnknownPlatformId},
		{"source missing", fmt.Errorf("x: %w", bundle.ErrSourceMissing), issue.BundleSourceMissingId},
		{"archive write", &bundle.WriteError{Dest: "out.zip", Err: errors.New("disk full")}, issue.ArchiveWriteErrorId},
		{"incomplete release", fmt.Errorf("x: %w", release.ErrIncompleteRelease), issue.IncompleteReleaseId},
		{"unclassified", errors.New("boom"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := issueFor(tt.err); got != tt.want {
				t.Errorf("issueFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderFailureNamesPlatformAndStage(t *testing.T) {
	var buf bytes.Buffer
	err := issue.Wrap(fmt.Errorf("x: %w", bundle.ErrSourceMissing), issue.StageBundle, "macos")

	renderFailure(&buf, err)

	out := buf.String()
	if !strings.Contains(out, "bundle stage failed") {
		t.Errorf("output does not name the stage: %q", out)
	}
	if !strings.Contains(out, "macos") {
		t.Errorf("output does not name the platform: %q", out)
	}
	// The catalog remediation text follows the error line.
	if !strings.Contains(out, "Build output not found") {
		t.Errorf("output missing remediation guidance: %q", out)
	}
}

func TestRenderFailureNil(t *testing.T) {
	var buf bytes.Buffer
	renderFailure(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("renderFailure(nil) wrote output: %q", buf.String())
	}
}
