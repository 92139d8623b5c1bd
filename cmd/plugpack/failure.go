// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"plugpack/internal/bundle"
	"plugpack/internal/issue"
	"plugpack/internal/platform"
	"plugpack/internal/release"
	"plugpack/internal/version"
)

// issueFor maps an error to its remediation catalog entry. Returns 0 when
// no catalog entry applies.
func issueFor(err error) issue.Id {
	switch {
	case errors.Is(err, version.ErrInvalidTag):
		return issue.InvalidTagFormatId
	case errors.Is(err, platform.ErrUnknownPlatform):
		return issue.UnknownPlatformId
	case errors.Is(err, bundle.ErrSourceMissing):
		return issue.BundleSourceMissingId
	case errors.Is(err, bundle.ErrArchiveWrite):
		return issue.ArchiveWriteErrorId
	case errors.Is(err, release.ErrIncompleteRelease):
		return issue.IncompleteReleaseId
	default:
		return 0
	}
}

// renderFailure prints a failure in the CLI layer: the stage-and-platform
// error line first, then the catalog's remediation text if one applies.
func renderFailure(stderr io.Writer, err error) {
	if err == nil {
		return
	}

	var stageErr *issue.StageError
	if errors.As(err, &stageErr) {
		fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+stageErr.Format(verbose))
	} else {
		fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+err.Error())
	}

	id := issueFor(err)
	if id == 0 {
		return
	}

	if catalogEntry := issue.Get(id); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render("dark")
		if renderErr != nil {
			logger.Warn("failed to render issue catalog entry", "issueID", id, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}
