// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	InvalidTagFormatId Id = iota + 1
	UnknownPlatformId
	BundleSourceMissingId
	ArchiveWriteErrorId
	IncompleteReleaseId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // docs about the issue type, if any
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	invalidTagFormatIssue = &Issue{
		id: InvalidTagFormatId,
		mdMsg: `
# Invalid release tag!

The tag could not be resolved into a semantic version.

## Expected format
~~~
v<major>.<minor>.<patch>[-<prerelease>][+<build>]
~~~

The leading 'v' is mandatory and case-sensitive: ` + "`v1.2.3`" + ` is valid,
` + "`V1.2.3`" + ` and ` + "`1.2.3`" + ` are not.

## Things you can try:
- Check the tag you pushed:
~~~
$ git describe --tags
~~~
- Re-tag the release with a full major.minor.patch triple`,
	}

	unknownPlatformIssue = &Issue{
		id: UnknownPlatformId,
		mdMsg: `
# Unknown platform!

The platform has no registered archive suffix or bundling strategy.

## Supported platforms:
- **windows** — single-file build output, archived as ` + "`-win64.zip`" + `
- **macos** — directory bundle build output, archived as ` + "`-macos.zip`" + `

## Things you can try:
- Check the ` + "`--platform`" + ` flag for typos
- Check the ` + "`platforms`" + ` list in plugpack.toml`,
	}

	bundleSourceMissingIssue = &Issue{
		id: BundleSourceMissingId,
		mdMsg: `
# Build output not found!

The source path does not exist, or does not have the shape this platform's
bundler expects (single file on Windows, directory bundle on macOS).

## Things you can try:
- Run the platform build first and confirm its output path
- Check the ` + "`--source`" + ` flag or the ` + "`[sources]`" + ` table in plugpack.toml
- On macOS, point at the ` + "`.vst3`" + ` bundle directory itself, not a file inside it`,
	}

	archiveWriteErrorIssue = &Issue{
		id: ArchiveWriteErrorId,
		mdMsg: `
# Could not write the archive!

The destination file could not be created or written.

## Things you can try:
- Check free disk space and write permissions on the destination directory
- Create the destination directory before bundling:
~~~
$ mkdir -p dist
~~~
- Partial archives are removed automatically; re-run once the cause is fixed`,
	}

	incompleteReleaseIssue = &Issue{
		id: IncompleteReleaseId,
		mdMsg: `
# Incomplete release!

An archive is missing for at least one required platform. A release is never
published with fewer artifacts than required — a missing platform would only
be noticed by the users on it.

## Things you can try:
- Check the per-platform bundle failures reported above; fixing those
  usually completes the set
- If a platform is intentionally out of scope, remove it from the
  ` + "`platforms`" + ` list in plugpack.toml`,
	}

	issues = map[Id]*Issue{
		invalidTagFormatIssue.Id():    invalidTagFormatIssue,
		unknownPlatformIssue.Id():     unknownPlatformIssue,
		bundleSourceMissingIssue.Id(): bundleSourceMissingIssue,
		archiveWriteErrorIssue.Id():   archiveWriteErrorIssue,
		incompleteReleaseIssue.Id():   incompleteReleaseIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
