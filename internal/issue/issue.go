// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Id identifies a known fatal condition with a rendered help page.
type Id int

const (
	ManifestNotFoundId Id = iota + 1
	ManifestParseErrorId
	DependenciesNotSatisfiedId
	SetupHookFailedId
	SessionStartFailedId
	UnsupportedReportId
	CommandNotFoundId
)

// MarkdownMsg is the markdown body of an issue page.
type MarkdownMsg string

// Issue pairs an Id with the markdown help text rendered to the operator
// when the condition is fatal.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

// Id returns the issue identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue body for terminal display.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

// render is swapped in tests.
var render = glamour.Render

var (
	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No hatkfile found!

We searched for a toolkit manifest but couldn't find one.

## Search locations (in order of precedence):
1. Path given via --manifest
2. ./hatkfile.cue, ./hatkfile.toml
3. ~/.hatk/hatkfile.cue

## Things you can try:
- Create a manifest in your current directory:
~~~
$ hatk init
~~~

- Or point at an existing one:
~~~
$ hatk serve --manifest /path/to/hatkfile.cue
~~~`,
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Invalid hatkfile

A toolkit manifest was found but could not be parsed.

## Things you can try:
- Check the reported line for CUE (or TOML) syntax errors.
- Compare against a freshly scaffolded manifest:
~~~
$ hatk init hatkfile-example.cue
~~~
- Every module needs a ` + "`name`" + ` and a ` + "`kind`" + ` of
  "summary", "tables" or "graphs"; every command needs a ` + "`script`" + `.`,
	}

	dependenciesNotSatisfiedIssue = &Issue{
		id: DependenciesNotSatisfiedId,
		mdMsg: `
# Missing dependencies

The manifest declares dependencies that are not satisfied on this system.

## Things you can try:
- Run the diagnostics to see every failing check:
~~~
$ hatk check
~~~
- Install the missing tools, or adjust the manifest's ` + "`depends_on`" + `
  block if an alternative tool is acceptable.
- Skip validation at your own risk:
~~~
$ hatk serve --skip-checks
~~~`,
	}

	setupHookFailedIssue = &Issue{
		id: SetupHookFailedId,
		mdMsg: `
# Setup hook failed

A hook in the manifest's ` + "`setup`" + ` block exited non-zero, so the
session was not started. The hook's output is included in the error above.

## Things you can try:
- Run the failing script by hand from the manifest's directory.
- Hooks run with the manifest's ` + "`workdir`" + ` and ` + "`default_shell`" + `;
  check that both are what the script expects.
- Remove the hook from the ` + "`setup`" + ` block if it is no longer needed.`,
	}

	sessionStartFailedIssue = &Issue{
		id: SessionStartFailedId,
		mdMsg: `
# Session server failed to start

The interactive session could not bind its listen address.

## Things you can try:
- Check whether another process holds the port:
~~~
$ hatk serve --addr 127.0.0.1:0
~~~
  (port 0 auto-selects a free port)
- Review the ` + "`server`" + ` block of your manifest.`,
	}

	unsupportedReportIssue = &Issue{
		id: UnsupportedReportId,
		mdMsg: `
# Not a weekly summary report

Only 7-day summary reports are accepted by the summary analyzer. Single-day
reports are filtered out on purpose.

## Valid file name examples:
- ` + "`7 Days report (TATA Block-15 Bay-09).pdf`" + `
- ` + "`7 Days Report (TATA BLOCK-15 FEEDER-10).pdf`" + `
- ` + "`Weekly Summary Report.pdf`" + `

File names must contain "7 Days", "7 Day", "Seven Days", or "Weekly".`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Unknown command

The manifest does not declare a helper command with that name.

## Things you can try:
- List the declared commands:
~~~
$ hatk run
~~~
- Command names are matched exactly; check the ` + "`commands`" + ` block
  of your manifest for the spelling.`,
	}

	issuesById = map[Id]*Issue{
		ManifestNotFoundId:         manifestNotFoundIssue,
		ManifestParseErrorId:       manifestParseErrorIssue,
		DependenciesNotSatisfiedId: dependenciesNotSatisfiedIssue,
		SetupHookFailedId:          setupHookFailedIssue,
		SessionStartFailedId:       sessionStartFailedIssue,
		UnsupportedReportId:        unsupportedReportIssue,
		CommandNotFoundId:          commandNotFoundIssue,
	}
)

// Lookup returns the catalog issue for id, or nil when the condition has no
// dedicated help page.
func Lookup(id Id) *Issue {
	return issuesById[id]
}

// KnownIds returns the catalog ids in ascending order.
func KnownIds() []Id {
	ids := make([]Id, 0, len(issuesById))
	for id := range issuesById {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
