// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	ConfigNotFoundId Id = iota + 1
	ConfigInvalidId
	StubNotFoundId
	ModuleNotFoundId
	ModuleExistsId
	FileExistsId
	RegistrationFailedId
	CacheWriteFailedId
)

type (
	// Id identifies an Issue.
	Id int

	// MarkdownMsg is the Markdown body of an Issue.
	MarkdownMsg string

	// HttpLink is a documentation URL attached to an Issue.
	HttpLink string

	// Issue is long-form guidance for a known failure.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue for the terminal using the glamour style at stylePath
// (a builtin name such as "dark", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	configNotFoundIssue = &Issue{
		id: ConfigNotFoundId,
		mdMsg: `
# No module configuration found!

modkit keeps its settings and the module registry in ` + "`config/modules.cue`" + `.
Commands that generate or inspect modules need that file.

## Things you can try:
- Create the default configuration:
~~~
$ modkit init
~~~

- Or point at an existing file:
~~~
$ modkit --config path/to/modules.cue module list
~~~`,
	}

	configInvalidIssue = &Issue{
		id: ConfigInvalidId,
		mdMsg: `
# The module configuration is invalid!

## Common issues:
- Module names that are not studly-cased (` + "`blog`" + ` instead of ` + "`Blog`" + `)
- The same module registered twice
- A namespace written with ` + "`/`" + ` instead of ` + "`\\`" + `
- Extra file entries missing ` + "`destination`" + ` or ` + "`stub`" + `

## Example:
~~~cue
namespace: "App\\Modules"
modules: [
	{name: "Blog", active: true, routes: true},
]
~~~`,
	}

	stubNotFoundIssue = &Issue{
		id: StubNotFoundId,
		mdMsg: `
# Stub file not found!

A stub named in the configuration does not exist in the stub directory.

## Things you can try:
- Publish the built-in stubs and customise them:
~~~
$ modkit stubs publish
~~~

- Check the ` + "`submodule`" + ` and ` + "`files`" + ` entries in your configuration.
  Stub paths must end in ` + "`.stub`" + `.`,
	}

	moduleNotFoundIssue = &Issue{
		id: ModuleNotFoundId,
		mdMsg: `
# Module not found!

## Things you can try:
- List registered modules:
~~~
$ modkit module list
~~~

- Create the module first:
~~~
$ modkit module make Blog
~~~`,
	}

	moduleExistsIssue = &Issue{
		id: ModuleExistsId,
		mdMsg: `
# Module already exists!

The module is either registered in the configuration or its directory is
already present. Nothing was written for it.

## Things you can try:
- Generate extra files into the existing module:
~~~
$ modkit module files Blog Comment
~~~`,
	}

	fileExistsIssue = &Issue{
		id: FileExistsId,
		mdMsg: `
# File already exists!

modkit never overwrites files. Generation stopped at the first existing file;
files created before it were kept.

## Things you can try:
- Remove or rename the existing file and run the command again
- Pick a different name for the submodule or migration`,
	}

	registrationFailedIssue = &Issue{
		id: RegistrationFailedId,
		mdMsg: `
# Module created but not registered!

The module files were written, but the configuration file could not be updated.

## Things you can try:
- Add the module to the ` + "`modules`" + ` list by hand:
~~~cue
modules: [
	{name: "Blog", active: true, routes: true},
]
~~~`,
	}

	cacheWriteFailedIssue = &Issue{
		id: CacheWriteFailedId,
		mdMsg: `
# Could not write the module cache!

## Things you can try:
- Check that the directory of ` + "`cache_path`" + ` is writable
- Clear the stale cache and rebuild:
~~~
$ modkit cache clear
$ modkit cache build
~~~`,
	}

	issues = map[Id]*Issue{
		configNotFoundIssue.id:     configNotFoundIssue,
		configInvalidIssue.id:      configInvalidIssue,
		stubNotFoundIssue.id:       stubNotFoundIssue,
		moduleNotFoundIssue.id:     moduleNotFoundIssue,
		moduleExistsIssue.id:       moduleExistsIssue,
		fileExistsIssue.id:         fileExistsIssue,
		registrationFailedIssue.id: registrationFailedIssue,
		cacheWriteFailedIssue.id:   cacheWriteFailedIssue,
	}
)

// Values returns every known issue ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

// Get returns the issue with the given id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
