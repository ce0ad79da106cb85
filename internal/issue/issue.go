// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	DatabaseInitFailedId Id = iota + 1
	ToolNotFoundId
	PackageManagerMissingId
	InvalidPackageNameId
	ConfigLoadFailedId
	InstallFailedId
	SudoRequiredId
	GhCliMissingId
	HistoryNotFoundId
	RegistryUnreachableId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
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

	databaseInitFailedIssue = &Issue{
		id: DatabaseInitFailedId,
		mdMsg: `
# Failed to open the tool catalog!

The SQLite database backing your catalog could not be opened or created.

## Database location:
- Linux: ~/.local/share/hoards/hoards.db
- macOS: ~/Library/Application Support/hoards/hoards.db

## Things you can try:
- Check that the parent directory exists and is writable
- Check free disk space
- If the file is corrupt, move it aside and re-scan:
~~~
$ mv ~/.local/share/hoards/hoards.db ~/.local/share/hoards/hoards.db.bak
$ hoards scan
~~~`,
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# Tool not found!

The tool you named is not in your catalog.

## Things you can try:
- List everything you track:
~~~
$ hoards list
~~~

- Search by substring:
~~~
$ hoards search <term>
~~~

- Pick up tools already on this machine:
~~~
$ hoards scan
~~~`,
	}

	packageManagerMissingIssue = &Issue{
		id: PackageManagerMissingId,
		mdMsg: `
# Package manager not available!

The package manager needed for this operation is not installed on this
machine.

## Managers hoards can drive:
- **cargo** (crates.io)
- **pip** / **pip3** (PyPI)
- **npm** (registry.npmjs.org)
- **apt** / **snap** / **flatpak** (system packages)
- **brew** (Homebrew / Linuxbrew)

## Things you can try:
- Install the manager itself, e.g.:
~~~
$ curl --proto '=https' --tlsv1.2 -sSf https://sh.rustup.rs | sh
~~~

- Or re-add the tool under a source you do have:
~~~
$ hoards add <tool> --source apt
~~~`,
	}

	invalidPackageNameIssue = &Issue{
		id: InvalidPackageNameId,
		mdMsg: `
# Invalid package name!

Package names may only contain letters, digits, and the characters
` + "`- _ . @ /`" + `, and must not contain ` + "`..`" + `.

This check exists so a catalog entry can never smuggle shell syntax
into an install command.

## Things you can try:
- Check the name for typos or stray characters
- For scoped npm packages use the full form:
~~~
$ hoards add @angular/cli --source npm
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the hoards configuration file.

## Configuration file locations:
- Linux: ~/.config/hoards/config.toml
- macOS: ~/Library/Application Support/hoards/config.toml
- Windows: %APPDATA%\hoards\config.toml

## Things you can try:
- Check the TOML syntax
- Remove the config file to fall back to defaults:
~~~
$ rm ~/.config/hoards/config.toml
~~~

## Example configuration:
~~~toml
[sources]
cargo = true
apt = true
pip = false

[usage]
mode = "scan"

[ui]
color_scheme = "auto"
verbose = false
~~~`,
	}

	installFailedIssue = &Issue{
		id: InstallFailedId,
		mdMsg: `
# Install failed!

The package manager exited with an error. The last lines of its stderr
are shown above, and the full transcript is in the log file.

## Things you can try:
- Read the log file printed above for the full output
- Run the printed install command by hand to reproduce
- For apt/snap installs, check that you can sudo
- Check network connectivity to the package registry`,
	}

	sudoRequiredIssue = &Issue{
		id: SudoRequiredId,
		mdMsg: `
# Root privileges required!

Installing or removing system packages (apt, snap) needs sudo.

## Things you can try:
- Re-run and enter your password when prompted
- Check that your user is in the sudo group:
~~~
$ groups
~~~

- Prefer a user-level source for this tool (cargo, pip, npm):
~~~
$ hoards migrate --from apt --to cargo
~~~`,
	}

	ghCliMissingIssue = &Issue{
		id: GhCliMissingId,
		mdMsg: `
# GitHub CLI not found!

GitHub metadata (stars, topics, releases) and GitHub search are fetched
through the ` + "`gh`" + ` CLI, which is not on your PATH.

## Things you can try:
- Install it:
~~~
$ sudo apt install gh
~~~

- Authenticate once:
~~~
$ gh auth login
~~~

- Or skip GitHub enrichment; everything else works without it.`,
	}

	historyNotFoundIssue = &Issue{
		id: HistoryNotFoundId,
		mdMsg: `
# No shell history found!

Usage scanning reads your shell history files, and none were found.

## Files we look for:
- fish: ~/.local/share/fish/fish_history
- bash: ~/.bash_history
- zsh: ~/.zsh_history

## Things you can try:
- Check that history is enabled in your shell
- Point HISTFILE somewhere persistent (bash/zsh)
- Run a few commands and try again`,
	}

	registryUnreachableIssue = &Issue{
		id: RegistryUnreachableId,
		mdMsg: `
# Package registry unreachable!

A registry lookup (crates.io, PyPI, npm, formulae.brew.sh) timed out or
failed. Update checks and description fetches need network access.

## Things you can try:
- Check your network connection and proxy settings
- Retry later; registries rate-limit aggressive clients
- Catalog operations that only touch the local database still work.`,
	}

	issues = map[Id]*Issue{
		databaseInitFailedIssue.Id():    databaseInitFailedIssue,
		toolNotFoundIssue.Id():          toolNotFoundIssue,
		packageManagerMissingIssue.Id(): packageManagerMissingIssue,
		invalidPackageNameIssue.Id():    invalidPackageNameIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		installFailedIssue.Id():         installFailedIssue,
		sudoRequiredIssue.Id():          sudoRequiredIssue,
		ghCliMissingIssue.Id():          ghCliMissingIssue,
		historyNotFoundIssue.Id():       historyNotFoundIssue,
		registryUnreachableIssue.Id():   registryUnreachableIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
