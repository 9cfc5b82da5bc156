package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }
func (c *HelpCmd) Offline() bool     { return true }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	writeHelp(out, DefaultRegistry)
	return exitcode.Success
}

func writeHelp(w io.Writer, r *Registry) {
	fmt.Fprint(w, "Usage:\n  todo                 List all tasks (same as: todo list)\n")
	fmt.Fprint(w, "  todo <command> [common flags] [flags] [args]\n\nCommands:\n")
	for _, cmd := range r.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(w, "  %-20s %s\n", name, cmd.Synopsis())
		fmt.Fprintf(w, "  %-20s %s\n", "", cmd.Usage())
	}
	fmt.Fprint(w, helpFooter)
}

const helpFooter = `
A <ref> is the task's number in the list shown with the same --filter,
or its id (id:<id>), which is found whatever the filter.
A <filter> is one of all, completed, incompleted.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
