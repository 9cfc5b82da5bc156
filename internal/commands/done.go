package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/app"
	"todo/internal/config"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles, so running it on a
// completed task reopens it.
type DoneCmd struct {
	filter string
}

// SetFilter sets the filter refs are numbered against (for testing).
func (c *DoneCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completed flag" }
func (c *DoneCmd) Usage() string     { return "todo done [--filter <filter>] <ref>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	filterFlag(fs, &c.filter)
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	task, code, found := resolveRef(ctx, a, c.filter, args, errOut)
	if !found {
		return code
	}
	if err := a.ToggleTask(ctx, task.ID); err != nil {
		return fail(errOut, err)
	}
	return printOK(out, cfg.Quiet)
}
