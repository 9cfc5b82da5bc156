package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/app"
	"todo/internal/config"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	filter string
}

// SetFilter sets the filter refs are numbered against (for testing).
func (c *RmCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "todo rm [--filter <filter>] <ref>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	filterFlag(fs, &c.filter)
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	task, code, found := resolveRef(ctx, a, c.filter, args, errOut)
	if !found {
		return code
	}
	if err := a.DeleteTask(ctx, task.ID); err != nil {
		return fail(errOut, err)
	}
	return printOK(out, cfg.Quiet)
}
