package commands

import (
	"context"
	"flag"
	"io"
	"strings"
	"time"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	desc string
	due  string
}

// SetDescription sets the description (for testing).
func (c *AddCmd) SetDescription(desc string) {
	c.desc = desc
}

// SetDue sets the due date (for testing).
func (c *AddCmd) SetDue(due string) {
	c.due = due
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "todo add [--desc <text>] [--due YYYY-MM-DD] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return userError(errOut, "title required")
	}

	fields := service.TaskFields{
		Title:       strings.Join(args, " "),
		Description: c.desc,
	}
	if c.due != "" {
		due, err := parseDue(c.due)
		if err != nil {
			return userError(errOut, "invalid due date: %s", c.due)
		}
		fields.DueDate = &due
	}

	if _, err := a.AddTask(ctx, fields); err != nil {
		return fail(errOut, err)
	}
	return printOK(out, cfg.Quiet)
}

// parseDue reads a YYYY-MM-DD date as midnight UTC.
func parseDue(s string) (time.Time, error) {
	return time.ParseInLocation(output.DateLayout, strings.TrimSpace(s), time.UTC)
}
