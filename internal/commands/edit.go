package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// optionalString is a string flag that remembers whether it was given, so
// an explicit empty value can clear a field.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value, o.set = s, true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	filter string
	title  optionalString
	desc   optionalString
}

// SetFilter sets the filter refs are numbered against (for testing).
func (c *EditCmd) SetFilter(filter string) {
	c.filter = filter
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(title string) {
	c.title.Set(title)
}

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(desc string) {
	c.desc.Set(desc)
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's title or description" }
func (c *EditCmd) Usage() string {
	return "todo edit [--filter <filter>] [--title <text>] [--desc <text>] <ref>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	filterFlag(fs, &c.filter)
	c.title, c.desc = optionalString{}, optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.desc, "desc", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if !c.title.set && !c.desc.set {
		return userError(errOut, "nothing to edit (use --title or --desc)")
	}

	task, code, found := resolveRef(ctx, a, c.filter, args, errOut)
	if !found {
		return code
	}

	fields := service.TaskFields{Title: task.Title, Description: task.Description}
	if c.title.set {
		fields.Title = c.title.value
	}
	if c.desc.set {
		fields.Description = c.desc.value
	}
	if err := a.EditTask(ctx, task.ID, fields); err != nil {
		return fail(errOut, err)
	}
	return printOK(out, cfg.Quiet)
}
