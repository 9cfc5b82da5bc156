package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/tui"
)

func init() {
	Register(&TuiCmd{})
}

// runTUI starts the interactive view. Tests replace it.
var runTUI = tui.Run

// SetTUIRunner replaces the interactive view and returns a func that
// restores it (for testing).
func SetTUIRunner(fn func(context.Context, *app.App) error) (restore func()) {
	prev := runTUI
	runTUI = fn
	return func() { runTUI = prev }
}

// TuiCmd implements the tui command.
type TuiCmd struct {
	filter string
}

func (c *TuiCmd) Name() string      { return "tui" }
func (c *TuiCmd) Aliases() []string { return []string{"ui"} }
func (c *TuiCmd) Synopsis() string  { return "Interactive task list" }
func (c *TuiCmd) Usage() string     { return "todo tui [--filter <filter>]" }
func (c *TuiCmd) NeedsAuth() bool   { return true }

func (c *TuiCmd) RegisterFlags(fs *flag.FlagSet) {
	filterFlag(fs, &c.filter)
}

func (c *TuiCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	filter, err := service.ParseFilter(c.filter)
	if err != nil {
		return userError(errOut, "%s", err)
	}
	a.Store.Dispatch(store.SetFilter{Filter: filter})

	if err := runTUI(ctx, a); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
