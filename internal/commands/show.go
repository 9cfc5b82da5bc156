package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
)

func init() {
	Register(&ShowCmd{})
}

// showWidth is the wrap width used when out is not a terminal.
const showWidth = 80

// ShowCmd implements the show command.
type ShowCmd struct {
	filter string
	raw    bool
}

// SetFilter sets the filter refs are numbered against (for testing).
func (c *ShowCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return nil }
func (c *ShowCmd) Synopsis() string  { return "Show a task with its description" }
func (c *ShowCmd) Usage() string     { return "todo show [--filter <filter>] [--raw] <ref>" }
func (c *ShowCmd) NeedsAuth() bool   { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {
	filterFlag(fs, &c.filter)
	fs.BoolVar(&c.raw, "raw", false, "")
}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	task, code, found := resolveRef(ctx, a, c.filter, args, errOut)
	if !found {
		return code
	}

	md := output.TaskMarkdown(task)
	if c.raw {
		fmt.Fprint(out, md)
		return exitcode.Success
	}

	rendered, err := renderMarkdown(md, out)
	if err != nil {
		a.Logger.Debug("markdown render failed", "err", err)
		fmt.Fprint(out, md)
		return exitcode.Success
	}
	fmt.Fprintln(out, strings.TrimRight(rendered, "\n"))
	return exitcode.Success
}

// renderMarkdown styles md for a terminal, or as plain ASCII when out is
// not one.
func renderMarkdown(md string, out io.Writer) (string, error) {
	style, width := "ascii", showWidth
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		style = "dark"
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 20 {
			width = w - 2
		}
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
