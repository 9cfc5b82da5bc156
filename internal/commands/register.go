package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/app"
	"todo/internal/config"
	"todo/internal/exitcode"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	in app.RegisterInput
}

// SetInput sets the registration form (for testing).
func (c *RegisterCmd) SetInput(in app.RegisterInput) {
	c.in = in
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "todo register --name <name> --email <email> [--password <pw> --confirm <pw>]"
}
func (c *RegisterCmd) NeedsAuth() bool { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.in.Name, "name", "", "")
	fs.StringVar(&c.in.Email, "email", "", "")
	fs.StringVar(&c.in.Password, "password", "", "")
	fs.StringVar(&c.in.Confirm, "confirm", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return userError(errOut, "unexpected argument: %s", args[0])
	}
	if err := promptIfEmpty(&c.in.Password, "Password: ", "--password", errOut); err != nil {
		return userError(errOut, "%s", err)
	}
	if err := promptIfEmpty(&c.in.Confirm, "Confirm password: ", "--confirm", errOut); err != nil {
		return userError(errOut, "%s", err)
	}

	user, err := a.Register(ctx, c.in)
	if err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "registered %s, now run: todo login --email %s\n", user.Name, user.Email)
	}
	return exitcode.Success
}
