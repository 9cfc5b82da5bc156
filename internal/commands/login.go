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
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	cred service.Credentials
}

// SetCredentials sets the email and password (for testing).
func (c *LoginCmd) SetCredentials(cred service.Credentials) {
	c.cred = cred
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in and store the session" }
func (c *LoginCmd) Usage() string     { return "todo login --email <email> [--password <pw>]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.cred.Email, "email", "", "")
	fs.StringVar(&c.cred.Password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, a *app.App, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return userError(errOut, "unexpected argument: %s", args[0])
	}

	// Check for an active session before prompting.
	if err := a.Sessions.Refresh(a.Store); err != nil {
		return fail(errOut, err)
	}
	if a.Store.State().LoggedIn() {
		return fail(errOut, app.ErrSessionActive)
	}
	if c.cred.Email != "" {
		if err := promptIfEmpty(&c.cred.Password, "Password: ", "--password", errOut); err != nil {
			return userError(errOut, "%s", err)
		}
	}

	sess, err := a.Login(ctx, c.cred)
	if err != nil {
		return fail(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", sess.User.Name)
	}
	return exitcode.Success
}
