package commands_test

import (
	"bytes"
	"context"
	"flag"
	"io"
	"testing"

	"todo/internal/app"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/localstore"
	"todo/internal/service"
	"todo/internal/session"
	"todo/internal/store"
	"todo/internal/testutil"
)

// testEnv is an App over a FakeService and in-memory storage.
type testEnv struct {
	app     *app.App
	svc     *testutil.FakeService
	storage *localstore.Memory
	token   string
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	storage := localstore.NewMemory()
	svc := testutil.NewFakeService()
	sessions := session.New(storage, nil)
	st := store.New(store.Initial())
	if err := sessions.Seed(st); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return &testEnv{app: app.New(st, sessions, svc, nil), svc: svc, storage: storage}
}

// loggedInEnv is newEnv with alice@example.com signed in.
func loggedInEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newEnv(t)
	env.token = env.svc.AddUser("Alice", "alice@example.com", "pw")
	sess := service.Session{
		User:  service.User{ID: "u1", Name: "Alice", Email: "alice@example.com"},
		Token: env.token,
	}
	if err := env.app.Sessions.SaveSession(env.app.Store, sess); err != nil {
		t.Fatalf("save session: %v", err)
	}
	return env
}

// runCommand is a helper to run a command against an App.
func runCommand(t *testing.T, cmd commands.Command, a *app.App, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, a, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// newFlagSet binds cmd's flags to a fresh FlagSet the way the dispatcher does.
func newFlagSet(cmd commands.Command) *flag.FlagSet {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	return fs
}
