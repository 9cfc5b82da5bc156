// Package app implements the synchronization flow between the views, the
// to-do service and the state store.
//
// Every operation validates its input first, then issues exactly one
// service call while the store's Loading flag is on, and on success patches
// the task collection locally instead of refetching. A failed call leaves
// the collection as it was and returns the error to the caller.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"todo/internal/backend/rest"
	"todo/internal/config"
	"todo/internal/localstore"
	"todo/internal/logging"
	"todo/internal/service"
	"todo/internal/session"
	"todo/internal/store"
)

// App ties a store, its session provider and a service together.
type App struct {
	Store    *store.Store
	Sessions *session.Provider
	Service  service.Service
	Logger   *log.Logger

	authMu    sync.Mutex
	fetches   singleflight.Group
	taskLocks keyedMutex
	closers   []func() error
}

// New assembles an App from its parts. The store is used as is; callers
// seed it if they need stored state.
func New(st *store.Store, sessions *session.Provider, svc service.Service, logger *log.Logger) *App {
	if logger == nil {
		logger = logging.Discard()
	}
	return &App{Store: st, Sessions: sessions, Service: svc, Logger: logger}
}

// Open builds the production App for cfg: local storage, a store seeded
// from it, and the REST client.
func Open(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	storage, err := localstore.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	client, err := rest.New(cfg, logger)
	if err != nil {
		storage.Close()
		return nil, err
	}

	sessions := session.New(storage, logger)
	st := store.New(store.Initial())
	if err := sessions.Seed(st); err != nil {
		storage.Close()
		return nil, err
	}

	a := New(st, sessions, client, logger)
	a.closers = append(a.closers, storage.Close)
	logger.Debug("app ready", "base_url", cfg.BaseURL, "storage", cfg.Storage, "logged_in", st.State().LoggedIn())
	return a, nil
}

// Close releases the storage opened by Open.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// Register creates an account. Missing fields and a mismatched confirmation
// are rejected without contacting the server.
func (a *App) Register(ctx context.Context, in RegisterInput) (service.User, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" || in.Confirm == "" {
		return service.User{}, invalid("", "please fill all the fields")
	}
	if in.Password != in.Confirm {
		return service.User{}, invalid("confirm", "passwords do not match")
	}

	defer a.request()()
	res, err := a.Service.Register(ctx, service.NewUser{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	})
	if err != nil {
		// Only the in-memory user is cleared; a previously stored one
		// comes back on the next Refresh.
		a.Store.Dispatch(store.SetUser{User: nil})
		return service.User{}, fmt.Errorf("register: %w", err)
	}
	if err := a.Sessions.SaveRegistration(a.Store, res); err != nil {
		a.Logger.Warn("registered user not saved", "err", err)
	}
	return res.User, nil
}

// Login starts a session. It refuses while a session exists, checking
// storage first so a login made by another process counts.
func (a *App) Login(ctx context.Context, cred service.Credentials) (service.Session, error) {
	cred.Email = strings.TrimSpace(cred.Email)
	if cred.Email == "" || cred.Password == "" {
		return service.Session{}, invalid("", "please enter both email and password")
	}

	a.authMu.Lock()
	defer a.authMu.Unlock()

	if err := a.Sessions.Refresh(a.Store); err != nil {
		return service.Session{}, err
	}
	if a.Store.State().LoggedIn() {
		return service.Session{}, ErrSessionActive
	}

	defer a.request()()
	res, err := a.Service.Login(ctx, cred)
	if err != nil {
		a.Store.Dispatch(store.SetSession{Session: nil})
		return service.Session{}, fmt.Errorf("login: %w", err)
	}
	sess := service.Session(res)
	if err := a.Sessions.SaveSession(a.Store, sess); err != nil {
		a.Logger.Warn("session not saved, it will end with this process", "err", err)
	}
	return sess, nil
}

// Logout ends the session and forgets the cached tasks.
func (a *App) Logout() error {
	a.authMu.Lock()
	defer a.authMu.Unlock()

	if err := a.Sessions.Refresh(a.Store); err != nil {
		return err
	}
	if !a.Store.State().LoggedIn() {
		return ErrNotLoggedIn
	}
	if err := a.Sessions.Invalidate(a.Store); err != nil {
		return err
	}
	a.Store.Dispatch(store.SetTasks{Tasks: nil})
	return nil
}

// SetFilter selects a filter and fetches the matching tasks.
func (a *App) SetFilter(ctx context.Context, f service.Filter) error {
	if _, err := service.ParseFilter(string(f)); err != nil || f == "" {
		return invalid("filter", fmt.Sprintf("invalid filter: %s", f))
	}
	a.Store.Dispatch(store.SetFilter{Filter: f})
	return a.Refresh(ctx)
}

// Refresh replaces the task collection with the server's list for the
// current filter. Concurrent refreshes of the same list share a request,
// and a result that arrives after the filter changed is dropped.
func (a *App) Refresh(ctx context.Context) error {
	s := a.Store.State()
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}
	filter, token := s.Filter, s.Token()

	defer a.request()()
	v, err, shared := a.fetches.Do(string(filter)+"\x00"+token, func() (any, error) {
		return a.Service.ListTasks(ctx, filter, token)
	})
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	tasks := v.([]service.Task)
	a.Logger.Debug("tasks fetched", "filter", filter, "count", len(tasks), "shared", shared)
	a.Store.Dispatch(store.TasksFetched{Filter: filter, Tasks: tasks})
	return nil
}

// AddTask creates a task and appends it to the collection.
func (a *App) AddTask(ctx context.Context, fields service.TaskFields) (service.Task, error) {
	fields.Title = strings.TrimSpace(fields.Title)
	if fields.Title == "" {
		return service.Task{}, invalid("title", "task title cannot be empty")
	}
	token, err := a.token()
	if err != nil {
		return service.Task{}, err
	}

	defer a.request()()
	task, err := a.Service.AddTask(ctx, fields, token)
	if err != nil {
		return service.Task{}, fmt.Errorf("add task: %w", err)
	}
	a.Store.Dispatch(store.TaskAdded{Task: task})
	return task, nil
}

// ToggleTask flips the completed flag of the task with id.
func (a *App) ToggleTask(ctx context.Context, id string) error {
	token, err := a.mutation(id)
	if err != nil {
		return err
	}
	defer a.taskLocks.Lock(id)()
	defer a.request()()

	if _, err := a.Service.UpdateTaskStatus(ctx, id, token); err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	a.Store.Dispatch(store.TaskToggled{ID: id})
	return nil
}

// EditTask replaces the title and description of the task with id.
func (a *App) EditTask(ctx context.Context, id string, fields service.TaskFields) error {
	fields.Title = strings.TrimSpace(fields.Title)
	if fields.Title == "" {
		return invalid("title", "task title cannot be empty")
	}
	token, err := a.mutation(id)
	if err != nil {
		return err
	}
	defer a.taskLocks.Lock(id)()
	defer a.request()()

	if _, err := a.Service.UpdateTaskContent(ctx, fields, id, token); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	a.Store.Dispatch(store.TaskEdited{ID: id, Title: fields.Title, Description: fields.Description})
	return nil
}

// DeleteTask removes the task with id.
func (a *App) DeleteTask(ctx context.Context, id string) error {
	token, err := a.mutation(id)
	if err != nil {
		return err
	}
	defer a.taskLocks.Lock(id)()
	defer a.request()()

	if err := a.Service.DeleteTask(ctx, id, token); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	a.Store.Dispatch(store.TaskRemoved{ID: id})
	return nil
}

func (a *App) token() (string, error) {
	s := a.Store.State()
	if !s.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	return s.Token(), nil
}

// mutation checks the preconditions shared by per-task operations.
func (a *App) mutation(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", invalid("id", "task id required")
	}
	return a.token()
}

// request turns Loading on until the returned function is called.
func (a *App) request() (done func()) {
	a.Store.Dispatch(store.RequestStarted{})
	return func() { a.Store.Dispatch(store.RequestFinished{}) }
}
