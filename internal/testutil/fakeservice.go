// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"google.golang.org/api/googleapi"

	"todo/internal/service"
)

// Epoch is the creation time of the first task a FakeService creates.
// Each later task is created one minute after the previous one.
var Epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// ErrNotFound is returned when a task does not exist.
var ErrNotFound = &googleapi.Error{Code: http.StatusNotFound, Message: "Task not found"}

// ErrUnauthorized is returned for an unknown token.
var ErrUnauthorized = &googleapi.Error{Code: http.StatusUnauthorized, Message: "Unauthorized"}

// Call records one service invocation.
type Call struct {
	Method string
	Token  string
	ID     string
	Filter service.Filter
}

type account struct {
	user     service.User
	password string
}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.Mutex
	accounts map[string]account        // email -> account
	tokens   map[string]string         // token -> email
	tasks    map[string][]service.Task // email -> tasks
	calls    []Call
	nextID   int
	created  int

	// Error injection for testing
	RegisterErr      error
	LoginErr         error
	ListTasksErr     error
	AddTaskErr       error
	UpdateStatusErr  error
	UpdateContentErr error
	DeleteTaskErr    error

	// BeforeList runs at the start of ListTasks, outside the lock.
	BeforeList func(service.Filter)
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		accounts: make(map[string]account),
		tokens:   make(map[string]string),
		tasks:    make(map[string][]service.Task),
	}
}

// AddUser creates an account and returns a valid token for it.
func (f *FakeService) AddUser(name, email, password string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.addAccountLocked(name, email, password)
	return f.issueLocked(u.Email)
}

// Seed adds a task for the owner of token and returns it.
func (f *FakeService) Seed(token, title string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	email := f.tokens[token]
	t := f.newTaskLocked(service.TaskFields{Title: title})
	t.Completed = completed
	f.tasks[email] = append(f.tasks[email], t)
	return t
}

// Tasks returns a copy of the tasks owned by token.
func (f *FakeService) Tasks(token string) []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Task(nil), f.tasks[f.tokens[token]]...)
}

// Calls returns the invocations so far.
func (f *FakeService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns how many times method was invoked.
func (f *FakeService) CallCount(method string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Register implements service.Service.
func (f *FakeService) Register(ctx context.Context, u service.NewUser) (service.AuthResult, error) {
	f.record(Call{Method: "Register"})
	if f.RegisterErr != nil {
		return service.AuthResult{}, f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[u.Email]; ok {
		return service.AuthResult{}, &googleapi.Error{Code: http.StatusBadRequest, Message: "User already exists"}
	}
	user := f.addAccountLocked(u.Name, u.Email, u.Password)
	return service.AuthResult{User: user, Token: f.issueLocked(user.Email)}, nil
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, cred service.Credentials) (service.AuthResult, error) {
	f.record(Call{Method: "Login"})
	if f.LoginErr != nil {
		return service.AuthResult{}, f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[cred.Email]
	if !ok || acc.password != cred.Password {
		return service.AuthResult{}, &googleapi.Error{Code: http.StatusBadRequest, Message: "Invalid credentials"}
	}
	return service.AuthResult{User: acc.user, Token: f.issueLocked(acc.user.Email)}, nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, filter service.Filter, token string) ([]service.Task, error) {
	f.record(Call{Method: "ListTasks", Token: token, Filter: filter})
	if f.BeforeList != nil {
		f.BeforeList(filter)
	}
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	if _, err := service.ParseFilter(string(filter)); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	email, ok := f.tokens[token]
	if !ok {
		return nil, ErrUnauthorized
	}
	result := []service.Task{}
	for _, t := range f.tasks[email] {
		switch {
		case filter == service.FilterCompleted && !t.Completed:
		case filter == service.FilterIncompleted && t.Completed:
		default:
			result = append(result, t)
		}
	}
	return result, nil
}

// AddTask implements service.Service.
func (f *FakeService) AddTask(ctx context.Context, fields service.TaskFields, token string) (service.Task, error) {
	f.record(Call{Method: "AddTask", Token: token})
	if f.AddTaskErr != nil {
		return service.Task{}, f.AddTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	email, ok := f.tokens[token]
	if !ok {
		return service.Task{}, ErrUnauthorized
	}
	t := f.newTaskLocked(fields)
	f.tasks[email] = append(f.tasks[email], t)
	return t, nil
}

// UpdateTaskStatus implements service.Service.
func (f *FakeService) UpdateTaskStatus(ctx context.Context, id, token string) (service.Task, error) {
	f.record(Call{Method: "UpdateTaskStatus", Token: token, ID: id})
	if f.UpdateStatusErr != nil {
		return service.Task{}, f.UpdateStatusErr
	}
	return f.update(token, id, func(t *service.Task) { t.Completed = !t.Completed })
}

// UpdateTaskContent implements service.Service.
func (f *FakeService) UpdateTaskContent(ctx context.Context, fields service.TaskFields, id, token string) (service.Task, error) {
	f.record(Call{Method: "UpdateTaskContent", Token: token, ID: id})
	if f.UpdateContentErr != nil {
		return service.Task{}, f.UpdateContentErr
	}
	return f.update(token, id, func(t *service.Task) {
		t.Title = fields.Title
		t.Description = fields.Description
		if fields.DueDate != nil {
			t.DueDate = fields.DueDate
		}
	})
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id, token string) error {
	f.record(Call{Method: "DeleteTask", Token: token, ID: id})
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	email, ok := f.tokens[token]
	if !ok {
		return ErrUnauthorized
	}
	tasks := f.tasks[email]
	for i, t := range tasks {
		if t.ID == id {
			f.tasks[email] = append(tasks[:i:i], tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *FakeService) update(token, id string, fn func(*service.Task)) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email, ok := f.tokens[token]
	if !ok {
		return service.Task{}, ErrUnauthorized
	}
	for i := range f.tasks[email] {
		if f.tasks[email][i].ID == id {
			fn(&f.tasks[email][i])
			return f.tasks[email][i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

func (f *FakeService) record(c Call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

func (f *FakeService) addAccountLocked(name, email, password string) service.User {
	f.nextID++
	u := service.User{ID: fmt.Sprintf("u%d", f.nextID), Name: name, Email: email}
	f.accounts[email] = account{user: u, password: password}
	return u
}

func (f *FakeService) issueLocked(email string) string {
	f.nextID++
	tok := fmt.Sprintf("tok-%d", f.nextID)
	f.tokens[tok] = email
	return tok
}

func (f *FakeService) newTaskLocked(fields service.TaskFields) service.Task {
	f.nextID++
	n := f.created
	f.created++
	return service.Task{
		ID:          fmt.Sprintf("t%d", f.nextID),
		Title:       fields.Title,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		CreatedAt:   Epoch.Add(time.Duration(n) * time.Minute),
	}
}
