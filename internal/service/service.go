package service

import "context"

// Service defines the interface for to-do backend operations.
// Every call is a single attempt; failures are returned verbatim.
// Commands never talk HTTP directly.
type Service interface {
	// Register creates an account. The server answers 201 with {user, token}.
	Register(ctx context.Context, u NewUser) (AuthResult, error)

	// Login authenticates. The server answers 201 with {user, token}.
	Login(ctx context.Context, c Credentials) (AuthResult, error)

	// ListTasks returns the tasks selected by filter, in server order.
	ListTasks(ctx context.Context, filter Filter, token string) ([]Task, error)

	// AddTask creates a task and returns it as stored by the server.
	AddTask(ctx context.Context, fields TaskFields, token string) (Task, error)

	// UpdateTaskStatus flips the completed flag of a task.
	// The returned Task is zero if the server sent no body.
	UpdateTaskStatus(ctx context.Context, id, token string) (Task, error)

	// UpdateTaskContent replaces the title and description of a task.
	UpdateTaskContent(ctx context.Context, fields TaskFields, id, token string) (Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id, token string) error
}
