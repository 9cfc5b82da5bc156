// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"fmt"
	"time"
)

// User is the account as returned by the server. The password is never
// part of it.
type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUser is the registration payload.
type NewUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the body returned by register and login.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Session is an authenticated identity plus the bearer token used for
// task operations. It has the same shape as AuthResult.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Task represents a single to-do item. IDs always originate from the server.
type Task struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TaskFields carries the writable task fields for add and content update.
// Description is always sent so an empty value clears it on the server.
type TaskFields struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// Filter selects which task list endpoint is used.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterCompleted   Filter = "completed"
	FilterIncompleted Filter = "incompleted"
)

// Filters lists the valid filters in display order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterIncompleted}

// ParseFilter converts a user-supplied string into a Filter.
// The empty string selects FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCompleted:
		return FilterCompleted, nil
	case FilterIncompleted:
		return FilterIncompleted, nil
	}
	return "", fmt.Errorf("invalid filter: %s", s)
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	for i, x := range Filters {
		if x == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}
