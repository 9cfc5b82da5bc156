// Package store holds the client's mutable state behind a reducer.
//
// State changes only through Dispatch(Action). Reduce is pure, so the
// transitions can be tested without a store, a network or a terminal.
package store

import "todo/internal/service"

// State is everything the views render from.
type State struct {
	User    *service.User
	Session *service.Session
	Tasks   []service.Task
	Filter  service.Filter
	Loading bool

	// inflight counts requests between RequestStarted and RequestFinished.
	inflight int
}

// Initial returns the empty state: no user, no session, no tasks and the
// "all" filter.
func Initial() State {
	return State{Tasks: []service.Task{}, Filter: service.FilterAll}
}

// LoggedIn reports whether a session is active.
func (s State) LoggedIn() bool {
	return s.Session != nil
}

// Token returns the bearer token of the active session, or "".
func (s State) Token() string {
	if s.Session == nil {
		return ""
	}
	return s.Session.Token
}

// Task returns the task with the given id.
func (s State) Task(id string) (service.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// clone copies the task slice and the pointed-to user and session so a
// caller can't mutate the store's state through the returned value.
func (s State) clone() State {
	out := s
	out.Tasks = append([]service.Task(nil), s.Tasks...)
	if out.Tasks == nil {
		out.Tasks = []service.Task{}
	}
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.Session != nil {
		sess := *s.Session
		out.Session = &sess
	}
	return out
}
