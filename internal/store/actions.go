package store

import "todo/internal/service"

// Action is a state transition request handled by Reduce.
type Action interface {
	Type() string
}

// SetTasks replaces the task collection wholesale.
type SetTasks struct{ Tasks []service.Task }

// SetFilter selects the task filter.
type SetFilter struct{ Filter service.Filter }

// SetUser sets or clears the registered user.
type SetUser struct{ User *service.User }

// SetSession sets or clears the active session.
type SetSession struct{ Session *service.Session }

// SetLoading sets the loading flag.
type SetLoading struct{ Loading bool }

// RequestStarted marks a request as in flight and turns Loading on.
type RequestStarted struct{}

// RequestFinished marks a request as done. Loading turns off once no
// request is in flight.
type RequestFinished struct{}

// TasksFetched replaces the task collection with the result of a fetch
// made for Filter. It is dropped if the filter has changed since.
type TasksFetched struct {
	Filter service.Filter
	Tasks  []service.Task
}

// TaskAdded appends a task created by the server.
type TaskAdded struct{ Task service.Task }

// TaskRemoved drops the task with ID.
type TaskRemoved struct{ ID string }

// TaskToggled inverts the completed flag of the task with ID.
type TaskToggled struct{ ID string }

// TaskEdited replaces title and description of the task with ID.
type TaskEdited struct {
	ID          string
	Title       string
	Description string
}

func (SetTasks) Type() string        { return "set_tasks" }
func (SetFilter) Type() string       { return "set_filter" }
func (SetUser) Type() string         { return "set_user" }
func (SetSession) Type() string      { return "set_session" }
func (SetLoading) Type() string      { return "set_loading" }
func (RequestStarted) Type() string  { return "request_started" }
func (RequestFinished) Type() string { return "request_finished" }
func (TasksFetched) Type() string    { return "tasks_fetched" }
func (TaskAdded) Type() string       { return "task_added" }
func (TaskRemoved) Type() string     { return "task_removed" }
func (TaskToggled) Type() string     { return "task_toggled" }
func (TaskEdited) Type() string      { return "task_edited" }
