package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"todo/internal/service"
)

func sampleTasks() []service.Task {
	return []service.Task{
		{ID: "a", Title: "first"},
		{ID: "b", Title: "second", Completed: true},
		{ID: "c", Title: "third"},
	}
}

func TestReduce_SetTasksReplacesWholesale(t *testing.T) {
	s := Initial()
	s.Tasks = sampleTasks()

	server := []service.Task{{ID: "z"}, {ID: "y"}}
	next := Reduce(s, SetTasks{Tasks: server})

	assert.Equal(t, server, next.Tasks)
	assert.Len(t, s.Tasks, 3, "previous state must not change")

	server[0].Title = "mutated after dispatch"
	assert.Empty(t, next.Tasks[0].Title, "state must not alias the caller's slice")
}

func TestReduce_SetTasksNilBecomesEmpty(t *testing.T) {
	next := Reduce(Initial(), SetTasks{})
	assert.NotNil(t, next.Tasks)
	assert.Empty(t, next.Tasks)
}

func TestReduce_TaskAddedAppends(t *testing.T) {
	s := Initial()
	s.Tasks = sampleTasks()

	next := Reduce(s, TaskAdded{Task: service.Task{ID: "d", Title: "fourth"}})

	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(next.Tasks))
	assert.Len(t, s.Tasks, 3)
}

func TestReduce_TaskAddedDoesNotShareBackingArray(t *testing.T) {
	base := make([]service.Task, 1, 4)
	base[0] = service.Task{ID: "a"}
	s := Initial()
	s.Tasks = base

	x := Reduce(s, TaskAdded{Task: service.Task{ID: "x"}})
	y := Reduce(s, TaskAdded{Task: service.Task{ID: "y"}})

	assert.Equal(t, []string{"a", "x"}, ids(x.Tasks))
	assert.Equal(t, []string{"a", "y"}, ids(y.Tasks))
}

func TestReduce_TaskRemoved(t *testing.T) {
	s := Initial()
	s.Tasks = sampleTasks()

	next := Reduce(s, TaskRemoved{ID: "b"})
	assert.Equal(t, []string{"a", "c"}, ids(next.Tasks))

	same := Reduce(s, TaskRemoved{ID: "missing"})
	assert.Equal(t, s.Tasks, same.Tasks)
}

func TestReduce_TaskToggledFlipsExactlyOne(t *testing.T) {
	s := Initial()
	s.Tasks = sampleTasks()

	next := Reduce(s, TaskToggled{ID: "b"})

	for i, task := range next.Tasks {
		if task.ID == "b" {
			assert.False(t, task.Completed)
			continue
		}
		assert.Equal(t, s.Tasks[i], task)
	}
	assert.True(t, s.Tasks[1].Completed, "previous state must not change")
}

func TestReduce_TaskEdited(t *testing.T) {
	s := Initial()
	s.Tasks = sampleTasks()

	next := Reduce(s, TaskEdited{ID: "c", Title: "renamed", Description: "details"})

	task, ok := next.Task("c")
	assert.True(t, ok)
	assert.Equal(t, "renamed", task.Title)
	assert.Equal(t, "details", task.Description)
	assert.Equal(t, "third", s.Tasks[2].Title)
}

func TestReduce_Assignments(t *testing.T) {
	user := &service.User{Name: "Ada"}
	sess := &service.Session{User: *user, Token: "tok"}

	s := Reduce(Initial(), SetUser{User: user})
	s = Reduce(s, SetSession{Session: sess})
	s = Reduce(s, SetFilter{Filter: service.FilterCompleted})
	s = Reduce(s, SetLoading{Loading: true})

	assert.Equal(t, user, s.User)
	assert.True(t, s.LoggedIn())
	assert.Equal(t, "tok", s.Token())
	assert.Equal(t, service.FilterCompleted, s.Filter)
	assert.True(t, s.Loading)

	s = Reduce(s, SetSession{})
	assert.False(t, s.LoggedIn())
	assert.Equal(t, "", s.Token())
}

func ids(tasks []service.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestReduce_LoadingTracksInflightRequests(t *testing.T) {
	s := Reduce(Initial(), RequestStarted{})
	s = Reduce(s, RequestStarted{})
	assert.True(t, s.Loading)

	s = Reduce(s, RequestFinished{})
	assert.True(t, s.Loading, "one request still in flight")

	s = Reduce(s, RequestFinished{})
	assert.False(t, s.Loading)

	s = Reduce(s, RequestFinished{})
	assert.False(t, s.Loading)
	assert.Equal(t, 0, s.inflight)
}

func TestReduce_TasksFetchedForStaleFilterIsDropped(t *testing.T) {
	s := Reduce(Initial(), SetFilter{Filter: service.FilterCompleted})
	s.Tasks = sampleTasks()

	stale := Reduce(s, TasksFetched{Filter: service.FilterAll, Tasks: []service.Task{{ID: "z"}}})
	assert.Equal(t, []string{"a", "b", "c"}, ids(stale.Tasks))

	fresh := Reduce(s, TasksFetched{Filter: service.FilterCompleted, Tasks: []service.Task{{ID: "z"}}})
	assert.Equal(t, []string{"z"}, ids(fresh.Tasks))
}
