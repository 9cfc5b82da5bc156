package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo/internal/app"
	"todo/internal/localstore"
	"todo/internal/service"
	"todo/internal/session"
	"todo/internal/store"
	"todo/internal/testutil"
)

func newTestApp(t *testing.T) (*app.App, *testutil.FakeService, string) {
	t.Helper()
	svc := testutil.NewFakeService()
	token := svc.AddUser("Alice", "alice@example.com", "pw")
	sessions := session.New(localstore.NewMemory(), nil)
	st := store.New(store.Initial())
	require.NoError(t, sessions.SaveSession(st, service.Session{
		User:  service.User{ID: "u1", Name: "Alice", Email: "alice@example.com"},
		Token: token,
	}))
	return app.New(st, sessions, svc, nil), svc, token
}

// step feeds msg to m, runs any resulting operation and then delivers the
// store's state, the way Run wires the program. Commands from the text
// input (cursor blinks) are not run.
func step(t *testing.T, a *app.App, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil && m.mode == browsing {
		if done, ok := cmd().(opDoneMsg); ok {
			next, _ = m.Update(done)
			m = next.(Model)
		}
	}
	next, _ = m.Update(stateMsg{state: a.Store.State()})
	return next.(Model)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func started(t *testing.T) (*app.App, *testutil.FakeService, string, Model) {
	t.Helper()
	a, svc, token := newTestApp(t)
	svc.Seed(token, "Buy milk", false)
	svc.Seed(token, "Buy eggs", true)

	m := New(context.Background(), a)
	done, ok := m.Init()().(opDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	next, _ := m.Update(stateMsg{state: a.Store.State()})
	return a, svc, token, next.(Model)
}

func TestInitFetchesAndRenders(t *testing.T) {
	_, svc, _, m := started(t)

	assert.Equal(t, 1, svc.CallCount("ListTasks"))
	view := m.View()
	assert.Contains(t, view, "Buy milk")
	assert.Contains(t, view, "Buy eggs")
	assert.Contains(t, view, "Alice")
	assert.NotContains(t, view, "loading")
}

func TestSpaceTogglesSelected(t *testing.T) {
	a, svc, token, m := started(t)

	m = step(t, a, m, tea.KeyMsg{Type: tea.KeySpace})

	assert.True(t, svc.Tasks(token)[0].Completed)
	assert.True(t, a.Store.State().Tasks[0].Completed)
	assert.Equal(t, "toggled", m.status)
}

func TestDeleteSelected(t *testing.T) {
	a, svc, token, m := started(t)

	m = step(t, a, m, keyRunes("d"))

	require.Len(t, svc.Tasks(token), 1)
	assert.Equal(t, "Buy eggs", svc.Tasks(token)[0].Title)
	assert.NotContains(t, m.View(), "Buy milk")
}

func TestFilterCycles(t *testing.T) {
	a, svc, token, m := started(t)

	m = step(t, a, m, keyRunes("f"))

	calls := svc.Calls()
	last := calls[len(calls)-1]
	assert.Equal(t, service.FilterCompleted, last.Filter)
	assert.Equal(t, token, last.Token)
	assert.Equal(t, service.FilterCompleted, m.state.Filter)
	assert.NotContains(t, m.View(), "Buy milk")

	m = step(t, a, m, keyRunes("f"))
	assert.Equal(t, service.FilterIncompleted, m.state.Filter)
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	a, svc, _, m := started(t)

	m = step(t, a, m, keyRunes("a"))
	require.Equal(t, adding, m.mode)

	m = step(t, a, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, adding, m.mode)
	assert.Equal(t, "task title cannot be empty", m.err)
	assert.Zero(t, svc.CallCount("AddTask"))
}

func TestAddTask(t *testing.T) {
	a, svc, token, m := started(t)

	m = step(t, a, m, keyRunes("a"))
	m = step(t, a, m, keyRunes("Buy bread"))
	m = step(t, a, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, browsing, m.mode)
	tasks := svc.Tasks(token)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Buy bread", tasks[2].Title)
	assert.Contains(t, m.View(), "Buy bread")
	assert.Equal(t, 1, svc.CallCount("ListTasks"), "add does not refetch")
}

func TestEscCancelsInput(t *testing.T) {
	a, svc, _, m := started(t)

	m = step(t, a, m, keyRunes("a"))
	m = step(t, a, m, keyRunes("x"))
	m = step(t, a, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, browsing, m.mode)
	assert.Zero(t, svc.CallCount("AddTask"))
}

func TestEditTitle(t *testing.T) {
	a, svc, token, m := started(t)

	m = step(t, a, m, keyRunes("e"))
	require.Equal(t, editing, m.mode)
	assert.Equal(t, "Buy milk", m.input.Value())

	m.input.SetValue("Buy oat milk")
	m = step(t, a, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "Buy oat milk", svc.Tasks(token)[0].Title)
	assert.Contains(t, m.View(), "Buy oat milk")
}

func TestErrorShownInStatusLine(t *testing.T) {
	a, svc, _, m := started(t)
	svc.UpdateStatusErr = errors.New("connection refused")

	m = step(t, a, m, tea.KeyMsg{Type: tea.KeySpace})

	assert.Contains(t, m.View(), "connection refused")
	assert.False(t, a.Store.State().Tasks[0].Completed)
}

func TestQuit(t *testing.T) {
	_, _, _, m := started(t)

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestEmptyList(t *testing.T) {
	a, _, _ := newTestApp(t)
	m := New(context.Background(), a)

	m = step(t, a, m, keyRunes("r"))

	assert.Contains(t, m.View(), "no tasks found")
	assert.Equal(t, "refreshed", m.status)

	// Nothing selected, so toggling is a no-op.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if cmd != nil {
		_, isOp := cmd().(opDoneMsg)
		assert.False(t, isOp)
	}
}
