// Package tui is the interactive task list. It renders from store
// notifications and runs every change through the app.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/app"
	"todo/internal/backend/rest"
	"todo/internal/service"
	"todo/internal/store"
)

type mode int

const (
	browsing mode = iota
	adding
	editing
)

// stateMsg carries a store snapshot into the program.
type stateMsg struct{ state store.State }

// opDoneMsg reports the end of an app operation.
type opDoneMsg struct {
	what string
	err  error
}

var (
	toggleKey  = key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle"))
	addKey     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editKey    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	deleteKey  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	filterKey  = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter"))
	refreshKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	quitKey    = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// Model is the bubbletea model of the task list.
type Model struct {
	ctx   context.Context
	app   *app.App
	state store.State

	list   list.Model
	input  textinput.Model
	mode   mode
	editID string

	status string
	err    string
	width  int
	height int
}

// New creates a model showing the app's current state.
func New(ctx context.Context, a *app.App) Model {
	s := a.Store.State()

	l := list.New(toItems(s.Tasks), itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.KeyMap.Quit = quitKey
	extra := func() []key.Binding {
		return []key.Binding{toggleKey, addKey, editKey, deleteKey, filterKey, refreshKey}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return Model{ctx: ctx, app: a, state: s, list: l, input: ti, width: 80, height: 24}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, a *app.App) error {
	p := tea.NewProgram(New(ctx, a), tea.WithAltScreen(), tea.WithContext(ctx))
	unsubscribe := a.Store.Subscribe(func(s store.State) {
		p.Send(stateMsg{state: s})
	})
	defer unsubscribe()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return m.do("refresh", m.app.Refresh)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case stateMsg:
		m.state = msg.state
		cmd := m.list.SetItems(toItems(msg.state.Tasks))
		return m, cmd
	case opDoneMsg:
		if msg.err != nil {
			m.err = errorText(msg.err)
			m.status = ""
		} else {
			m.err = ""
			m.status = msg.what
		}
		return m, nil
	case tea.KeyMsg:
		if m.mode != browsing {
			return m.updateInput(msg)
		}
		return m.updateBrowsing(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, quitKey):
		return m, tea.Quit
	case key.Matches(msg, filterKey):
		next := m.state.Filter.Next()
		return m, m.do("showing "+string(next), func(ctx context.Context) error {
			return m.app.SetFilter(ctx, next)
		})
	case key.Matches(msg, refreshKey):
		return m, m.do("refreshed", m.app.Refresh)
	case key.Matches(msg, addKey):
		m.mode = adding
		m.err = ""
		m.input.SetValue("")
		m.input.Placeholder = "New task title..."
		cmd := m.input.Focus()
		return m, cmd
	}

	task, ok := m.selected()
	switch {
	case !ok:
	case key.Matches(msg, toggleKey):
		return m, m.do("toggled", func(ctx context.Context) error {
			return m.app.ToggleTask(ctx, task.ID)
		})
	case key.Matches(msg, deleteKey):
		return m, m.do("deleted", func(ctx context.Context) error {
			return m.app.DeleteTask(ctx, task.ID)
		})
	case key.Matches(msg, editKey):
		m.mode = editing
		m.editID = task.ID
		m.err = ""
		m.input.SetValue(task.Title)
		m.input.CursorEnd()
		m.input.Placeholder = "Edit task title..."
		cmd := m.input.Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = browsing
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.err = "task title cannot be empty"
			return m, nil
		}
		var cmd tea.Cmd
		if m.mode == adding {
			cmd = m.do("added", func(ctx context.Context) error {
				_, err := m.app.AddTask(ctx, service.TaskFields{Title: title})
				return err
			})
		} else {
			id := m.editID
			desc := ""
			if t, ok := m.state.Task(id); ok {
				desc = t.Description
			}
			cmd = m.do("saved", func(ctx context.Context) error {
				return m.app.EditTask(ctx, id, service.TaskFields{Title: title, Description: desc})
			})
		}
		m.mode = browsing
		m.input.Blur()
		m.input.SetValue("")
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	w, h := m.width, m.height
	listHeight := h - 6
	if m.mode != browsing {
		listHeight -= 2
	}
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(w-4, listHeight)

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	if len(m.state.Tasks) == 0 {
		b.WriteString(mutedStyle.Render("  no tasks found"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	if m.mode != browsing {
		label := "Add task"
		if m.mode == editing {
			label = "Edit task"
		}
		b.WriteString(label + "\n" + m.input.View() + "\n")
	}
	b.WriteString(m.statusLine())
	return panelStyle.Render(b.String())
}

func (m Model) header() string {
	done, open := 0, 0
	for _, t := range m.state.Tasks {
		if t.Completed {
			done++
		} else {
			open++
		}
	}
	h := fmt.Sprintf("%s   %s %d  %s %d  %s %s",
		titleStyle.Render("Tasks"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), open,
		accentStyle.Render("filter"), m.state.Filter,
	)
	if m.state.Session != nil {
		h += "  " + mutedStyle.Render(m.state.Session.User.Name)
	}
	if m.state.Loading {
		h += "  " + mutedStyle.Render("loading...")
	}
	return h
}

func (m Model) statusLine() string {
	if m.err != "" {
		return errorStyle.Render("✖ " + m.err)
	}
	if m.status != "" {
		return successStyle.Render("✔ " + m.status)
	}
	return ""
}

func (m Model) selected() (service.Task, bool) {
	it, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return service.Task{}, false
	}
	return it.task, true
}

// do runs op off the update loop and reports its result as an opDoneMsg.
func (m Model) do(what string, op func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{what: what, err: op(ctx)}
	}
}

// errorText is the status-line text for err.
func errorText(err error) string {
	var verr *app.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, app.ErrNotLoggedIn):
		return "not logged in"
	}
	return rest.Message(err)
}
