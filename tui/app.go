package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amirsalarabedini/LinguaTask/api"
	"github.com/amirsalarabedini/LinguaTask/model"
	"github.com/amirsalarabedini/LinguaTask/session"
)

type route int

const (
	routeLogin route = iota
	routeRegister
	routeDashboard
	routeCaption
	routeSummary
	routeTranslation
	routeHistory
)

// sessionResolvedMsg is sent when the initial token validation finishes.
type sessionResolvedMsg struct{}

type Model struct {
	client *api.Client
	store  *session.Store

	route  route
	width  int
	height int

	spin     spinner.Model
	login    loginForm
	register registerForm
	task     *taskForm
	history  *historyView
	quitting bool
}

// New builds the application model. The session store is injected; the
// UI never writes auth state except through it.
func New(client *api.Client, store *session.Store) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return Model{
		client:   client,
		store:    store,
		route:    routeDashboard, // guard holds a placeholder until the session resolves
		width:    100,
		height:   30,
		spin:     sp,
		login:    newLoginForm(),
		register: newRegisterForm(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(resolveSession(m.store), m.spin.Tick)
}

// resolveSession validates any persisted token off the event loop.
func resolveSession(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		store.Initialize()
		return sessionResolvedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionResolvedMsg:
		return m.navigate(routeDashboard)

	case loginResultMsg:
		return m.updateLoginResult(msg)

	case registerResultMsg:
		return m.updateRegisterResult(msg)

	case modelsLoadedMsg:
		return m.updateModelsLoaded(msg), nil

	case taskDoneMsg:
		return m.updateTaskDone(msg), nil

	case historyLoadedMsg:
		return m.updateHistoryLoaded(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.route {
		case routeLogin:
			return m.updateLogin(msg)
		case routeRegister:
			return m.updateRegister(msg)
		case routeDashboard:
			return m.updateDashboard(msg)
		case routeCaption, routeSummary, routeTranslation:
			return m.updateTask(msg)
		case routeHistory:
			return m.updateHistory(msg)
		}
	}
	return m, nil
}

// navigate switches views, applying the route guard and resetting
// per-view state. View entry kicks off that view's fetch, if any.
func (m Model) navigate(r route) (Model, tea.Cmd) {
	switch guardRoute(r, m.store.Snapshot()) {
	case guardWait:
		m.route = r
		return m, nil
	case guardRedirect:
		r = routeLogin
	}

	m.route = r
	m.task = nil
	m.history = nil

	switch r {
	case routeLogin:
		m.login = newLoginForm()
	case routeRegister:
		m.register = newRegisterForm()
	case routeCaption:
		f := newTaskForm(model.TaskCaption)
		m.task = &f
		return m, fetchModels(m.client, f.kind)
	case routeSummary:
		f := newTaskForm(model.TaskSummary)
		m.task = &f
		return m, fetchModels(m.client, f.kind)
	case routeTranslation:
		f := newTaskForm(model.TaskTranslation)
		m.task = &f
		return m, fetchModels(m.client, f.kind)
	case routeHistory:
		h := newHistoryView()
		m.history = &h
		return m, fetchHistory(m.client)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch guardRoute(m.route, m.store.Snapshot()) {
	case guardWait:
		body = m.viewPlaceholder()
	case guardRedirect:
		body = m.viewLogin()
	default:
		switch m.route {
		case routeLogin:
			body = m.viewLogin()
		case routeRegister:
			body = m.viewRegister()
		case routeDashboard:
			body = m.viewDashboard()
		case routeCaption, routeSummary, routeTranslation:
			if m.task != nil {
				body = m.viewTask()
			}
		case routeHistory:
			if m.history != nil {
				body = m.viewHistory()
			}
		}
	}

	return m.navBar() + "\n" + body
}

// viewPlaceholder is shown while the stored token is being validated.
// It deliberately reveals nothing about any protected view.
func (m Model) viewPlaceholder() string {
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center,
		m.spin.View()+" "+dimStyle.Render("Loading..."))
}
