package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amirsalarabedini/LinguaTask/session"
)

// loginResultMsg is sent when a login attempt completes.
type loginResultMsg struct {
	res session.Result
}

type loginForm struct {
	username   textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	errMsg     string
	notice     string // e.g. "account created" after registering
}

func newLoginForm() loginForm {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 100
	user.Width = 32
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 100
	pass.Width = 32
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return loginForm{username: user, password: pass}
}

func (f *loginForm) cycleFocus(delta int) {
	if f.focus == 0 {
		f.username.Blur()
	} else {
		f.password.Blur()
	}
	f.focus = (f.focus + delta + 2) % 2
	if f.focus == 0 {
		f.username.Focus()
		f.username.CursorEnd()
	} else {
		f.password.Focus()
		f.password.CursorEnd()
	}
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.login
	if f.submitting {
		return m, nil // one attempt in flight at a time
	}

	switch msg.String() {
	case "tab", "down":
		f.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		f.cycleFocus(-1)
		return m, nil
	case "ctrl+r":
		return m.navigate(routeRegister)
	case "enter":
		username := strings.TrimSpace(f.username.Value())
		password := f.password.Value()
		if username == "" || password == "" {
			f.errMsg = "Please enter a username and password"
			return m, nil
		}
		f.errMsg = ""
		f.notice = ""
		f.submitting = true
		return m, doLogin(m.store, username, password)
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.username, cmd = f.username.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return m, cmd
}

func doLogin(store *session.Store, username, password string) tea.Cmd {
	return func() tea.Msg {
		return loginResultMsg{res: store.Login(username, password)}
	}
}

func (m Model) updateLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.submitting = false
	if msg.res.Success {
		return m.navigate(routeDashboard)
	}
	m.login.errMsg = msg.res.Message
	return m, nil
}

func (m Model) viewLogin() string {
	f := m.login

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Padding(1, 2).
		Width(48)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Render("Sign In")

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString(m.fieldLabel("User:", f.focus == 0) + "  " + f.username.View() + "\n\n")
	b.WriteString(m.fieldLabel("Pass:", f.focus == 1) + "  " + f.password.View() + "\n\n")

	switch {
	case f.submitting:
		b.WriteString(m.spin.View() + " Signing in...")
	case f.errMsg != "":
		b.WriteString(errorStyle.Render(f.errMsg))
	case f.notice != "":
		b.WriteString(successStyle.Render(f.notice))
	default:
		b.WriteString(dimStyle.Render("Enter: sign in  Tab: next  Ctrl+R: register"))
	}

	box := boxStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) fieldLabel(label string, focused bool) string {
	style := lipgloss.NewStyle().Width(10)
	if focused {
		style = style.Bold(true).Foreground(lipgloss.Color("39"))
	} else {
		style = style.Foreground(lipgloss.Color("252"))
	}
	return style.Render(label)
}
