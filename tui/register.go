package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amirsalarabedini/LinguaTask/session"
)

// registerResultMsg is sent when a registration attempt completes.
type registerResultMsg struct {
	res session.Result
}

type registerForm struct {
	email      textinput.Model
	username   textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newRegisterForm() registerForm {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 200
	email.Width = 32
	email.Focus()

	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 100
	user.Width = 32

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 100
	pass.Width = 32
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return registerForm{email: email, username: user, password: pass}
}

func (f *registerForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.email, &f.username, &f.password}
}

func (f *registerForm) cycleFocus(delta int) {
	fields := f.inputs()
	fields[f.focus].Blur()
	f.focus = (f.focus + delta + len(fields)) % len(fields)
	fields[f.focus].Focus()
	fields[f.focus].CursorEnd()
}

func (m Model) updateRegister(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.register
	if f.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m.navigate(routeLogin)
	case "tab", "down":
		f.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		f.cycleFocus(-1)
		return m, nil
	case "enter":
		email := strings.TrimSpace(f.email.Value())
		username := strings.TrimSpace(f.username.Value())
		password := f.password.Value()
		if email == "" || username == "" || password == "" {
			f.errMsg = "Please fill in all fields"
			return m, nil
		}
		f.errMsg = ""
		f.submitting = true
		return m, doRegister(m.store, email, username, password)
	}

	var cmd tea.Cmd
	in := f.inputs()[f.focus]
	*in, cmd = in.Update(msg)
	return m, cmd
}

func doRegister(store *session.Store, email, username, password string) tea.Cmd {
	return func() tea.Msg {
		return registerResultMsg{res: store.Register(email, username, password)}
	}
}

func (m Model) updateRegisterResult(msg registerResultMsg) (tea.Model, tea.Cmd) {
	m.register.submitting = false
	if msg.res.Success {
		next, cmd := m.navigate(routeLogin)
		next.login.notice = "Account created. Sign in to continue."
		return next, cmd
	}
	m.register.errMsg = msg.res.Message
	return m, nil
}

func (m Model) viewRegister() string {
	f := m.register

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Padding(1, 2).
		Width(52)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Render("Create Account")

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString(m.fieldLabel("Email:", f.focus == 0) + "  " + f.email.View() + "\n\n")
	b.WriteString(m.fieldLabel("User:", f.focus == 1) + "  " + f.username.View() + "\n\n")
	b.WriteString(m.fieldLabel("Pass:", f.focus == 2) + "  " + f.password.View() + "\n\n")

	switch {
	case f.submitting:
		b.WriteString(m.spin.View() + " Creating account...")
	case f.errMsg != "":
		b.WriteString(errorStyle.Render(f.errMsg))
	default:
		b.WriteString(dimStyle.Render("Enter: register  Tab: next  Esc: back to sign in"))
	}

	box := boxStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, box)
}
