package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dashboardEntry struct {
	key         string
	title       string
	description string
	target      route
}

var dashboardEntries = []dashboardEntry{
	{"1", "Caption Generator", "Generate creative captions for your social media posts", routeCaption},
	{"2", "Text Summarizer", "Create concise summaries of long texts", routeSummary},
	{"3", "Translator", "Translate text between different languages", routeTranslation},
	{"4", "Task History", "View your previous language tasks and their results", routeHistory},
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "1", "c":
		return m.navigate(routeCaption)
	case "2", "s":
		return m.navigate(routeSummary)
	case "3", "t":
		return m.navigate(routeTranslation)
	case "4", "h":
		return m.navigate(routeHistory)
	case "l":
		m.store.Logout()
		return m.navigate(routeLogin)
	}
	return m, nil
}

func (m Model) viewDashboard() string {
	snap := m.store.Snapshot()

	var b strings.Builder
	welcome := "Welcome to LinguaTask"
	if snap.User != nil {
		welcome = "Welcome, " + snap.User.Username
	}
	b.WriteString("\n" + titleStyle.Render(welcome) + "\n")
	b.WriteString(dimStyle.Render("  Select a language task below to get started:") + "\n\n")

	keyStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	for _, e := range dashboardEntries {
		b.WriteString("  " + keyStyle.Render("["+e.key+"] ") +
			lipgloss.NewStyle().Bold(true).Render(e.title) + "\n")
		b.WriteString("      " + dimStyle.Render(e.description) + "\n\n")
	}

	b.WriteString(helpStyle.Render("  1-4: open  h: history  l: logout  q: quit"))
	return b.String()
}
