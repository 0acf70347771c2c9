package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// navBar renders the top bar. Links are conditioned on session
// presence, matching what a logged-out user may reach.
func (m Model) navBar() string {
	snap := m.store.Snapshot()
	title := titleStyle.Render("LinguaTask")

	var links []string
	switch {
	case snap.Loading:
		// nothing to offer until the session resolves
	case snap.LoggedIn():
		links = []string{"Dashboard", "History", "Logout"}
		if snap.User != nil {
			title += dimStyle.Render(" " + snap.User.Username)
		}
	default:
		links = []string{"Login", "Register"}
	}

	bar := title
	if len(links) > 0 {
		bar += navStyle.Render(strings.Join(links, " · "))
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, bar)
}
