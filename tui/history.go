package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amirsalarabedini/LinguaTask/api"
	"github.com/amirsalarabedini/LinguaTask/model"
)

// historyLoadedMsg is sent when the history fetch completes.
type historyLoadedMsg struct {
	tasks []model.Task
	err   error
}

type historyView struct {
	loading bool
	errMsg  string
	tasks   []model.Task

	cursor   int
	offset   int // line scroll offset
	expanded map[int]bool
}

func newHistoryView() historyView {
	return historyView{
		loading:  true,
		expanded: make(map[int]bool),
	}
}

func fetchHistory(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		tasks, err := client.History()
		return historyLoadedMsg{tasks: tasks, err: err}
	}
}

func (m Model) updateHistoryLoaded(msg historyLoadedMsg) Model {
	// discard if the user already left the history view
	if m.history == nil {
		return m
	}
	h := m.history
	h.loading = false
	if msg.err != nil {
		h.errMsg = api.Message(msg.err, "Failed to load task history")
		return m
	}
	h.tasks = msg.tasks
	return m
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := m.history
	if h == nil {
		return m, nil
	}

	switch msg.String() {
	case "esc", "q":
		return m.navigate(routeDashboard)

	case "up", "k":
		if h.cursor > 0 {
			h.cursor--
		}

	case "down", "j":
		if h.cursor < len(h.tasks)-1 {
			h.cursor++
		}

	case "home", "g":
		h.cursor = 0

	case "end", "G":
		if len(h.tasks) > 0 {
			h.cursor = len(h.tasks) - 1
		}

	case "enter":
		if len(h.tasks) > 0 {
			id := h.tasks[h.cursor].ID
			h.expanded[id] = !h.expanded[id]
		}
	}

	return m, nil
}

func (m Model) viewHistory() string {
	h := m.history

	var b strings.Builder
	b.WriteString("\n" + titleStyle.Render("Task History") + "\n\n")

	switch {
	case h.loading:
		b.WriteString("  " + m.spin.View() + " " + dimStyle.Render("Loading history...") + "\n")
		return b.String()
	case h.errMsg != "":
		b.WriteString("  " + errorStyle.Render(h.errMsg) + "\n\n")
		b.WriteString(helpStyle.Render("  Esc: back"))
		return b.String()
	case len(h.tasks) == 0:
		b.WriteString("  " + dimStyle.Render("You haven't completed any tasks yet.") + "\n\n")
		b.WriteString(helpStyle.Render("  Esc: back"))
		return b.String()
	}

	b.WriteString(headerStyle.Render(pad("Type", 18)+" "+pad("Date", 22)+" Details") + "\n")

	lines, cursorLine := m.historyLines()
	visible := m.historyVisibleRows()
	h.offset = clampScroll(h.offset, cursorLine, visible, len(lines))

	end := h.offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	for i := h.offset; i < end; i++ {
		b.WriteString(lines[i] + "\n")
	}
	for i := end - h.offset; i < visible; i++ {
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("  Enter: expand  ↑/↓: move  Esc: back"))
	return b.String()
}

// historyLines renders all rows (expanded rows span several lines) and
// returns the line index of the cursor row.
func (m Model) historyLines() ([]string, int) {
	h := m.history
	var lines []string
	cursorLine := 0

	for i, t := range h.tasks {
		if i == h.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, m.renderHistoryRow(t, i == h.cursor))
		if h.expanded[t.ID] {
			lines = append(lines, m.renderTaskDetail(t)...)
		}
	}
	return lines, cursorLine
}

func (m Model) renderHistoryRow(t model.Task, selected bool) string {
	tag := taskTag(t.TaskType)
	row := tag.Render(pad(string(t.TaskType), 18)) + " " +
		pad(t.CreatedDisplay(), 22) + " " +
		t.InputPreview(50)

	if selected {
		plain := pad(string(t.TaskType), 18) + " " + pad(t.CreatedDisplay(), 22) + " " + t.InputPreview(50)
		row = selectedStyle.Render(plain)
		row = lipgloss.PlaceHorizontal(m.width, lipgloss.Left, row)
	}
	return row
}

// renderTaskDetail is the expanded body of a row: input, output, and
// the metadata chips. Malformed metadata renders as no chips at all.
func (m Model) renderTaskDetail(t model.Task) []string {
	wrap := lipgloss.NewStyle().Width(m.width - 8)

	var lines []string
	lines = append(lines, "    "+dimStyle.Render("Input:"))
	lines = append(lines, indentLines(wrap.Render(t.InputText), "      ")...)
	lines = append(lines, "    "+dimStyle.Render("Output:"))
	lines = append(lines, indentLines(wrap.Render(t.OutputText), "      ")...)

	meta := t.Metadata()
	if len(meta) > 0 {
		keys := make([]string, 0, len(meta))
		for k := range meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		chips := make([]string, 0, len(keys))
		for _, k := range keys {
			chips = append(chips, chipStyle.Render(k+": "+meta[k]))
		}
		lines = append(lines, "    "+dimStyle.Render("Metadata:"))
		lines = append(lines, "      "+strings.Join(chips, " "))
	}
	lines = append(lines, "")
	return lines
}

func taskTag(t model.TaskType) lipgloss.Style {
	switch t {
	case model.TaskCaption:
		return captionTag
	case model.TaskSummary:
		return summaryTag
	default:
		return translationTag
	}
}

func (m Model) historyVisibleRows() int {
	// total height minus nav bar, title, header, help bar
	rows := m.height - 7
	if rows < 1 {
		rows = 1
	}
	return rows
}

// clampScroll keeps the cursor line within the visible window.
func clampScroll(offset, cursorLine, visible, total int) int {
	if cursorLine < offset {
		offset = cursorLine
	}
	if cursorLine >= offset+visible {
		offset = cursorLine - visible + 1
	}
	if offset > total-visible {
		offset = total - visible
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func indentLines(s, prefix string) []string {
	raw := strings.Split(s, "\n")
	out := make([]string, len(raw))
	for i, line := range raw {
		out[i] = prefix + line
	}
	return out
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
