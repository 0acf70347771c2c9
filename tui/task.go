package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/amirsalarabedini/LinguaTask/api"
	"github.com/amirsalarabedini/LinguaTask/model"
)

// task form field identifiers; not every kind uses every field
const (
	taskFieldInput = iota
	taskFieldTopic
	taskFieldLanguage
	taskFieldModel
)

// modelsLoadedMsg carries the /models fetch for the view that asked.
type modelsLoadedMsg struct {
	kind   model.TaskType
	models []model.ChatModel
	err    error
}

// taskDoneMsg carries the result of one submission, tagged with the
// request id so a late response to an abandoned view is discarded.
type taskDoneMsg struct {
	id     string
	output string
	err    error
}

type taskForm struct {
	kind  model.TaskType
	input textinput.Model
	topic textinput.Model

	models        []model.ChatModel
	modelIdx      int
	modelsLoading bool
	modelsFailed  bool

	langIdx int // index into model.Languages, -1 until chosen

	focus      int
	submitting bool
	reqID      string
	output     string
	errMsg     string
}

func newTaskForm(kind model.TaskType) taskForm {
	in := textinput.New()
	in.CharLimit = 4000
	in.Width = 56
	in.Focus()
	switch kind {
	case model.TaskCaption:
		in.Placeholder = "context for the caption..."
	case model.TaskSummary:
		in.Placeholder = "text to summarize..."
	case model.TaskTranslation:
		in.Placeholder = "text to translate..."
	}

	topic := textinput.New()
	topic.Placeholder = "e.g. Instagram post about hiking"
	topic.CharLimit = 200
	topic.Width = 56

	return taskForm{
		kind:          kind,
		input:         in,
		topic:         topic,
		modelsLoading: true,
		langIdx:       -1,
	}
}

// fields returns the focus order for this task kind.
func (f *taskForm) fields() []int {
	switch f.kind {
	case model.TaskCaption:
		return []int{taskFieldInput, taskFieldTopic, taskFieldModel}
	case model.TaskTranslation:
		return []int{taskFieldInput, taskFieldLanguage, taskFieldModel}
	default:
		return []int{taskFieldInput, taskFieldModel}
	}
}

func (f *taskForm) focusedField() int {
	return f.fields()[f.focus]
}

func (f *taskForm) cycleFocus(delta int) {
	if f.focusedField() == taskFieldInput {
		f.input.Blur()
	}
	if f.focusedField() == taskFieldTopic {
		f.topic.Blur()
	}
	n := len(f.fields())
	f.focus = (f.focus + delta + n) % n
	switch f.focusedField() {
	case taskFieldInput:
		f.input.Focus()
		f.input.CursorEnd()
	case taskFieldTopic:
		f.topic.Focus()
		f.topic.CursorEnd()
	}
}

func fetchModels(client *api.Client, kind model.TaskType) tea.Cmd {
	return func() tea.Msg {
		models, err := client.Models()
		return modelsLoadedMsg{kind: kind, models: models, err: err}
	}
}

func (m Model) updateModelsLoaded(msg modelsLoadedMsg) Model {
	// discard stale result if the user already left for another view
	if m.task == nil || m.task.kind != msg.kind {
		return m
	}
	f := m.task
	f.modelsLoading = false
	if msg.err != nil || len(msg.models) == 0 {
		f.modelsFailed = true
		return m
	}
	f.models = msg.models
	f.modelIdx = defaultModelIndex(msg.models)
	return m
}

// defaultModelIndex preselects the server's default pair when offered.
func defaultModelIndex(models []model.ChatModel) int {
	for i, cm := range models {
		if cm.Model == model.DefaultModel && cm.Provider == model.DefaultProvider {
			return i
		}
	}
	return 0
}

func (m Model) updateTask(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.task
	if f == nil {
		return m, nil
	}
	key := msg.String()

	// navigation stays available while a request is in flight; the
	// response is discarded by request id if the view is gone
	if key == "esc" {
		return m.navigate(routeDashboard)
	}

	if f.submitting {
		return m, nil // controls are disabled until the request finishes
	}

	switch key {
	case "tab", "down":
		f.cycleFocus(1)
		return m, nil
	case "shift+tab", "up":
		f.cycleFocus(-1)
		return m, nil
	case "enter":
		return m.submitTask()
	}

	switch f.focusedField() {
	case taskFieldInput:
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return m, cmd
	case taskFieldTopic:
		var cmd tea.Cmd
		f.topic, cmd = f.topic.Update(msg)
		return m, cmd
	case taskFieldLanguage:
		switch key {
		case "left", "h":
			if f.langIdx <= 0 {
				f.langIdx = len(model.Languages) - 1
			} else {
				f.langIdx--
			}
		case "right", "l":
			f.langIdx = (f.langIdx + 1) % len(model.Languages)
		}
	case taskFieldModel:
		if len(f.models) == 0 {
			break
		}
		switch key {
		case "left", "h":
			f.modelIdx = (f.modelIdx - 1 + len(f.models)) % len(f.models)
		case "right", "l":
			f.modelIdx = (f.modelIdx + 1) % len(f.models)
		}
	}

	return m, nil
}

// submitTask validates the form and, when valid, issues exactly one
// request. Validation failures show inline and never touch the network.
func (m Model) submitTask() (Model, tea.Cmd) {
	f := m.task
	f.errMsg = ""
	f.output = "" // previous output is cleared before the attempt

	input := strings.TrimSpace(f.input.Value())
	if input == "" {
		f.errMsg = inputRequiredMessage(f.kind)
		return m, nil
	}
	if f.kind == model.TaskCaption && strings.TrimSpace(f.topic.Value()) == "" {
		f.errMsg = "Please enter a topic"
		return m, nil
	}
	if f.kind == model.TaskTranslation && f.langIdx < 0 {
		f.errMsg = "Please select a target language"
		return m, nil
	}
	if f.modelsLoading || len(f.models) == 0 {
		f.errMsg = "Please select a model"
		return m, nil
	}

	f.submitting = true
	f.reqID = uuid.NewString()

	sel := f.models[f.modelIdx]
	topic := strings.TrimSpace(f.topic.Value())
	var lang string
	if f.langIdx >= 0 {
		lang = model.Languages[f.langIdx]
	}
	return m, runTask(m.client, f.kind, f.reqID, input, topic, lang, sel)
}

func inputRequiredMessage(kind model.TaskType) string {
	switch kind {
	case model.TaskSummary:
		return "Please provide text to summarize"
	case model.TaskTranslation:
		return "Please provide text to translate"
	default:
		return "Please provide some context text"
	}
}

func failureMessage(kind model.TaskType) string {
	switch kind {
	case model.TaskSummary:
		return "Failed to summarize text. Please try again."
	case model.TaskTranslation:
		return "Failed to translate text. Please try again."
	default:
		return "Failed to generate caption. Please try again."
	}
}

func runTask(client *api.Client, kind model.TaskType, id, input, topic, lang string, sel model.ChatModel) tea.Cmd {
	return func() tea.Msg {
		var out string
		var err error
		switch kind {
		case model.TaskCaption:
			out, err = client.Caption(input, topic, sel.Model, sel.Provider)
		case model.TaskSummary:
			out, err = client.Summary(input, sel.Model, sel.Provider)
		case model.TaskTranslation:
			out, err = client.Translate(input, lang, sel.Model, sel.Provider)
		}
		return taskDoneMsg{id: id, output: out, err: err}
	}
}

func (m Model) updateTaskDone(msg taskDoneMsg) Model {
	// late response to a view the user has left, or to an older
	// submission; drop it without touching state
	if m.task == nil || m.task.reqID != msg.id {
		return m
	}
	f := m.task
	f.submitting = false
	f.reqID = ""
	if msg.err != nil {
		f.errMsg = api.Message(msg.err, failureMessage(f.kind))
		return m
	}
	f.output = msg.output
	return m
}

func (m Model) viewTask() string {
	f := m.task

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("39")).
		Padding(1, 2).
		Width(72)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		Render(f.kind.Title())

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString(m.fieldLabel("Text:", f.focusedField() == taskFieldInput) + "  " + f.input.View() + "\n\n")

	if f.kind == model.TaskCaption {
		b.WriteString(m.fieldLabel("Topic:", f.focusedField() == taskFieldTopic) + "  " + f.topic.View() + "\n\n")
	}
	if f.kind == model.TaskTranslation {
		b.WriteString(m.fieldLabel("Language:", f.focusedField() == taskFieldLanguage) + "  " +
			m.renderChoice(languageChoice(f.langIdx), f.focusedField() == taskFieldLanguage) + "\n\n")
	}

	b.WriteString(m.fieldLabel("Model:", f.focusedField() == taskFieldModel) + "  " + m.renderModelChoice(f) + "\n\n")

	switch {
	case f.submitting:
		b.WriteString(m.spin.View() + " " + workingMessage(f.kind))
	case f.errMsg != "":
		b.WriteString(errorStyle.Render(f.errMsg))
	default:
		b.WriteString(dimStyle.Render("Enter: submit  Tab: next  ←/→: choose  Esc: back"))
	}

	out := boxStyle.Render(b.String())

	if f.output != "" {
		label := outputLabel(f.kind)
		body := lipgloss.NewStyle().Width(68).Render(f.output)
		out += "\n" + outputTitleStyle.Render(label) + "\n" + body
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(out)
}

func (m Model) renderModelChoice(f *taskForm) string {
	switch {
	case f.modelsLoading:
		return dimStyle.Render("Loading models...")
	case f.modelsFailed:
		return errorStyle.Render("No models available")
	default:
		return m.renderChoice(f.models[f.modelIdx].Label(), f.focusedField() == taskFieldModel)
	}
}

// renderChoice draws a left/right cycled selector value.
func (m Model) renderChoice(value string, focused bool) string {
	style := lipgloss.NewStyle()
	if focused {
		style = style.Bold(true).Foreground(lipgloss.Color("39"))
	} else {
		style = style.Foreground(lipgloss.Color("255"))
	}
	return dimStyle.Render("‹ ") + style.Render(value) + dimStyle.Render(" ›")
}

func languageChoice(idx int) string {
	if idx < 0 {
		return "(select)"
	}
	return model.Languages[idx]
}

func workingMessage(kind model.TaskType) string {
	switch kind {
	case model.TaskSummary:
		return "Summarizing..."
	case model.TaskTranslation:
		return "Translating..."
	default:
		return "Generating..."
	}
}

func outputLabel(kind model.TaskType) string {
	switch kind {
	case model.TaskSummary:
		return " Summary "
	case model.TaskTranslation:
		return " Translation "
	default:
		return " Caption "
	}
}
