package model

// Defaults preselected when present in the fetched model list.
const (
	DefaultModel    = "gpt-4o-mini"
	DefaultProvider = "openai_chat_completion"
)

// ChatModel identifies a provider/model pair offered by the API.
type ChatModel struct {
	Provider string `json:"name"`
	Model    string `json:"model"`
}

// Label renders the pair the way selection controls show it.
func (m ChatModel) Label() string {
	return m.Model + " (" + m.Provider + ")"
}
