package model

import (
	"encoding/json"
	"fmt"
	"time"
)

type TaskType string

const (
	TaskCaption     TaskType = "caption"
	TaskSummary     TaskType = "summary"
	TaskTranslation TaskType = "translation"
)

// Title returns the display name for a task type.
func (t TaskType) Title() string {
	switch t {
	case TaskCaption:
		return "Caption Generator"
	case TaskSummary:
		return "Text Summarizer"
	case TaskTranslation:
		return "Translator"
	default:
		return "Unknown Task"
	}
}

// Task is a server-owned record of one completed task run. The client
// never mutates these; history only renders them.
type Task struct {
	ID          int      `json:"id"`
	TaskType    TaskType `json:"task_type"`
	InputText   string   `json:"input_text"`
	OutputText  string   `json:"output_text"`
	RawMetadata string   `json:"task_metadata"`
	CreatedAt   string   `json:"created_at"` // kept raw; server timestamps are not always RFC 3339
}

// Metadata decodes the task_metadata JSON string into displayable
// key/value pairs. Empty or malformed metadata yields an empty map.
func (t Task) Metadata() map[string]string {
	if t.RawMetadata == "" {
		return map[string]string{}
	}
	var raw map[string]any
	if err := json.Unmarshal([]byte(t.RawMetadata), &raw); err != nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = fmt.Sprint(v)
	}
	return out
}

// timestamp layouts seen from the API: RFC 3339 and naive datetimes
// (FastAPI serializes datetimes without a zone suffix)
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// CreatedDisplay formats the creation timestamp for display, falling
// back to the raw string when it cannot be parsed.
func (t Task) CreatedDisplay() string {
	for _, layout := range createdAtLayouts {
		if ts, err := time.Parse(layout, t.CreatedAt); err == nil {
			return ts.Format("Jan 2, 2006 3:04 PM")
		}
	}
	return t.CreatedAt
}

// InputPreview returns a truncated first line of the input text for
// list rows.
func (t Task) InputPreview(max int) string {
	runes := []rune(t.InputText)
	if len(runes) <= max {
		return t.InputText
	}
	return string(runes[:max]) + "..."
}
