package output

import (
	"encoding/json"
	"io"
	"iter"

	"github.com/abatilo/todo/internal/task"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// viewJSON is the JSON representation of a rendered view.
type viewJSON struct {
	Tasks     []task.Task `json:"tasks"`
	Remaining int         `json:"remaining"`
}

// Render writes the visible tasks and remaining counter as one JSON document.
func (f *JSONFormatter) Render(w io.Writer, tasks iter.Seq[task.Task], remaining int) error {
	view := viewJSON{Tasks: []task.Task{}, Remaining: remaining}
	for t := range tasks {
		view.Tasks = append(view.Tasks, t)
	}
	_, err := io.WriteString(w, marshalJSON(view))
	return err
}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(t task.Task) string {
	return marshalJSON(t)
}

// countJSON is the JSON representation of the remaining counter.
type countJSON struct {
	Remaining int `json:"remaining"`
}

// FormatCount formats the remaining counter as JSON.
func (f *JSONFormatter) FormatCount(remaining int) string {
	return marshalJSON(countJSON{Remaining: remaining})
}

// errorJSON is the JSON representation of an error.
type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

// messageJSON is the JSON representation of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}
