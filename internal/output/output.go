package output

import (
	"io"
	"iter"

	"github.com/abatilo/todo/internal/task"
)

// Renderer draws the visible task list and the remaining counter.
type Renderer interface {
	Render(w io.Writer, tasks iter.Seq[task.Task], remaining int) error
}

// Formatter defines the interface for output formatting.
type Formatter interface {
	Renderer
	FormatTask(t task.Task) string
	FormatCount(remaining int) string
	FormatError(err error) string
	FormatMessage(msg string) string
}
