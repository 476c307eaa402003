package output

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abatilo/todo/internal/task"
)

// EmptyMessage is shown when no task matches the active filter.
const EmptyMessage = "No tasks to show. Add your first task."

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct {
	styled bool
	done   lipgloss.Style
	id     lipgloss.Style
}

// NewHumanFormatter creates a new HumanFormatter. Styles are only applied when
// color is true and w supports them.
func NewHumanFormatter(w io.Writer, color bool) *HumanFormatter {
	f := &HumanFormatter{styled: color}
	if color {
		r := lipgloss.NewRenderer(w)
		f.done = r.NewStyle().Faint(true).Strikethrough(true)
		f.id = r.NewStyle().Foreground(lipgloss.Color("8"))
	}
	return f
}

// Render writes one line per task followed by the remaining counter.
func (f *HumanFormatter) Render(w io.Writer, tasks iter.Seq[task.Task], remaining int) error {
	var sb strings.Builder
	empty := true
	for t := range tasks {
		empty = false
		sb.WriteString(f.FormatTask(t))
	}
	if empty {
		sb.WriteString(EmptyMessage + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(f.FormatCount(remaining))

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatTask formats a single task as a compact one-liner.
func (f *HumanFormatter) FormatTask(t task.Task) string {
	title := t.Title
	id := fmt.Sprintf("%d", t.ID)
	if f.styled {
		id = f.id.Render(id)
		if t.Completed {
			title = f.done.Render(title)
		}
	}
	return fmt.Sprintf("%s %s  %s\n", f.checkbox(t), id, title)
}

func (f *HumanFormatter) checkbox(t task.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// FormatCount formats the remaining counter.
func (f *HumanFormatter) FormatCount(remaining int) string {
	return fmt.Sprintf("%d tasks remaining\n", remaining)
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}
