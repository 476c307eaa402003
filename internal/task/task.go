package task

import "strings"

// Task represents a single entry in the task list.
type Task struct {
	ID        int64  `json:"id"        yaml:"id"`
	Title     string `json:"title"     yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Filter selects which tasks are visible.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every valid filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// IsValidFilter checks if a filter value is one of the known filters.
func IsValidFilter(f Filter) bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// ParseFilter converts user input into a Filter. Unknown values are rejected.
func ParseFilter(s string) (Filter, bool) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if !IsValidFilter(f) {
		return "", false
	}
	return f, true
}

// Matches returns true if the task belongs in the filtered view.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterAll:
		return true
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return false
	}
}

// NormalizeTitle trims a title. The second return is false when nothing is left.
func NormalizeTitle(title string) (string, bool) {
	trimmed := strings.TrimSpace(title)
	return trimmed, trimmed != ""
}
