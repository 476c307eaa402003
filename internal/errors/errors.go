//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import (
	"fmt"
	"strings"
)

// TaskNotFoundError indicates the task ID doesn't match any task.
type TaskNotFoundError struct {
	ID int64
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %d", e.ID)
}

// InvalidIDError indicates a task ID argument could not be parsed.
type InvalidIDError struct {
	Value string
}

func (e InvalidIDError) Error() string {
	return fmt.Sprintf("invalid task id: %q", e.Value)
}

// EmptyTitleError indicates a title was blank after trimming.
type EmptyTitleError struct{}

func (e EmptyTitleError) Error() string {
	return "task title cannot be empty"
}

// NothingToClearError indicates clear was requested on an empty list.
type NothingToClearError struct{}

func (e NothingToClearError) Error() string {
	return "no tasks to clear"
}

// InvalidFilterError indicates an unknown filter value.
type InvalidFilterError struct {
	Value string
}

func (e InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filter: %s (valid: all, active, completed)", e.Value)
}

// UnknownBackendError indicates an unsupported key-value backend.
type UnknownBackendError struct {
	Backend string
	Valid   []string
}

func (e UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown storage backend: %s (valid: %s)", e.Backend, strings.Join(e.Valid, ", "))
}

// UnknownFormatError indicates an unsupported serialization or export format.
type UnknownFormatError struct {
	Format string
	Valid  []string
}

func (e UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown format: %s (valid: %s)", e.Format, strings.Join(e.Valid, ", "))
}

// MissingDSNError indicates a database backend was selected without a DSN.
type MissingDSNError struct {
	Backend string
}

func (e MissingDSNError) Error() string {
	return fmt.Sprintf("storage backend %s requires a dsn", e.Backend)
}
