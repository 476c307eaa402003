//nolint:testpackage // Tests require internal access for thorough testing
package errors

import (
	"testing"
)

func TestTaskNotFoundError(t *testing.T) {
	err := TaskNotFoundError{ID: 1705314600000}
	want := "task not found: 1705314600000"
	if got := err.Error(); got != want {
		t.Errorf("TaskNotFoundError.Error() = %q, want %q", got, want)
	}
}

func TestInvalidIDError(t *testing.T) {
	err := InvalidIDError{Value: "abc"}
	want := `invalid task id: "abc"`
	if got := err.Error(); got != want {
		t.Errorf("InvalidIDError.Error() = %q, want %q", got, want)
	}
}

func TestInvalidFilterError(t *testing.T) {
	err := InvalidFilterError{Value: "pending"}
	want := "invalid filter: pending (valid: all, active, completed)"
	if got := err.Error(); got != want {
		t.Errorf("InvalidFilterError.Error() = %q, want %q", got, want)
	}
}

func TestUnknownBackendError(t *testing.T) {
	tests := []struct {
		name string
		err  UnknownBackendError
		want string
	}{
		{
			name: "lists valid backends",
			err:  UnknownBackendError{Backend: "redis", Valid: []string{"file", "sqlite"}},
			want: "unknown storage backend: redis (valid: file, sqlite)",
		},
		{
			name: "handles empty backend",
			err:  UnknownBackendError{Backend: "", Valid: []string{"memory"}},
			want: "unknown storage backend:  (valid: memory)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("UnknownBackendError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnknownFormatError(t *testing.T) {
	err := UnknownFormatError{Format: "xml", Valid: []string{"json", "yaml"}}
	want := "unknown format: xml (valid: json, yaml)"
	if got := err.Error(); got != want {
		t.Errorf("UnknownFormatError.Error() = %q, want %q", got, want)
	}
}

func TestMissingDSNError(t *testing.T) {
	err := MissingDSNError{Backend: "mysql"}
	want := "storage backend mysql requires a dsn"
	if got := err.Error(); got != want {
		t.Errorf("MissingDSNError.Error() = %q, want %q", got, want)
	}
}
