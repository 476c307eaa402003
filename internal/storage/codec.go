package storage

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/abatilo/todo/internal/config"
	todoerrors "github.com/abatilo/todo/internal/errors"
	"github.com/abatilo/todo/internal/task"
)

// Codec converts the task collection to and from the persisted blob.
type Codec interface {
	Marshal(tasks []task.Task) (string, error)
	Unmarshal(blob string) ([]task.Task, error)
}

// CodecFor returns the codec for a blob format name.
func CodecFor(format string) (Codec, error) {
	switch format {
	case config.FormatJSON, "":
		return JSONCodec{}, nil
	case config.FormatYAML:
		return YAMLCodec{}, nil
	default:
		return nil, todoerrors.UnknownFormatError{Format: format, Valid: config.Formats()}
	}
}

// JSONCodec stores tasks as a JSON array of {"id","title","completed"} records.
type JSONCodec struct{}

// Marshal encodes tasks. An empty collection encodes as [].
func (JSONCodec) Marshal(tasks []task.Task) (string, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Unmarshal decodes a JSON array of tasks.
func (JSONCodec) Unmarshal(blob string) ([]task.Task, error) {
	var tasks []task.Task
	if err := json.Unmarshal([]byte(blob), &tasks); err != nil {
		return nil, &parseError{"invalid JSON: " + err.Error()}
	}
	return tasks, nil
}

// YAMLCodec stores tasks as a YAML sequence with the same field names.
type YAMLCodec struct{}

// Marshal encodes tasks with two-space indentation.
func (YAMLCodec) Marshal(tasks []task.Task) (string, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Unmarshal decodes a YAML sequence of tasks.
func (YAMLCodec) Unmarshal(blob string) ([]task.Task, error) {
	var tasks []task.Task
	if err := yaml.Unmarshal([]byte(blob), &tasks); err != nil {
		return nil, &parseError{"invalid YAML: " + err.Error()}
	}
	return tasks, nil
}

// parseError represents a blob that could not be decoded.
type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}
