package kv

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	fileExt    = ".blob"
	keyHashLen = 8
)

//nolint:gochecknoglobals // compiled once
var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// File stores each key as a file under a base directory.
type File struct {
	basePath string
}

// NewFile creates a File store rooted at path. The directory is created on first write.
func NewFile(path string) *File {
	return &File{basePath: path}
}

// BasePath returns the directory values are stored in.
func (s *File) BasePath() string {
	return s.basePath
}

// SanitizeKey converts a key to a safe file name.
// "task manager/tasks" -> "task-manager-tasks"
func SanitizeKey(key string) string {
	result := unsafeKeyChars.ReplaceAllString(key, "-")
	result = strings.Trim(result, "-.")
	if result == "" {
		return "default"
	}
	return result
}

// fileName maps a key to its file name. Keys that are not already safe get a
// short hash of the raw key appended so distinct keys never share a file.
func fileName(key string) string {
	name := SanitizeKey(key)
	if name == key {
		return name + fileExt
	}
	sum := sha256.Sum256([]byte(key))
	return name + "-" + hex.EncodeToString(sum[:])[:keyHashLen] + fileExt
}

func (s *File) keyPath(key string) string {
	return filepath.Join(s.basePath, fileName(key))
}

// Get reads the value stored under key.
func (s *File) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(s.keyPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Set writes value under key. The previous value stays intact if the write fails.
func (s *File) Set(key, value string) error {
	//nolint:gosec // G301: 0755 is appropriate for user-accessible data directory
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.basePath, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err = tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	//nolint:gosec // G302: 0644 is appropriate for user-readable data files
	if err = os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err = os.Rename(tmpName, s.keyPath(key)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
