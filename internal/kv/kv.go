// Package kv provides the key-value blob stores the task list is persisted in.
package kv

import (
	"fmt"
	"path/filepath"

	"github.com/abatilo/todo/internal/config"
	todoerrors "github.com/abatilo/todo/internal/errors"
)

// sqliteFile is the database filename used when the sqlite backend has no DSN.
const sqliteFile = "todo.db"

// KeyValueStore stores opaque text values under string keys.
type KeyValueStore interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
}

// Open creates the backend selected by cfg. The caller closes it with Close.
func Open(cfg config.Storage) (KeyValueStore, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendFile:
		return NewFile(cfg.Path), nil
	case config.BackendSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = filepath.Join(cfg.Path, sqliteFile)
		}
		return OpenSQL(DialectSQLite, dsn)
	case config.BackendMySQL:
		if cfg.DSN == "" {
			return nil, todoerrors.MissingDSNError{Backend: cfg.Backend}
		}
		return OpenSQL(DialectMySQL, cfg.DSN)
	default:
		return nil, todoerrors.UnknownBackendError{Backend: cfg.Backend, Valid: config.Backends()}
	}
}

// Close releases the store if it holds resources.
func Close(s KeyValueStore) error {
	c, ok := s.(interface{ Close() error })
	if !ok {
		return nil
	}
	if err := c.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
