package kv

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect names a database/sql driver the SQL store knows how to talk to.
type Dialect string

const (
	DialectSQLite Dialect = "sqlite3"
	DialectMySQL  Dialect = "mysql"
)

// Schema returns the statement that creates the kv table.
func (d Dialect) Schema() string {
	switch d {
	case DialectMySQL:
		return `CREATE TABLE IF NOT EXISTS kv (
    name VARCHAR(191) PRIMARY KEY,
    value LONGTEXT NOT NULL
)`
	default:
		return `CREATE TABLE IF NOT EXISTS kv (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`
	}
}

// Upsert returns the statement that inserts or replaces a value.
func (d Dialect) Upsert() string {
	switch d {
	case DialectMySQL:
		return `INSERT INTO kv (name, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)`
	default:
		return `INSERT INTO kv (name, value) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value`
	}
}

// SQL stores values in a single kv table.
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQL connects to the database and creates the kv table if needed.
func OpenSQL(dialect Dialect, dsn string) (*SQL, error) {
	if dialect == DialectSQLite && isSQLiteFile(dsn) {
		//nolint:gosec // G301: 0755 is appropriate for user-accessible data directory
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err = db.Exec(dialect.Schema()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQL{db: db, dialect: dialect}, nil
}

func isSQLiteFile(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

// Close closes the database connection.
func (s *SQL) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key.
func (s *SQL) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE name = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key.
func (s *SQL) Set(key, value string) error {
	if _, err := s.db.Exec(s.dialect.Upsert(), key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
