//nolint:testpackage // Tests require internal access for thorough testing
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	todoerrors "github.com/abatilo/todo/internal/errors"
)

// isolate points the XDG directories at a temp dir so no user config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	return tmpDir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := isolate(t)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.Backend != BackendFile {
		t.Errorf("Backend = %q, want %q", cfg.Storage.Backend, BackendFile)
	}
	if cfg.Storage.Format != FormatJSON {
		t.Errorf("Format = %q, want %q", cfg.Storage.Format, FormatJSON)
	}
	if cfg.Storage.Key != DefaultKey {
		t.Errorf("Key = %q, want %q", cfg.Storage.Key, DefaultKey)
	}
	wantPath := filepath.Join(tmpDir, "data", AppName)
	if cfg.Storage.Path != wantPath {
		t.Errorf("Path = %q, want %q", cfg.Storage.Path, wantPath)
	}
	if !cfg.Output.Color {
		t.Error("Color should default to true")
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := isolate(t)
	path := writeConfig(t, tmpDir, `storage:
  backend: sqlite
  path: /tmp/tasks
  format: yaml
output:
  json: true
`)

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want %q", cfg.Storage.Backend, BackendSQLite)
	}
	if cfg.Storage.Path != "/tmp/tasks" {
		t.Errorf("Path = %q, want %q", cfg.Storage.Path, "/tmp/tasks")
	}
	if cfg.Storage.Format != FormatYAML {
		t.Errorf("Format = %q, want %q", cfg.Storage.Format, FormatYAML)
	}
	if !cfg.Output.JSON {
		t.Error("JSON should be true from file")
	}
	if cfg.Storage.Key != DefaultKey {
		t.Errorf("Key = %q, want default %q", cfg.Storage.Key, DefaultKey)
	}
}

func TestLoadDefaultConfigFile(t *testing.T) {
	tmpDir := isolate(t)
	dir := filepath.Join(tmpDir, "config", AppName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	writeConfig(t, dir, "storage:\n  backend: memory\n")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("Backend = %q, want %q", cfg.Storage.Backend, BackendMemory)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	tmpDir := isolate(t)

	_, err := Load(filepath.Join(tmpDir, "nope.yaml"), nil)
	if err == nil {
		t.Fatal("Load should fail for a missing explicit config file")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	tmpDir := isolate(t)
	path := writeConfig(t, tmpDir, "storage:\n  backend: sqlite\n")
	t.Setenv("TODO_STORAGE_BACKEND", "memory")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("Backend = %q, want %q", cfg.Storage.Backend, BackendMemory)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TODO_STORAGE_BACKEND", "memory")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("backend", "", "")
	flags.String("store-format", "", "")
	flags.Bool("no-color", false, "")
	if err := flags.Parse([]string{"--backend", "sqlite", "--no-color"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Backend = %q, want %q", cfg.Storage.Backend, BackendSQLite)
	}
	if cfg.Storage.Format != FormatJSON {
		t.Errorf("unset flag should not override: Format = %q, want %q", cfg.Storage.Format, FormatJSON)
	}
	if cfg.Output.Color {
		t.Error("--no-color should disable color")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults are valid", func(*Config) {}, nil},
		{
			"unknown backend",
			func(c *Config) { c.Storage.Backend = "redis" },
			todoerrors.UnknownBackendError{},
		},
		{
			"unknown format",
			func(c *Config) { c.Storage.Format = "xml" },
			todoerrors.UnknownFormatError{},
		},
		{
			"mysql without dsn",
			func(c *Config) { c.Storage.Backend = BackendMySQL },
			todoerrors.MissingDSNError{},
		},
		{
			"mysql with dsn",
			func(c *Config) {
				c.Storage.Backend = BackendMySQL
				c.Storage.DSN = "user:pass@tcp(127.0.0.1:3306)/todo"
			},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()

			switch want := tt.wantErr.(type) {
			case nil:
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
			case todoerrors.UnknownBackendError:
				if !errors.As(err, &want) {
					t.Errorf("Validate() error = %v, want UnknownBackendError", err)
				}
			case todoerrors.UnknownFormatError:
				if !errors.As(err, &want) {
					t.Errorf("Validate() error = %v, want UnknownFormatError", err)
				}
			case todoerrors.MissingDSNError:
				if !errors.As(err, &want) {
					t.Errorf("Validate() error = %v, want MissingDSNError", err)
				}
			}
		})
	}
}

func TestValidateRestoresEmptyKey(t *testing.T) {
	cfg := Default()
	cfg.Storage.Key = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.Storage.Key != DefaultKey {
		t.Errorf("Key = %q, want %q", cfg.Storage.Key, DefaultKey)
	}
}
