// Package config loads settings from defaults, an optional YAML file, the
// environment and command line flags, in increasing order of precedence.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	todoerrors "github.com/abatilo/todo/internal/errors"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// ConfigFile is the default config filename inside the config directory.
	ConfigFile = "config.yaml"

	// DefaultKey is the key the task list blob is stored under.
	DefaultKey = "task_manager_tasks"

	// EnvPrefix prefixes environment overrides, e.g. TODO_STORAGE_BACKEND.
	EnvPrefix = "TODO"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Blob formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Backends returns every supported storage backend.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendMySQL, BackendMemory}
}

// Formats returns every supported blob format.
func Formats() []string {
	return []string{FormatJSON, FormatYAML}
}

// Storage selects and configures the key-value backend.
type Storage struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	DSN     string `mapstructure:"dsn"`
	Key     string `mapstructure:"key"`
	Format  string `mapstructure:"format"`
}

// Output controls rendering.
type Output struct {
	JSON  bool `mapstructure:"json"`
	Color bool `mapstructure:"color"`
}

// Config holds all settings.
type Config struct {
	Storage Storage `mapstructure:"storage"`
	Output  Output  `mapstructure:"output"`
	Verbose bool    `mapstructure:"verbose"`
}

// flagBindings maps config keys to the CLI flags that override them.
//
//nolint:gochecknoglobals // static lookup table
var flagBindings = map[string]string{
	"storage.backend": "backend",
	"storage.path":    "path",
	"storage.dsn":     "dsn",
	"storage.key":     "key",
	"storage.format":  "store-format",
	"output.json":     "json",
	"verbose":         "verbose",
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: Storage{
			Backend: BackendFile,
			Path:    DefaultDataDir(),
			Key:     DefaultKey,
			Format:  FormatJSON,
		},
		Output: Output{Color: true},
	}
}

// Load builds a Config. If path is empty the default config file is used when
// present. flags may be nil; only flags the user actually set take effect.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readFile(v, path); err != nil {
		return nil, err
	}

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
		// --no-color is inverted relative to output.color
		if f := flags.Lookup("no-color"); f != nil && f.Changed {
			v.Set("output.color", false)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Storage.Format = strings.ToLower(strings.TrimSpace(cfg.Storage.Format))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.dsn", d.Storage.DSN)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("storage.format", d.Storage.Format)
	v.SetDefault("output.json", d.Output.JSON)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("verbose", d.Verbose)
}

func readFile(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(DefaultConfigDir(), ConfigFile)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return err
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	return v.ReadInConfig()
}

// Validate rejects unknown backends and formats.
func (c *Config) Validate() error {
	if !slices.Contains(Backends(), c.Storage.Backend) {
		return todoerrors.UnknownBackendError{Backend: c.Storage.Backend, Valid: Backends()}
	}
	if !slices.Contains(Formats(), c.Storage.Format) {
		return todoerrors.UnknownFormatError{Format: c.Storage.Format, Valid: Formats()}
	}
	if c.Storage.Backend == BackendMySQL && c.Storage.DSN == "" {
		return todoerrors.MissingDSNError{Backend: BackendMySQL}
	}
	if c.Storage.Key == "" {
		c.Storage.Key = DefaultKey
	}
	return nil
}

// DefaultConfigDir returns the configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultDataDir returns the directory task data lives in.
// Uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, ".local", "share", AppName)
}
