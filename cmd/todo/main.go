package main

import (
	"bufio"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abatilo/todo/internal/config"
	todoerrors "github.com/abatilo/todo/internal/errors"
	"github.com/abatilo/todo/internal/kv"
	"github.com/abatilo/todo/internal/output"
	"github.com/abatilo/todo/internal/storage"
	"github.com/abatilo/todo/internal/task"
)

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := a.execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// app carries one invocation's state: one load, one intent, one render.
type app struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	filter     string

	cfg       *config.Config
	logger    *slog.Logger
	formatter output.Formatter
	kv        kv.KeyValueStore
	store     *storage.TaskStore
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
}

// execute runs the command line and reports any error through the active formatter.
func (a *app) execute(args []string) error {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.Execute()
	if a.kv != nil {
		if closeErr := kv.Close(a.kv); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	if err != nil {
		if a.formatter == nil {
			a.formatter = output.NewHumanFormatter(a.out, false)
		}
		a.print(a.formatter.FormatError(err))
	}
	return err
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "todo",
		Short:             "A small persistent task list",
		Long:              "todo - add, edit, complete, delete and filter short text tasks.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/todo/config.yaml)")
	flags.StringVar(&a.filter, "filter", string(task.FilterAll), "Show tasks: all, active, completed")
	flags.Bool("json", false, "Output in JSON format")
	flags.Bool("no-color", false, "Disable styled output")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.String("backend", "", "Storage backend: file, sqlite, mysql, memory")
	flags.String("path", "", "Data directory for the file and sqlite backends")
	flags.String("dsn", "", "Database DSN for the sqlite and mysql backends")
	flags.String("key", "", "Storage key the task list is kept under")
	flags.String("store-format", "", "Stored blob format: json, yaml")

	root.AddCommand(
		addCmd(a),
		listCmd(a),
		showCmd(a),
		editCmd(a),
		rmCmd(a),
		toggleCmd(a),
		clearCmd(a),
		countCmd(a),
		exportCmd(a),
	)
	return root
}

// setup loads config, opens the backend and hydrates the task store.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	// Best effort until config says otherwise, so config errors still render
	a.formatter = output.NewHumanFormatter(a.out, false)

	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	if cfg.Output.JSON {
		a.formatter = output.NewJSONFormatter()
	} else {
		a.formatter = output.NewHumanFormatter(a.out, cfg.Output.Color)
	}

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	codec, err := storage.CodecFor(cfg.Storage.Format)
	if err != nil {
		return err
	}

	store, err := kv.Open(cfg.Storage)
	if err != nil {
		return err
	}
	a.kv = store

	a.store = storage.NewTaskStore(store,
		storage.WithKey(cfg.Storage.Key),
		storage.WithCodec(codec),
		storage.WithLogger(a.logger),
	)
	a.store.Load()

	f, ok := task.ParseFilter(a.filter)
	if !ok {
		return todoerrors.InvalidFilterError{Value: a.filter}
	}
	a.store.SetFilter(f)
	return nil
}

func (a *app) print(s string) {
	_, _ = io.WriteString(a.out, s)
}

// render redraws the whole visible list, the same way after every intent.
func (a *app) render() error {
	return a.formatter.Render(a.out, a.store.VisibleTasks(), a.store.RemainingCount())
}
