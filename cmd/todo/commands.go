package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	todoerrors "github.com/abatilo/todo/internal/errors"
	"github.com/abatilo/todo/internal/export"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, todoerrors.InvalidIDError{Value: s}
	}
	return id, nil
}

// addCmd implements 'todo add'.
func addCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if _, ok := a.store.Add(strings.Join(args, " ")); !ok {
				return todoerrors.EmptyTitleError{}
			}
			return a.render()
		},
	}
}

// listCmd implements 'todo list'.
func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks matching --filter",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.render()
		},
	}
}

// showCmd implements 'todo show'.
func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			t, ok := a.store.Get(id)
			if !ok {
				return todoerrors.TaskNotFoundError{ID: id}
			}
			a.print(a.formatter.FormatTask(t))
			return nil
		},
	}
}

// editCmd implements 'todo edit'.
func editCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <title...>",
		Short: "Change a task's title",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd // id plus at least one title word
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, ok := a.store.Get(id); !ok {
				return todoerrors.TaskNotFoundError{ID: id}
			}
			if !a.store.Edit(id, strings.Join(args[1:], " ")) {
				return todoerrors.EmptyTitleError{}
			}
			return a.render()
		},
	}
}

// rmCmd implements 'todo rm'.
func rmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !a.store.Delete(id) {
				return todoerrors.TaskNotFoundError{ID: id}
			}
			return a.render()
		},
	}
}

// toggleCmd implements 'todo toggle'.
func toggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task completed, or back to active",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !a.store.ToggleCompleted(id) {
				return todoerrors.TaskNotFoundError{ID: id}
			}
			return a.render()
		},
	}
}

// clearCmd implements 'todo clear'.
func clearCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all tasks",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if a.store.Len() == 0 {
				return todoerrors.NothingToClearError{}
			}
			if !yes {
				confirmed, err := a.confirm("Are you sure you want to delete all tasks?")
				if err != nil {
					return err
				}
				if !confirmed {
					a.print(a.formatter.FormatMessage("Aborted"))
					return nil
				}
			}
			a.store.ClearAll()
			return a.render()
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// countCmd implements 'todo count'.
func countCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show how many tasks remain",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a.print(a.formatter.FormatCount(a.store.RemainingCount()))
			return nil
		},
	}
}

// exportCmd implements 'todo export'.
func exportCmd(a *app) *cobra.Command {
	var format, outPath, title string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks matching --filter as json, csv or pdf",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			tasks := slices.Collect(a.store.VisibleTasks())
			data, err := export.NewExporter(title, a.store.RemainingCount()).Export(tasks, format)
			if err != nil {
				return err
			}

			if outPath == "" || outPath == "-" {
				_, err = a.out.Write(data)
				return err
			}
			//nolint:gosec // G306: 0644 is appropriate for user-readable exports
			if err = os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			a.print(a.formatter.FormatMessage(fmt.Sprintf("Exported %d task(s) to %s", len(tasks), outPath)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatJSON, "Export format: json, csv, pdf")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "Document title for pdf exports")
	return cmd
}
