package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conduit-lang/buildconf/internal/cli/ui"
	"github.com/conduit-lang/buildconf/internal/loader"
	"github.com/conduit-lang/buildconf/internal/tasks"
)

// NewCleanCommand creates the clean command
func NewCleanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete the root output directory",
		Long: `Run the configuration pass, then invoke the registered clean task. The
clean task deletes the root output directory and everything under it,
including every subproject output directory. A missing directory is not
an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(session *loader.Session) error {
				return runTask(cmd, session, session.Script.CleanTask)
			})
		},
	}
}

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <task>",
		Short: "Invoke a registered task",
		Long: `Run the configuration pass, then invoke the named task.

Examples:
  buildconf run clean`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(session *loader.Session) error {
				return runTask(cmd, session, args[0])
			})
		},
	}
}

// NewTasksCommand creates the tasks command
func NewTasksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List registered tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(session *loader.Session) error {
				table := ui.NewTable(cmd.OutOrStdout(), []string{"Task", "Description"}, noColor)
				for _, name := range session.Tasks.Names() {
					task, _ := session.Tasks.Lookup(name)
					table.AddRow(task.Name(), task.Description())
				}
				table.Render()
				return nil
			})
		},
	}
}

func runTask(cmd *cobra.Command, session *loader.Session, name string) error {
	task, _ := session.Tasks.Lookup(name)
	del, isDelete := task.(*tasks.DeleteTask)

	existed := false
	if isDelete {
		_, err := os.Lstat(del.Target())
		existed = err == nil
	}

	if err := session.Tasks.Run(cmd.Context(), name); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case isDelete && existed:
		ui.WriteSuccess(out, fmt.Sprintf("Deleted %s", del.Target()), noColor)
	case isDelete:
		ui.WriteSuccess(out, fmt.Sprintf("Nothing to delete at %s", del.Target()), noColor)
	default:
		ui.WriteSuccess(out, fmt.Sprintf("Task %s finished", name), noColor)
	}
	return nil
}
