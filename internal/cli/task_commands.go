package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"scholarsync/internal/domain"
	"scholarsync/internal/errors"
)

// newCompleteCommand creates the complete command
func (r *RootCommand) newCompleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task Done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			session, err := r.requireSession(ctx)
			if err != nil {
				return err
			}

			task, ok := session.GetTask(args[0])
			if !ok {
				return errors.NewNotFoundError("task", args[0])
			}
			task.Status = domain.StatusDone
			session.UpdateTask(task)

			updated, _ := session.GetTask(task.ID)
			fmt.Printf("Completed: %s (at %s)\n", updated.Title, updated.CompletedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

// newDeleteCommand creates the delete command
func (r *RootCommand) newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			session, err := r.requireSession(ctx)
			if err != nil {
				return err
			}

			task, ok := session.GetTask(args[0])
			if !ok {
				return errors.NewNotFoundError("task", args[0])
			}
			session.DeleteTask(task.ID)
			fmt.Printf("Deleted: %s\n", task.Title)
			return nil
		},
	}
}

// newClearCommand creates the clear command
func (r *RootCommand) newClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all tasks and reset categories and the daily goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			session, err := r.requireSession(ctx)
			if err != nil {
				return err
			}

			if !yes {
				return fmt.Errorf("this cannot be undone; re-run with --yes to confirm")
			}
			session.ClearAllData()
			fmt.Println("Planner data cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm clearing all data")
	return cmd
}
