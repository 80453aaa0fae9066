package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"scholarsync/internal/domain"
	"scholarsync/internal/errors"
	"scholarsync/internal/validation"
)

// newUpdateCommand creates the update command. Only the flags the caller set
// are applied; everything else keeps its stored value.
func (r *RootCommand) newUpdateCommand() *cobra.Command {
	var (
		title       string
		course      string
		due         string
		status      string
		priority    string
		duration    int
		tags        []string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Edit a task's fields",
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

			flags := cmd.Flags()
			if flags.Changed("title") {
				task.Title = title
			}
			if flags.Changed("course") {
				task.Course = course
			}
			if flags.Changed("due") {
				task.DueDate = due
			}
			if flags.Changed("status") {
				task.Status = domain.Status(status)
			}
			if flags.Changed("priority") {
				task.Priority = domain.Priority(priority)
			}
			if flags.Changed("duration") {
				task.Duration = duration
			}
			if flags.Changed("tags") {
				task.Tags = tags
			}
			if flags.Changed("desc") {
				task.Description = description
			}

			validator := validation.NewTaskValidator(session.Categories)
			if err := validator.ValidateUpdate(task); err != nil {
				return HandleCommandError("update task", err)
			}

			session.UpdateTask(task)
			updated, _ := session.GetTask(task.ID)
			fmt.Printf("Updated task %s: %s (%s)\n", updated.ID, updated.Title, updated.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&course, "course", "", "New course/category label")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "New status: To Do, In Progress, Done")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority: Low, Medium, High")
	cmd.Flags().IntVar(&duration, "duration", 0, "New estimated minutes")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "New tag set")
	cmd.Flags().StringVar(&description, "desc", "", "New description")

	return cmd
}
