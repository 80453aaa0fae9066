package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scholarsync/internal/domain"
	"scholarsync/internal/validation"
)

// newAddCommand creates the add command
func (r *RootCommand) newAddCommand() *cobra.Command {
	var (
		course      string
		due         string
		status      string
		priority    string
		duration    int
		tags        []string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add \"title\"",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			session, err := r.requireSession(ctx)
			if err != nil {
				return err
			}

			draft := domain.Task{
				Title:       strings.Join(args, " "),
				Course:      course,
				DueDate:     due,
				Status:      domain.Status(status),
				Priority:    domain.Priority(priority),
				Duration:    duration,
				Tags:        tags,
				Description: description,
			}

			validator := validation.NewTaskValidator(session.Categories)
			if err := validator.ValidateDraft(draft); err != nil {
				return HandleCommandError("add task", err)
			}

			task := session.AddTask(draft)
			fmt.Printf("Added task %s: %s (%s, due %s)\n", task.ID, task.Title, task.Course, task.DueDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&course, "course", "General", "Course/category the task belongs to")
	cmd.Flags().StringVar(&due, "due", timeNow().Format(domain.DueDateLayout), "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", string(domain.StatusToDo), "Status: To Do, In Progress, Done")
	cmd.Flags().StringVar(&priority, "priority", string(domain.PriorityMedium), "Priority: Low, Medium, High")
	cmd.Flags().IntVar(&duration, "duration", 0, "Estimated minutes (default 60)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Free-form tags")
	cmd.Flags().StringVar(&description, "desc", "", "Description")

	return cmd
}
