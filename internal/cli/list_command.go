package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scholarsync/internal/domain"
)

// newListCommand creates the list command
func (r *RootCommand) newListCommand() *cobra.Command {
	var (
		status string
		course string
		due    string
		search string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			session, err := r.requireSession(ctx)
			if err != nil {
				return err
			}

			filter := domain.TaskFilter{}
			if status != "" {
				s := domain.Status(status)
				filter.Status = &s
			}
			if course != "" {
				filter.Course = &course
			}
			if due != "" {
				filter.DueOn = &due
			}
			if search != "" {
				filter.Query = &search
			}

			tasks := session.SearchTasks(filter)
			if len(tasks) == 0 {
				fmt.Println("No tasks found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCOURSE\tDUE\tSTATUS\tPRIORITY\tMIN")
			for _, t := range tasks {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
					t.ID, t.Title, t.Course, t.DueDate, t.Status, t.Priority, t.EffectiveDuration())
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&course, "course", "", "Filter by course")
	cmd.Flags().StringVar(&due, "due", "", "Filter by due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&search, "search", "", "Substring match on title and course")

	return cmd
}
