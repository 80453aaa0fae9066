package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCategoriesCommand creates the categories command group
func (r *RootCommand) newCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List course categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			session, err := r.requireSession(ctx)
			if err != nil {
				return err
			}

			for _, c := range session.Categories() {
				fmt.Println(c)
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := r.commandContext()
				defer cancel()
				session, err := r.requireSession(ctx)
				if err != nil {
					return err
				}
				session.AddCategory(args[0])
				fmt.Printf("Category added: %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Remove a category (tasks keep their course label)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := r.commandContext()
				defer cancel()
				session, err := r.requireSession(ctx)
				if err != nil {
					return err
				}
				session.RemoveCategory(args[0])
				fmt.Printf("Category removed: %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}

// newGoalCommand creates the goal command
func (r *RootCommand) newGoalCommand() *cobra.Command {
	var (
		target  int
		current int
	)

	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Show or update the daily study goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			session, err := r.requireSession(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("target") {
				session.UpdateDailyGoalTarget(target)
			}
			if cmd.Flags().Changed("current") {
				session.UpdateDailyGoalCurrent(current)
			}

			goal := session.DailyGoal()
			fmt.Printf("Daily goal: %d/%d\n", goal.Current, goal.Target)
			return nil
		},
	}

	cmd.Flags().IntVar(&target, "target", 0, "Set the goal target")
	cmd.Flags().IntVar(&current, "current", 0, "Set goal progress (clamped to >= 0)")

	return cmd
}
