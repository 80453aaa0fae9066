package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"scholarsync/internal/identity"
)

// newLoginCommand creates the login command
func (r *RootCommand) newLoginCommand() *cobra.Command {
	var user identity.User

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and attach the planner to your remote document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.provider.Login(user); err != nil {
				return HandleCommandError("log in", err)
			}

			ctx, cancel := r.commandContext()
			defer cancel()
			if err := r.session.WaitSynced(ctx); err != nil {
				return HandleCommandError("load planner data", err)
			}

			fmt.Printf("Logged in as %s (%s)\n", user.Name, user.ID)
			fmt.Printf("Tasks: %d, categories: %d\n", len(r.session.Tasks()), len(r.session.Categories()))
			return nil
		},
	}

	cmd.Flags().StringVar(&user.ID, "id", "", "User identifier (required)")
	cmd.Flags().StringVar(&user.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&user.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&user.Avatar, "avatar", "", "Avatar URL")
	cmd.MarkFlagRequired("id")

	return cmd
}

// newLogoutCommand creates the logout command
func (r *RootCommand) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the in-memory planner state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()
			// Push anything still pending before tearing the session down.
			if err := r.session.Flush(ctx); err != nil {
				fmt.Println(FormatError(err))
			}

			if err := r.provider.Logout(); err != nil {
				return HandleCommandError("log out", err)
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

// newWhoamiCommand creates the whoami command
func (r *RootCommand) newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := r.session.User()
			if !ok {
				fmt.Println("Not logged in")
				return nil
			}
			fmt.Printf("%s (%s) <%s>\n", user.Name, user.ID, user.Email)
			return nil
		},
	}
}

// newStatusCommand creates the status command
func (r *RootCommand) newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the sync indicator",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The three-valued indicator only means something while a user is
			// attached; signed out, report the detached state directly.
			if _, ok := r.session.User(); !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "sync: detached (not logged in)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sync: %s (%s)\n", r.session.SyncStatus(), r.session.SyncState())
			return nil
		},
	}
}
