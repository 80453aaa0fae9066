// Package cli provides the command-line surface over the planner core. It
// is a thin consumer of the Session facade, the same contract a graphical
// front end would use.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scholarsync/internal/config"
	"scholarsync/internal/identity"
	"scholarsync/internal/legacy"
	"scholarsync/internal/planner"
	"scholarsync/internal/remote"
	remotesqlite "scholarsync/internal/remote/sqlite"
	"scholarsync/internal/sync"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd      *cobra.Command
	config   *config.Config
	store    remote.Store
	provider identity.Provider
	session  *planner.Session
	unbind   func()
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{config: cfg}

	root.cmd = &cobra.Command{
		Use:   "scholarsync",
		Short: "A personal academic planner with remote sync",
		Long: `ScholarSync is a personal academic planner: tasks, course categories,
a daily study goal, and derived study-time analytics, mirrored into a
per-user remote document.

EXAMPLES:
  scholarsync login --id alice --name "Alice" --email alice@example.com
  scholarsync add "Finish problem set" --course Mathematics --due 2026-09-07
  scholarsync list --status "To Do"
  scholarsync complete 3f1a...            # Mark a task Done
  scholarsync stats weekly                # Study hours per rolling week
  scholarsync goal --target 5
  scholarsync status                      # Sync indicator
  scholarsync logout

CONFIGURATION:
  SCHOLARSYNC_REMOTE_DIR                 Remote store directory (default: ~/.scholarsync)
  SCHOLARSYNC_REMOTE_FILENAME            Remote store filename (default: planner.db)
  SCHOLARSYNC_SYNC_DEBOUNCE              Debounce window before pushes (default: 1s)
  SCHOLARSYNC_LEGACY_DIR                 Legacy snapshot directory (default: ~/.scholarsync)
  SCHOLARSYNC_IDENTITY_FILE              Session file (default: ~/.scholarsync/session.json)
  SCHOLARSYNC_APP_TIMEOUT                Command timeout (default: 30s)
  SCHOLARSYNC_DEBUG                      Enable debug output`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			root.teardown()
		},
	}

	root.addSubcommands()
	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// setup wires the collaborators: remote store, legacy snapshots, identity
// provider, and the planner session bound to the provider
func (r *RootCommand) setup() error {
	if err := os.MkdirAll(r.config.Remote.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := remotesqlite.New(r.config.GetDocumentStorePath())
	if err != nil {
		return err
	}
	r.store = store

	legacySnapshots := legacy.NewFileStore(r.config.Legacy.Dir)
	r.provider = identity.NewLocalProvider(r.config.Identity.SessionFile)
	r.session = planner.NewSession(store, legacySnapshots, sync.Config{
		DebounceWindow: r.config.Sync.DebounceWindow,
		WriteTimeout:   r.config.Remote.WriteTimeout,
	})
	r.unbind = r.session.Bind(r.provider)
	return nil
}

// teardown flushes pending changes and releases the store
func (r *RootCommand) teardown() {
	if r.session != nil {
		ctx, cancel := context.WithTimeout(context.Background(), r.config.Remote.WriteTimeout)
		defer cancel()
		if err := r.session.Flush(ctx); err != nil {
			fmt.Fprintln(os.Stderr, FormatError(err))
		}
	}
	if r.unbind != nil {
		r.unbind()
	}
	if r.store != nil {
		r.store.Close()
	}
}

// requireSession returns the attached session, waiting for the initial
// snapshot so commands operate on the mirrored state. Errors when nobody is
// signed in.
func (r *RootCommand) requireSession(ctx context.Context) (*planner.Session, error) {
	if _, ok := r.session.User(); !ok {
		return nil, fmt.Errorf("not logged in; run 'scholarsync login' first")
	}
	if err := r.session.WaitSynced(ctx); err != nil {
		return nil, err
	}
	return r.session, nil
}

// commandContext returns the bounded context commands run under
func (r *RootCommand) commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.config.Application.Timeout)
}

// addSubcommands attaches all subcommands to the root
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.newLoginCommand(),
		r.newLogoutCommand(),
		r.newWhoamiCommand(),
		r.newAddCommand(),
		r.newListCommand(),
		r.newUpdateCommand(),
		r.newCompleteCommand(),
		r.newDeleteCommand(),
		r.newCategoriesCommand(),
		r.newGoalCommand(),
		r.newStatsCommand(),
		r.newClearCommand(),
		r.newStatusCommand(),
	)
}
