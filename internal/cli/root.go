// Package cli defines the taskdeck command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskdeck/internal/api"
	"taskdeck/internal/config"
	"taskdeck/internal/session"
	"taskdeck/internal/tui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskdeck",
		Short: "Manage your tasks from the terminal",
		Long: "Taskdeck is a terminal client for the taskdeck server.\n" +
			"Running it without a subcommand opens the task dashboard.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.Context())
		},
	}

	cmd.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
	)
	return cmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Println("Error:", err)
		return 1
	}
	return 0
}

func newClient() (*api.Client, error) {
	cfg, err := config.ReadClient()
	if err != nil {
		return nil, fmt.Errorf("failed to read the client configuration: %w", err)
	}
	return api.NewClient(cfg.ServerURL, cfg.RequestTimeout), nil
}

// loadCredentials returns a usable token pair, refreshing the access
// token first when it has expired.
func loadCredentials(ctx context.Context, client *api.Client, store *session.Store) (*api.Credentials, error) {
	creds, err := store.Load()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil, errors.New("not signed in, run 'taskdeck login' first")
		}
		return nil, err
	}
	if time.Now().After(creds.RefreshTokenExpiresAt) {
		return nil, errors.New("your session has expired, run 'taskdeck login' again")
	}

	if time.Now().After(creds.AccessTokenExpiresAt) {
		creds, err = client.Refresh(ctx, creds.RefreshToken)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh the session: %w", err)
		}
		if err = store.Save(creds); err != nil {
			return nil, err
		}
	}
	return creds, nil
}

func runDashboard(ctx context.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	store, err := session.NewStore()
	if err != nil {
		return err
	}

	creds, err := loadCredentials(ctx, client, store)
	if err != nil {
		return err
	}
	client.SetToken(creds.AccessToken)

	signOut := func(ctx context.Context) error {
		// Always drop the local session, even if the server call fails.
		logoutErr := client.Logout(ctx)
		if clearErr := store.Clear(); clearErr != nil {
			return clearErr
		}
		return logoutErr
	}

	dashboard := tui.NewDashboard(client, creds.User, signOut)
	_, err = tea.NewProgram(dashboard, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
