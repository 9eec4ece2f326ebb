package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskdeck/internal/api"
	"taskdeck/internal/session"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			creds, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err = saveSession(creds); err != nil {
				return err
			}

			fmt.Printf("Signed in as %s <%s>\n", creds.User.Name, creds.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			creds, err := client.Register(cmd.Context(), name, email, password)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			if err = saveSession(creds); err != nil {
				return err
			}

			fmt.Printf("Welcome, %s! You are signed in.\n", creds.User.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password, at least 8 characters")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the server session and forget the local one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			store, err := session.NewStore()
			if err != nil {
				return err
			}

			creds, err := store.Load()
			if errors.Is(err, session.ErrNoSession) {
				fmt.Println("Not signed in.")
				return nil
			}
			if err != nil {
				return err
			}

			client.SetToken(creds.AccessToken)
			if err = client.Logout(cmd.Context()); err != nil {
				fmt.Println("Warning: failed to revoke the server session:", err)
			}
			if err = store.Clear(); err != nil {
				return err
			}

			fmt.Println("Signed out.")
			return nil
		},
	}
}

func saveSession(creds *api.Credentials) error {
	store, err := session.NewStore()
	if err != nil {
		return err
	}
	return store.Save(creds)
}
