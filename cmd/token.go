package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tokenguard/internal/client"
)

var (
	errNoToken   = errors.New("no token stored")
	errNoProfile = errors.New("no readable token stored")
)

func newTokenCmd(c *cli) *cobra.Command {
	var accessor *client.Accessor

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the locally stored token",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// cobra runs only the nearest PersistentPreRunE
			if root := cmd.Root(); root.PersistentPreRunE != nil {
				if err := root.PersistentPreRunE(cmd, args); err != nil {
					return err
				}
			}
			storage, err := client.NewStorageFromDriver(cmd.Context(), c.cfg.TokenStore)
			if err != nil {
				return fmt.Errorf("failed to open token storage: %w", err)
			}
			accessor = client.NewAccessor(storage, client.WithNavigator(client.LogNavigator{}))
			return nil
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login <jwt>",
		Short: "Store a token and go to the start page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return accessor.Login(cmd.Context(), args[0])
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token and go to the login page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return accessor.Logout(cmd.Context())
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, ok := accessor.Token(cmd.Context())
			if !ok {
				return errNoToken
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Print the claims of the stored token as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, ok := accessor.Profile(cmd.Context())
			if !ok {
				return errNoProfile
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(profile)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether a live token is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := "logged out"
			if accessor.LoggedIn(cmd.Context()) {
				status = "logged in"
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		},
	}

	tokenCmd.AddCommand(loginCmd, logoutCmd, showCmd, profileCmd, statusCmd)
	return tokenCmd
}
