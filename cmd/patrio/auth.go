package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/patrio-app/patrio/internal/api"
	"github.com/patrio-app/patrio/internal/cli"
	"github.com/patrio-app/patrio/internal/config"
	"github.com/patrio-app/patrio/internal/sheets"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the backend session",
	}

	cmd.AddCommand(authLoginCmd())
	cmd.AddCommand(authLogoutCmd())
	cmd.AddCommand(authStatusCmd())
	cmd.AddCommand(authBackendCmd())
	cmd.AddCommand(authSheetsCmd())

	return cmd
}

func authLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		RunE:  runAuthLogin,
	}

	cmd.Flags().String("email", "", "account email (prompted if omitted)")

	return cmd
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		fmt.Print("Email: ")
		if _, err := fmt.Fscanln(os.Stdin, &email); err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}

	fmt.Print("Password: ")
	passBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	state, err := client.Login(cmd.Context(), strings.TrimSpace(email), string(passBytes))
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %s (backend: %s)", state.Email, state.Backend)))
	return nil
}

func authLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the saved session and cached data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := api.LoadAuthState()
			if err == nil {
				// Drop the cached snapshots for the backend we are leaving.
				store, storeErr := initStore(cmd.Context())
				if storeErr == nil {
					defer func() { _ = store.Close() }()
					if err := store.DeleteSnapshots(cmd.Context(), string(state.Backend)); err != nil {
						slog.Warn("Failed to clear snapshot cache", "error", err)
					}
				}
			}

			if err := api.ClearAuthState(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func authStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		RunE: func(_ *cobra.Command, _ []string) error {
			state, err := api.LoadAuthState()
			if err != nil {
				fmt.Println("Not logged in.")
				return nil
			}

			fmt.Printf("Logged in as %s\n", state.Email)
			fmt.Printf("Backend:    %s\n", state.Backend)
			fmt.Printf("Since:      %s\n", state.LoggedInAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func authBackendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backend [main|sandbox]",
		Short: "Show or switch the session's backend database target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			state, err := api.LoadAuthState()
			if err != nil {
				return fmt.Errorf("not logged in; run 'patrio auth login' first")
			}

			if len(args) == 0 {
				fmt.Printf("Active backend: %s\n", state.Backend)
				return nil
			}

			backend, err := api.ParseBackend(args[0])
			if err != nil {
				return err
			}

			state.Backend = backend
			if err := api.SaveAuthState(state); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Switched backend to %s", backend)))
			return nil
		},
	}
}

func authSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Authenticate with Google Sheets for close exports",
		RunE:  runAuthSheets,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")

	return cmd
}

func runAuthSheets(cmd *cobra.Command, _ []string) error {
	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")

	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}

	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("OAuth2 credentials not found: set sheets.client_id and sheets.client_secret in config or use the flags")
	}

	tokenFile := filepath.Join(config.ConfigDir(), "sheets-token.json")

	slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

	token, err := sheets.AuthenticateInteractive(cmd.Context(), sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	viper.Set("sheets.refresh_token", token.RefreshToken)
	if err := saveConfig(); err != nil {
		slog.Warn("Failed to update config file with refresh token", "error", err)
		fmt.Printf("Add this to your config.yaml manually:\nsheets:\n  refresh_token: %q\n", token.RefreshToken)
		return nil
	}

	fmt.Println(cli.FormatSuccess("Google Sheets is configured"))
	return nil
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = filepath.Join(config.ConfigDir(), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}
