package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// AuthState is the persisted session for a backend target.
type AuthState struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Backend   Backend   `json:"backend"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token, installs it on the client,
// and persists the session so later invocations skip the login.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthState, error) {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login succeeded but no token returned")
	}

	c.SetAuthToken(resp.Token)

	state := &AuthState{
		Token:      resp.Token,
		Email:      email,
		Backend:    c.ActiveBackend(),
		LoggedInAt: time.Now(),
	}
	if err := SaveAuthState(state); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	slog.Info("Logged in", "email", email, "backend", state.Backend)
	return state, nil
}

// LoadAuthState reads the saved session, if any.
func LoadAuthState() (*AuthState, error) {
	path, err := authStatePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var state AuthState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", path, err)
	}
	return &state, nil
}

// SaveAuthState persists the session with owner-only permissions.
func SaveAuthState(state *AuthState) error {
	path, err := authStatePath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ClearAuthState removes the saved session.
func ClearAuthState() error {
	path, err := authStatePath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func authStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "patrio")
	if err := os.MkdirAll(appDir, 0700); err != nil {
		return "", err
	}

	return filepath.Join(appDir, "session.json"), nil
}
