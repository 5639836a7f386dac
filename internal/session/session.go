// Package session holds the authenticated session context passed explicitly
// to the API and realtime clients. The token is written only by the login
// and logout flows; everything else treats a Session as read-only.
package session

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNotLoggedIn indicates no stored session exists
var ErrNotLoggedIn = errors.New("not logged in")

// Session is the process-wide authentication context.
// It is constructed at login and passed by value; there is no ambient
// token lookup anywhere else in the client.
type Session struct {
	ServerURL    string `yaml:"server_url"`
	WebSocketURL string `yaml:"websocket_url"`
	Token        string `yaml:"token"`
	UserID       int    `yaml:"user_id"`
	Username     string `yaml:"username"`
}

// LoggedIn reports whether the session carries a token
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// Load reads the stored session from the user's config directory
func Load() (Session, error) {
	path, err := sessionPath()
	if err != nil {
		return Session{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Session{}, ErrNotLoggedIn
	}
	if err != nil {
		return Session{}, err
	}

	var s Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Session{}, err
	}
	if !s.LoggedIn() {
		return Session{}, ErrNotLoggedIn
	}
	return s, nil
}

// Save persists the session after a successful login.
// The file is user-readable only since it holds the bearer token.
func (s Session) Save() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Clear removes the stored session at logout
func Clear() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// sessionPath returns the path to the session file
func sessionPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "tablero", "session.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "tablero", "session.yaml"), nil
}
