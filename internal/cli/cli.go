// Package cli holds the shared context and output plumbing for the
// non-interactive commands. Commands talk to the API gateway directly;
// the store and TUI are only involved in `tablero open`.
package cli

import (
	"errors"
	"fmt"

	"github.com/tablero-dev/tablero/internal/api"
	"github.com/tablero-dev/tablero/internal/config"
	"github.com/tablero-dev/tablero/internal/session"
)

// CLI represents the CLI application context
type CLI struct {
	Config  *config.Config
	Session session.Session
	Client  *api.Client
}

// NewCLI loads config and the saved session and builds a gateway client.
// A missing session is not an error here; commands that need auth call
// RequireLogin.
func NewCLI() (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	sess, err := session.Load()
	if err != nil && !errors.Is(err, session.ErrNotLoggedIn) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess.ServerURL == "" {
		sess.ServerURL = cfg.ServerURL
	}
	if sess.WebSocketURL == "" {
		sess.WebSocketURL = cfg.WebSocketURL
	}

	return &CLI{
		Config:  cfg,
		Session: sess,
		Client:  api.New(sess),
	}, nil
}

// RequireLogin fails commands that need an authenticated session
func (c *CLI) RequireLogin() error {
	if !c.Session.LoggedIn() {
		return session.ErrNotLoggedIn
	}
	return nil
}
