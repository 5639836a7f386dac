package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/tablero-dev/tablero/internal/api"
	"github.com/tablero-dev/tablero/internal/cache"
	"github.com/tablero-dev/tablero/internal/config"
	"github.com/tablero-dev/tablero/internal/session"
	"github.com/tablero-dev/tablero/internal/tui/theme"
)

// Run opens the interactive board view and blocks until the user quits
// or the process is signalled.
func Run(cfg *config.Config, sess session.Session, boardID int) error {
	theme.Apply(cfg.ColorScheme)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := api.New(sess)

	// The snapshot cache is an optimization; a broken cache never blocks
	// opening the board
	openCtx, openCancel := context.WithTimeout(ctx, 5*time.Second)
	snapshots, err := cache.Open(openCtx)
	openCancel()
	if err != nil {
		slog.Warn("snapshot cache unavailable", "error", err)
		snapshots = nil
	}
	if snapshots != nil {
		defer snapshots.Close()
	}

	model := NewModel(cfg, sess, client, snapshots, boardID)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("board view failed: %w", err)
	}
	return nil
}
