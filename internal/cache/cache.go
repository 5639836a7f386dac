// Package cache persists the last-seen snapshot of each board to a local
// SQLite database so a board open can render immediately while the
// authoritative fetch is in flight.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tablero-dev/tablero/internal/models"
)

// ErrNoSnapshot means no snapshot has been saved for the board yet
var ErrNoSnapshot = errors.New("no cached snapshot for board")

// Snapshot is one board's full displayable state at save time
type Snapshot struct {
	BoardID int                    `json:"board_id"`
	Board   *models.Board          `json:"board"`
	Lists   []*models.List         `json:"lists"`
	Cards   map[int][]*models.Card `json:"cards"`
	Labels  []*models.Label        `json:"labels"`
	SavedAt time.Time              `json:"saved_at"`
}

// Cache wraps the snapshot database
type Cache struct {
	db *sql.DB
}

// Open initializes the cache database in the tablero home directory
func Open(ctx context.Context) (*Cache, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".tablero")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return OpenPath(ctx, filepath.Join(dir, "cache.db"))
}

// OpenPath initializes the cache at an explicit path. Tests use ":memory:".
func OpenPath(ctx context.Context, path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	// SQLite benefits from a single writer connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache database ping failed: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &Cache{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			board_id INTEGER PRIMARY KEY,
			payload TEXT NOT NULL,
			saved_at DATETIME NOT NULL
		)
	`)
	return err
}

// Save upserts a board's snapshot
func (c *Cache) Save(ctx context.Context, snap Snapshot) error {
	snap.SavedAt = time.Now().UTC()
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO snapshots (board_id, payload, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(board_id) DO UPDATE SET
			payload = excluded.payload,
			saved_at = excluded.saved_at
	`, snap.BoardID, string(payload), snap.SavedAt)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load returns the saved snapshot for a board, ErrNoSnapshot when absent
func (c *Cache) Load(ctx context.Context, boardID int) (*Snapshot, error) {
	var payload string
	err := c.db.QueryRowContext(ctx,
		"SELECT payload FROM snapshots WHERE board_id = ?", boardID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes a board's snapshot, a no-op when absent
func (c *Cache) Delete(ctx context.Context, boardID int) error {
	_, err := c.db.ExecContext(ctx,
		"DELETE FROM snapshots WHERE board_id = ?", boardID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}
