package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tablero-dev/tablero/internal/tui"
)

// OpenCmd returns the command that launches the interactive board view
func OpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <board-id|board-title>",
		Short: "Open a board in the interactive view",
		Long: `Open a board in the full-screen kanban view. Accepts a board ID
or an exact board title.

Examples:
  tablero open 3
  tablero open Roadmap
`,
		Args: cobra.MinimumNArgs(1),
		RunE: runOpen,
	}
}

func runOpen(cmd *cobra.Command, args []string) error {
	formatter := &OutputFormatter{}

	c, err := NewCLI()
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}
	if err := c.RequireLogin(); err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("NOT_LOGGED_IN",
			err.Error(), "Log in with: tablero login --email=... --password=..."); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitAuth)
	}

	boardID, err := resolveBoard(cmd, c, strings.Join(args, " "))
	if err != nil {
		if fmtErr := formatter.Error("BOARD_NOT_FOUND", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitNotFound)
	}

	return tui.Run(c.Config, c.Session, boardID)
}

// resolveBoard accepts a numeric ID directly, or looks the board up by
// exact title.
func resolveBoard(cmd *cobra.Command, c *CLI, arg string) (int, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		return id, nil
	}

	boards, err := c.Client.Boards(cmd.Context())
	if err != nil {
		return 0, err
	}
	for _, b := range boards {
		if strings.EqualFold(b.Title, arg) {
			return b.ID, nil
		}
	}
	return 0, fmt.Errorf("no board named %q", arg)
}
