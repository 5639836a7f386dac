package board

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tablero-dev/tablero/internal/api"
	"github.com/tablero-dev/tablero/internal/cli"
)

// CreateCmd returns the board create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new board",
		Long: `Create a new board.

Examples:
  tablero board create --title="Roadmap"
  tablero board create --title="Roadmap" --description="Q3 planning"

  # Quiet mode for bash capture
  BOARD_ID=$(tablero board create --title="Roadmap" --quiet)
`,
		RunE: runCreate,
	}

	cmd.Flags().String("title", "", "Board title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "Board description")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	c, err := cli.NewCLI()
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
		os.Exit(cli.ExitAuth)
	}

	board, err := c.Client.CreateBoard(ctx, api.CreateBoardRequest{
		Title:       title,
		Description: description,
	})
	if err != nil {
		if fmtErr := formatter.Error("BOARD_CREATE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeFor(err))
	}

	if quietMode {
		fmt.Printf("%d\n", board.ID)
		return nil
	}
	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"board": map[string]interface{}{
				"id":    board.ID,
				"title": board.Title,
			},
		})
	}
	fmt.Printf("Board '%s' created (ID: %d)\n", board.Title, board.ID)
	return nil
}
