package board

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tablero-dev/tablero/internal/api"
	"github.com/tablero-dev/tablero/internal/cli"
)

// UpdateCmd returns the board update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <board-id>",
		Short: "Rename a board or change its description",
		Long: `Update a board's title or description. Flags left unset keep
their current value.

Examples:
  tablero board update 3 --title="Q4 Roadmap"
  tablero board update 3 --description="Launch planning"
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("title", "", "New board title")
	cmd.Flags().String("description", "", "New board description")
	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	formatter := &cli.OutputFormatter{JSON: jsonOutput}

	boardID, err := strconv.Atoi(args[0])
	if err != nil {
		if fmtErr := formatter.Error("INVALID_BOARD_ID",
			fmt.Sprintf("%q is not a board ID", args[0])); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}

	title, _ := cmd.Flags().GetString("title")
	description, _ := cmd.Flags().GetString("description")
	if title == "" && description == "" {
		if fmtErr := formatter.Error("NOTHING_TO_UPDATE",
			"pass --title or --description"); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}

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

	board, err := c.Client.UpdateBoard(ctx, boardID, api.UpdateBoardRequest{
		Title:       title,
		Description: description,
	})
	if err != nil {
		if fmtErr := formatter.Error("BOARD_UPDATE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeFor(err))
	}

	if jsonOutput {
		return formatter.Success(board)
	}
	fmt.Printf("Board %d updated: %s\n", board.ID, board.Title)
	return nil
}
