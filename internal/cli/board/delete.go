package board

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tablero-dev/tablero/internal/cli"
)

// DeleteCmd returns the board delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <board-id>",
		Short: "Delete a board",
		Long: `Delete a board and everything on it. The server cascades to
lists, cards, comments, and attachments.

Examples:
  tablero board delete 3
`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	if err := c.Client.DeleteBoard(ctx, boardID); err != nil {
		if fmtErr := formatter.Error("BOARD_DELETE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeFor(err))
	}

	if jsonOutput {
		return formatter.Success(map[string]interface{}{"deleted": boardID})
	}
	fmt.Printf("Board %d deleted\n", boardID)
	return nil
}
