package board

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tablero-dev/tablero/internal/cli"
)

// ListCmd returns the board list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your boards",
		Long: `List all boards visible to the logged-in user.

Examples:
  # Human-readable list
  tablero board list

  # JSON output for scripts
  tablero board list --json

  # Quiet mode (one ID per line)
  tablero board list --quiet
`,
		RunE: runList,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
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

	boards, err := c.Client.Boards(ctx)
	if err != nil {
		if fmtErr := formatter.Error("BOARD_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitCodeFor(err))
	}

	if quietMode {
		for _, b := range boards {
			fmt.Printf("%d\n", b.ID)
		}
		return nil
	}

	if jsonOutput {
		boardList := make([]map[string]interface{}, len(boards))
		for i, b := range boards {
			boardList[i] = map[string]interface{}{
				"id":          b.ID,
				"title":       b.Title,
				"description": b.Description,
			}
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"boards":  boardList,
		})
	}

	if len(boards) == 0 {
		fmt.Println("No boards yet. Create one with: tablero board create --title=...")
		return nil
	}
	fmt.Println("Boards:")
	for _, b := range boards {
		fmt.Printf("  %s (ID: %d)\n", b.Title, b.ID)
	}
	return nil
}
