package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tablero-dev/tablero/internal/api"
)

// SearchCmd returns the search command
func SearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search cards across your boards",
		Long: `Search cards by text, optionally narrowed to a board, list, label,
or due-date window.

Examples:
  tablero search "deploy"
  tablero search "deploy" --board=3
  tablero search "" --label=7 --due-to=2026-09-30
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().Int("board", 0, "Restrict to a board ID")
	cmd.Flags().Int("list", 0, "Restrict to a list ID")
	cmd.Flags().Int("label", 0, "Restrict to cards carrying a label ID")
	cmd.Flags().String("due-from", "", "Due on or after (YYYY-MM-DD)")
	cmd.Flags().String("due-to", "", "Due on or before (YYYY-MM-DD)")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (card IDs only)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	formatter := &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	boardID, _ := cmd.Flags().GetInt("board")
	listID, _ := cmd.Flags().GetInt("list")
	labelID, _ := cmd.Flags().GetInt("label")
	dueFrom, _ := cmd.Flags().GetString("due-from")
	dueTo, _ := cmd.Flags().GetString("due-to")

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

	cards, err := c.Client.SearchCards(ctx, api.SearchParams{
		Query:   query,
		BoardID: boardID,
		ListID:  listID,
		LabelID: labelID,
		DueFrom: dueFrom,
		DueTo:   dueTo,
	})
	if err != nil {
		if fmtErr := formatter.Error("SEARCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitCodeFor(err))
	}

	if quietMode {
		for _, card := range cards {
			fmt.Printf("%d\n", card.ID)
		}
		return nil
	}
	if jsonOutput {
		results := make([]map[string]interface{}, len(cards))
		for i, card := range cards {
			results[i] = map[string]interface{}{
				"id":      card.ID,
				"list_id": card.ListID,
				"title":   card.Title,
			}
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"cards":   results,
		})
	}

	if len(cards) == 0 {
		fmt.Println("No cards found")
		return nil
	}
	for _, card := range cards {
		due := ""
		if card.DueDate != nil {
			due = " due " + card.DueDate.Format("2006-01-02")
		}
		fmt.Printf("  %s (ID: %d, list %d)%s\n", card.Title, card.ID, card.ListID, due)
	}
	return nil
}
