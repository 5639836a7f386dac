package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tablero-dev/tablero/internal/api"
)

// LabelCmd returns the label command group
func LabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "List and create board labels",
	}
	cmd.AddCommand(labelListCmd())
	cmd.AddCommand(labelCreateCmd())
	return cmd
}

func labelListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <board-id>",
		Short: "List the labels defined on a board",
		Args:  cobra.ExactArgs(1),
		RunE:  runLabelList,
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func runLabelList(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	formatter := &OutputFormatter{JSON: jsonOutput}

	boardID, err := strconv.Atoi(args[0])
	if err != nil {
		if fmtErr := formatter.Error("INVALID_BOARD_ID",
			fmt.Sprintf("%q is not a board ID", args[0])); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitUsage)
	}

	c, err := authedCLI(formatter)
	if err != nil {
		return err
	}

	labels, err := c.Client.LabelsByBoard(cmd.Context(), boardID)
	if err != nil {
		if fmtErr := formatter.Error("LABEL_LIST_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitCodeFor(err))
	}

	if jsonOutput {
		return formatter.Success(labels)
	}
	if len(labels) == 0 {
		fmt.Println("No labels on this board")
		return nil
	}
	for _, label := range labels {
		fmt.Printf("%d\t%s\t%s\n", label.ID, label.Name, label.Color)
	}
	return nil
}

func labelCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <board-id>",
		Short: "Create a label on a board",
		Long: `Create a label on a board. Labels are shared by reference across
the board's cards.

Examples:
  tablero label create 3 --name=bug --color="#f7768e"
`,
		Args: cobra.ExactArgs(1),
		RunE: runLabelCreate,
	}
	cmd.Flags().String("name", "", "Label name (required)")
	cmd.Flags().String("color", "#7aa2f7", "Label hex color")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func runLabelCreate(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	formatter := &OutputFormatter{JSON: jsonOutput}

	boardID, err := strconv.Atoi(args[0])
	if err != nil {
		if fmtErr := formatter.Error("INVALID_BOARD_ID",
			fmt.Sprintf("%q is not a board ID", args[0])); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitUsage)
	}

	c, err := authedCLI(formatter)
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	color, _ := cmd.Flags().GetString("color")

	label, err := c.Client.CreateLabel(cmd.Context(), boardID, api.CreateLabelRequest{
		Name:  name,
		Color: color,
	})
	if err != nil {
		if fmtErr := formatter.Error("LABEL_CREATE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitCodeFor(err))
	}

	if jsonOutput {
		return formatter.Success(label)
	}
	fmt.Printf("Label %q created (id %d)\n", label.Name, label.ID)
	return nil
}
