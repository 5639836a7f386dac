package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// CommentCmd returns the comment command group
func CommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Inspect card comments",
	}
	cmd.AddCommand(commentListCmd())
	return cmd
}

func commentListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <card-id>",
		Short: "List a card's comments, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE:  runCommentList,
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func runCommentList(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	formatter := &OutputFormatter{JSON: jsonOutput}

	cardID, err := strconv.Atoi(args[0])
	if err != nil {
		if fmtErr := formatter.Error("INVALID_CARD_ID",
			fmt.Sprintf("%q is not a card ID", args[0])); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitUsage)
	}

	c, err := authedCLI(formatter)
	if err != nil {
		return err
	}

	comments, err := c.Client.CommentsByCard(cmd.Context(), cardID)
	if err != nil {
		if fmtErr := formatter.Error("COMMENT_LIST_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitCodeFor(err))
	}

	if jsonOutput {
		return formatter.Success(comments)
	}
	if len(comments) == 0 {
		fmt.Println("No comments on this card")
		return nil
	}
	for _, comment := range comments {
		fmt.Printf("%d\t%s\t%s\t%s\n",
			comment.ID,
			comment.Author.Username,
			comment.CreatedAt.Format("2006-01-02 15:04"),
			comment.Content)
	}
	return nil
}
