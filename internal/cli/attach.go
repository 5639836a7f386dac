package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tablero-dev/tablero/internal/models"
)

// AttachCmd returns the attachment command group
func AttachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attachment",
		Short: "Upload, download, and delete card attachments",
	}
	cmd.AddCommand(attachUploadCmd())
	cmd.AddCommand(attachDownloadCmd())
	cmd.AddCommand(attachDeleteCmd())
	return cmd
}

func attachUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <card-id> <file>",
		Short: "Attach a file to a card",
		Long: `Attach a local file to a card. Files over 10MB are rejected
before any upload starts.

Examples:
  tablero attachment upload 42 ./design.png
`,
		Args: cobra.ExactArgs(2),
		RunE: runAttachUpload,
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func runAttachUpload(cmd *cobra.Command, args []string) error {
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

	content, err := os.ReadFile(args[1])
	if err != nil {
		if fmtErr := formatter.Error("FILE_READ_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitError)
	}
	if int64(len(content)) > models.MaxAttachmentSize {
		if fmtErr := formatter.Error("ATTACHMENT_TOO_LARGE",
			models.ErrAttachmentTooLarge.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitValidation)
	}

	att, err := c.Client.UploadAttachment(cmd.Context(), cardID, filepath.Base(args[1]), content)
	if err != nil {
		if fmtErr := formatter.Error("ATTACHMENT_UPLOAD_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitCodeFor(err))
	}

	if jsonOutput {
		return formatter.Success(att)
	}
	fmt.Printf("Attached %s (id %d) to card %d\n", att.Filename, att.ID, cardID)
	return nil
}

func attachDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <attachment-id>",
		Short: "Download an attachment",
		Args:  cobra.ExactArgs(1),
		RunE:  runAttachDownload,
	}
	cmd.Flags().StringP("output", "o", "", "Write to this path instead of stdout")
	return cmd
}

func runAttachDownload(cmd *cobra.Command, args []string) error {
	formatter := &OutputFormatter{}

	attachmentID, err := strconv.Atoi(args[0])
	if err != nil {
		if fmtErr := formatter.Error("INVALID_ATTACHMENT_ID",
			fmt.Sprintf("%q is not an attachment ID", args[0])); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitUsage)
	}

	c, err := authedCLI(formatter)
	if err != nil {
		return err
	}

	content, err := c.Client.DownloadAttachment(cmd.Context(), attachmentID)
	if err != nil {
		if fmtErr := formatter.Error("ATTACHMENT_DOWNLOAD_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitCodeFor(err))
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err = os.Stdout.Write(content)
		return err
	}
	if err := os.WriteFile(output, content, 0644); err != nil {
		if fmtErr := formatter.Error("FILE_WRITE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitError)
	}
	fmt.Printf("Saved attachment %d to %s\n", attachmentID, output)
	return nil
}

func attachDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <attachment-id>",
		Short: "Delete an attachment",
		Args:  cobra.ExactArgs(1),
		RunE:  runAttachDelete,
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	return cmd
}

func runAttachDelete(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	formatter := &OutputFormatter{JSON: jsonOutput}

	attachmentID, err := strconv.Atoi(args[0])
	if err != nil {
		if fmtErr := formatter.Error("INVALID_ATTACHMENT_ID",
			fmt.Sprintf("%q is not an attachment ID", args[0])); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitUsage)
	}

	c, err := authedCLI(formatter)
	if err != nil {
		return err
	}

	if err := c.Client.DeleteAttachment(cmd.Context(), attachmentID); err != nil {
		if fmtErr := formatter.Error("ATTACHMENT_DELETE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitCodeFor(err))
	}

	if jsonOutput {
		return formatter.Success(map[string]interface{}{"deleted": attachmentID})
	}
	fmt.Printf("Attachment %d deleted\n", attachmentID)
	return nil
}

// authedCLI builds the CLI context and enforces login, exiting with the
// auth code when no session is saved.
func authedCLI(formatter *OutputFormatter) (*CLI, error) {
	c, err := NewCLI()
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return nil, err
	}
	if err := c.RequireLogin(); err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("NOT_LOGGED_IN",
			err.Error(), "Log in with: tablero login --email=... --password=..."); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitAuth)
	}
	return c, nil
}
