package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tablero-dev/tablero/internal/api"
	"github.com/tablero-dev/tablero/internal/session"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the board server",
		Long: `Log in with email and password and save the session token.

Examples:
  tablero login --email=ana@example.com --password=secret
  tablero login --email=ana@example.com --password=secret --json
`,
		RunE: runLogin,
	}

	cmd.Flags().String("email", "", "Account email (required)")
	if err := cmd.MarkFlagRequired("email"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("password", "", "Account password (required)")
	if err := cmd.MarkFlagRequired("password"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	formatter := &OutputFormatter{JSON: jsonOutput}

	c, err := NewCLI()
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	sess, user, err := c.Client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		if fmtErr := formatter.Error("LOGIN_FAILED", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitCodeFor(err))
	}

	sess.WebSocketURL = c.Config.WebSocketURL
	if err := sess.Save(); err != nil {
		if fmtErr := formatter.Error("SESSION_SAVE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	if jsonOutput {
		return formatter.Success(map[string]interface{}{
			"user_id":  user.ID,
			"username": user.Username,
		})
	}
	fmt.Printf("Logged in as %s\n", user.Username)
	return nil
}

// RegisterCmd returns the register command
func RegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the board server",
		Long: `Create an account and log in immediately.

Examples:
  tablero register --username=ana --email=ana@example.com --password=secret
`,
		RunE: runRegister,
	}

	cmd.Flags().String("username", "", "Display name (required)")
	if err := cmd.MarkFlagRequired("username"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("email", "", "Account email (required)")
	if err := cmd.MarkFlagRequired("email"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().String("password", "", "Account password (required)")
	if err := cmd.MarkFlagRequired("password"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	username, _ := cmd.Flags().GetString("username")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	formatter := &OutputFormatter{JSON: jsonOutput}

	c, err := NewCLI()
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	sess, user, err := c.Client.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		if fmtErr := formatter.Error("REGISTER_FAILED", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		os.Exit(ExitCodeFor(err))
	}

	sess.WebSocketURL = c.Config.WebSocketURL
	if err := sess.Save(); err != nil {
		if fmtErr := formatter.Error("SESSION_SAVE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return err
	}

	if jsonOutput {
		return formatter.Success(map[string]interface{}{
			"user_id":  user.ID,
			"username": user.Username,
		})
	}
	fmt.Printf("Account created. Logged in as %s\n", user.Username)
	return nil
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}
