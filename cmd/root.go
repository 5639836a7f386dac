package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tablero-dev/tablero/internal/cli"
	"github.com/tablero-dev/tablero/internal/cli/board"
)

var rootCmd = &cobra.Command{
	Use:   "tablero",
	Short: "Tablero - a terminal client for shared kanban boards",
	Long: `Tablero is a terminal client for shared kanban boards. Run
"tablero open" for the interactive board view, or use the subcommands
for scripting.`,
}

func init() {
	rootCmd.AddCommand(cli.LoginCmd())
	rootCmd.AddCommand(cli.RegisterCmd())
	rootCmd.AddCommand(cli.LogoutCmd())
	rootCmd.AddCommand(cli.OpenCmd())
	rootCmd.AddCommand(cli.SearchCmd())
	rootCmd.AddCommand(cli.AttachCmd())
	rootCmd.AddCommand(cli.LabelCmd())
	rootCmd.AddCommand(cli.CommentCmd())
	rootCmd.AddCommand(board.Cmd())
}

func Execute() error {
	return rootCmd.Execute()
}
