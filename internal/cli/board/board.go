// Package board groups the board subcommands
package board

import "github.com/spf13/cobra"

// Cmd returns the board command with its subcommands attached
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Manage boards",
	}
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	return cmd
}
