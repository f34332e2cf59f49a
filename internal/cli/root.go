package cli

import (
	"github.com/andy/billbook/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "billbook",
	Short: "An interactive invoice builder for the terminal",
	Long: `Billbook maintains editable invoice documents: seller, buyer, and shipment
details plus an ordered list of line items, with subtotal, tax, and total
kept consistent as you edit any field.

By default, running billbook without arguments launches the interactive editor.
Use subcommands for CLI operations.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the editor
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	// Add all subcommands
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(resetCmd)
}
