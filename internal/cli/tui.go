package cli

import (
	"fmt"

	"github.com/andy/billbook/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the terminal editor",
	Long:  `Launch the interactive terminal editor for billbook documents.`,
	RunE:  launchTUI,
}

func launchTUI(cmd *cobra.Command, args []string) error {
	if err := tui.Run(appInstance); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}
