package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/andy/billbook/internal/crypto"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored documents",
	Long: `Delete every document in the store. The database file is kept; only the
document rows are removed. Pass --forget-key to also drop the encryption key
from the system keyring.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL stored documents. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if _, err := appInstance.DB.Exec("DELETE FROM documents"); err != nil {
			return fmt.Errorf("failed to clear documents: %w", err)
		}
		fmt.Println("All documents have been deleted.")

		forgetKey, _ := cmd.Flags().GetBool("forget-key")
		if forgetKey {
			if err := crypto.NewKeyring().DeleteKey(); err != nil {
				return fmt.Errorf("failed to remove encryption key: %w", err)
			}
			fmt.Println("Encryption key removed from keyring.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("forget-key", false, "Also remove the encryption key from the system keyring")
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
