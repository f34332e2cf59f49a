package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/andy/billbook/internal/engine"
	"github.com/andy/billbook/internal/schema"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage stored documents",
	Long:  `Create, list, inspect, and delete invoice documents in the encrypted store.`,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		docs, err := appInstance.Documents.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}

		if len(docs) == 0 {
			fmt.Println("No documents found")
			return nil
		}

		// Print table header
		fmt.Printf("%-5s %-30s %-22s %-22s\n", "ID", "Name", "Created", "Updated")
		fmt.Println("----------------------------------------------------------------------------------")

		for _, doc := range docs {
			fmt.Printf("%-5d %-30s %-22s %-22s\n",
				doc.ID,
				truncate(doc.Name, 30),
				truncate(doc.CreatedAt, 22),
				truncate(doc.UpdatedAt, 22),
			)
		}

		fmt.Printf("\nTotal: %d document(s)\n", len(docs))
		return nil
	},
}

var docsNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new document from the defaults",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name := args[0]

		inv := schema.DefaultInvoice()
		appInstance.Config.Seller.Apply(&inv)

		if err := appInstance.Documents.Create(ctx, name, &inv); err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}

		fmt.Printf("Created document %q\n", name)
		return nil
	},
}

var docsShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a document's line items and totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		inv, err := appInstance.Documents.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to load document: %w", err)
		}

		e := engine.New(inv)
		snap := e.Snapshot()

		fmt.Printf("%s %s\n", snap.Invoice.InvoiceTitleLabel, snap.Invoice.InvoiceNumber)
		fmt.Printf("%s -> %s\n\n", snap.Invoice.CompanyName, snap.Invoice.ClientName)

		fmt.Printf("%-40s %8s %10s %12s\n",
			snap.Invoice.LineDescriptionLabel,
			snap.Invoice.LineQuantityLabel,
			snap.Invoice.LineRateLabel,
			snap.Invoice.LineAmountLabel,
		)
		fmt.Println("--------------------------------------------------------------------------")
		for _, line := range snap.Invoice.ProductLines {
			fmt.Printf("%-40s %8s %10s %12s\n",
				truncate(line.Description, 40),
				line.Quantity,
				line.Rate,
				engine.AmountFor(line.Quantity, line.Rate),
			)
		}

		fmt.Println()
		currency := snap.Invoice.Currency
		fmt.Printf("%-20s %s%s\n", snap.Invoice.SubTotalLabel, currency, engine.FormatAmount(snap.SubTotal))
		fmt.Printf("%-20s %s%s\n", snap.Invoice.TaxLabel, currency, engine.FormatAmount(snap.Tax))
		fmt.Printf("%-20s %s%s\n", snap.Invoice.TotalLabel, currency, engine.FormatAmount(snap.Total))
		return nil
	},
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name := args[0]

		if !confirmPrompt(fmt.Sprintf("Delete document %q?", name)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.Documents.Delete(ctx, name); err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}

		fmt.Printf("Deleted document %q\n", name)
		return nil
	},
}

// truncate shortens a string for table display
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// readFileArg reads a file path argument, with "-" meaning stdin
func readFileArg(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func init() {
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsNewCmd)
	docsCmd.AddCommand(docsShowCmd)
	docsCmd.AddCommand(docsDeleteCmd)
}
