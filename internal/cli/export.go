package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/andy/billbook/internal/engine"
	"github.com/andy/billbook/internal/render"
	"github.com/andy/billbook/internal/schema"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [name]",
	Short: "Export a document as a PDF",
	Long: `Render a stored document to a PDF file.

The document is loaded from the encrypted store, its totals recomputed, and
the result written to the export directory (or --out). Use --draft to overlay
a DRAFT watermark.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name := args[0]

		inv, err := appInstance.Documents.Get(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to load document: %w", err)
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = filepath.Join(appInstance.Config.Export.OutputDir, safeFileName(name)+".pdf")
		}
		draft, _ := cmd.Flags().GetBool("draft")

		e := engine.New(inv)
		if err := render.WritePDF(e.Snapshot(), schema.ShippingDetails{}, draft, out); err != nil {
			return fmt.Errorf("failed to export %q: %w", name, err)
		}

		fmt.Printf("Wrote %s\n", out)
		return nil
	},
}

// safeFileName replaces path separators so a document name can be used as a
// file name.
func safeFileName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, string(filepath.Separator), "-")
	return name
}

func init() {
	exportCmd.Flags().String("out", "", "Output file path (default: export dir/<name>.pdf)")
	exportCmd.Flags().Bool("draft", false, "Overlay a DRAFT watermark")
}
