package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/andy/billbook/internal/schema"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [name] [file]",
	Short: "Import a JSON document into the store",
	Long: `Validate a JSON invoice document and store it under the given name.

A document that does not match the invoice schema is rejected whole; every
non-conforming field is reported. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name, file := args[0], args[1]

		data, err := readFileArg(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		inv, err := schema.Validate(data)
		if err != nil {
			return reportValidation(file, err)
		}

		if err := appInstance.Documents.Create(ctx, name, inv); err != nil {
			return fmt.Errorf("failed to store document: %w", err)
		}

		fmt.Printf("Imported %s as %q\n", file, name)
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump [name] [file]",
	Short: "Write a stored document as JSON",
	Long:  `Write a stored document to a JSON file in the interchange format. Use "-" for stdout.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name, file := args[0], args[1]

		inv, err := appInstance.Documents.Get(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to load document: %w", err)
		}

		data, err := inv.Marshal()
		if err != nil {
			return err
		}
		data = append(data, '\n')

		if file == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(file, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", file, err)
		}

		fmt.Printf("Wrote %s\n", file)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a JSON document against the invoice schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]

		data, err := readFileArg(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		if _, err := schema.Validate(data); err != nil {
			return reportValidation(file, err)
		}

		fmt.Printf("%s: ok\n", file)
		return nil
	},
}

// reportValidation prints schema violations one per line before failing, so
// every bad field is visible at once.
func reportValidation(file string, err error) error {
	var violation *schema.SchemaViolation
	if errors.As(err, &violation) {
		fmt.Fprintf(os.Stderr, "%s does not match the invoice schema:\n", file)
		for _, v := range violation.Violations {
			fmt.Fprintf(os.Stderr, "  %s\n", v)
		}
		return fmt.Errorf("%d field(s) do not conform", len(violation.Violations))
	}
	return err
}
