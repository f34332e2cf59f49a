package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/andy/billbook/internal/engine"
	"github.com/andy/billbook/internal/schema"
)

func TestWritePDF(t *testing.T) {
	e := engine.New(nil)
	e.SetText(engine.FieldCompanyName, "Acme Pvt Ltd")
	e.SetText(engine.FieldInvoiceNumber, "INV-042")
	e.SetShippingField(engine.ShipRecipientName, "Ravi Kumar")

	for _, draft := range []bool{false, true} {
		name := "final.pdf"
		if draft {
			name = "draft.pdf"
		}
		path := filepath.Join(t.TempDir(), name)

		if err := WritePDF(e.Snapshot(), e.Shipping(), draft, path); err != nil {
			t.Fatalf("WritePDF(draft=%v) failed: %v", draft, err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading output: %v", err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Errorf("output is not a PDF (starts with %q)", data[:min(8, len(data))])
		}
	}
}

func TestWritePDFEmptyShipping(t *testing.T) {
	e := engine.New(nil)
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := WritePDF(e.Snapshot(), schema.ShippingDetails{}, false, path); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
}
