package engine

import (
	"strconv"
	"testing"

	"github.com/andy/billbook/internal/schema"
)

func TestAmountFor(t *testing.T) {
	tests := []struct {
		quantity string
		rate     string
		expected string
	}{
		{"0", "100.00", "0.00"},
		{"2", "100.00", "200.00"},
		{"abc", "5", "0.00"},
		{"", "5", "0.00"},
		{"3", "", "0.00"},
		{"1.5", "2", "3.00"},
		{"2.", "100.00", "200.00"}, // ParseFloat accepts a trailing period
		{"0.1", "0.2", "0.02"},
		{"3", "0.125", "0.38"}, // rounds half away from zero
	}

	for _, tt := range tests {
		t.Run(tt.quantity+"x"+tt.rate, func(t *testing.T) {
			if got := AmountFor(tt.quantity, tt.rate); got != tt.expected {
				t.Errorf("AmountFor(%q, %q) = %q, want %q", tt.quantity, tt.rate, got, tt.expected)
			}
		})
	}
}

func TestCoerceDecimalText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12.", "12."},       // trailing period kept verbatim
		{"12.50", "12.50"},   // trailing zero after decimal kept verbatim
		{"0.0", "0.0"},       // still mid-typing
		{"12.5", "12.5"},     // normal parse, same form
		{"012", "12"},        // leading zero normalized
		{"abc", "0"},         // garbage normalized
		{"", "0"},            // empty normalized
		{"0", "0"},           // zero is not positive
		{"-4", "0"},          // negative normalized
		{"2e2", "200"},       // exponent re-serialized
		{"10", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := coerceDecimalText(tt.input); got != tt.expected {
				t.Errorf("coerceDecimalText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// Re-applying coercion to an already-coerced value must change nothing.
func TestCoerceDecimalTextIdempotent(t *testing.T) {
	inputs := []string{"12.5", "1", "0", "abc", "", "100.00", "3.", "0.50", "-7", "2e3"}
	for _, in := range inputs {
		once := coerceDecimalText(in)
		twice := coerceDecimalText(once)
		if once != twice {
			t.Errorf("coercion not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestDefaultsEndToEnd(t *testing.T) {
	e := New(nil)
	snap := e.Snapshot()

	if len(snap.Invoice.ProductLines) != 3 {
		t.Fatalf("expected 3 seeded lines, got %d", len(snap.Invoice.ProductLines))
	}
	if snap.SubTotal != 200.00 {
		t.Errorf("expected subtotal 200.00, got %v", snap.SubTotal)
	}
	if snap.Tax != 20.00 {
		t.Errorf("expected tax 20.00, got %v", snap.Tax)
	}
	if snap.Total != 220.00 {
		t.Errorf("expected total 220.00, got %v", snap.Total)
	}
}

func TestTaxExtraction(t *testing.T) {
	tests := []struct {
		label       string
		expectedTax float64
	}{
		{"Sale Tax (10%)", 20.00},
		{"Tax", 0},
		{"VAT 20% included", 40.00},
		{"5% then 10%", 10.00}, // first match wins
		{"(%)", 0},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			e := New(nil) // subtotal 200 from seeded lines
			e.SetText(FieldTaxLabel, tt.label)
			if got := e.Snapshot().Tax; got != tt.expectedTax {
				t.Errorf("tax for label %q = %v, want %v", tt.label, got, tt.expectedTax)
			}
		})
	}
}

func TestTaxZeroWhenSubTotalZero(t *testing.T) {
	e := New(nil)
	for i := range e.Lines() {
		e.SetLineField(i, LineQuantity, "0")
	}
	snap := e.Snapshot()
	if snap.SubTotal != 0 || snap.Tax != 0 || snap.Total != 0 {
		t.Errorf("expected all totals zero, got subtotal %v tax %v total %v",
			snap.SubTotal, snap.Tax, snap.Total)
	}
}

// Subtotal must always equal the sum of AmountFor over the current lines,
// evaluated independently, whatever sequence of edits produced them.
func TestSubTotalMatchesLineAmounts(t *testing.T) {
	e := New(nil)

	edits := []struct {
		index int
		field LineField
		value string
	}{
		{0, LineQuantity, "3"},
		{1, LineRate, "19.99"},
		{1, LineQuantity, "2."},
		{1, LineQuantity, "2.5"},
		{2, LineRate, "garbage"},
		{2, LineQuantity, "7"},
		{0, LineRate, "100.00"},
		{5, LineRate, "1000"}, // out of range, must not disturb anything
	}
	for _, ed := range edits {
		e.SetLineField(ed.index, ed.field, ed.value)
	}
	e.AddLine()
	e.SetLineField(3, LineQuantity, "4")
	e.SetLineField(3, LineRate, "2.50")

	want := 0.0
	for _, line := range e.Lines() {
		amount, _ := strconv.ParseFloat(AmountFor(line.Quantity, line.Rate), 64)
		want += amount
	}
	if got := e.Snapshot().SubTotal; got != want {
		t.Errorf("subtotal %v does not match independent sum %v", got, want)
	}
}

func TestSetLineFieldOutOfRange(t *testing.T) {
	e := New(nil)
	before := e.Lines()

	if e.SetLineField(-1, LineQuantity, "5") {
		t.Error("expected false for negative index")
	}
	if e.SetLineField(len(before), LineQuantity, "5") {
		t.Error("expected false for index past end")
	}

	after := e.Lines()
	if len(after) != len(before) {
		t.Fatalf("line count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("line %d changed by out-of-range edit", i)
		}
	}
}

func TestAddRemoveLine(t *testing.T) {
	e := New(nil)
	before := e.Lines()

	e.AddLine()
	if got := len(e.Lines()); got != len(before)+1 {
		t.Fatalf("expected %d lines after add, got %d", len(before)+1, got)
	}

	// Removing the line just added must restore the prior sequence exactly.
	if !e.RemoveLine(len(before)) {
		t.Fatal("expected RemoveLine at new last index to succeed")
	}
	after := e.Lines()
	if len(after) != len(before) {
		t.Fatalf("expected %d lines after remove, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("line %d differs after add/remove round-trip", i)
		}
	}
}

func TestRemoveLinePreservesOrder(t *testing.T) {
	e := New(nil)
	e.SetLineField(0, LineDescription, "first")
	e.SetLineField(1, LineDescription, "second")
	e.SetLineField(2, LineDescription, "third")

	if !e.RemoveLine(1) {
		t.Fatal("expected remove to succeed")
	}
	lines := e.Lines()
	if len(lines) != 2 || lines[0].Description != "first" || lines[1].Description != "third" {
		t.Errorf("unexpected lines after remove: %+v", lines)
	}
}

func TestRemoveLineOutOfRange(t *testing.T) {
	e := New(nil)
	count := len(e.Lines())

	if e.RemoveLine(count) {
		t.Error("expected false for index past end")
	}
	if e.RemoveLine(-1) {
		t.Error("expected false for negative index")
	}

	// Empty the sequence, then remove again.
	for i := count - 1; i >= 0; i-- {
		e.RemoveLine(i)
	}
	if e.RemoveLine(0) {
		t.Error("expected false on empty sequence")
	}
	if got := len(e.Lines()); got != 0 {
		t.Errorf("expected empty sequence, got %d lines", got)
	}
}

func TestSetTextVerbatim(t *testing.T) {
	e := New(nil)
	e.SetText(FieldNotes, "  anything goes, even 12.%$  ")
	if got := e.Text(FieldNotes); got != "  anything goes, even 12.%$  " {
		t.Errorf("text field not stored verbatim: %q", got)
	}
}

func TestSetWidth(t *testing.T) {
	e := New(nil)
	e.SetWidth(WidthLogo, 140)
	e.SetWidth(WidthSignature, 80)
	snap := e.Snapshot()
	if snap.Invoice.LogoWidth != 140 || snap.Invoice.SignWidth != 80 {
		t.Errorf("widths not stored: logo %v sign %v", snap.Invoice.LogoWidth, snap.Invoice.SignWidth)
	}
}

func TestObserverOrderingAndCount(t *testing.T) {
	e := New(nil)

	var seen []int
	e.SetObserver(func(inv schema.Invoice) {
		seen = append(seen, len(inv.ProductLines))
	})

	e.AddLine()                            // 4 lines
	e.SetLineField(0, LineQuantity, "5")   // 4 lines
	e.RemoveLine(0)                        // 3 lines
	e.RemoveLine(99)                       // no-op, no notification
	e.SetLineField(99, LineRate, "1")      // no-op, no notification
	e.SetText(FieldTitle, "TAX INVOICE")   // 3 lines
	e.SetShippingField(ShipCity, "Mumbai") // shipping never notifies

	want := []int{4, 4, 3, 3}
	if len(seen) != len(want) {
		t.Fatalf("expected %d notifications, got %d", len(want), len(seen))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification %d saw %d lines, want %d", i, seen[i], want[i])
		}
	}
}

func TestSnapshotIsolation(t *testing.T) {
	e := New(nil)
	snap := e.Snapshot()

	snap.Invoice.ProductLines[0].Quantity = "999"
	snap.Invoice.TaxLabel = "Tax (99%)"

	fresh := e.Snapshot()
	if fresh.Invoice.ProductLines[0].Quantity != "2" {
		t.Error("mutating a snapshot reached engine line items")
	}
	if fresh.Invoice.TaxLabel != "Sale Tax (10%)" {
		t.Error("mutating a snapshot reached engine fields")
	}
}

func TestNewCopiesInput(t *testing.T) {
	doc := schema.DefaultInvoice()
	e := New(&doc)

	doc.ProductLines[0].Rate = "555"
	doc.TaxLabel = "Tax"

	snap := e.Snapshot()
	if snap.Invoice.ProductLines[0].Rate != "100.00" || snap.Invoice.TaxLabel != "Sale Tax (10%)" {
		t.Error("engine shares state with caller's document")
	}
}

// Any document produced purely through engine operations must validate.
func TestEngineOutputValidates(t *testing.T) {
	e := New(nil)
	e.SetText(FieldCompanyName, "Acme Pvt Ltd")
	e.SetText(FieldTaxLabel, "GST (18%)")
	e.SetWidth(WidthLogo, 120)
	e.AddLine()
	e.SetLineField(3, LineDescription, "Consulting")
	e.SetLineField(3, LineQuantity, "10")
	e.SetLineField(3, LineRate, "85.00")
	e.RemoveLine(1)

	inv := e.Snapshot().Invoice
	data, err := inv.Marshal()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if _, err := schema.Validate(data); err != nil {
		t.Fatalf("engine-produced document failed validation: %v", err)
	}
}

func TestShippingSeparateFromDocument(t *testing.T) {
	e := New(nil)
	e.SetShippingField(ShipRecipientName, "Ravi")
	e.SetShippingField(ShipStateUTCode, "27")

	ship := e.Shipping()
	if ship.RecipientName != "Ravi" || ship.StateUTCode != "27" {
		t.Errorf("shipping fields not stored: %+v", ship)
	}

	doc := e.Snapshot().Invoice
	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	inv, err := schema.Validate(data)
	if err != nil {
		t.Fatalf("validation failed: %v", err)
	}
	// Shipping must not leak into the persisted document.
	if inv.ClientName != "" {
		t.Errorf("unexpected client name %q", inv.ClientName)
	}
}
