package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDefaultLineItem(t *testing.T) {
	item := DefaultLineItem()
	if item.Description != "" || item.Quantity != "1" || item.Rate != "0.00" || item.UnitCode != "4" {
		t.Errorf("unexpected default line item: %+v", item)
	}
}

func TestDefaultInvoice(t *testing.T) {
	inv := DefaultInvoice()

	if len(inv.ProductLines) != 3 {
		t.Fatalf("expected 3 seeded lines, got %d", len(inv.ProductLines))
	}
	first := inv.ProductLines[0]
	if first.Description != "Brochure Design" || first.Quantity != "2" || first.Rate != "100.00" {
		t.Errorf("unexpected seeded first line: %+v", first)
	}
	if inv.ProductLines[1] != DefaultLineItem() || inv.ProductLines[2] != DefaultLineItem() {
		t.Error("expected lines 2 and 3 to be default line items")
	}
	if inv.TaxLabel != "Sale Tax (10%)" {
		t.Errorf("unexpected tax label %q", inv.TaxLabel)
	}
	if inv.LogoWidth != 100 || inv.SignWidth != 100 {
		t.Errorf("unexpected image widths: logo %v sign %v", inv.LogoWidth, inv.SignWidth)
	}
	if inv.Title != "INVOICE" || inv.BillTo != "Bill To:" || inv.Currency != "$" {
		t.Error("unexpected default captions")
	}
}

// Every field of the default document must survive a marshal/validate
// round-trip unchanged.
func TestValidateRoundTrip(t *testing.T) {
	inv := DefaultInvoice()
	data, err := inv.Marshal()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	decoded, err := Validate(data)
	if err != nil {
		t.Fatalf("default document failed validation: %v", err)
	}
	if decoded.CompanyName != inv.CompanyName || decoded.TaxLabel != inv.TaxLabel {
		t.Error("decoded document differs from original")
	}
	if len(decoded.ProductLines) != len(inv.ProductLines) {
		t.Fatalf("line count changed: %d -> %d", len(inv.ProductLines), len(decoded.ProductLines))
	}
	for i := range inv.ProductLines {
		if decoded.ProductLines[i] != inv.ProductLines[i] {
			t.Errorf("line %d changed in round-trip", i)
		}
	}
}

func TestValidateRejectsNonJSON(t *testing.T) {
	if _, err := Validate([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed input")
	}
	var violation *SchemaViolation
	_, err := Validate([]byte("[1, 2, 3]"))
	if err == nil {
		t.Fatal("expected error for non-object document")
	}
	if errors.As(err, &violation) {
		t.Error("non-object input should not be reported as a schema violation")
	}
}

func TestValidateEnumeratesViolations(t *testing.T) {
	inv := DefaultInvoice()
	data, _ := inv.Marshal()

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}

	// Break several fields at once.
	doc["logoWidth"] = "100"   // string where number required
	doc["taxLabel"] = 10       // number where string required
	delete(doc, "companyName") // missing key
	doc["productLines"] = []any{
		map[string]any{"description": "ok", "quantity": "1", "rate": "0.00", "unitCode": "4"},
		map[string]any{"description": "bad", "quantity": 2, "rate": "0.00"}, // wrong kind + missing unitCode
	}

	broken, _ := json.Marshal(doc)
	_, err := Validate(broken)
	if err == nil {
		t.Fatal("expected validation failure")
	}

	var violation *SchemaViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected *SchemaViolation, got %T", err)
	}

	wantPaths := []string{
		"logoWidth",
		"taxLabel",
		"companyName",
		"productLines[1].quantity",
		"productLines[1].unitCode",
	}
	got := make(map[string]bool)
	for _, v := range violation.Violations {
		got[v.Path] = true
	}
	for _, path := range wantPaths {
		if !got[path] {
			t.Errorf("expected violation for %s, got %v", path, violation.Violations)
		}
	}
	if len(violation.Violations) != len(wantPaths) {
		t.Errorf("expected %d violations, got %d: %v", len(wantPaths), len(violation.Violations), violation.Violations)
	}
	if !strings.Contains(violation.Error(), "logoWidth") {
		t.Error("error message should name the violating paths")
	}
}

func TestValidateIgnoresUnknownKeys(t *testing.T) {
	inv := DefaultInvoice()
	data, _ := inv.Marshal()

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	doc["somethingExtra"] = true

	extended, _ := json.Marshal(doc)
	if _, err := Validate(extended); err != nil {
		t.Fatalf("unknown keys must be ignored, got %v", err)
	}
}

func TestValidateRejectsNonArrayLines(t *testing.T) {
	inv := DefaultInvoice()
	data, _ := inv.Marshal()

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	doc["productLines"] = "none"

	broken, _ := json.Marshal(doc)
	_, err := Validate(broken)
	var violation *SchemaViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected *SchemaViolation, got %v", err)
	}
	if len(violation.Violations) != 1 || violation.Violations[0].Path != "productLines" {
		t.Errorf("unexpected violations: %v", violation.Violations)
	}
}

func TestValidateEmptyLines(t *testing.T) {
	inv := DefaultInvoice()
	inv.ProductLines = []LineItem{}
	data, _ := inv.Marshal()

	decoded, err := Validate(data)
	if err != nil {
		t.Fatalf("document with empty line array failed validation: %v", err)
	}
	if decoded.ProductLines == nil || len(decoded.ProductLines) != 0 {
		t.Errorf("expected empty non-nil line slice, got %#v", decoded.ProductLines)
	}
}
