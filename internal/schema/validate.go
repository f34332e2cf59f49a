package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// fieldKind is the primitive kind a schema field must carry in a candidate
// document. Validation only checks kinds; it never converts a value.
type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindLines
)

func (k fieldKind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindLines:
		return "array of line items"
	default:
		return "unknown"
	}
}

type fieldSpec struct {
	name string
	kind fieldKind
}

// documentFields enumerates every field of the interchange format, in the
// order violations are reported.
var documentFields = []fieldSpec{
	{"logo", kindString},
	{"logoWidth", kindNumber},
	{"signature", kindString},
	{"signWidth", kindNumber},
	{"title", kindString},
	{"companyName", kindString},
	{"name", kindString},
	{"companyAddress", kindString},
	{"companyAddress2", kindString},
	{"companyCountry", kindString},
	{"cityStatePin", kindString},
	{"PANNo", kindString},
	{"GSTRegistrationNo", kindString},
	{"placeOfSupply", kindString},
	{"billTo", kindString},
	{"clientName", kindString},
	{"clientAddress", kindString},
	{"clientAddress2", kindString},
	{"clientCountry", kindString},
	{"clientStateUTCode", kindString},
	{"invoiceTitleLabel", kindString},
	{"invoiceTitle", kindString},
	{"invoiceDateLabel", kindString},
	{"invoiceDate", kindString},
	{"invoiceDueDateLabel", kindString},
	{"invoiceDueDate", kindString},
	{"invoiceNumber", kindString},
	{"referenceNumber", kindString},
	{"accountNumber", kindString},
	{"OrderNo", kindString},
	{"OrderDate", kindString},
	{"paymentTerms", kindString},
	{"description", kindString},
	{"productLineDescription", kindString},
	{"productLineQuantity", kindString},
	{"productLineQuantityRate", kindString},
	{"productLineQuantityAmount", kindString},
	{"productLines", kindLines},
	{"subTotalLabel", kindString},
	{"taxLabel", kindString},
	{"totalLabel", kindString},
	{"currency", kindString},
	{"notesLabel", kindString},
	{"notes", kindString},
	{"termLabel", kindString},
	{"term", kindString},
	{"footer", kindString},
}

// lineItemFields are the required string fields of each line item.
var lineItemFields = []string{"description", "quantity", "rate", "unitCode"}

// FieldViolation records one non-conforming field in a candidate document.
type FieldViolation struct {
	Path string // e.g. "taxLabel" or "productLines[2].rate"
	Want string
	Got  string // JSON kind found, or "missing"
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: want %s, got %s", v.Path, v.Want, v.Got)
}

// SchemaViolation is returned when a candidate document does not match the
// canonical shape. It lists every non-conforming field, not just the first.
// A SchemaViolation is fatal for that document: it must not be partially
// applied or rendered.
type SchemaViolation struct {
	Violations []FieldViolation
}

func (e *SchemaViolation) Error() string {
	paths := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		paths[i] = v.String()
	}
	return fmt.Sprintf("document does not match invoice schema (%d violations): %s",
		len(e.Violations), strings.Join(paths, "; "))
}

// Validate checks a raw JSON document against the canonical invoice shape and
// decodes it on success. Every schema field must be present with the correct
// primitive kind; productLines must be an array of complete line items.
// Unknown keys are ignored. Validation never coerces; a numeric string where
// a number is required is a violation, not a conversion.
func Validate(raw []byte) (*Invoice, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("document is not a JSON object: %w", err)
	}

	var violations []FieldViolation

	for _, f := range documentFields {
		val, ok := doc[f.name]
		if !ok {
			violations = append(violations, FieldViolation{Path: f.name, Want: f.kind.String(), Got: "missing"})
			continue
		}

		switch f.kind {
		case kindString:
			if jsonKind(val) != "string" {
				violations = append(violations, FieldViolation{Path: f.name, Want: "string", Got: jsonKind(val)})
			}
		case kindNumber:
			if jsonKind(val) != "number" {
				violations = append(violations, FieldViolation{Path: f.name, Want: "number", Got: jsonKind(val)})
			}
		case kindLines:
			violations = append(violations, validateLines(f.name, val)...)
		}
	}

	if len(violations) > 0 {
		return nil, &SchemaViolation{Violations: violations}
	}

	inv := &Invoice{}
	if err := json.Unmarshal(raw, inv); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if inv.ProductLines == nil {
		inv.ProductLines = []LineItem{}
	}
	return inv, nil
}

// validateLines checks that raw is an array whose every element is an object
// carrying all line-item fields as strings.
func validateLines(path string, raw json.RawMessage) []FieldViolation {
	if jsonKind(raw) != "array" {
		return []FieldViolation{{Path: path, Want: "array of line items", Got: jsonKind(raw)}}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return []FieldViolation{{Path: path, Want: "array of line items", Got: "malformed array"}}
	}

	var violations []FieldViolation
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			violations = append(violations, FieldViolation{Path: itemPath, Want: "object", Got: jsonKind(item)})
			continue
		}

		for _, name := range lineItemFields {
			val, ok := fields[name]
			if !ok {
				violations = append(violations, FieldViolation{
					Path: itemPath + "." + name, Want: "string", Got: "missing",
				})
				continue
			}
			if jsonKind(val) != "string" {
				violations = append(violations, FieldViolation{
					Path: itemPath + "." + name, Want: "string", Got: jsonKind(val),
				})
			}
		}
	}
	return violations
}

// jsonKind names the JSON kind of an encoded value from its first byte.
func jsonKind(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return "missing"
	}
	switch trimmed[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
