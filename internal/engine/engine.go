// Package engine owns the current invoice document. It applies typed field
// edits with format-specific coercion, recomputes derived monetary state
// whenever its inputs change, and hands read-only snapshots to rendering
// sinks. The engine is single-writer: edits arrive serially from one
// interactive session, every operation runs to completion, and no operation
// performs I/O.
package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/andy/billbook/internal/schema"
)

// taxRatePattern matches the first integer percentage embedded in the tax
// label, e.g. the 10 in "Sale Tax (10%)".
var taxRatePattern = regexp.MustCompile(`(\d+)%`)

// Observer is notified with a document snapshot after every effective
// mutation, synchronously and in operation order.
type Observer func(inv schema.Invoice)

// Engine holds the document plus cached derived totals. SubTotal and tax are
// kept fresh by recomputation only; they are never edited directly.
type Engine struct {
	inv      schema.Invoice
	shipping schema.ShippingDetails

	subTotal float64
	tax      float64

	observer Observer
}

// Snapshot is a read-only view of the document and its freshly recomputed
// totals, as handed to a rendering sink.
type Snapshot struct {
	Invoice  schema.Invoice
	SubTotal float64
	Tax      float64
	Total    float64
}

// New creates an engine holding a copy of doc, or the default document when
// doc is nil. Derived totals are computed immediately.
func New(doc *schema.Invoice) *Engine {
	e := &Engine{}
	if doc != nil {
		e.inv = *doc
		e.inv.ProductLines = append([]schema.LineItem(nil), doc.ProductLines...)
	} else {
		e.inv = schema.DefaultInvoice()
	}
	e.recompute()
	return e
}

// SetObserver registers the change-notification callback. Pass nil to
// unregister.
func (e *Engine) SetObserver(fn Observer) {
	e.observer = fn
}

// SetText stores raw verbatim into the addressed text field. Free-text fields
// accept anything; no coercion happens at the document level.
func (e *Engine) SetText(f TextField, raw string) {
	ptr := textFieldPtr(&e.inv, f)
	if ptr == nil {
		return
	}
	*ptr = raw
	if f == FieldTaxLabel {
		// The tax label is the only text field derived state depends on.
		e.recompute()
	}
	e.notify()
}

// Text returns the current value of a text field.
func (e *Engine) Text(f TextField) string {
	ptr := textFieldPtr(&e.inv, f)
	if ptr == nil {
		return ""
	}
	return *ptr
}

// SetWidth stores a numeric image-width value verbatim.
func (e *Engine) SetWidth(f WidthField, value float64) {
	ptr := widthFieldPtr(&e.inv, f)
	if ptr == nil {
		return
	}
	*ptr = value
	e.notify()
}

// Width returns the current value of a width field.
func (e *Engine) Width(f WidthField) float64 {
	ptr := widthFieldPtr(&e.inv, f)
	if ptr == nil {
		return 0
	}
	return *ptr
}

// SetLineField edits one column of the line item at index. Descriptions and
// unit codes are stored verbatim; quantity and rate go through decimal-text
// coercion. An out-of-range index leaves the document untouched and returns
// false, keeping interactive editing non-blocking.
func (e *Engine) SetLineField(index int, f LineField, raw string) bool {
	if index < 0 || index >= len(e.inv.ProductLines) {
		return false
	}
	ptr := lineFieldPtr(&e.inv.ProductLines[index], f)
	if ptr == nil {
		return false
	}

	switch f {
	case LineQuantity, LineRate:
		*ptr = coerceDecimalText(raw)
	default:
		*ptr = raw
	}

	e.recompute()
	e.notify()
	return true
}

// Lines returns a copy of the current line items in printed order.
func (e *Engine) Lines() []schema.LineItem {
	return append([]schema.LineItem(nil), e.inv.ProductLines...)
}

// AddLine appends a default line item.
func (e *Engine) AddLine() {
	e.inv.ProductLines = append(e.inv.ProductLines, schema.DefaultLineItem())
	e.recompute()
	e.notify()
}

// RemoveLine deletes the line item at index, preserving the order of the
// rest. Out of range is a no-op and returns false.
func (e *Engine) RemoveLine(index int) bool {
	if index < 0 || index >= len(e.inv.ProductLines) {
		return false
	}
	e.inv.ProductLines = append(e.inv.ProductLines[:index], e.inv.ProductLines[index+1:]...)
	e.recompute()
	e.notify()
	return true
}

// SetShippingField edits the shipping block. Shipping is presentation-only:
// it is rendered but never validated, persisted, or reported to the observer.
func (e *Engine) SetShippingField(f ShippingField, raw string) {
	ptr := shippingFieldPtr(&e.shipping, f)
	if ptr == nil {
		return
	}
	*ptr = raw
}

// ShippingText returns the current value of a shipping field.
func (e *Engine) ShippingText(f ShippingField) string {
	ptr := shippingFieldPtr(&e.shipping, f)
	if ptr == nil {
		return ""
	}
	return *ptr
}

// Shipping returns a copy of the shipping block.
func (e *Engine) Shipping() schema.ShippingDetails {
	return e.shipping
}

// Snapshot returns the current document and derived totals. The total is
// computed at read time and never cached: subtotal plus tax when both are
// non-zero, else zero.
func (e *Engine) Snapshot() Snapshot {
	var total float64
	if e.subTotal != 0 && e.tax != 0 {
		total = e.subTotal + e.tax
	}
	return Snapshot{
		Invoice:  e.copyInvoice(),
		SubTotal: e.subTotal,
		Tax:      e.tax,
		Total:    total,
	}
}

// AmountFor computes one line's amount from its quantity and rate text,
// formatted to exactly two decimal places. If either side fails to parse or
// is zero, the amount is "0.00". Stateless; usable independent of any engine.
func AmountFor(quantity, rate string) string {
	q, errQ := strconv.ParseFloat(quantity, 64)
	r, errR := strconv.ParseFloat(rate, 64)
	if errQ != nil || errR != nil || q == 0 || r == 0 || math.IsNaN(q) || math.IsNaN(r) {
		return "0.00"
	}
	return FormatAmount(q * r)
}

// FormatAmount renders a currency amount with two fractional digits, rounding
// half away from zero at the formatting boundary.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}

// recompute rebuilds the derived totals from the line items and tax label.
// It runs after every mutation of either input, so derived state is always a
// pure function of the document.
func (e *Engine) recompute() {
	sub := 0.0
	for _, line := range e.inv.ProductLines {
		amount, _ := strconv.ParseFloat(AmountFor(line.Quantity, line.Rate), 64)
		sub += amount
	}
	e.subTotal = sub

	rate := extractTaxRate(e.inv.TaxLabel)
	if sub != 0 {
		e.tax = sub * rate / 100
	} else {
		e.tax = 0
	}
}

// extractTaxRate pulls the first integer percentage out of the tax label,
// or 0 when none is present.
func extractTaxRate(label string) float64 {
	m := taxRatePattern.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	rate, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return rate
}

// coerceDecimalText applies the decimal-text policy for quantity and rate
// edits. Input that is syntactically mid-typing (a trailing period, or a
// trailing zero after a decimal point) is stored verbatim so the user's
// keystrokes survive ("12.50" must not collapse to "12.5"). Anything else is
// parsed and re-serialized, with unparsable or non-positive input normalized
// to "0".
func coerceDecimalText(raw string) string {
	if raw != "" {
		last := raw[len(raw)-1]
		if last == '.' || (last == '0' && strings.Contains(raw, ".")) {
			return raw
		}
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return "0"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// notify delivers the updated document to the observer, if registered.
// At most one notification per operation.
func (e *Engine) notify() {
	if e.observer != nil {
		e.observer(e.copyInvoice())
	}
}

// copyInvoice returns a value copy with its own line-item slice, so callers
// can never reach the engine's mutable state.
func (e *Engine) copyInvoice() schema.Invoice {
	inv := e.inv
	inv.ProductLines = append([]schema.LineItem(nil), e.inv.ProductLines...)
	return inv
}
