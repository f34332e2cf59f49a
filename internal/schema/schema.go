// Package schema defines the canonical shape of an invoice document: the
// field set, the default factories, and the validation contract every
// persisted or imported document must pass before it is rendered or exported.
package schema

import (
	"encoding/json"
	"fmt"
)

// LineItem is one billable row. Quantity and Rate are stored as decimal text,
// not numbers, so that in-progress input (a trailing period, a trailing zero
// after the decimal point) survives an edit round-trip. The engine keeps them
// as either valid non-negative decimal text or "0".
type LineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	UnitCode    string `json:"unitCode"`
}

// Invoice is the full editable document. Every printed caption is itself an
// editable field so the document can be relabeled without code changes.
// Absent values are empty strings, never missing keys.
type Invoice struct {
	Logo      string  `json:"logo"`
	LogoWidth float64 `json:"logoWidth"`
	Signature string  `json:"signature"`
	SignWidth float64 `json:"signWidth"`
	Title     string  `json:"title"`

	// Seller
	CompanyName       string `json:"companyName"`
	Name              string `json:"name"`
	CompanyAddress    string `json:"companyAddress"`
	CompanyAddress2   string `json:"companyAddress2"`
	CompanyCountry    string `json:"companyCountry"`
	CityStatePin      string `json:"cityStatePin"`
	PANNo             string `json:"PANNo"`
	GSTRegistrationNo string `json:"GSTRegistrationNo"`
	PlaceOfSupply     string `json:"placeOfSupply"`

	// Buyer
	BillTo            string `json:"billTo"`
	ClientName        string `json:"clientName"`
	ClientAddress     string `json:"clientAddress"`
	ClientAddress2    string `json:"clientAddress2"`
	ClientCountry     string `json:"clientCountry"`
	ClientStateUTCode string `json:"clientStateUTCode"`

	// Identity
	InvoiceTitleLabel   string `json:"invoiceTitleLabel"`
	InvoiceTitle        string `json:"invoiceTitle"`
	InvoiceDateLabel    string `json:"invoiceDateLabel"`
	InvoiceDate         string `json:"invoiceDate"`
	InvoiceDueDateLabel string `json:"invoiceDueDateLabel"`
	InvoiceDueDate      string `json:"invoiceDueDate"`
	InvoiceNumber       string `json:"invoiceNumber"`
	ReferenceNumber     string `json:"referenceNumber"`
	AccountNumber       string `json:"accountNumber"`
	OrderNo             string `json:"OrderNo"`
	OrderDate           string `json:"OrderDate"`
	PaymentTerms        string `json:"paymentTerms"`
	Description         string `json:"description"`

	// Line items and their column captions. Order is printed row order.
	LineDescriptionLabel string     `json:"productLineDescription"`
	LineQuantityLabel    string     `json:"productLineQuantity"`
	LineRateLabel        string     `json:"productLineQuantityRate"`
	LineAmountLabel      string     `json:"productLineQuantityAmount"`
	ProductLines         []LineItem `json:"productLines"`

	// Totals block
	SubTotalLabel string `json:"subTotalLabel"`
	TaxLabel      string `json:"taxLabel"`
	TotalLabel    string `json:"totalLabel"`
	Currency      string `json:"currency"`

	// Free text
	NotesLabel string `json:"notesLabel"`
	Notes      string `json:"notes"`
	TermLabel  string `json:"termLabel"`
	Term       string `json:"term"`
	Footer     string `json:"footer"`
}

// ShippingDetails is collected and printed alongside the invoice but is not
// part of the validated or persisted document.
type ShippingDetails struct {
	RecipientName string
	Address       string
	City          string
	State         string
	Pincode       string
	StateUTCode   string
	CityStatePin  string
}

// Marshal encodes the document in the JSON interchange format.
func (inv *Invoice) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}
