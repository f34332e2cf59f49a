package schema

// DefaultLineItem returns a fresh empty line item.
func DefaultLineItem() LineItem {
	return LineItem{
		Description: "",
		Quantity:    "1",
		Rate:        "0.00",
		UnitCode:    "4",
	}
}

// DefaultInvoice returns a fully populated starter document: English captions,
// three seeded line items (one worked example, two blanks), and 100pt image
// widths. Every schema field is present.
func DefaultInvoice() Invoice {
	return Invoice{
		Logo:      "",
		LogoWidth: 100,
		Signature: "",
		SignWidth: 100,
		Title:     "INVOICE",

		CompanyName:       "Company Name",
		Name:              "",
		CompanyAddress:    "",
		CompanyAddress2:   "",
		CompanyCountry:    "United States",
		CityStatePin:      "",
		PANNo:             "PAN No.",
		GSTRegistrationNo: "GST Registration No.",
		PlaceOfSupply:     "",

		BillTo:            "Bill To:",
		ClientName:        "",
		ClientAddress:     "",
		ClientAddress2:    "",
		ClientCountry:     "United States",
		ClientStateUTCode: "",

		InvoiceTitleLabel:   "Invoice#",
		InvoiceTitle:        "",
		InvoiceDateLabel:    "Invoice Date",
		InvoiceDate:         "",
		InvoiceDueDateLabel: "Due Date",
		InvoiceDueDate:      "",
		InvoiceNumber:       "",
		ReferenceNumber:     "",
		AccountNumber:       "",
		OrderNo:             "Order No.",
		OrderDate:           "",
		PaymentTerms:        "",
		Description:         "",

		LineDescriptionLabel: "Item Description",
		LineQuantityLabel:    "Qty",
		LineRateLabel:        "Rate",
		LineAmountLabel:      "Amount",
		ProductLines: []LineItem{
			{
				Description: "Brochure Design",
				Quantity:    "2",
				Rate:        "100.00",
				UnitCode:    "",
			},
			DefaultLineItem(),
			DefaultLineItem(),
		},

		SubTotalLabel: "Sub Total",
		TaxLabel:      "Sale Tax (10%)",
		TotalLabel:    "TOTAL",
		Currency:      "$",

		NotesLabel: "Notes",
		Notes:      "It was great doing business with you.",
		TermLabel:  "Terms & Conditions",
		Term:       "Please make the payment by the due date.",
		Footer:     "",
	}
}
