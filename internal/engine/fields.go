package engine

import "github.com/andy/billbook/internal/schema"

// TextField identifies a scalar text field of the document. Line items are
// deliberately not addressable here; they have their own operation.
type TextField int

const (
	FieldLogo TextField = iota
	FieldSignature
	FieldTitle
	FieldCompanyName
	FieldName
	FieldCompanyAddress
	FieldCompanyAddress2
	FieldCompanyCountry
	FieldCityStatePin
	FieldPANNo
	FieldGSTRegistrationNo
	FieldPlaceOfSupply
	FieldBillTo
	FieldClientName
	FieldClientAddress
	FieldClientAddress2
	FieldClientCountry
	FieldClientStateUTCode
	FieldInvoiceTitleLabel
	FieldInvoiceTitle
	FieldInvoiceDateLabel
	FieldInvoiceDate
	FieldInvoiceDueDateLabel
	FieldInvoiceDueDate
	FieldInvoiceNumber
	FieldReferenceNumber
	FieldAccountNumber
	FieldOrderNo
	FieldOrderDate
	FieldPaymentTerms
	FieldDescription
	FieldLineDescriptionLabel
	FieldLineQuantityLabel
	FieldLineRateLabel
	FieldLineAmountLabel
	FieldSubTotalLabel
	FieldTaxLabel
	FieldTotalLabel
	FieldCurrency
	FieldNotesLabel
	FieldNotes
	FieldTermLabel
	FieldTerm
	FieldFooter
)

// WidthField identifies a numeric image-width field.
type WidthField int

const (
	WidthLogo WidthField = iota
	WidthSignature
)

// LineField identifies one column of a line item.
type LineField int

const (
	LineDescription LineField = iota
	LineQuantity
	LineRate
	LineUnitCode
)

// ShippingField identifies a field of the shipping block.
type ShippingField int

const (
	ShipRecipientName ShippingField = iota
	ShipAddress
	ShipCity
	ShipState
	ShipPincode
	ShipStateUTCode
	ShipCityStatePin
)

// textFieldPtr maps a TextField to its storage slot. Returns nil for an
// unknown field value.
func textFieldPtr(inv *schema.Invoice, f TextField) *string {
	switch f {
	case FieldLogo:
		return &inv.Logo
	case FieldSignature:
		return &inv.Signature
	case FieldTitle:
		return &inv.Title
	case FieldCompanyName:
		return &inv.CompanyName
	case FieldName:
		return &inv.Name
	case FieldCompanyAddress:
		return &inv.CompanyAddress
	case FieldCompanyAddress2:
		return &inv.CompanyAddress2
	case FieldCompanyCountry:
		return &inv.CompanyCountry
	case FieldCityStatePin:
		return &inv.CityStatePin
	case FieldPANNo:
		return &inv.PANNo
	case FieldGSTRegistrationNo:
		return &inv.GSTRegistrationNo
	case FieldPlaceOfSupply:
		return &inv.PlaceOfSupply
	case FieldBillTo:
		return &inv.BillTo
	case FieldClientName:
		return &inv.ClientName
	case FieldClientAddress:
		return &inv.ClientAddress
	case FieldClientAddress2:
		return &inv.ClientAddress2
	case FieldClientCountry:
		return &inv.ClientCountry
	case FieldClientStateUTCode:
		return &inv.ClientStateUTCode
	case FieldInvoiceTitleLabel:
		return &inv.InvoiceTitleLabel
	case FieldInvoiceTitle:
		return &inv.InvoiceTitle
	case FieldInvoiceDateLabel:
		return &inv.InvoiceDateLabel
	case FieldInvoiceDate:
		return &inv.InvoiceDate
	case FieldInvoiceDueDateLabel:
		return &inv.InvoiceDueDateLabel
	case FieldInvoiceDueDate:
		return &inv.InvoiceDueDate
	case FieldInvoiceNumber:
		return &inv.InvoiceNumber
	case FieldReferenceNumber:
		return &inv.ReferenceNumber
	case FieldAccountNumber:
		return &inv.AccountNumber
	case FieldOrderNo:
		return &inv.OrderNo
	case FieldOrderDate:
		return &inv.OrderDate
	case FieldPaymentTerms:
		return &inv.PaymentTerms
	case FieldDescription:
		return &inv.Description
	case FieldLineDescriptionLabel:
		return &inv.LineDescriptionLabel
	case FieldLineQuantityLabel:
		return &inv.LineQuantityLabel
	case FieldLineRateLabel:
		return &inv.LineRateLabel
	case FieldLineAmountLabel:
		return &inv.LineAmountLabel
	case FieldSubTotalLabel:
		return &inv.SubTotalLabel
	case FieldTaxLabel:
		return &inv.TaxLabel
	case FieldTotalLabel:
		return &inv.TotalLabel
	case FieldCurrency:
		return &inv.Currency
	case FieldNotesLabel:
		return &inv.NotesLabel
	case FieldNotes:
		return &inv.Notes
	case FieldTermLabel:
		return &inv.TermLabel
	case FieldTerm:
		return &inv.Term
	case FieldFooter:
		return &inv.Footer
	}
	return nil
}

// widthFieldPtr maps a WidthField to its storage slot.
func widthFieldPtr(inv *schema.Invoice, f WidthField) *float64 {
	switch f {
	case WidthLogo:
		return &inv.LogoWidth
	case WidthSignature:
		return &inv.SignWidth
	}
	return nil
}

// lineFieldPtr maps a LineField to its slot within one line item.
func lineFieldPtr(line *schema.LineItem, f LineField) *string {
	switch f {
	case LineDescription:
		return &line.Description
	case LineQuantity:
		return &line.Quantity
	case LineRate:
		return &line.Rate
	case LineUnitCode:
		return &line.UnitCode
	}
	return nil
}

// shippingFieldPtr maps a ShippingField to its slot.
func shippingFieldPtr(s *schema.ShippingDetails, f ShippingField) *string {
	switch f {
	case ShipRecipientName:
		return &s.RecipientName
	case ShipAddress:
		return &s.Address
	case ShipCity:
		return &s.City
	case ShipState:
		return &s.State
	case ShipPincode:
		return &s.Pincode
	case ShipStateUTCode:
		return &s.StateUTCode
	case ShipCityStatePin:
		return &s.CityStatePin
	}
	return nil
}
