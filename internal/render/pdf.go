// Package render is the final rendering sink: it turns a document snapshot
// into a PDF. It only ever reads the snapshot; no edit paths exist here.
package render

import (
	"fmt"
	"os"

	"github.com/andy/billbook/internal/engine"
	"github.com/andy/billbook/internal/schema"
	"github.com/jung-kurt/gofpdf"
)

// Page geometry, in millimeters on A4.
const (
	pageMargin  = 15.0
	pageWidth   = 210.0
	contentW    = pageWidth - 2*pageMargin
	lineHeight  = 5.0
	mmPerUnit   = 25.4 / 96.0 // document image widths are 96dpi pixel units
	colDescW    = 0.48 * contentW
	colUnitW    = 0.17 * contentW
	colQtyW     = 0.10 * contentW
	colRateW    = 0.10 * contentW
	colAmountW  = 0.15 * contentW
	totalsLabel = 0.60
)

// WritePDF renders a snapshot to a PDF file at path. When draft is set a
// DRAFT watermark is overlaid; the layout is otherwise identical to the
// final document.
func WritePDF(snap engine.Snapshot, shipping schema.ShippingDetails, draft bool, path string) error {
	inv := snap.Invoice

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if draft {
		drawWatermark(pdf)
	}

	// Header: logo + seller column on the left, title + numbers on the right.
	topY := pdf.GetY()
	leftW := contentW * 0.5

	y := topY
	if imageExists(inv.Logo) {
		w := inv.LogoWidth * mmPerUnit
		pdf.ImageOptions(inv.Logo, pageMargin, y, w, 0, false,
			gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		y += w * 0.5 // leave room; actual height depends on the image
	}

	pdf.SetXY(pageMargin, y)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(leftW, lineHeight, tr("Seller Details:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	leftText(pdf, tr, leftW, inv.CompanyName)
	pdf.SetFont("Helvetica", "", 10)
	leftText(pdf, tr, leftW, inv.Name)
	leftText(pdf, tr, leftW, inv.CompanyAddress)
	leftText(pdf, tr, leftW, inv.CompanyAddress2)
	leftText(pdf, tr, leftW, inv.CompanyCountry)
	leftText(pdf, tr, leftW, inv.PANNo)
	leftText(pdf, tr, leftW, inv.GSTRegistrationNo)
	pdf.Ln(2)
	leftText(pdf, tr, leftW, inv.PlaceOfSupply)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(leftW, lineHeight, tr("Billing Details:"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	leftText(pdf, tr, leftW, inv.BillTo)
	leftText(pdf, tr, leftW, inv.ClientName)
	leftText(pdf, tr, leftW, inv.ClientAddress)
	leftText(pdf, tr, leftW, inv.ClientAddress2)
	leftText(pdf, tr, leftW, inv.ClientCountry)
	leftText(pdf, tr, leftW, inv.ClientStateUTCode)

	if shipping != (schema.ShippingDetails{}) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(leftW, lineHeight, tr("Shipping Details:"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		leftText(pdf, tr, leftW, shipping.RecipientName)
		leftText(pdf, tr, leftW, shipping.Address)
		leftText(pdf, tr, leftW, shipping.CityStatePin)
		leftText(pdf, tr, leftW, shipping.StateUTCode)
	}
	leftBottom := pdf.GetY()

	// Right column
	rightX := pageMargin + leftW
	rightW := contentW - leftW
	pdf.SetXY(rightX, topY)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(rightW, 12, tr(inv.Title), "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	rightPair(pdf, tr, rightX, rightW, inv.InvoiceTitleLabel, inv.InvoiceNumber)
	rightPair(pdf, tr, rightX, rightW, inv.InvoiceDateLabel, inv.InvoiceDate)
	rightPair(pdf, tr, rightX, rightW, inv.InvoiceDueDateLabel, inv.InvoiceDueDate)
	rightPair(pdf, tr, rightX, rightW, "Reference No.", inv.ReferenceNumber)
	rightPair(pdf, tr, rightX, rightW, "Account Number", inv.AccountNumber)
	rightPair(pdf, tr, rightX, rightW, "Payment Terms", inv.PaymentTerms)
	rightPair(pdf, tr, rightX, rightW, inv.OrderNo, inv.OrderDate)

	if pdf.GetY() < leftBottom {
		pdf.SetY(leftBottom)
	}
	pdf.Ln(6)

	if inv.Description != "" {
		pdf.SetX(pageMargin)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(contentW, lineHeight, tr(inv.Description), "", "L", false)
		pdf.Ln(3)
	}

	// Line item table
	pdf.SetX(pageMargin)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colDescW, 7, tr(inv.LineDescriptionLabel), "", 0, "L", true, 0, "")
	pdf.CellFormat(colUnitW, 7, tr("HSN/SAC"), "", 0, "L", true, 0, "")
	pdf.CellFormat(colQtyW, 7, tr(inv.LineQuantityLabel), "", 0, "R", true, 0, "")
	pdf.CellFormat(colRateW, 7, tr(inv.LineRateLabel), "", 0, "R", true, 0, "")
	pdf.CellFormat(colAmountW, 7, tr(inv.LineAmountLabel), "", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range inv.ProductLines {
		pdf.SetX(pageMargin)
		pdf.CellFormat(colDescW, 6, tr(line.Description), "", 0, "L", false, 0, "")
		pdf.CellFormat(colUnitW, 6, tr(line.UnitCode), "", 0, "L", false, 0, "")
		pdf.CellFormat(colQtyW, 6, tr(line.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(colRateW, 6, tr(line.Rate), "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmountW, 6, tr(engine.AmountFor(line.Quantity, line.Rate)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Notes on the left, totals on the right.
	notesY := pdf.GetY()
	if inv.Notes != "" {
		pdf.SetX(pageMargin)
		pdf.MultiCell(leftW-5, lineHeight, tr(inv.Notes), "", "L", false)
	}
	notesBottom := pdf.GetY()

	pdf.SetXY(rightX, notesY)
	totalRow(pdf, tr, rightX, rightW, inv.SubTotalLabel, inv.Currency, snap.SubTotal, false)
	totalRow(pdf, tr, rightX, rightW, inv.TaxLabel, inv.Currency, snap.Tax, false)
	totalRow(pdf, tr, rightX, rightW, inv.TotalLabel, inv.Currency, snap.Total, true)

	if pdf.GetY() < notesBottom {
		pdf.SetY(notesBottom)
	}
	pdf.Ln(8)

	// Terms and footer
	if inv.Term != "" {
		pdf.SetX(pageMargin)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, lineHeight, tr(inv.TermLabel), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(contentW, lineHeight, tr(inv.Term), "", "L", false)
		pdf.Ln(3)
	}

	if imageExists(inv.Signature) {
		w := inv.SignWidth * mmPerUnit
		pdf.ImageOptions(inv.Signature, pageWidth-pageMargin-w, pdf.GetY(), w, 0, true,
			gofpdf.ImageOptions{ReadDpi: true}, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetX(pageMargin)
		pdf.CellFormat(contentW, lineHeight, tr("Authorised Signatory"), "", 1, "R", false, 0, "")
	}

	if inv.Footer != "" {
		pdf.SetY(-pageMargin - lineHeight)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, lineHeight, tr(inv.Footer), "", 0, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// leftText writes one left-column line, skipping empty values so blank
// fields don't leave gaps.
func leftText(pdf *gofpdf.Fpdf, tr func(string) string, w float64, text string) {
	if text == "" {
		return
	}
	pdf.SetX(pageMargin)
	pdf.CellFormat(w, lineHeight, tr(text), "", 1, "L", false, 0, "")
}

// rightPair writes a right-aligned "label value" row in the header column.
func rightPair(pdf *gofpdf.Fpdf, tr func(string) string, x, w float64, label, value string) {
	if value == "" {
		return
	}
	pdf.SetX(x)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(w*0.5, lineHeight, tr(label), "", 0, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(w*0.5, lineHeight, tr(value), "", 1, "R", false, 0, "")
}

// totalRow writes one row of the totals block.
func totalRow(pdf *gofpdf.Fpdf, tr func(string) string, x, w float64, label, currency string, amount float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 10)
	pdf.SetX(x)
	pdf.CellFormat(w*totalsLabel, 6, tr(label), "", 0, "L", false, 0, "")
	pdf.CellFormat(w*(1-totalsLabel), 6, tr(currency+" "+engine.FormatAmount(amount)), "", 1, "R", false, 0, "")
}

// drawWatermark overlays a large rotated DRAFT across the page.
func drawWatermark(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 90)
	pdf.SetTextColor(230, 230, 230)
	pdf.TransformBegin()
	pdf.TransformRotate(45, pageWidth/2, 150)
	pdf.Text(pageWidth/2-45, 155, "DRAFT")
	pdf.TransformEnd()
	pdf.SetTextColor(0, 0, 0)
}

// imageExists reports whether an image reference names a readable file.
func imageExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
