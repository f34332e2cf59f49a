package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/andy/billbook/internal/app"
	"github.com/andy/billbook/internal/engine"
	"github.com/andy/billbook/internal/render"
	"github.com/andy/billbook/internal/schema"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// rowKind classifies a row in the editor field list
type rowKind int

const (
	rowSection rowKind = iota // non-selectable heading
	rowText
	rowWidth
	rowLine
	rowShip
	rowAddLine
)

// editorRow is one navigable entry in the field list. Only the fields
// relevant to its kind are meaningful.
type editorRow struct {
	kind  rowKind
	label string

	text      engine.TextField
	width     engine.WidthField
	ship      engine.ShippingField
	line      int
	lineField engine.LineField
}

// EditorModel edits a single document through the ledger engine
type EditorModel struct {
	app  *app.App
	name string
	eng  *engine.Engine

	rows   []editorRow
	cursor int
	offset int
	height int

	// Edit state
	editing bool
	input   textinput.Model

	dirty        bool
	discardArmed bool // esc pressed once with unsaved changes
	err          error
	statusMsg    string
}

type documentSavedMsg struct {
	err error
}

type pdfExportedMsg struct {
	path string
	err  error
}

// NewEditorModel creates an editor for the named document
func NewEditorModel(a *app.App, name string, inv *schema.Invoice) tea.Model {
	m := &EditorModel{
		app:  a,
		name: name,
		eng:  engine.New(inv),
	}
	m.eng.SetObserver(func(schema.Invoice) {
		m.dirty = true
		m.discardArmed = false
	})
	m.rows = m.buildRows()
	m.cursor = m.firstSelectable(0)
	return m
}

// IsCapturingInput returns true while a field value is being typed
func (m *EditorModel) IsCapturingInput() bool {
	return m.editing
}

// HasUnsavedChanges reports edits not yet written to the database
func (m *EditorModel) HasUnsavedChanges() bool {
	return m.dirty
}

func (m *EditorModel) Init() tea.Cmd {
	return nil
}

// buildRows lays out every editable field as a flat list. Line item rows are
// regenerated whenever a line is added or removed.
func (m *EditorModel) buildRows() []editorRow {
	rows := []editorRow{
		{kind: rowSection, label: "Company"},
		{kind: rowText, label: "Document title", text: engine.FieldTitle},
		{kind: rowText, label: "Company name", text: engine.FieldCompanyName},
		{kind: rowText, label: "Your name", text: engine.FieldName},
		{kind: rowText, label: "Address", text: engine.FieldCompanyAddress},
		{kind: rowText, label: "Address line 2", text: engine.FieldCompanyAddress2},
		{kind: rowText, label: "City, State, PIN", text: engine.FieldCityStatePin},
		{kind: rowText, label: "Country", text: engine.FieldCompanyCountry},
		{kind: rowText, label: "PAN No.", text: engine.FieldPANNo},
		{kind: rowText, label: "GST Registration No.", text: engine.FieldGSTRegistrationNo},
		{kind: rowText, label: "Place of supply", text: engine.FieldPlaceOfSupply},
		{kind: rowText, label: "Logo path", text: engine.FieldLogo},
		{kind: rowWidth, label: "Logo width (px)", width: engine.WidthLogo},

		{kind: rowSection, label: "Bill To"},
		{kind: rowText, label: "Section label", text: engine.FieldBillTo},
		{kind: rowText, label: "Client name", text: engine.FieldClientName},
		{kind: rowText, label: "Client address", text: engine.FieldClientAddress},
		{kind: rowText, label: "Client address line 2", text: engine.FieldClientAddress2},
		{kind: rowText, label: "Client country", text: engine.FieldClientCountry},
		{kind: rowText, label: "Client state/UT code", text: engine.FieldClientStateUTCode},

		{kind: rowSection, label: "Ship To (this session only)"},
		{kind: rowShip, label: "Recipient name", ship: engine.ShipRecipientName},
		{kind: rowShip, label: "Address", ship: engine.ShipAddress},
		{kind: rowShip, label: "City", ship: engine.ShipCity},
		{kind: rowShip, label: "State", ship: engine.ShipState},
		{kind: rowShip, label: "Pincode", ship: engine.ShipPincode},
		{kind: rowShip, label: "State/UT code", ship: engine.ShipStateUTCode},
		{kind: rowShip, label: "City, State, PIN", ship: engine.ShipCityStatePin},

		{kind: rowSection, label: "Invoice Details"},
		{kind: rowText, label: "Invoice# label", text: engine.FieldInvoiceTitleLabel},
		{kind: rowText, label: "Invoice#", text: engine.FieldInvoiceTitle},
		{kind: rowText, label: "Invoice number", text: engine.FieldInvoiceNumber},
		{kind: rowText, label: "Date label", text: engine.FieldInvoiceDateLabel},
		{kind: rowText, label: "Date", text: engine.FieldInvoiceDate},
		{kind: rowText, label: "Due date label", text: engine.FieldInvoiceDueDateLabel},
		{kind: rowText, label: "Due date", text: engine.FieldInvoiceDueDate},
		{kind: rowText, label: "Reference number", text: engine.FieldReferenceNumber},
		{kind: rowText, label: "Account number", text: engine.FieldAccountNumber},
		{kind: rowText, label: "Order no.", text: engine.FieldOrderNo},
		{kind: rowText, label: "Order date", text: engine.FieldOrderDate},
		{kind: rowText, label: "Payment terms", text: engine.FieldPaymentTerms},
		{kind: rowText, label: "Description", text: engine.FieldDescription},

		{kind: rowSection, label: "Column Labels"},
		{kind: rowText, label: "Description column", text: engine.FieldLineDescriptionLabel},
		{kind: rowText, label: "Quantity column", text: engine.FieldLineQuantityLabel},
		{kind: rowText, label: "Rate column", text: engine.FieldLineRateLabel},
		{kind: rowText, label: "Amount column", text: engine.FieldLineAmountLabel},
	}

	currency := m.eng.Text(engine.FieldCurrency)
	for i, line := range m.eng.Lines() {
		amount := engine.AmountFor(line.Quantity, line.Rate)
		rows = append(rows,
			editorRow{kind: rowSection, label: fmt.Sprintf("Line %d  (amount %s%s)", i+1, currency, amount)},
			editorRow{kind: rowLine, label: "Description", line: i, lineField: engine.LineDescription},
			editorRow{kind: rowLine, label: "Quantity", line: i, lineField: engine.LineQuantity},
			editorRow{kind: rowLine, label: "Rate", line: i, lineField: engine.LineRate},
			editorRow{kind: rowLine, label: "Unit code", line: i, lineField: engine.LineUnitCode},
		)
	}
	rows = append(rows, editorRow{kind: rowAddLine, label: "[ Add line ]"})

	rows = append(rows,
		editorRow{kind: rowSection, label: "Totals & Currency"},
		editorRow{kind: rowText, label: "Currency symbol", text: engine.FieldCurrency},
		editorRow{kind: rowText, label: "Sub total label", text: engine.FieldSubTotalLabel},
		editorRow{kind: rowText, label: "Tax label", text: engine.FieldTaxLabel},
		editorRow{kind: rowText, label: "Total label", text: engine.FieldTotalLabel},

		editorRow{kind: rowSection, label: "Notes & Terms"},
		editorRow{kind: rowText, label: "Notes label", text: engine.FieldNotesLabel},
		editorRow{kind: rowText, label: "Notes", text: engine.FieldNotes},
		editorRow{kind: rowText, label: "Terms label", text: engine.FieldTermLabel},
		editorRow{kind: rowText, label: "Terms", text: engine.FieldTerm},
		editorRow{kind: rowText, label: "Footer", text: engine.FieldFooter},
		editorRow{kind: rowText, label: "Signature path", text: engine.FieldSignature},
		editorRow{kind: rowWidth, label: "Signature width (px)", width: engine.WidthSignature},
	)

	return rows
}

// firstSelectable returns the index of the first selectable row at or after i
func (m *EditorModel) firstSelectable(i int) int {
	for ; i < len(m.rows); i++ {
		if m.rows[i].kind != rowSection {
			return i
		}
	}
	return 0
}

func (m *EditorModel) moveCursor(delta int) {
	i := m.cursor
	for {
		i += delta
		if i < 0 || i >= len(m.rows) {
			return
		}
		if m.rows[i].kind != rowSection {
			m.cursor = i
			return
		}
	}
}

// rowValue returns the current value shown for a row
func (m *EditorModel) rowValue(row editorRow) string {
	switch row.kind {
	case rowText:
		return m.eng.Text(row.text)
	case rowWidth:
		return strconv.FormatFloat(m.eng.Width(row.width), 'f', -1, 64)
	case rowLine:
		lines := m.eng.Lines()
		if row.line >= len(lines) {
			return ""
		}
		line := lines[row.line]
		switch row.lineField {
		case engine.LineDescription:
			return line.Description
		case engine.LineQuantity:
			return line.Quantity
		case engine.LineRate:
			return line.Rate
		case engine.LineUnitCode:
			return line.UnitCode
		}
		return ""
	case rowShip:
		return m.eng.ShippingText(row.ship)
	}
	return ""
}

func (m *EditorModel) beginEdit() tea.Cmd {
	row := m.rows[m.cursor]
	m.input = textinput.New()
	m.input.CharLimit = 500
	m.input.Width = 50
	m.input.SetValue(m.rowValue(row))
	m.input.CursorEnd()
	m.editing = true
	return m.input.Focus()
}

// commitEdit applies the typed value through the engine
func (m *EditorModel) commitEdit() {
	row := m.rows[m.cursor]
	value := m.input.Value()

	switch row.kind {
	case rowText:
		m.eng.SetText(row.text, value)
	case rowWidth:
		w, err := strconv.ParseFloat(value, 64)
		if err != nil {
			m.err = fmt.Errorf("invalid width: %s", value)
			m.editing = false
			return
		}
		m.eng.SetWidth(row.width, w)
	case rowLine:
		if !m.eng.SetLineField(row.line, row.lineField, value) {
			m.err = fmt.Errorf("line %d no longer exists", row.line+1)
		}
		// Quantity and rate edits change line amounts shown in headings
		m.rows = m.buildRows()
	case rowShip:
		m.eng.SetShippingField(row.ship, value)
	}
	m.editing = false
}

func (m *EditorModel) saveDocument() tea.Cmd {
	return func() tea.Msg {
		inv := m.eng.Snapshot().Invoice
		err := m.app.Documents.Save(context.Background(), m.name, &inv)
		return documentSavedMsg{err: err}
	}
}

func (m *EditorModel) exportPDF(draft bool) tea.Cmd {
	return func() tea.Msg {
		outDir := m.app.Config.Export.OutputDir
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return pdfExportedMsg{err: err}
		}
		path := filepath.Join(outDir, pdfFileName(m.name, draft))
		if err := render.WritePDF(m.eng.Snapshot(), m.eng.Shipping(), draft, path); err != nil {
			return pdfExportedMsg{err: err}
		}
		return pdfExportedMsg{path: path}
	}
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case documentSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.dirty = false
		m.discardArmed = false
		m.statusMsg = fmt.Sprintf("Saved: %s", m.name)
		return m, nil

	case pdfExportedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Exported: %s", msg.path)
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Back):
			if m.dirty && !m.discardArmed {
				m.discardArmed = true
				m.statusMsg = "Unsaved changes. Press esc again to discard, or ctrl+s to save."
				return m, nil
			}
			return m, func() tea.Msg { return closeEditorMsg{} }

		case key.Matches(msg, DefaultKeyMap.Up):
			m.moveCursor(-1)
			m.ensureVisible()
		case key.Matches(msg, DefaultKeyMap.Down):
			m.moveCursor(1)
			m.ensureVisible()

		case key.Matches(msg, DefaultKeyMap.Select):
			row := m.rows[m.cursor]
			if row.kind == rowAddLine {
				m.eng.AddLine()
				m.rows = m.buildRows()
				return m, nil
			}
			return m, m.beginEdit()

		case key.Matches(msg, DefaultKeyMap.AddLine):
			m.eng.AddLine()
			m.rows = m.buildRows()

		case key.Matches(msg, DefaultKeyMap.Delete):
			row := m.rows[m.cursor]
			if row.kind == rowLine {
				if m.eng.RemoveLine(row.line) {
					m.rows = m.buildRows()
					if m.cursor >= len(m.rows) {
						m.cursor = len(m.rows) - 1
					}
					if m.rows[m.cursor].kind == rowSection {
						m.moveCursor(-1)
					}
				}
			}

		case key.Matches(msg, DefaultKeyMap.Save):
			return m, m.saveDocument()

		case key.Matches(msg, DefaultKeyMap.Export):
			return m, m.exportPDF(false)

		case key.Matches(msg, DefaultKeyMap.Draft):
			return m, m.exportPDF(true)
		}
	}

	return m, nil
}

func (m *EditorModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "enter":
		m.commitEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// visibleRows is how many field rows fit between the title block and the
// totals footer.
func (m *EditorModel) visibleRows() int {
	v := m.height - 14
	if v < 5 {
		v = 5
	}
	return v
}

func (m *EditorModel) ensureVisible() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m *EditorModel) View() string {
	var s string

	title := m.name
	if m.dirty {
		title += dirtyStyle.Render(" *")
	}
	s += titleStyle.Render(title) + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).Render("  "+m.statusMsg) + "\n"
	}
	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	visible := m.visibleRows()
	end := m.offset + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	if m.offset > 0 {
		s += subtitleStyle.Render("  ↑ more") + "\n"
	}

	for i := m.offset; i < end; i++ {
		s += m.renderRow(i) + "\n"
	}

	if end < len(m.rows) {
		s += subtitleStyle.Render("  ↓ more") + "\n"
	}

	s += "\n" + m.renderTotals()

	return s
}

func (m *EditorModel) renderRow(i int) string {
	row := m.rows[i]

	if row.kind == rowSection {
		return sectionStyle.Render(row.label)
	}

	indicator := "  "
	labelStyle := subtitleStyle
	if i == m.cursor {
		indicator = "> "
		labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	}

	if row.kind == rowAddLine {
		return indicator + labelStyle.Render(row.label)
	}

	if m.editing && i == m.cursor {
		return fmt.Sprintf("%s%s %s", indicator, labelStyle.Render(row.label+":"), m.input.View())
	}

	value := truncateStr(m.rowValue(row), 48)
	return fmt.Sprintf("%s%s %s", indicator, labelStyle.Render(row.label+":"), value)
}

func (m *EditorModel) renderTotals() string {
	snap := m.eng.Snapshot()
	currency := snap.Invoice.Currency

	sub := formatMoney(currency, snap.SubTotal)
	tax := formatMoney(currency, snap.Tax)
	total := formatMoney(currency, snap.Total)

	return fmt.Sprintf("%s %s    %s %s    %s %s",
		subtitleStyle.Render(snap.Invoice.SubTotalLabel+":"), amountStyle.Render(sub),
		subtitleStyle.Render(snap.Invoice.TaxLabel+":"), amountStyle.Render(tax),
		subtitleStyle.Render(snap.Invoice.TotalLabel+":"), amountStyle.Render(total))
}
