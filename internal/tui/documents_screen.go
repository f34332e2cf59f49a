package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andy/billbook/internal/app"
	"github.com/andy/billbook/internal/repository"
	"github.com/andy/billbook/internal/schema"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// documentMode represents the current screen mode
type documentMode int

const (
	documentModeList documentMode = iota
	documentModeNew
	documentModeConfirmDelete
)

// DocumentsModel displays a navigable list of stored documents
type DocumentsModel struct {
	app       *app.App
	docs      []repository.DocumentMeta
	cursor    int
	loading   bool
	err       error
	statusMsg string

	// Form state
	mode        documentMode
	nameInput   textinput.Model
	autoNewForm bool // open new document form after data loads
}

type documentsDataMsg struct {
	docs []repository.DocumentMeta
	err  error
}

type documentCreatedMsg struct {
	name string
	inv  *schema.Invoice
	err  error
}

type documentDeletedMsg struct {
	name string
	err  error
}

// NewDocumentsModel creates a new documents screen model
func NewDocumentsModel(a *app.App) tea.Model {
	return &DocumentsModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true when the name form is active
func (m *DocumentsModel) IsCapturingInput() bool {
	return m.mode == documentModeNew
}

func (m *DocumentsModel) Init() tea.Cmd {
	return m.loadDocuments()
}

func (m *DocumentsModel) loadDocuments() tea.Cmd {
	return func() tea.Msg {
		docs, err := m.app.Documents.List(context.Background())
		return documentsDataMsg{docs: docs, err: err}
	}
}

func (m *DocumentsModel) initNameForm() {
	m.nameInput = textinput.New()
	m.nameInput.Placeholder = "invoice-2026-001"
	m.nameInput.CharLimit = 100
	m.nameInput.Width = 40
}

func (m *DocumentsModel) createDocument() tea.Cmd {
	return func() tea.Msg {
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return documentCreatedMsg{err: fmt.Errorf("name is required")}
		}

		inv := schema.DefaultInvoice()
		m.app.Config.Seller.Apply(&inv)

		if err := m.app.Documents.Create(context.Background(), name, &inv); err != nil {
			if errors.Is(err, repository.ErrDocumentExists) {
				return documentCreatedMsg{err: fmt.Errorf("a document named %q already exists", name)}
			}
			return documentCreatedMsg{err: err}
		}
		return documentCreatedMsg{name: name, inv: &inv}
	}
}

func (m *DocumentsModel) openDocument(name string) tea.Cmd {
	return func() tea.Msg {
		inv, err := m.app.Documents.Get(context.Background(), name)
		if err != nil {
			return documentsDataMsg{docs: m.docs, err: err}
		}
		return openDocumentMsg{name: name, inv: inv}
	}
}

func (m *DocumentsModel) deleteDocument(name string) tea.Cmd {
	return func() tea.Msg {
		err := m.app.Documents.Delete(context.Background(), name)
		return documentDeletedMsg{name: name, err: err}
	}
}

func (m *DocumentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle OpenNewDocumentFormMsg at the top so it works regardless of mode
	if _, ok := msg.(OpenNewDocumentFormMsg); ok {
		if m.loading {
			m.autoNewForm = true
			return m, nil
		}
		m.mode = documentModeNew
		m.initNameForm()
		return m, m.nameInput.Focus()
	}

	if m.mode == documentModeNew {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadDocuments()

	case documentsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.docs = msg.docs
			if m.cursor >= len(m.docs) {
				m.cursor = max(0, len(m.docs)-1)
			}
		}
		// Auto-open new document form on first run
		if m.autoNewForm {
			m.autoNewForm = false
			m.mode = documentModeNew
			m.initNameForm()
			return m, m.nameInput.Focus()
		}
		return m, nil

	case documentDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Deleted: %s", msg.name)
		m.loading = true
		return m, m.loadDocuments()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		if m.mode == documentModeConfirmDelete {
			switch msg.String() {
			case "y", "Y":
				m.mode = documentModeList
				if len(m.docs) > 0 && m.cursor < len(m.docs) {
					return m, m.deleteDocument(m.docs[m.cursor].Name)
				}
			default:
				m.mode = documentModeList
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.docs)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = documentModeNew
			m.initNameForm()
			return m, m.nameInput.Focus()
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.docs) > 0 && m.cursor < len(m.docs) {
				return m, m.openDocument(m.docs[m.cursor].Name)
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if len(m.docs) > 0 && m.cursor < len(m.docs) {
				m.mode = documentModeConfirmDelete
			}
		}
	}

	return m, nil
}

func (m *DocumentsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case documentCreatedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		// Jump straight into the editor for the fresh document
		m.mode = documentModeList
		m.loading = true
		inv := msg.inv
		name := msg.name
		return m, tea.Batch(m.loadDocuments(), func() tea.Msg {
			return openDocumentMsg{name: name, inv: inv}
		})

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = documentModeList
			m.err = nil
			return m, nil
		case "enter":
			return m, m.createDocument()
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *DocumentsModel) View() string {
	if m.mode == documentModeNew {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *DocumentsModel) viewForm() string {
	var s string

	if len(m.docs) == 0 {
		s += titleStyle.Render("Welcome to billbook!") + "\n"
		s += subtitleStyle.Render("  Name your first invoice to get started.") + "\n\n"
	} else {
		s += titleStyle.Render("New Document") + "\n\n"
	}

	s += fmt.Sprintf("> %s\n  %s\n\n",
		lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render("Name:"),
		m.nameInput.View())

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  enter: create  esc: cancel")

	return s
}

func (m *DocumentsModel) viewList() string {
	if m.loading {
		return "Loading documents..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string
	s += titleStyle.Render("Documents") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.docs) == 0 {
		s += subtitleStyle.Render("  No documents yet. Press 'n' to create one.") + "\n"
		return s
	}

	for i, doc := range m.docs {
		indicator := "  "
		nameStyle := lipgloss.NewStyle()
		if i == m.cursor {
			indicator = "> "
			nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
		}
		s += nameStyle.Render(fmt.Sprintf("%s%s", indicator, doc.Name)) + "\n"
		s += subtitleStyle.Render(fmt.Sprintf("    Updated: %s", doc.UpdatedAt)) + "\n"
	}

	if m.mode == documentModeConfirmDelete && m.cursor < len(m.docs) {
		s += "\n" + lipgloss.NewStyle().Foreground(warningColor).
			Render(fmt.Sprintf("  Delete %q? (y/N)", m.docs[m.cursor].Name)) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: open  d: delete")

	return s
}
