package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/billbook/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenDocuments Screen = iota
	ScreenEditor
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenDocuments:
		return "Documents"
	case ScreenEditor:
		return "Editor"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	documents tea.Model
	editor    tea.Model

	// First-run state
	checkedFirstRun bool

	// Error state
	err     error
	quitMsg string // shown when quit is blocked
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenDocuments,
		documents:     NewDocumentsModel(a),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.checkFirstRun(), m.documents.Init())
}

// checkFirstRun checks if any documents exist in the database
func (m *Model) checkFirstRun() tea.Cmd {
	return func() tea.Msg {
		docs, err := m.app.Documents.List(context.Background())
		if err != nil {
			return firstRunCheckMsg{hasDocuments: true} // assume yes on error
		}
		return firstRunCheckMsg{hasDocuments: len(docs) > 0}
	}
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global keys are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// UnsavedReporter is implemented by screens holding edits not yet written to
// the database.
type UnsavedReporter interface {
	HasUnsavedChanges() bool
}

// activeScreen returns the model for the current screen
func (m *Model) activeScreen() tea.Model {
	switch m.currentScreen {
	case ScreenDocuments:
		return m.documents
	case ScreenEditor:
		return m.editor
	}
	return nil
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.activeScreen().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Screens size their own content
		if m.documents != nil {
			m.documents, _ = m.documents.Update(msg)
		}
		if m.editor != nil {
			m.editor, _ = m.editor.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		// Clear quit warning on any keypress
		m.quitMsg = ""

		if !m.activeScreenCapturingInput() {
			if key.Matches(msg, DefaultKeyMap.Quit) {
				if ur, ok := m.activeScreen().(UnsavedReporter); ok && ur.HasUnsavedChanges() {
					m.quitMsg = "Unsaved changes. Save with ctrl+s or press esc to discard first."
					return m, nil
				}
				return m, tea.Quit
			}
		}

	case firstRunCheckMsg:
		if !m.checkedFirstRun && !msg.hasDocuments {
			m.checkedFirstRun = true
			openFormCmd := func() tea.Msg { return OpenNewDocumentFormMsg{} }
			return m, openFormCmd
		}
		m.checkedFirstRun = true
		return m, nil

	case openDocumentMsg:
		editor := NewEditorModel(m.app, msg.name, msg.inv)
		m.editor = editor
		m.currentScreen = ScreenEditor
		cmds := []tea.Cmd{m.editor.Init()}
		if m.width > 0 {
			m.editor, _ = m.editor.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		}
		return m, tea.Batch(cmds...)

	case closeEditorMsg:
		m.editor = nil
		m.currentScreen = ScreenDocuments
		return m, func() tea.Msg { return RefreshDataMsg{} }

	case SwitchScreenMsg:
		m.currentScreen = msg.Screen
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenDocuments:
		if m.documents != nil {
			m.documents, cmd = m.documents.Update(msg)
		}
	case ScreenEditor:
		if m.editor != nil {
			m.editor, cmd = m.editor.Update(msg)
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("billbook - %s", m.currentScreen.String()))

	var footer string
	switch m.currentScreen {
	case ScreenEditor:
		footer = footerStyle.Render("[Enter] Edit  [A]dd line  [D]elete line  [^S] Save  [^E] PDF  [^P] Draft  [Esc] Back")
	default:
		footer = footerStyle.Render("[N]ew  [Enter] Open  [D]elete  [Q]uit")
	}

	var content string
	if screen := m.activeScreen(); screen != nil {
		content = screen.View()
	} else {
		content = "Loading..."
	}

	// Error/warning display
	errorDisplay := ""
	if m.quitMsg != "" {
		errorDisplay = lipgloss.NewStyle().
			Foreground(warningColor).
			Render(fmt.Sprintf("\n%s", m.quitMsg))
	} else if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
