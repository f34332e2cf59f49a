package tui

import "github.com/andy/billbook/internal/schema"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// OpenNewDocumentFormMsg tells the documents screen to open the new document form
type OpenNewDocumentFormMsg struct{}

// openDocumentMsg carries a loaded document into the editor
type openDocumentMsg struct {
	name string
	inv  *schema.Invoice
}

// closeEditorMsg returns from the editor to the document list
type closeEditorMsg struct{}

// firstRunCheckMsg reports whether the database has any documents
type firstRunCheckMsg struct {
	hasDocuments bool
}
