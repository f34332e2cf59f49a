package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andy/billbook/internal/db"
	"github.com/andy/billbook/internal/schema"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentExists   = errors.New("document already exists")
)

// DocumentRepo is a SQLite implementation of DocumentRepository
type DocumentRepo struct {
	db *db.DB
}

// NewDocumentRepo creates a new DocumentRepo
func NewDocumentRepo(database *db.DB) *DocumentRepo {
	return &DocumentRepo{db: database}
}

// Create inserts a new named document. Fails if the name is taken.
func (r *DocumentRepo) Create(ctx context.Context, name string, inv *schema.Invoice) error {
	body, err := encodeBody(inv)
	if err != nil {
		return err
	}

	var exists int
	err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents WHERE name = ?", name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check document name: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", ErrDocumentExists, name)
	}

	query := `
		INSERT INTO documents (name, body, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`
	now := formatTime()
	if _, err := r.db.ExecContext(ctx, query, name, body, now, now); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// Get loads a document by name and validates its body against the invoice
// schema. A stored body that no longer conforms is rejected whole.
func (r *DocumentRepo) Get(ctx context.Context, name string) (*schema.Invoice, error) {
	var body string
	err := r.db.QueryRowContext(ctx,
		"SELECT body FROM documents WHERE name = ?", name,
	).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	inv, err := schema.Validate([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("stored document %q is invalid: %w", name, err)
	}
	return inv, nil
}

// List returns metadata for all stored documents, most recently updated first.
func (r *DocumentRepo) List(ctx context.Context) ([]DocumentMeta, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM documents
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentMeta
	for rows.Next() {
		var meta DocumentMeta
		if err := rows.Scan(&meta.ID, &meta.Name, &meta.CreatedAt, &meta.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, meta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return docs, nil
}

// Save replaces the body of an existing document.
func (r *DocumentRepo) Save(ctx context.Context, name string, inv *schema.Invoice) error {
	body, err := encodeBody(inv)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE documents SET body = ?, updated_at = ? WHERE name = ?
	`, body, formatTime(), name)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check save result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}
	return nil
}

// Delete removes a document by name.
func (r *DocumentRepo) Delete(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}
	return nil
}

// encodeBody serializes a document through the same interchange encoding the
// validator accepts, so anything written here is loadable.
func encodeBody(inv *schema.Invoice) (string, error) {
	data, err := inv.Marshal()
	if err != nil {
		return "", err
	}
	return string(data), nil
}
