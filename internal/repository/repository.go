package repository

import (
	"context"

	"github.com/andy/billbook/internal/schema"
)

// DocumentMeta describes a stored document without its body.
type DocumentMeta struct {
	ID        int64
	Name      string
	CreatedAt string
	UpdatedAt string
}

// DocumentRepository manages persistence of named invoice documents.
// Every loaded body passes schema validation before it is returned; a
// *schema.SchemaViolation means the stored document is unusable and must be
// rejected whole, never partially applied.
type DocumentRepository interface {
	Create(ctx context.Context, name string, inv *schema.Invoice) error
	Get(ctx context.Context, name string) (*schema.Invoice, error)
	List(ctx context.Context) ([]DocumentMeta, error)
	Save(ctx context.Context, name string, inv *schema.Invoice) error
	Delete(ctx context.Context, name string) error
}
