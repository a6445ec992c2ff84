package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salescope/salescope-api/internal/domain/entity"
	"github.com/salescope/salescope-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID returns the sale with customer and product preloaded, or nil
	// when no such sale exists.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// UpdateIfUnchanged persists the sale only if its stored updated_at still
	// equals expectedUpdatedAt. Returns false without error when another
	// writer got there first (or the row is gone); the caller reloads to
	// distinguish a conflict from a deletion.
	UpdateIfUnchanged(ctx context.Context, sale *entity.Sale, expectedUpdatedAt time.Time) (bool, error)
	// Delete removes the sale row permanently (hard delete).
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns sales with page-based pagination, customer and product
	// preloaded, newest first.
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Sale, int64, error)
	// ListForExport returns all sales, optionally filtered by the year of
	// sold_at, ordered ascending by sold_at, customer and product preloaded.
	ListForExport(ctx context.Context, year *int) ([]entity.Sale, error)
}
