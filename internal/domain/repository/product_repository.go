package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescope/salescope-api/internal/domain/entity"
	"github.com/salescope/salescope-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByName looks a product up by exact name match (import reconciliation
	// key, same duplicate caveat as CustomerRepository.GetByName).
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns products with page-based pagination, optionally filtered
	// by a name search term.
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error)
}
