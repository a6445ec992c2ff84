package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescope/salescope-api/internal/domain/entity"
	"github.com/salescope/salescope-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetByName looks a customer up by exact name match. Name is the natural
	// reconciliation key during import; it carries no uniqueness constraint,
	// so concurrent imports of a brand-new name can race and create
	// duplicates.
	GetByName(ctx context.Context, name string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns customers with page-based pagination, optionally filtered
	// by a name/email search term.
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}
