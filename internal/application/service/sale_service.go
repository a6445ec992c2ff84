package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salescope/salescope-api/internal/domain/entity"
	"github.com/salescope/salescope-api/internal/domain/repository"
	"github.com/salescope/salescope-api/pkg/apperror"
	"github.com/salescope/salescope-api/pkg/pagination"
)

// SaleService handles sale-related operations
type SaleService struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewSaleService creates a new sale service
func NewSaleService(saleRepo repository.SaleRepository, customerRepo repository.CustomerRepository, productRepo repository.ProductRepository) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	CustomerID uuid.UUID
	ProductID  uuid.UUID
	Quantity   int
	// UnitPrice overrides the product's current price when set. Either way
	// the sale stores its own price copy.
	UnitPrice *float64
	SoldAt    time.Time
}

// CreateSale records a sale against an existing customer and product,
// snapshotting the unit price at transaction time.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if err := validateQuantity(input.Quantity); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	priceCents := product.UnitPrice
	if input.UnitPrice != nil {
		if *input.UnitPrice < 0 {
			return nil, apperror.NewBadRequestError("Unit price cannot be negative")
		}
		priceCents = int64(*input.UnitPrice*100 + 0.5)
	}

	sale := &entity.Sale{
		CustomerID:      customer.ID,
		ProductID:       product.ID,
		Quantity:        input.Quantity,
		UnitPriceAtSale: priceCents,
		SoldAt:          input.SoldAt,
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	sale.Customer = customer
	sale.Product = product
	return sale, nil
}

// GetSale retrieves a sale by ID with customer and product preloaded
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with pagination, newest first
func (s *SaleService) ListSales(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// UpdateSaleInput represents the update sale input. ExpectedUpdatedAt is the
// updated_at the client last saw; the update is rejected with a conflict if
// the row has changed since.
type UpdateSaleInput struct {
	ID                uuid.UUID
	ExpectedUpdatedAt time.Time
	CustomerID        *uuid.UUID
	ProductID         *uuid.UUID
	Quantity          *int
	SoldAt            *time.Time
}

// UpdateSale updates a sale with optimistic concurrency control. The price
// snapshot is immutable and cannot be changed here.
func (s *SaleService) UpdateSale(ctx context.Context, input *UpdateSaleInput) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		sale.CustomerID = customer.ID
	}
	if input.ProductID != nil {
		product, err := s.productRepo.GetByID(ctx, *input.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
		sale.ProductID = product.ID
	}
	if input.Quantity != nil {
		if err := validateQuantity(*input.Quantity); err != nil {
			return nil, err
		}
		sale.Quantity = *input.Quantity
	}
	if input.SoldAt != nil {
		sale.SoldAt = *input.SoldAt
	}

	ok, err := s.saleRepo.UpdateIfUnchanged(ctx, sale, input.ExpectedUpdatedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		// The guarded update matched no row: either someone else changed
		// it, or it was deleted. Reload to tell the two apart.
		current, err := s.saleRepo.GetByID(ctx, input.ID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, apperror.NewNotFoundError("Sale")
		}
		return nil, apperror.NewConflictError("Sale was modified by another request")
	}

	return s.saleRepo.GetByID(ctx, input.ID)
}

// DeleteSale deletes a sale
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}

	return s.saleRepo.Delete(ctx, id)
}

func validateQuantity(qty int) error {
	if qty < entity.MinSaleQuantity || qty > entity.MaxSaleQuantity {
		return apperror.NewBadRequestError(
			fmt.Sprintf("Quantity must be between %d and %d", entity.MinSaleQuantity, entity.MaxSaleQuantity))
	}
	return nil
}
