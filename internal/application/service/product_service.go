package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/salescope/salescope-api/internal/domain/entity"
	"github.com/salescope/salescope-api/internal/domain/repository"
	"github.com/salescope/salescope-api/pkg/apperror"
	"github.com/salescope/salescope-api/pkg/pagination"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name      string
	UnitPrice float64
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.UnitPrice < 0 {
		return nil, apperror.NewBadRequestError("Unit price cannot be negative")
	}

	product := &entity.Product{
		Name: input.Name,
	}
	product.SetUnitPriceFromDecimal(input.UnitPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with pagination, optionally filtered by a name
// search term.
func (s *ProductService) ListProducts(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID        uuid.UUID
	Name      *string
	UnitPrice *float64
}

// UpdateProduct updates a product. Changing the price never touches existing
// sales; they keep the price snapshot taken when they were recorded.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.UnitPrice != nil {
		if *input.UnitPrice < 0 {
			return nil, apperror.NewBadRequestError("Unit price cannot be negative")
		}
		product.SetUnitPriceFromDecimal(*input.UnitPrice)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, id)
}
