package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/salescope/salescope-api/internal/domain/entity"
	domainRepo "github.com/salescope/salescope-api/internal/domain/repository"
	"github.com/salescope/salescope-api/pkg/pagination"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Product").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) UpdateIfUnchanged(ctx context.Context, sale *entity.Sale, expectedUpdatedAt time.Time) (bool, error) {
	// Guarded update: only writes when updated_at still matches what the
	// caller last read. UnitPriceAtSale is deliberately absent from the
	// column list; the snapshot price is immutable.
	result := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id = ? AND updated_at = ?", sale.ID, expectedUpdatedAt).
		Updates(map[string]interface{}{
			"customer_id": sale.CustomerID,
			"product_id":  sale.ProductID,
			"quantity":    sale.Quantity,
			"sold_at":     sale.SoldAt,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Sale{}, "id = ?", id).Error
}

func (r *saleRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.
		Preload("Customer").
		Preload("Product").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("sold_at DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) ListForExport(ctx context.Context, year *int) ([]entity.Sale, error) {
	var sales []entity.Sale

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Preload("Customer").
		Preload("Product")

	if year != nil {
		query = query.Where("EXTRACT(YEAR FROM sold_at) = ?", *year)
	}

	err := query.Order("sold_at ASC").Find(&sales).Error
	return sales, err
}
