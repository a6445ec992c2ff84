package repository

import (
	"context"

	domainRepo "github.com/salescope/salescope-api/internal/domain/repository"
	"gorm.io/gorm"
)

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a unit of work backed by a GORM transaction
func NewUnitOfWork(db *gorm.DB) domainRepo.UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Execute(ctx context.Context, fn func(repos domainRepo.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepositories{tx: tx})
	})
}

// txRepositories hands out repositories bound to the open transaction so
// writes made by earlier rows of a batch are visible to later lookups.
type txRepositories struct {
	tx *gorm.DB
}

func (r *txRepositories) Customers() domainRepo.CustomerRepository {
	return NewCustomerRepository(r.tx)
}

func (r *txRepositories) Products() domainRepo.ProductRepository {
	return NewProductRepository(r.tx)
}

func (r *txRepositories) Sales() domainRepo.SaleRepository {
	return NewSaleRepository(r.tx)
}
