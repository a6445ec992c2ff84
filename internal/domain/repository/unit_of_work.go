package repository

import "context"

// Repositories bundles the entity repositories bound to one transaction.
type Repositories interface {
	Customers() CustomerRepository
	Products() ProductRepository
	Sales() SaleRepository
}

// UnitOfWork runs a function against transaction-bound repositories. The
// transaction commits when fn returns nil and rolls back when it returns an
// error or panics; writes made through the bound repositories are visible to
// subsequent reads within the same transaction before commit.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}
