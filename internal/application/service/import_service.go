package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/salescope/salescope-api/internal/domain/entity"
	"github.com/salescope/salescope-api/internal/domain/repository"
)

// ImportSummary reports the outcome of a bulk CSV import.
type ImportSummary struct {
	CreatedSales int      `json:"created_sales"`
	NewCustomers int      `json:"new_customers"`
	NewProducts  int      `json:"new_products"`
	Skipped      int      `json:"skipped"`
	Errors       []string `json:"errors"`
}

// ImportService loads sales from uploaded CSV files, reconciling customers
// and products by name as it goes.
type ImportService struct {
	uow repository.UnitOfWork
}

// NewImportService creates a new import service
func NewImportService(uow repository.UnitOfWork) *ImportService {
	return &ImportService{uow: uow}
}

// ImportSales parses the upload and loads every usable row inside a single
// transaction. Bad rows are skipped, never fatal; a failure to persist rolls
// the whole batch back. The summary is returned alongside a nil error in the
// skip cases so callers can report row problems to the user.
func (s *ImportService) ImportSales(ctx context.Context, file io.Reader) (*ImportSummary, error) {
	rows, err := ParseSaleCSV(file)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{Errors: []string{}}

	err = s.uow.Execute(ctx, func(repos repository.Repositories) error {
		// Names already resolved in this batch, so repeated rows don't
		// hit the database again.
		customers := map[string]*entity.Customer{}
		products := map[string]*entity.Product{}

		for _, row := range rows {
			if err := s.importRow(ctx, repos, row, customers, products, summary); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *ImportService) importRow(
	ctx context.Context,
	repos repository.Repositories,
	row SaleCSVRow,
	customers map[string]*entity.Customer,
	products map[string]*entity.Product,
	summary *ImportSummary,
) error {
	customerName := strings.TrimSpace(row.Customer)
	productName := strings.TrimSpace(row.Product)
	if customerName == "" || productName == "" {
		summary.Skipped++
		return nil
	}

	quantity, err := parseQuantity(row.Quantity)
	if err != nil {
		summary.Skipped++
		summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", row.Line, err))
		return nil
	}
	if quantity < entity.MinSaleQuantity {
		summary.Skipped++
		return nil
	}
	if quantity > entity.MaxSaleQuantity {
		summary.Skipped++
		summary.Errors = append(summary.Errors,
			fmt.Sprintf("row %d: quantity %d exceeds maximum of %d", row.Line, quantity, entity.MaxSaleQuantity))
		return nil
	}

	priceCents, err := parseMoneyCents(row.UnitPrice)
	if err != nil {
		summary.Skipped++
		summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", row.Line, err))
		return nil
	}

	soldAt, err := parseSoldAt(row.SoldAt)
	if err != nil {
		summary.Skipped++
		summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", row.Line, err))
		return nil
	}

	customer, ok := customers[customerName]
	if !ok {
		customer, err = repos.Customers().GetByName(ctx, customerName)
		if err != nil {
			return err
		}
		if customer == nil {
			customer = &entity.Customer{Name: customerName}
			if err := repos.Customers().Create(ctx, customer); err != nil {
				return err
			}
			summary.NewCustomers++
		}
		customers[customerName] = customer
	}

	product, ok := products[productName]
	if !ok {
		product, err = repos.Products().GetByName(ctx, productName)
		if err != nil {
			return err
		}
		if product == nil {
			product = &entity.Product{Name: productName, UnitPrice: priceCents}
			if err := repos.Products().Create(ctx, product); err != nil {
				return err
			}
			summary.NewProducts++
		}
		products[productName] = product
	}

	sale := &entity.Sale{
		CustomerID:      customer.ID,
		ProductID:       product.ID,
		Quantity:        quantity,
		UnitPriceAtSale: priceCents, // snapshot of the row price, not the catalog price
		SoldAt:          soldAt,
	}
	if err := repos.Sales().Create(ctx, sale); err != nil {
		return err
	}
	summary.CreatedSales++

	return nil
}
