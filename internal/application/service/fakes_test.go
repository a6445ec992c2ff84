package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salescope/salescope-api/internal/domain/entity"
	"github.com/salescope/salescope-api/internal/domain/repository"
	"github.com/salescope/salescope-api/pkg/pagination"
)

// fakeStore is shared in-memory state backing the fake repositories.
type fakeStore struct {
	customers []entity.Customer
	products  []entity.Product
	sales     []entity.Sale

	// saleCreateFailAt makes the nth sale Create fail (1-based), to force
	// mid-batch persistence failures.
	saleCreateFailAt int
	saleCreates      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) clone() *fakeStore {
	c := &fakeStore{
		customers:        append([]entity.Customer{}, s.customers...),
		products:         append([]entity.Product{}, s.products...),
		sales:            append([]entity.Sale{}, s.sales...),
		saleCreateFailAt: s.saleCreateFailAt,
		saleCreates:      s.saleCreates,
	}
	return c
}

func (s *fakeStore) addCustomer(name string) entity.Customer {
	c := entity.Customer{ID: uuid.New(), Name: name, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.customers = append(s.customers, c)
	return c
}

func (s *fakeStore) addProduct(name string, priceCents int64) entity.Product {
	p := entity.Product{ID: uuid.New(), Name: name, UnitPrice: priceCents, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.products = append(s.products, p)
	return p
}

func (s *fakeStore) addSale(customerID, productID uuid.UUID, qty int, priceCents int64, soldAt time.Time) entity.Sale {
	sale := entity.Sale{
		ID:              uuid.New(),
		CustomerID:      customerID,
		ProductID:       productID,
		Quantity:        qty,
		UnitPriceAtSale: priceCents,
		SoldAt:          soldAt,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now().Truncate(time.Millisecond),
	}
	s.sales = append(s.sales, sale)
	return sale
}

type fakeCustomerRepo struct {
	store *fakeStore
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	customer.ID = uuid.New()
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	r.store.customers = append(r.store.customers, *customer)
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	for i := range r.store.customers {
		if r.store.customers[i].ID == id {
			c := r.store.customers[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) GetByName(_ context.Context, name string) (*entity.Customer, error) {
	for i := range r.store.customers {
		if r.store.customers[i].Name == name {
			c := r.store.customers[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	for i := range r.store.customers {
		if r.store.customers[i].ID == customer.ID {
			customer.UpdatedAt = time.Now()
			r.store.customers[i] = *customer
			return nil
		}
	}
	return errors.New("customer not found")
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.store.customers {
		if r.store.customers[i].ID == id {
			r.store.customers = append(r.store.customers[:i], r.store.customers[i+1:]...)
			return nil
		}
	}
	return errors.New("customer not found")
}

func (r *fakeCustomerRepo) List(_ context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	params.Validate()
	var matched []entity.Customer
	for _, c := range r.store.customers {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	total := int64(len(matched))
	return page(matched, params), total, nil
}

type fakeProductRepo struct {
	store *fakeStore
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	product.ID = uuid.New()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	r.store.products = append(r.store.products, *product)
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	for i := range r.store.products {
		if r.store.products[i].ID == id {
			p := r.store.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	for i := range r.store.products {
		if r.store.products[i].Name == name {
			p := r.store.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	for i := range r.store.products {
		if r.store.products[i].ID == product.ID {
			product.UpdatedAt = time.Now()
			r.store.products[i] = *product
			return nil
		}
	}
	return errors.New("product not found")
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.store.products {
		if r.store.products[i].ID == id {
			r.store.products = append(r.store.products[:i], r.store.products[i+1:]...)
			return nil
		}
	}
	return errors.New("product not found")
}

func (r *fakeProductRepo) List(_ context.Context, params *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	params.Validate()
	var matched []entity.Product
	for _, p := range r.store.products {
		if search == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	total := int64(len(matched))
	return page(matched, params), total, nil
}

type fakeSaleRepo struct {
	store *fakeStore
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.store.saleCreates++
	if r.store.saleCreateFailAt > 0 && r.store.saleCreates >= r.store.saleCreateFailAt {
		return errors.New("insert failed")
	}
	sale.ID = uuid.New()
	sale.CreatedAt = time.Now()
	sale.UpdatedAt = sale.CreatedAt
	stored := *sale
	stored.Customer = nil
	stored.Product = nil
	r.store.sales = append(r.store.sales, stored)
	return nil
}

func (r *fakeSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	for i := range r.store.sales {
		if r.store.sales[i].ID == id {
			s := r.store.sales[i]
			r.preload(&s)
			return &s, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) preload(s *entity.Sale) {
	for i := range r.store.customers {
		if r.store.customers[i].ID == s.CustomerID {
			c := r.store.customers[i]
			s.Customer = &c
		}
	}
	for i := range r.store.products {
		if r.store.products[i].ID == s.ProductID {
			p := r.store.products[i]
			s.Product = &p
		}
	}
}

func (r *fakeSaleRepo) UpdateIfUnchanged(_ context.Context, sale *entity.Sale, expectedUpdatedAt time.Time) (bool, error) {
	for i := range r.store.sales {
		if r.store.sales[i].ID == sale.ID && r.store.sales[i].UpdatedAt.Equal(expectedUpdatedAt) {
			stored := r.store.sales[i]
			stored.CustomerID = sale.CustomerID
			stored.ProductID = sale.ProductID
			stored.Quantity = sale.Quantity
			stored.SoldAt = sale.SoldAt
			stored.UpdatedAt = time.Now()
			r.store.sales[i] = stored
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range r.store.sales {
		if r.store.sales[i].ID == id {
			r.store.sales = append(r.store.sales[:i], r.store.sales[i+1:]...)
			return nil
		}
	}
	return errors.New("sale not found")
}

func (r *fakeSaleRepo) List(_ context.Context, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	params.Validate()
	sales := append([]entity.Sale{}, r.store.sales...)
	sort.Slice(sales, func(i, j int) bool { return sales[i].SoldAt.After(sales[j].SoldAt) })
	for i := range sales {
		r.preload(&sales[i])
	}
	total := int64(len(sales))
	return page(sales, params), total, nil
}

func (r *fakeSaleRepo) ListForExport(_ context.Context, year *int) ([]entity.Sale, error) {
	var sales []entity.Sale
	for _, s := range r.store.sales {
		if year == nil || s.SoldAt.Year() == *year {
			sales = append(sales, s)
		}
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].SoldAt.Before(sales[j].SoldAt) })
	for i := range sales {
		r.preload(&sales[i])
	}
	return sales, nil
}

func page[T any](items []T, params *pagination.PaginationParams) []T {
	start := params.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + params.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// fakeUnitOfWork stages all mutations on a scratch copy of the store and
// only publishes them when the callback succeeds, mimicking transactional
// rollback.
type fakeUnitOfWork struct {
	store *fakeStore
}

type fakeRepositories struct {
	store *fakeStore
}

func (r *fakeRepositories) Customers() repository.CustomerRepository {
	return &fakeCustomerRepo{store: r.store}
}

func (r *fakeRepositories) Products() repository.ProductRepository {
	return &fakeProductRepo{store: r.store}
}

func (r *fakeRepositories) Sales() repository.SaleRepository {
	return &fakeSaleRepo{store: r.store}
}

func (u *fakeUnitOfWork) Execute(_ context.Context, fn func(repos repository.Repositories) error) error {
	scratch := u.store.clone()
	if err := fn(&fakeRepositories{store: scratch}); err != nil {
		return err
	}
	*u.store = *scratch
	return nil
}

// fakeAnalyticsRepo returns canned aggregation results.
type fakeAnalyticsRepo struct {
	totals       repository.SalesTotals
	monthly      []repository.MonthlyRevenueResult
	topProducts  []repository.RevenueByNameResult
	topCustomers []repository.RevenueByNameResult
	years        []int

	lastYearFilter *int
	yearsCalls     int
}

func (r *fakeAnalyticsRepo) GetSalesTotals(_ context.Context, year *int) (repository.SalesTotals, error) {
	r.lastYearFilter = year
	return r.totals, nil
}

func (r *fakeAnalyticsRepo) GetMonthlyRevenue(_ context.Context, year *int) ([]repository.MonthlyRevenueResult, error) {
	return r.monthly, nil
}

func (r *fakeAnalyticsRepo) GetTopProducts(_ context.Context, year *int, limit int) ([]repository.RevenueByNameResult, error) {
	if len(r.topProducts) > limit {
		return r.topProducts[:limit], nil
	}
	return r.topProducts, nil
}

func (r *fakeAnalyticsRepo) GetTopCustomers(_ context.Context, year *int, limit int) ([]repository.RevenueByNameResult, error) {
	if len(r.topCustomers) > limit {
		return r.topCustomers[:limit], nil
	}
	return r.topCustomers, nil
}

func (r *fakeAnalyticsRepo) GetSaleYears(_ context.Context) ([]int, error) {
	r.yearsCalls++
	return r.years, nil
}
