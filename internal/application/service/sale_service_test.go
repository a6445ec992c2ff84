package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/salescope/salescope-api/pkg/apperror"
)

func newSaleService(store *fakeStore) *SaleService {
	return NewSaleService(
		&fakeSaleRepo{store: store},
		&fakeCustomerRepo{store: store},
		&fakeProductRepo{store: store},
	)
}

func TestCreateSale(t *testing.T) {
	ctx := context.Background()
	soldAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("snapshots the product's current price", func(t *testing.T) {
		store := newFakeStore()
		alice := store.addCustomer("Alice")
		widget := store.addProduct("Widget", 999)
		svc := newSaleService(store)

		sale, err := svc.CreateSale(ctx, &CreateSaleInput{
			CustomerID: alice.ID,
			ProductID:  widget.ID,
			Quantity:   2,
			SoldAt:     soldAt,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(999), sale.UnitPriceAtSale)
		assert.Equal(t, int64(1998), sale.TotalCents())
		require.NotNil(t, sale.Customer)
		assert.Equal(t, "Alice", sale.Customer.Name)
	})

	t.Run("honors an explicit unit price override", func(t *testing.T) {
		store := newFakeStore()
		alice := store.addCustomer("Alice")
		widget := store.addProduct("Widget", 999)
		svc := newSaleService(store)

		price := 5.50
		sale, err := svc.CreateSale(ctx, &CreateSaleInput{
			CustomerID: alice.ID,
			ProductID:  widget.ID,
			Quantity:   1,
			UnitPrice:  &price,
			SoldAt:     soldAt,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(550), sale.UnitPriceAtSale)
	})

	t.Run("rejects out-of-range quantities", func(t *testing.T) {
		store := newFakeStore()
		alice := store.addCustomer("Alice")
		widget := store.addProduct("Widget", 999)
		svc := newSaleService(store)

		for _, qty := range []int{0, -1, 1_000_001} {
			_, err := svc.CreateSale(ctx, &CreateSaleInput{
				CustomerID: alice.ID,
				ProductID:  widget.ID,
				Quantity:   qty,
				SoldAt:     soldAt,
			})
			require.Error(t, err, "quantity %d", qty)
			assert.Equal(t, 400, apperror.GetAppError(err).Code)
		}
		assert.Empty(t, store.sales)
	})

	t.Run("rejects unknown customer or product", func(t *testing.T) {
		store := newFakeStore()
		alice := store.addCustomer("Alice")
		widget := store.addProduct("Widget", 999)
		svc := newSaleService(store)

		_, err := svc.CreateSale(ctx, &CreateSaleInput{
			CustomerID: uuid.New(),
			ProductID:  widget.ID,
			Quantity:   1,
			SoldAt:     soldAt,
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)

		_, err = svc.CreateSale(ctx, &CreateSaleInput{
			CustomerID: alice.ID,
			ProductID:  uuid.New(),
			Quantity:   1,
			SoldAt:     soldAt,
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}

func TestUpdateSale(t *testing.T) {
	ctx := context.Background()

	t.Run("applies changes when the timestamp matches", func(t *testing.T) {
		store := newFakeStore()
		alice := store.addCustomer("Alice")
		widget := store.addProduct("Widget", 999)
		sale := store.addSale(alice.ID, widget.ID, 1, 999, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		svc := newSaleService(store)

		qty := 5
		updated, err := svc.UpdateSale(ctx, &UpdateSaleInput{
			ID:                sale.ID,
			ExpectedUpdatedAt: sale.UpdatedAt,
			Quantity:          &qty,
		})
		require.NoError(t, err)

		assert.Equal(t, 5, updated.Quantity)
		// Price snapshot stays put.
		assert.Equal(t, int64(999), updated.UnitPriceAtSale)
		assert.True(t, updated.UpdatedAt.After(sale.UpdatedAt))
	})

	t.Run("returns conflict when the row changed underneath", func(t *testing.T) {
		store := newFakeStore()
		alice := store.addCustomer("Alice")
		widget := store.addProduct("Widget", 999)
		sale := store.addSale(alice.ID, widget.ID, 1, 999, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		svc := newSaleService(store)

		qty := 5
		stale := sale.UpdatedAt.Add(-time.Minute)
		_, err := svc.UpdateSale(ctx, &UpdateSaleInput{
			ID:                sale.ID,
			ExpectedUpdatedAt: stale,
			Quantity:          &qty,
		})
		require.Error(t, err)
		assert.Equal(t, 409, apperror.GetAppError(err).Code)

		// Unchanged.
		assert.Equal(t, 1, store.sales[0].Quantity)
	})

	t.Run("returns not found for a missing sale", func(t *testing.T) {
		store := newFakeStore()
		svc := newSaleService(store)

		qty := 5
		_, err := svc.UpdateSale(ctx, &UpdateSaleInput{
			ID:                uuid.New(),
			ExpectedUpdatedAt: time.Now(),
			Quantity:          &qty,
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("rejects reassignment to an unknown product", func(t *testing.T) {
		store := newFakeStore()
		alice := store.addCustomer("Alice")
		widget := store.addProduct("Widget", 999)
		sale := store.addSale(alice.ID, widget.ID, 1, 999, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		svc := newSaleService(store)

		missing := uuid.New()
		_, err := svc.UpdateSale(ctx, &UpdateSaleInput{
			ID:                sale.ID,
			ExpectedUpdatedAt: sale.UpdatedAt,
			ProductID:         &missing,
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}

func TestDeleteSale(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	alice := store.addCustomer("Alice")
	widget := store.addProduct("Widget", 999)
	sale := store.addSale(alice.ID, widget.ID, 1, 999, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	svc := newSaleService(store)

	require.NoError(t, svc.DeleteSale(ctx, sale.ID))
	assert.Empty(t, store.sales)

	err := svc.DeleteSale(ctx, sale.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestGetSale(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	alice := store.addCustomer("Alice")
	widget := store.addProduct("Widget", 999)
	sale := store.addSale(alice.ID, widget.ID, 2, 999, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	svc := newSaleService(store)

	got, err := svc.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Customer)
	require.NotNil(t, got.Product)
	assert.Equal(t, "Alice", got.Customer.Name)
	assert.Equal(t, "Widget", got.Product.Name)

	_, err = svc.GetSale(ctx, uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
