package repository

import "context"

// SalesTotals holds the revenue sum and record count over a sale set
type SalesTotals struct {
	RevenueCents int64
	Count        int64
}

// MonthlyRevenueResult represents revenue aggregated into a (year, month) bucket
type MonthlyRevenueResult struct {
	Year         int
	Month        int
	RevenueCents int64
}

// RevenueByNameResult represents revenue aggregated under a grouping name
// (product or customer)
type RevenueByNameResult struct {
	Name         string
	RevenueCents int64
}

// AnalyticsRepository defines interface for analytics/aggregation queries.
// All aggregation happens server-side (GROUP BY/SUM/ORDER BY/LIMIT); a nil
// year means no filter. Queries are read-only and safe to run concurrently.
type AnalyticsRepository interface {
	// GetSalesTotals returns total revenue and sale count over the filtered
	// set. An empty set yields zeros, not an error.
	GetSalesTotals(ctx context.Context, year *int) (SalesTotals, error)

	// GetMonthlyRevenue returns revenue bucketed by (year, month) of sold_at,
	// ordered ascending by year then month.
	GetMonthlyRevenue(ctx context.Context, year *int) ([]MonthlyRevenueResult, error)

	// GetTopProducts returns the highest-revenue products, descending by
	// revenue with ties broken by name, at most limit entries.
	GetTopProducts(ctx context.Context, year *int, limit int) ([]RevenueByNameResult, error)

	// GetTopCustomers returns the highest-revenue customers, same ordering
	// rules as GetTopProducts.
	GetTopCustomers(ctx context.Context, year *int, limit int) ([]RevenueByNameResult, error)

	// GetSaleYears returns the distinct years present across ALL sales,
	// ascending, regardless of any applied filter.
	GetSaleYears(ctx context.Context) ([]int, error)
}
