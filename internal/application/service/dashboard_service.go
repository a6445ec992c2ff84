package service

import (
	"context"
	"fmt"

	"github.com/salescope/salescope-api/internal/domain/repository"
)

// topEntryLimit caps the product and customer rankings on the dashboard.
const topEntryLimit = 5

// RevenueBucket is one month of revenue, labeled "YYYY-MM".
type RevenueBucket struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// RankingEntry is one product or customer ranked by revenue.
type RankingEntry struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// DashboardStats aggregates everything the dashboard page needs in one
// payload.
type DashboardStats struct {
	TotalRevenue   float64         `json:"total_revenue"`
	SalesCount     int64           `json:"sales_count"`
	RevenueByMonth []RevenueBucket `json:"revenue_by_month"`
	TopProducts    []RankingEntry  `json:"top_products"`
	TopCustomers   []RankingEntry  `json:"top_customers"`
	AvailableYears []int           `json:"available_years"`
}

// DashboardService computes aggregate sales statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo}
}

// GetStats returns dashboard statistics, optionally scoped to a single year.
// AvailableYears always covers the whole dataset regardless of the filter.
func (s *DashboardService) GetStats(ctx context.Context, year *int) (*DashboardStats, error) {
	totals, err := s.analyticsRepo.GetSalesTotals(ctx, year)
	if err != nil {
		return nil, err
	}

	monthly, err := s.analyticsRepo.GetMonthlyRevenue(ctx, year)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.analyticsRepo.GetTopProducts(ctx, year, topEntryLimit)
	if err != nil {
		return nil, err
	}

	topCustomers, err := s.analyticsRepo.GetTopCustomers(ctx, year, topEntryLimit)
	if err != nil {
		return nil, err
	}

	years, err := s.analyticsRepo.GetSaleYears(ctx)
	if err != nil {
		return nil, err
	}
	if years == nil {
		years = []int{}
	}

	buckets := make([]RevenueBucket, 0, len(monthly))
	for _, m := range monthly {
		buckets = append(buckets, RevenueBucket{
			Label: fmt.Sprintf("%04d-%02d", m.Year, m.Month),
			Total: float64(m.RevenueCents) / 100,
		})
	}

	return &DashboardStats{
		TotalRevenue:   float64(totals.RevenueCents) / 100,
		SalesCount:     totals.Count,
		RevenueByMonth: buckets,
		TopProducts:    toRankingEntries(topProducts),
		TopCustomers:   toRankingEntries(topCustomers),
		AvailableYears: years,
	}, nil
}

func toRankingEntries(results []repository.RevenueByNameResult) []RankingEntry {
	entries := make([]RankingEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, RankingEntry{
			Name:  r.Name,
			Total: float64(r.RevenueCents) / 100,
		})
	}
	return entries
}
