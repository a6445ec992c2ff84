package repository

import (
	"context"

	domainRepo "github.com/salescope/salescope-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetSalesTotals(ctx context.Context, year *int) (domainRepo.SalesTotals, error) {
	var totals domainRepo.SalesTotals

	query := `
		SELECT
			COALESCE(SUM(unit_price_at_sale * quantity), 0) as revenue_cents,
			COUNT(*) as count
		FROM sales`
	args := []interface{}{}
	if year != nil {
		query += ` WHERE EXTRACT(YEAR FROM sold_at) = ?`
		args = append(args, *year)
	}

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&totals).Error
	return totals, err
}

func (r *analyticsRepository) GetMonthlyRevenue(ctx context.Context, year *int) ([]domainRepo.MonthlyRevenueResult, error) {
	var results []domainRepo.MonthlyRevenueResult

	query := `
		SELECT
			EXTRACT(YEAR FROM sold_at)::int as year,
			EXTRACT(MONTH FROM sold_at)::int as month,
			COALESCE(SUM(unit_price_at_sale * quantity), 0) as revenue_cents
		FROM sales`
	args := []interface{}{}
	if year != nil {
		query += ` WHERE EXTRACT(YEAR FROM sold_at) = ?`
		args = append(args, *year)
	}
	query += `
		GROUP BY 1, 2
		ORDER BY 1, 2`

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, year *int, limit int) ([]domainRepo.RevenueByNameResult, error) {
	var results []domainRepo.RevenueByNameResult

	query := `
		SELECT
			p.name as name,
			COALESCE(SUM(s.unit_price_at_sale * s.quantity), 0) as revenue_cents
		FROM sales s
		JOIN products p ON p.id = s.product_id`
	args := []interface{}{}
	if year != nil {
		query += ` WHERE EXTRACT(YEAR FROM s.sold_at) = ?`
		args = append(args, *year)
	}
	query += `
		GROUP BY p.name
		ORDER BY revenue_cents DESC, p.name ASC
		LIMIT ?`
	args = append(args, limit)

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetTopCustomers(ctx context.Context, year *int, limit int) ([]domainRepo.RevenueByNameResult, error) {
	var results []domainRepo.RevenueByNameResult

	query := `
		SELECT
			c.name as name,
			COALESCE(SUM(s.unit_price_at_sale * s.quantity), 0) as revenue_cents
		FROM sales s
		JOIN customers c ON c.id = s.customer_id`
	args := []interface{}{}
	if year != nil {
		query += ` WHERE EXTRACT(YEAR FROM s.sold_at) = ?`
		args = append(args, *year)
	}
	query += `
		GROUP BY c.name
		ORDER BY revenue_cents DESC, c.name ASC
		LIMIT ?`
	args = append(args, limit)

	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetSaleYears(ctx context.Context) ([]int, error) {
	var years []int

	// Always unfiltered: the year selector lists every year that has data.
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT EXTRACT(YEAR FROM sold_at)::int as year
		FROM sales
		ORDER BY year ASC
	`).Scan(&years).Error
	if err != nil {
		return nil, err
	}

	return years, nil
}
