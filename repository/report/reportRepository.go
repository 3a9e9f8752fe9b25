// repository/report/reportRepository.go
package report

import (
	"context"
	"database/sql"
	"time"
)

type OverviewRow struct {
	TotalRentals   int64   `json:"total_rentals"`
	ActiveRentals  int64   `json:"active_rentals"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	AverageDays    float64 `json:"average_days"`
}

type FinancialSummaryRow struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalRentals  int64   `json:"total_rentals"`
	AverageTicket float64 `json:"average_ticket"`
}

type MonthlyRow struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Rentals int64   `json:"rentals"`
}

type BikeUsageRow struct {
	Bike        string  `json:"bike"`
	Rentals     int64   `json:"rentals"`
	Revenue     float64 `json:"revenue"`
	Utilization int64   `json:"utilization"`
}

type TopCustomerRow struct {
	Name       string  `json:"name"`
	CPF        string  `json:"cpf"`
	Rentals    int64   `json:"rentals"`
	TotalSpent float64 `json:"total_spent"`
}

type Repo interface {
	Overview(ctx context.Context, now time.Time) (*OverviewRow, error)
	FinancialSummary(ctx context.Context, from, now time.Time) (*FinancialSummaryRow, error)
	MonthlyPerformance(ctx context.Context, from, now time.Time) ([]MonthlyRow, error)
	BikeUsage(ctx context.Context, from, now time.Time, periodDays int) ([]BikeUsageRow, error)
	TopCustomers(ctx context.Context, from, now time.Time, limit int) ([]TopCustomerRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

// Billed days recomputed in SQL with the same ceiling rule the model applies;
// open rentals bill up to the reference instant passed as $1.
const billedDays = `CEIL(EXTRACT(EPOCH FROM (COALESCE(r.end_date, $1::timestamptz) - r.start_date)) / 86400.0)`

func (r *repo) Overview(ctx context.Context, now time.Time) (*OverviewRow, error) {
	const q = `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE r.end_km IS NULL AND (r.end_date IS NULL OR r.end_date >= $1)),
			COALESCE(SUM(` + billedDays + ` * r.daily_rate)
				FILTER (WHERE r.start_date >= date_trunc('month', $1::timestamptz)), 0),
			COALESCE(AVG(` + billedDays + `), 0)
		FROM rentals r`
	var o OverviewRow
	err := r.db.QueryRowContext(ctx, q, now).Scan(
		&o.TotalRentals, &o.ActiveRentals, &o.MonthlyRevenue, &o.AverageDays,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) FinancialSummary(ctx context.Context, from, now time.Time) (*FinancialSummaryRow, error) {
	const q = `
		SELECT
			COALESCE(SUM(` + billedDays + ` * r.daily_rate), 0),
			COUNT(*),
			COALESCE(AVG(` + billedDays + ` * r.daily_rate), 0)
		FROM rentals r
		WHERE r.start_date >= $2`
	var f FinancialSummaryRow
	err := r.db.QueryRowContext(ctx, q, now, from).Scan(
		&f.TotalRevenue, &f.TotalRentals, &f.AverageTicket,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repo) MonthlyPerformance(ctx context.Context, from, now time.Time) ([]MonthlyRow, error) {
	const q = `
		SELECT
			to_char(date_trunc('month', r.start_date), 'Mon'),
			COALESCE(SUM(` + billedDays + ` * r.daily_rate), 0),
			COUNT(*)
		FROM rentals r
		WHERE r.start_date >= $2
		GROUP BY date_trunc('month', r.start_date)
		ORDER BY date_trunc('month', r.start_date)`
	rows, err := r.db.QueryContext(ctx, q, now, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyRow
	for rows.Next() {
		var m MonthlyRow
		if err := rows.Scan(&m.Month, &m.Revenue, &m.Rentals); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) BikeUsage(ctx context.Context, from, now time.Time, periodDays int) ([]BikeUsageRow, error) {
	const q = `
		SELECT
			r.bike,
			COUNT(*),
			COALESCE(SUM(` + billedDays + ` * r.daily_rate), 0),
			LEAST(100, ROUND(100 * COALESCE(SUM(` + billedDays + `), 0) / $3))::BIGINT
		FROM rentals r
		WHERE r.start_date >= $2
		GROUP BY r.bike
		ORDER BY COUNT(*) DESC, r.bike`
	rows, err := r.db.QueryContext(ctx, q, now, from, periodDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BikeUsageRow
	for rows.Next() {
		var b BikeUsageRow
		if err := rows.Scan(&b.Bike, &b.Rentals, &b.Revenue, &b.Utilization); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) TopCustomers(ctx context.Context, from, now time.Time, limit int) ([]TopCustomerRow, error) {
	const q = `
		SELECT
			r.customer_name,
			r.cpf,
			COUNT(*),
			COALESCE(SUM(` + billedDays + ` * r.daily_rate), 0) AS spent
		FROM rentals r
		WHERE r.start_date >= $2
		GROUP BY r.cpf, r.customer_name
		ORDER BY spent DESC
		LIMIT $3`
	rows, err := r.db.QueryContext(ctx, q, now, from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TopCustomerRow
	for rows.Next() {
		var c TopCustomerRow
		if err := rows.Scan(&c.Name, &c.CPF, &c.Rentals, &c.TotalSpent); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
