package report

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	reportrepo "github.com/Montardi/percini-moto-manager/repository/report"
	rentalsvc "github.com/Montardi/percini-moto-manager/service/rental"

	"github.com/redis/go-redis/v9"
)

// errors used by controllers

type ErrCode string

const ErrInvalidPeriod ErrCode = "INVALID_PERIOD"

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }

// Code extracts the error code, or "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const cacheTTL = 60 * time.Second

type Overview struct {
	reportrepo.OverviewRow
	RecentRentals []rentalsvc.View `json:"recent_rentals"`
}

type Financial struct {
	reportrepo.FinancialSummaryRow
	Monthly []reportrepo.MonthlyRow `json:"monthly"`
}

type Service interface {
	Overview(ctx context.Context) (*Overview, error)
	Financial(ctx context.Context, period string) (*Financial, error)
	Bikes(ctx context.Context, period string) ([]reportrepo.BikeUsageRow, error)
	Customers(ctx context.Context, period string) ([]reportrepo.TopCustomerRow, error)
}

type service struct {
	r       reportrepo.Repo
	rentals rentalsvc.Service
	rdb     *redis.Client // nil disables caching
	now     func() time.Time
}

func New(r reportrepo.Repo, rentals rentalsvc.Service, rdb *redis.Client) Service {
	return &service{r: r, rentals: rentals, rdb: rdb, now: time.Now}
}

// periodStart maps the report period selector to the lower bound of a rolling
// window ending at now. An empty selector means month.
func periodStart(now time.Time, period string) (time.Time, error) {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "", "month":
		return now.AddDate(0, -1, 0), nil
	case "quarter":
		return now.AddDate(0, -3, 0), nil
	case "year":
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, codedError{code: ErrInvalidPeriod}
	}
}

// financialCacheKey folds the empty selector into "month" so both spellings
// share one cache entry.
func financialCacheKey(period string) string {
	if period == "" {
		period = "month"
	}
	return "reports:financial:" + period
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	var out Overview
	if s.cacheGet(ctx, "reports:overview", &out) {
		return &out, nil
	}

	row, err := s.r.Overview(ctx, s.now())
	if err != nil {
		return nil, err
	}
	recent, err := s.rentals.Recent(ctx, 5)
	if err != nil {
		return nil, err
	}
	out = Overview{OverviewRow: *row, RecentRentals: recent}

	s.cacheSet(ctx, "reports:overview", out)
	return &out, nil
}

func (s *service) Financial(ctx context.Context, period string) (*Financial, error) {
	now := s.now()
	from, err := periodStart(now, period)
	if err != nil {
		return nil, err
	}

	key := financialCacheKey(period)
	var out Financial
	if s.cacheGet(ctx, key, &out) {
		return &out, nil
	}

	summary, err := s.r.FinancialSummary(ctx, from, now)
	if err != nil {
		return nil, err
	}
	monthly, err := s.r.MonthlyPerformance(ctx, from, now)
	if err != nil {
		return nil, err
	}
	out = Financial{FinancialSummaryRow: *summary, Monthly: monthly}

	s.cacheSet(ctx, key, out)
	return &out, nil
}

func (s *service) Bikes(ctx context.Context, period string) ([]reportrepo.BikeUsageRow, error) {
	now := s.now()
	from, err := periodStart(now, period)
	if err != nil {
		return nil, err
	}
	periodDays := int(now.Sub(from).Hours() / 24)
	if periodDays < 1 {
		periodDays = 1
	}
	return s.r.BikeUsage(ctx, from, now, periodDays)
}

func (s *service) Customers(ctx context.Context, period string) ([]reportrepo.TopCustomerRow, error) {
	now := s.now()
	from, err := periodStart(now, period)
	if err != nil {
		return nil, err
	}
	return s.r.TopCustomers(ctx, from, now, 5)
}

// cache-aside over redis; a miss or a redis outage just recomputes

func (s *service) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.rdb == nil {
		return false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false
	}
	return true
}

func (s *service) cacheSet(ctx context.Context, key string, v any) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		slog.Warn("report cache set failed", "key", key, "err", err)
	}
}
