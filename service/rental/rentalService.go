package rental

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Montardi/percini-moto-manager/model"
	"github.com/Montardi/percini-moto-manager/util/format"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrBikeNotFound    ErrCode = "BIKE_NOT_FOUND"
	ErrInvalidEndKm    ErrCode = "INVALID_END_KM"
	ErrAlreadyFinished ErrCode = "ALREADY_FINISHED"
	ErrInvalidPeriod   ErrCode = "INVALID_PERIOD"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts the error code, or "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// View is a rental plus its derived display values.
type View struct {
	model.Rental
	Status     model.RentalStatus `json:"status"`
	DaysRented int                `json:"days_rented"`
	TotalValue float64            `json:"total_value"`
	KmTraveled *int64             `json:"km_traveled,omitempty"`
}

func toView(r model.Rental, now time.Time) View {
	return View{
		Rental:     r,
		Status:     r.DeriveStatus(now),
		DaysRented: r.Days(now),
		TotalValue: r.TotalValue(now),
		KmTraveled: r.KmTraveled(),
	}
}

type CreateInput struct {
	CPF          string
	CustomerName string
	Phone        string
	Bike         string
	StartDate    time.Time
	EndDate      *time.Time
	StartKm      int64
	DailyRate    *float64 // nil = use the catalog rate
}

type Repo interface {
	Insert(ctx context.Context, r *model.Rental) error
	List(ctx context.Context) ([]model.Rental, error)
	ByID(ctx context.Context, id int64) (*model.Rental, error)
	Recent(ctx context.Context, limit int) ([]model.Rental, error)
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Rental, error)
	SetEndReading(ctx context.Context, tx *sql.Tx, id, endKm int64, endDate time.Time) error
}

type BikeRepo interface {
	RateFor(ctx context.Context, bikeModel string) (float64, error)
}

type Service interface {
	// Create registers a rental; the daily rate falls back to the catalog
	// rate of the chosen bike.
	Create(ctx context.Context, in CreateInput) (*View, error)

	// List returns rentals matching the search term and status filter.
	List(ctx context.Context, search, status string) ([]View, error)

	// Detail returns one rental with derived billing values.
	Detail(ctx context.Context, id int64) (*View, error)

	// Finish records the end odometer reading and closes the rental.
	Finish(ctx context.Context, id int64, endKm *int64) (*View, error)

	// Recent returns the latest rentals for the dashboard overview.
	Recent(ctx context.Context, limit int) ([]View, error)
}

type service struct {
	db  *sql.DB
	r   Repo
	b   BikeRepo
	now func() time.Time
}

func New(db *sql.DB, r Repo, b BikeRepo) Service {
	return &service{db: db, r: r, b: b, now: time.Now}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*View, error) {
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return nil, makeErr(ErrInvalidPeriod)
	}

	// the catalog lookup doubles as the bike-exists check, so it runs even
	// when the operator overrides the rate
	rate, err := s.b.RateFor(ctx, in.Bike)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrBikeNotFound)
		}
		return nil, err
	}
	if in.DailyRate != nil {
		rate = *in.DailyRate
	}

	m := &model.Rental{
		CPF:          format.CPF(in.CPF),
		CustomerName: strings.TrimSpace(in.CustomerName),
		Phone:        format.Phone(in.Phone),
		Bike:         in.Bike,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		StartKm:      in.StartKm,
		DailyRate:    rate,
	}
	if err := s.r.Insert(ctx, m); err != nil {
		return nil, err
	}
	v := toView(*m, s.now())
	return &v, nil
}

// Matches applies the list filter: case-insensitive substring on customer
// name and bike, raw substring on the masked tax id, intersected with an
// exact status filter ("all" or empty passes everything).
func Matches(r model.Rental, search, status string, now time.Time) bool {
	if search != "" {
		q := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(r.CustomerName), q) &&
			!strings.Contains(r.CPF, search) &&
			!strings.Contains(strings.ToLower(r.Bike), q) {
			return false
		}
	}
	if status != "" && status != "all" && string(r.DeriveStatus(now)) != status {
		return false
	}
	return true
}

func (s *service) List(ctx context.Context, search, status string) ([]View, error) {
	rows, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]View, 0, len(rows))
	for _, r := range rows {
		if Matches(r, search, status, now) {
			out = append(out, toView(r, now))
		}
	}
	return out, nil
}

func (s *service) Detail(ctx context.Context, id int64) (*View, error) {
	m, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	v := toView(*m, s.now())
	return &v, nil
}

// ValidateFinish is the finish-rental guard: the entered reading must exist
// and exceed the start odometer, and the rental must still be open.
func ValidateFinish(r model.Rental, endKm *int64) error {
	if r.EndKm != nil {
		return makeErr(ErrAlreadyFinished)
	}
	if endKm == nil || *endKm <= r.StartKm {
		return makeErr(ErrInvalidEndKm)
	}
	return nil
}

func (s *service) Finish(ctx context.Context, id int64, endKm *int64) (_ *View, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	m, err := s.r.ByIDForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	if err = ValidateFinish(*m, endKm); err != nil {
		return nil, err
	}

	now := s.now()
	if err = s.r.SetEndReading(ctx, tx, id, *endKm, now); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	m.EndKm = endKm
	if m.EndDate == nil {
		m.EndDate = &now
	}
	v := toView(*m, now)
	return &v, nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]View, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.r.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]View, 0, len(rows))
	for _, r := range rows {
		out = append(out, toView(r, now))
	}
	return out, nil
}
