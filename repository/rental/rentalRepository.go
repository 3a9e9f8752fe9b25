// repository/rental/rentalRepository.go
package rental

import (
	"context"
	"database/sql"
	"time"

	"github.com/Montardi/percini-moto-manager/model"
)

type Repo interface {
	Insert(ctx context.Context, r *model.Rental) error
	List(ctx context.Context) ([]model.Rental, error)
	ByID(ctx context.Context, id int64) (*model.Rental, error)
	Recent(ctx context.Context, limit int) ([]model.Rental, error)

	// Finish flow runs inside one transaction.
	ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Rental, error)
	SetEndReading(ctx context.Context, tx *sql.Tx, id, endKm int64, endDate time.Time) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const rentalCols = `id, cpf, customer_name, phone, bike, start_date, end_date, start_km, end_km, daily_rate, created_at`

func scanRental(row interface{ Scan(...any) error }, r *model.Rental) error {
	return row.Scan(
		&r.ID, &r.CPF, &r.CustomerName, &r.Phone, &r.Bike,
		&r.StartDate, &r.EndDate, &r.StartKm, &r.EndKm, &r.DailyRate, &r.CreatedAt,
	)
}

func (r *repo) Insert(ctx context.Context, m *model.Rental) error {
	const q = `
		INSERT INTO rentals (cpf, customer_name, phone, bike, start_date, end_date, start_km, daily_rate)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		m.CPF, m.CustomerName, m.Phone, m.Bike, m.StartDate, m.EndDate, m.StartKm, m.DailyRate,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *repo) List(ctx context.Context) ([]model.Rental, error) {
	const q = `
		SELECT ` + rentalCols + `
		FROM rentals
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rental
	for rows.Next() {
		var m model.Rental
		if err := scanRental(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Rental, error) {
	const q = `
		SELECT ` + rentalCols + `
		FROM rentals
		WHERE id = $1`
	var m model.Rental
	if err := scanRental(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) Recent(ctx context.Context, limit int) ([]model.Rental, error) {
	const q = `
		SELECT ` + rentalCols + `
		FROM rentals
		ORDER BY created_at DESC, id DESC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Rental
	for rows.Next() {
		var m model.Rental
		if err := scanRental(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Rental, error) {
	const q = `
		SELECT ` + rentalCols + `
		FROM rentals
		WHERE id = $1
		FOR UPDATE`
	var m model.Rental
	if err := scanRental(tx.QueryRowContext(ctx, q, id), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repo) SetEndReading(ctx context.Context, tx *sql.Tx, id, endKm int64, endDate time.Time) error {
	// keeps an end date agreed up front; stamps one otherwise
	const q = `
		UPDATE rentals
		SET end_km = $2,
			end_date = COALESCE(end_date, $3)
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, endKm, endDate)
	return err
}
