package bikerepo

import (
	"context"
	"database/sql"

	"github.com/Montardi/percini-moto-manager/model"
)

type Repo interface {
	List(ctx context.Context) ([]model.Bike, error)
	RateFor(ctx context.Context, bikeModel string) (float64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) List(ctx context.Context) ([]model.Bike, error) {
	const q = `
		SELECT id, model, daily_rate
		FROM bikes
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Bike
	for rows.Next() {
		var b model.Bike
		if err := rows.Scan(&b.ID, &b.Model, &b.DailyRate); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) RateFor(ctx context.Context, bikeModel string) (float64, error) {
	const q = `
		SELECT daily_rate
		FROM bikes
		WHERE model = $1`
	var rate float64
	err := r.db.QueryRowContext(ctx, q, bikeModel).Scan(&rate)
	return rate, err
}
