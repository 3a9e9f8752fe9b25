package bikesvc

import (
	"context"
	"errors"

	"github.com/Montardi/percini-moto-manager/model"
)

type Bike = model.Bike

type Repo interface {
	List(ctx context.Context) ([]Bike, error)
	RateFor(ctx context.Context, bikeModel string) (float64, error)
}

type Service interface {
	List(ctx context.Context) ([]Bike, error)
	RateFor(ctx context.Context, bikeModel string) (float64, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]Bike, error) { return s.r.List(ctx) }

func (s *service) RateFor(ctx context.Context, bikeModel string) (float64, error) {
	if bikeModel == "" {
		return 0, errors.New("empty bike model")
	}
	return s.r.RateFor(ctx, bikeModel)
}
