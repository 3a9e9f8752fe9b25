// model/pricing.go
//
// Pure billing and lifecycle derivations. Nothing here touches storage and
// every value is recomputed on read; rentals only persist raw fields.
package model

import (
	"math"
	"time"
)

// Days is the billed day count: ceiling of the elapsed time between the start
// date and the end date (or now, while the rental is open). A rental that
// starts and ends on the same instant bills zero days; no one-day floor is
// applied.
func (r Rental) Days(now time.Time) int {
	end := now
	if r.EndDate != nil {
		end = *r.EndDate
	}
	elapsed := end.Sub(r.StartDate)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	return int(math.Ceil(elapsed.Hours() / 24))
}

// TotalValue is days × daily rate.
func (r Rental) TotalValue(now time.Time) float64 {
	return float64(r.Days(now)) * r.DailyRate
}

// KmTraveled returns end km − start km, or nil while no end reading exists.
func (r Rental) KmTraveled() *int64 {
	if r.EndKm == nil {
		return nil
	}
	v := *r.EndKm - r.StartKm
	return &v
}

// DeriveStatus applies the single status rule: completed once an end odometer
// reading is recorded, overdue when the agreed end date passed without one,
// active otherwise.
func (r Rental) DeriveStatus(now time.Time) RentalStatus {
	if r.EndKm != nil {
		return RentalCompleted
	}
	if r.EndDate != nil && r.EndDate.Before(now) {
		return RentalOverdue
	}
	return RentalActive
}
