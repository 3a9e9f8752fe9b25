// model/rental.go
package model

import "time"

type RentalStatus string

const (
	RentalActive    RentalStatus = "active"
	RentalCompleted RentalStatus = "completed"
	RentalOverdue   RentalStatus = "overdue"
)

// Rental is one time-boxed lease of a bike to a customer. Status is never
// stored; it is derived from the odometer and date fields (see pricing.go).
type Rental struct {
	ID           int64      `json:"id"`
	CPF          string     `json:"cpf"`
	CustomerName string     `json:"customer_name"`
	Phone        string     `json:"phone,omitempty"`
	Bike         string     `json:"bike"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	StartKm      int64      `json:"start_km"`
	EndKm        *int64     `json:"end_km,omitempty"`
	DailyRate    float64    `json:"daily_rate"`
	CreatedAt    time.Time  `json:"created_at"`
}
