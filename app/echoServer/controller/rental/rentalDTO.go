package rental

type CreateRentalReq struct {
	CPF          string   `json:"cpf" validate:"required"`
	CustomerName string   `json:"customer_name" validate:"required"`
	Phone        string   `json:"phone"`
	Bike         string   `json:"bike" validate:"required"`
	StartDate    string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	StartKm      *int64   `json:"start_km" validate:"required,gte=0"`
	DailyRate    *float64 `json:"daily_rate" validate:"omitempty,gte=0"`
}

// EndKm stays a pointer so an absent reading reaches the service and maps to
// the same invalid-reading error as an undershot one.
type FinishRentalReq struct {
	EndKm *int64 `json:"end_km"`
}
