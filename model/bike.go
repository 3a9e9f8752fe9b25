// model/bike.go
package model

type Bike struct {
	ID        int64   `json:"id"`
	Model     string  `json:"model"`
	DailyRate float64 `json:"daily_rate"`
}
