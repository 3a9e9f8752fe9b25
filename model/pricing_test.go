// model/pricing_test.go
package model

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDaysAndValue_ClosedRental(t *testing.T) {
	end := date("2024-01-18")
	r := Rental{StartDate: date("2024-01-15"), EndDate: &end, DailyRate: 180}

	now := date("2024-06-01") // must not matter for a closed rental
	if got := r.Days(now); got != 3 {
		t.Fatalf("Days = %d; want 3", got)
	}
	if got := r.TotalValue(now); got != 540 {
		t.Fatalf("TotalValue = %v; want 540", got)
	}
}

func TestDays_OpenRentalUsesNow(t *testing.T) {
	r := Rental{StartDate: date("2024-01-16"), DailyRate: 170}
	now := date("2024-01-16").Add(30 * time.Hour)
	if got := r.Days(now); got != 2 {
		t.Fatalf("Days = %d; want 2 (30h rounds up)", got)
	}
}

func TestDays_SameInstantBillsZero(t *testing.T) {
	start := date("2024-01-15")
	end := start
	r := Rental{StartDate: start, EndDate: &end, DailyRate: 180}
	if got := r.Days(time.Now()); got != 0 {
		t.Fatalf("Days = %d; want 0 for same-instant rental", got)
	}
}

func TestKmTraveled(t *testing.T) {
	endKm := int64(15890)
	r := Rental{StartKm: 15420, EndKm: &endKm}
	got := r.KmTraveled()
	if got == nil || *got != 470 {
		t.Fatalf("KmTraveled = %v; want 470", got)
	}

	open := Rental{StartKm: 12500}
	if open.KmTraveled() != nil {
		t.Fatal("KmTraveled should be nil without an end reading")
	}
}

func TestDeriveStatus(t *testing.T) {
	now := date("2024-01-20")
	endKm := int64(9120)
	endPast := date("2024-01-19")
	endFuture := date("2024-01-25")

	cases := []struct {
		name string
		r    Rental
		want RentalStatus
	}{
		{"completed when end km recorded", Rental{EndKm: &endKm, EndDate: &endPast}, RentalCompleted},
		{"overdue when end date passed without end km", Rental{EndDate: &endPast}, RentalOverdue},
		{"active while end date in the future", Rental{EndDate: &endFuture}, RentalActive},
		{"active while open-ended", Rental{}, RentalActive},
	}
	for _, tc := range cases {
		if got := tc.r.DeriveStatus(now); got != tc.want {
			t.Errorf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
}

func TestDerivations_Idempotent(t *testing.T) {
	end := date("2024-01-16")
	endKm := int64(9120)
	r := Rental{StartDate: date("2024-01-14"), EndDate: &end, StartKm: 8730, EndKm: &endKm, DailyRate: 160}
	now := date("2024-02-01")

	if r.Days(now) != r.Days(now) || r.TotalValue(now) != r.TotalValue(now) {
		t.Fatal("Days/TotalValue not stable across calls")
	}
	a, b := r.KmTraveled(), r.KmTraveled()
	if *a != *b {
		t.Fatal("KmTraveled not stable across calls")
	}
}
