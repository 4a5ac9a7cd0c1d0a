package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateRange_Validation(t *testing.T) {
	r, err := NewDateRange(date(2023, 3, 1), date(2023, 3, 10))
	if err != nil {
		t.Fatalf("Expected valid range creation to succeed: %v", err)
	}
	if r.Days() != 10 {
		t.Errorf("Expected 10 days, got %d", r.Days())
	}

	if _, err := NewDateRange(date(2023, 3, 10), date(2023, 3, 1)); err == nil {
		t.Error("Expected inverted range to be rejected")
	}
	if _, err := NewDateRange(time.Time{}, date(2023, 3, 1)); err == nil {
		t.Error("Expected zero start to be rejected")
	}
}

func TestDateRange_NormalizesTimestamps(t *testing.T) {
	// Intraday timestamps collapse to calendar days.
	r, err := NewDateRange(
		time.Date(2023, 3, 1, 14, 30, 0, 0, time.UTC),
		time.Date(2023, 3, 1, 23, 59, 59, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("NewDateRange failed: %v", err)
	}
	if r.Days() != 1 {
		t.Errorf("Expected single-day range, got %d days", r.Days())
	}
	if !r.Contains(date(2023, 3, 1)) {
		t.Error("Expected range to contain its own day")
	}
}

func TestDemandMatrix_Value(t *testing.T) {
	series := &StoreSeries{
		StoreID: "S1",
		Points: []SeriesPoint{
			{Date: date(2023, 3, 2), Value: decimal.NewFromInt(5)},
			{Date: date(2023, 3, 3), Missing: true},
			{Date: date(2023, 3, 4), Value: decimal.NewFromInt(7)},
		},
	}
	rng, _ := NewDateRange(date(2023, 3, 1), date(2023, 3, 4))
	matrix := &DemandMatrix{
		Range:  rng,
		Stores: []StoreID{"S1"},
		Series: map[StoreID]*StoreSeries{"S1": series},
	}

	if v, ok := matrix.Value("S1", date(2023, 3, 2)); !ok || !v.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Expected observed value 5 on Mar 2, got %s (ok=%v)", v, ok)
	}
	if _, ok := matrix.Value("S1", date(2023, 3, 3)); ok {
		t.Error("Expected Mar 3 to be missing")
	}
	// Truncated lead day reads as missing.
	if _, ok := matrix.Value("S1", date(2023, 3, 1)); ok {
		t.Error("Expected day before series start to be missing")
	}
	if _, ok := matrix.Value("S2", date(2023, 3, 2)); ok {
		t.Error("Expected unknown store to read as missing")
	}
}

func TestStoreSeries_Observed(t *testing.T) {
	series := &StoreSeries{
		StoreID: "S1",
		Points: []SeriesPoint{
			{Date: date(2023, 3, 1), Value: decimal.NewFromInt(1)},
			{Date: date(2023, 3, 2), Missing: true},
			{Date: date(2023, 3, 3), Value: decimal.Zero},
		},
	}
	if got := series.Observed(); got != 2 {
		t.Errorf("Expected 2 observed points, got %d", got)
	}
}
