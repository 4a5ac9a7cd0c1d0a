package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is an inclusive calendar-day range
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange creates a validated DateRange, normalized to calendar days
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, fmt.Errorf("date range bounds cannot be zero")
	}
	start, end = Day(start), Day(end)
	if start.After(end) {
		return DateRange{}, fmt.Errorf("range start %s is after end %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return DateRange{Start: start, End: end}, nil
}

// Days returns the number of calendar days in the range
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Contains reports whether the given day falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// SeriesPoint is one calendar day of a store's demand series. Missing marks a
// day with no observed value; Value is zero-valued in that case and must not
// be read.
type SeriesPoint struct {
	Date    time.Time
	Value   decimal.Decimal
	Missing bool
}

// StoreSeries is a dense fixed-frequency demand series for one store: one
// point per calendar day, ascending, no gaps.
type StoreSeries struct {
	StoreID StoreID
	Points  []SeriesPoint
}

// Observed returns the number of non-missing points
func (s *StoreSeries) Observed() int {
	n := 0
	for _, p := range s.Points {
		if !p.Missing {
			n++
		}
	}
	return n
}

// StoreSeriesConfig holds the per-store densification policy. Supplied by the
// caller; never hardcoded per store.
type StoreSeriesConfig struct {
	// LeadingTruncation drops the first k calendar days of the range for
	// stores with a late activation or unreliable ramp-up period.
	LeadingTruncation int
	// ZeroAsMissing rewrites an aggregated value of exactly zero to missing,
	// treating a zero-consumption day as unreported rather than observed.
	ZeroAsMissing bool
}

// DemandMatrix is the dense per-store, per-day demand table over a full
// observation window. Rows cover every calendar day in Range; a store whose
// series was lead-truncated reads as missing before its series start.
type DemandMatrix struct {
	Range  DateRange
	Stores []StoreID
	Series map[StoreID]*StoreSeries
}

// Value returns the matrix cell for a store and day. The second return is
// false when the cell is missing (gap, zero-as-missing, truncated lead, or a
// day outside the store's series).
func (m *DemandMatrix) Value(store StoreID, date time.Time) (decimal.Decimal, bool) {
	series, ok := m.Series[store]
	if !ok || len(series.Points) == 0 {
		return decimal.Zero, false
	}
	d := Day(date)
	first := series.Points[0].Date
	idx := int(d.Sub(first).Hours() / 24)
	if idx < 0 || idx >= len(series.Points) {
		return decimal.Zero, false
	}
	p := series.Points[idx]
	if p.Missing {
		return decimal.Zero, false
	}
	return p.Value, true
}
