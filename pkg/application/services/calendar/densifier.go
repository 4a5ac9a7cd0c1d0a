package calendar

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/demandcast/demandcast/pkg/domain/entities"
)

// Densify converts one store's irregular daily demand into a dense series
// covering every calendar day of the range in ascending order.
//
// Days with no aggregated row become explicit missing markers; with
// ZeroAsMissing set, a summed value of exactly zero is rewritten to missing as
// well (a store recording zero consumption most likely failed to report).
// LeadingTruncation drops the first k calendar days of the range entirely.
func Densify(demand []*entities.DailyDemand, storeID entities.StoreID, rng entities.DateRange, cfg entities.StoreSeriesConfig) (*entities.StoreSeries, error) {
	if cfg.LeadingTruncation < 0 {
		return nil, fmt.Errorf("leading truncation cannot be negative, got %d", cfg.LeadingTruncation)
	}
	if cfg.LeadingTruncation >= rng.Days() {
		return nil, fmt.Errorf("leading truncation %d consumes the whole %d-day range", cfg.LeadingTruncation, rng.Days())
	}

	byDay := make(map[time.Time]decimal.Decimal, len(demand))
	for _, d := range demand {
		if d.StoreID != storeID {
			continue
		}
		day := entities.Day(d.Date)
		// Duplicate days per store would violate the aggregator's contract;
		// fold them rather than silently keeping the last.
		byDay[day] = byDay[day].Add(d.Total)
	}

	start := rng.Start.AddDate(0, 0, cfg.LeadingTruncation)
	points := make([]entities.SeriesPoint, 0, rng.Days()-cfg.LeadingTruncation)

	for day := start; !day.After(rng.End); day = day.AddDate(0, 0, 1) {
		value, observed := byDay[day]
		if !observed {
			points = append(points, entities.SeriesPoint{Date: day, Missing: true})
			continue
		}
		if cfg.ZeroAsMissing && value.IsZero() {
			points = append(points, entities.SeriesPoint{Date: day, Missing: true})
			continue
		}
		points = append(points, entities.SeriesPoint{Date: day, Value: value})
	}

	return &entities.StoreSeries{StoreID: storeID, Points: points}, nil
}

// BuildMatrix densifies every requested store over the same range and
// assembles the dense calendar matrix. Per-store configuration comes from
// configs; stores absent from the map use the zero-value policy.
func BuildMatrix(demand []*entities.DailyDemand, stores []entities.StoreID, rng entities.DateRange, configs map[entities.StoreID]entities.StoreSeriesConfig) (*entities.DemandMatrix, error) {
	matrix := &entities.DemandMatrix{
		Range:  rng,
		Stores: append([]entities.StoreID(nil), stores...),
		Series: make(map[entities.StoreID]*entities.StoreSeries, len(stores)),
	}

	for _, storeID := range stores {
		series, err := Densify(demand, storeID, rng, configs[storeID])
		if err != nil {
			return nil, fmt.Errorf("failed to densify store %s: %w", storeID, err)
		}
		matrix.Series[storeID] = series
	}

	return matrix, nil
}
