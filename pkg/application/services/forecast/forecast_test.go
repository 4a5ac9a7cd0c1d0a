package forecast

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demandcast/demandcast/pkg/domain/entities"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func denseSeries(storeID entities.StoreID, start time.Time, values []float64, missing map[int]bool) *entities.StoreSeries {
	points := make([]entities.SeriesPoint, len(values))
	for i := range values {
		points[i] = entities.SeriesPoint{Date: start.AddDate(0, 0, i)}
		if missing[i] {
			points[i].Missing = true
		} else {
			points[i].Value = decimal.NewFromFloat(values[i])
		}
	}
	return &entities.StoreSeries{StoreID: storeID, Points: points}
}

func TestSeasonalNaive(t *testing.T) {
	train := []float64{1, 2, 3, 4, 5, 6, 7, 10, 20, 30, 40, 50, 60, 70}

	out, err := seasonalNaive(train, 14)
	require.NoError(t, err)
	require.Len(t, out, 14)

	// The last observed week repeats.
	want := []float64{10, 20, 30, 40, 50, 60, 70}
	for i := 0; i < 14; i++ {
		assert.Equal(t, want[i%7], out[i], "step %d", i)
	}
}

func TestSeasonalNaive_ShortSeries(t *testing.T) {
	out, err := seasonalNaive([]float64{4, 9}, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 9, 9}, out)

	_, err = seasonalNaive(nil, 3)
	assert.Error(t, err)
}

func TestInterpolate(t *testing.T) {
	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)

	series := denseSeries("S1", start, []float64{2, 0, 0, 8, 0, 0}, map[int]bool{1: true, 2: true, 4: true, 5: true})
	values := interpolate(series.Points)

	// Interior gap filled linearly: 2 → 4 → 6 → 8.
	assert.InDelta(t, 4.0, values[1], 1e-9)
	assert.InDelta(t, 6.0, values[2], 1e-9)
	// Trailing gap held flat at the last observation.
	assert.InDelta(t, 8.0, values[4], 1e-9)
	assert.InDelta(t, 8.0, values[5], 1e-9)
}

func TestInterpolate_LeadingGap(t *testing.T) {
	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	series := denseSeries("S1", start, []float64{0, 0, 5, 7}, map[int]bool{0: true, 1: true})

	values := interpolate(series.Points)
	assert.InDelta(t, 5.0, values[0], 1e-9)
	assert.InDelta(t, 5.0, values[1], 1e-9)
	assert.InDelta(t, 7.0, values[3], 1e-9)
}

func TestScore(t *testing.T) {
	rmse, mae := score([]float64{1, 2, 3}, []float64{1, 2, 3})
	assert.Zero(t, rmse)
	assert.Zero(t, mae)

	rmse, mae = score([]float64{0, 0}, []float64{3, 4})
	assert.InDelta(t, math.Sqrt(12.5), rmse, 1e-9)
	assert.InDelta(t, 3.5, mae, 1e-9)
}

func TestForecastStore_ShortSeriesUsesBaseline(t *testing.T) {
	// 14 observed days is too short for the ARIMA candidates, so the
	// seasonal-naive baseline must win deterministically.
	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	values := []float64{5, 6, 7, 8, 9, 10, 11, 5, 6, 7, 8, 9, 10, 11}
	series := denseSeries("S1", start, values, nil)

	svc := NewService(14, quietLogger())
	fc, err := svc.ForecastStore(series)
	require.NoError(t, err)

	assert.Equal(t, "seasonal-naive", fc.Model)
	assert.Len(t, fc.Values, 14)
	assert.True(t, fc.Start.Equal(start.AddDate(0, 0, 14)), "forecast starts the day after the window")
	for _, v := range fc.Values {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestForecastStore_EmptySeries(t *testing.T) {
	svc := NewService(14, quietLogger())

	_, err := svc.ForecastStore(nil)
	assert.Error(t, err)

	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	allMissing := denseSeries("S1", start, make([]float64, 5), map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true})
	_, err = svc.ForecastStore(allMissing)
	assert.Error(t, err)
}

func TestForecastAll_CoversEveryStore(t *testing.T) {
	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	values := []float64{5, 6, 7, 8, 9, 10, 11, 5, 6, 7, 8, 9, 10, 11}

	rng, err := entities.NewDateRange(start, start.AddDate(0, 0, 13))
	require.NoError(t, err)
	matrix := &entities.DemandMatrix{
		Range:  rng,
		Stores: []entities.StoreID{"S1", "S2"},
		Series: map[entities.StoreID]*entities.StoreSeries{
			"S1": denseSeries("S1", start, values, nil),
			"S2": denseSeries("S2", start, values, map[int]bool{3: true}),
		},
	}

	svc := NewService(14, quietLogger())
	forecasts, err := svc.ForecastAll(matrix)
	require.NoError(t, err)
	require.Len(t, forecasts, 2)
	assert.Equal(t, entities.StoreID("S1"), forecasts[0].StoreID)
	assert.Equal(t, entities.StoreID("S2"), forecasts[1].StoreID)
}

func TestForecastAll_SkipsStoreWithNoObservations(t *testing.T) {
	start := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	values := []float64{5, 6, 7, 8, 9, 10, 11, 5, 6, 7, 8, 9, 10, 11}

	allMissing := map[int]bool{}
	for i := range values {
		allMissing[i] = true
	}

	rng, err := entities.NewDateRange(start, start.AddDate(0, 0, 13))
	require.NoError(t, err)
	matrix := &entities.DemandMatrix{
		Range:  rng,
		Stores: []entities.StoreID{"S1", "S2", "S3"},
		Series: map[entities.StoreID]*entities.StoreSeries{
			"S1": denseSeries("S1", start, values, nil),
			"S2": denseSeries("S2", start, values, allMissing),
			// S3 absent from the map entirely
		},
	}

	svc := NewService(14, quietLogger())
	forecasts, err := svc.ForecastAll(matrix)
	require.NoError(t, err, "a store without observations must not abort the run")
	require.Len(t, forecasts, 1)
	assert.Equal(t, entities.StoreID("S1"), forecasts[0].StoreID)
}
