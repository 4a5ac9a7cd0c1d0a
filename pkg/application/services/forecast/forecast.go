package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/sartorproj/goarima/autoarima"
	"github.com/sartorproj/goarima/timeseries"
	"github.com/sirupsen/logrus"

	"github.com/demandcast/demandcast/pkg/domain/entities"
)

// SeasonalPeriod is the fixed weekly frequency of the demand series
const SeasonalPeriod = 7

// DefaultHorizon is the forecast horizon in days
const DefaultHorizon = 14

// minTrainingDays is the shortest series the ARIMA candidates accept; below
// it only the seasonal-naive baseline runs
const minTrainingDays = 4 * SeasonalPeriod

// StoreForecast is the selected model's point forecast for one store
type StoreForecast struct {
	StoreID entities.StoreID `json:"store_id"`
	Start   time.Time        `json:"start"`
	Values  []float64        `json:"values"`
	Model   string           `json:"model"`
	RMSE    float64          `json:"rmse"`
	MAE     float64          `json:"mae"`
}

// Service fits candidate models per store and selects the best by holdout
// error. Model estimation itself is delegated to the forecasting library;
// this service only prepares input, splits, scores and selects.
type Service struct {
	horizon int
	logger  *logrus.Logger
}

// NewService creates a forecast service with the given horizon
func NewService(horizon int, logger *logrus.Logger) *Service {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{horizon: horizon, logger: logger}
}

// ForecastAll produces one StoreForecast per matrix store, keyed to the day
// after the observation window
func (s *Service) ForecastAll(matrix *entities.DemandMatrix) ([]*StoreForecast, error) {
	forecasts := make([]*StoreForecast, 0, len(matrix.Stores))
	for _, storeID := range matrix.Stores {
		series := matrix.Series[storeID]
		if series == nil || len(series.Points) == 0 || series.Observed() == 0 {
			// A store with nothing observed in the window cannot be fit;
			// exclude it without discarding the other stores' forecasts.
			s.logger.WithField("store", storeID).Warn("no observed days in window, store skipped")
			continue
		}
		fc, err := s.ForecastStore(series)
		if err != nil {
			return nil, fmt.Errorf("failed to forecast store %s: %w", storeID, err)
		}
		forecasts = append(forecasts, fc)
	}
	return forecasts, nil
}

// ForecastStore selects and runs the best model for one store's series
func (s *Service) ForecastStore(series *entities.StoreSeries) (*StoreForecast, error) {
	if series == nil || len(series.Points) == 0 {
		return nil, fmt.Errorf("empty series")
	}
	if series.Observed() == 0 {
		return nil, fmt.Errorf("store %s has no observed days", series.StoreID)
	}

	values := interpolate(series.Points)
	holdout := s.horizon
	if holdout > len(values)/3 {
		holdout = len(values) / 3
	}
	if holdout < 1 {
		holdout = 1
	}
	train, test := values[:len(values)-holdout], values[len(values)-holdout:]

	winner := s.selectModel(series.StoreID, train, test)

	// Refit the winner on the full series for the final horizon.
	final, err := winner.forecast(values, s.horizon)
	if err != nil {
		return nil, fmt.Errorf("store %s: final %s fit failed: %w", series.StoreID, winner.name, err)
	}
	for i, v := range final {
		if v < 0 || math.IsNaN(v) {
			final[i] = 0
		}
	}

	last := series.Points[len(series.Points)-1].Date
	return &StoreForecast{
		StoreID: series.StoreID,
		Start:   last.AddDate(0, 0, 1),
		Values:  final,
		Model:   winner.name,
		RMSE:    winner.rmse,
		MAE:     winner.mae,
	}, nil
}

// candidate is one fitted model family in the holdout tournament
type candidate struct {
	name     string
	forecast func(train []float64, steps int) ([]float64, error)
	rmse     float64
	mae      float64
}

// selectModel scores each candidate on the holdout tail and returns the one
// with the lowest RMSE. Ties keep the earlier candidate; a candidate whose
// fit fails is skipped. The seasonal-naive baseline always succeeds, so a
// winner always exists.
func (s *Service) selectModel(storeID entities.StoreID, train, test []float64) *candidate {
	candidates := []*candidate{
		{name: "seasonal-naive", forecast: seasonalNaive},
	}
	if len(train) >= minTrainingDays {
		candidates = append(candidates,
			&candidate{name: "auto-arima", forecast: autoARIMA(false)},
			&candidate{name: "auto-sarima", forecast: autoARIMA(true)},
		)
	}

	var winner *candidate
	for _, c := range candidates {
		predicted, err := c.forecast(train, len(test))
		if err != nil || len(predicted) < len(test) {
			s.logger.WithFields(logrus.Fields{
				"store": storeID,
				"model": c.name,
			}).WithError(err).Debug("candidate skipped")
			continue
		}
		c.rmse, c.mae = score(test, predicted[:len(test)])
		if math.IsNaN(c.rmse) {
			continue
		}
		if winner == nil || c.rmse < winner.rmse {
			winner = c
		}
	}
	if winner == nil {
		// Unreachable with a sane series; keep the baseline as a hard floor.
		winner = candidates[0]
		winner.rmse, winner.mae = math.NaN(), math.NaN()
	}

	s.logger.WithFields(logrus.Fields{
		"store": storeID,
		"model": winner.name,
		"rmse":  winner.rmse,
	}).Info("forecast model selected")
	return winner
}

// autoARIMA wraps the library's automatic model search as a candidate
func autoARIMA(seasonal bool) func(train []float64, steps int) ([]float64, error) {
	return func(train []float64, steps int) ([]float64, error) {
		cfg := autoarima.DefaultConfig()
		cfg.MaxP, cfg.MaxQ = 3, 3
		if seasonal {
			cfg.Seasonal = true
			cfg.SeasonalM = SeasonalPeriod
		}
		result, err := autoarima.AutoARIMA(toSeries(train), cfg)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, fmt.Errorf("model search returned no model")
		}
		return result.Predict(steps)
	}
}

// seasonalNaive repeats the last observed week
func seasonalNaive(train []float64, steps int) ([]float64, error) {
	if len(train) == 0 {
		return nil, fmt.Errorf("empty training series")
	}
	out := make([]float64, steps)
	for i := 0; i < steps; i++ {
		if len(train) >= SeasonalPeriod {
			out[i] = train[len(train)-SeasonalPeriod+i%SeasonalPeriod]
		} else {
			out[i] = train[len(train)-1]
		}
	}
	return out, nil
}

// interpolate converts a dense series to floats, filling missing markers by
// linear interpolation between neighbouring observations; leading and
// trailing gaps hold the nearest observed value flat. The forecasting library
// requires a complete fixed-frequency input.
func interpolate(points []entities.SeriesPoint) []float64 {
	values := make([]float64, len(points))
	observed := make([]bool, len(points))
	for i, p := range points {
		if !p.Missing {
			values[i] = p.Value.InexactFloat64()
			observed[i] = true
		}
	}

	prev := -1
	for i := 0; i < len(values); i++ {
		if observed[i] {
			if prev == -1 {
				// Leading gap: hold the first observation flat.
				for j := 0; j < i; j++ {
					values[j] = values[i]
				}
			} else if i-prev > 1 {
				step := (values[i] - values[prev]) / float64(i-prev)
				for j := prev + 1; j < i; j++ {
					values[j] = values[prev] + step*float64(j-prev)
				}
			}
			prev = i
		}
	}
	if prev >= 0 && prev < len(values)-1 {
		// Trailing gap: hold the last observation flat.
		for j := prev + 1; j < len(values); j++ {
			values[j] = values[prev]
		}
	}

	return values
}

// score returns RMSE and MAE of predicted against actual
func score(actual, predicted []float64) (rmse, mae float64) {
	n := len(actual)
	var sumSq, sumAbs float64
	for i := 0; i < n; i++ {
		diff := actual[i] - predicted[i]
		sumSq += diff * diff
		sumAbs += math.Abs(diff)
	}
	return math.Sqrt(sumSq / float64(n)), sumAbs / float64(n)
}

func toSeries(values []float64) *timeseries.Series {
	return timeseries.New(values)
}
