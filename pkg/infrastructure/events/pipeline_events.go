package events

import (
	"time"

	"github.com/demandcast/demandcast/pkg/application/dto"
	"github.com/demandcast/demandcast/pkg/domain/entities"
)

const (
	ResolveCompletedEvent   = "pipeline.resolve.completed"
	AggregateCompletedEvent = "pipeline.aggregate.completed"
	DensifyCompletedEvent   = "pipeline.densify.completed"
	ForecastCompletedEvent  = "pipeline.forecast.completed"
)

// ResolveCompleted is emitted after the consumption resolve stage
type ResolveCompleted struct {
	Diagnostics dto.ResolveDiagnostics `json:"diagnostics"`
	Duration    time.Duration          `json:"duration"`
}

// AggregateCompleted is emitted after the daily demand aggregation stage
type AggregateCompleted struct {
	RowsIn   int           `json:"rows_in"`
	RowsOut  int           `json:"rows_out"`
	Duration time.Duration `json:"duration"`
}

// DensifyCompleted is emitted once per store after densification
type DensifyCompleted struct {
	StoreID  entities.StoreID `json:"store_id"`
	Days     int              `json:"days"`
	Observed int              `json:"observed"`
	Duration time.Duration    `json:"duration"`
}

// ForecastCompleted is emitted once per store after model selection
type ForecastCompleted struct {
	StoreID entities.StoreID `json:"store_id"`
	Model   string           `json:"model"`
	RMSE    float64          `json:"rmse"`
	Horizon int              `json:"horizon"`
}
