package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/demandcast/demandcast/pkg/application/dto"
	"github.com/demandcast/demandcast/pkg/application/services/aggregate"
	"github.com/demandcast/demandcast/pkg/application/services/calendar"
	"github.com/demandcast/demandcast/pkg/application/services/resolver"
	"github.com/demandcast/demandcast/pkg/domain/entities"
	"github.com/demandcast/demandcast/pkg/domain/repositories"
	"github.com/demandcast/demandcast/pkg/infrastructure/events"
)

// ConfigurationError reports a fatal pre-run validation failure. No stage runs
// and no partial output is produced when one is returned.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// Config describes one pipeline run
type Config struct {
	// TargetIngredients is the identifier set of the single logical
	// ingredient being tracked. Must be non-empty.
	TargetIngredients []entities.IngredientID

	// Range is the observation window. Must intersect the available order data.
	Range entities.DateRange

	// Stores restricts the run to the given stores; empty means every store
	// in the store catalog.
	Stores []entities.StoreID

	// StoreConfigs carries the per-store densification policy. Stores absent
	// from the map use the zero-value policy.
	StoreConfigs map[entities.StoreID]entities.StoreSeriesConfig
}

// Orchestrator runs the resolve → aggregate → densify pipeline. Each stage is
// a pure transform of the previous stage's output; the orchestrator itself
// holds no cross-run state.
type Orchestrator struct {
	orders  repositories.OrderRepository
	catalog repositories.CatalogRepository
	stores  repositories.StoreRepository
	events  events.EventStore
	logger  *logrus.Logger
}

// NewOrchestrator creates a pipeline orchestrator over the given repositories
func NewOrchestrator(
	orders repositories.OrderRepository,
	catalog repositories.CatalogRepository,
	stores repositories.StoreRepository,
	store events.EventStore,
	logger *logrus.Logger,
) *Orchestrator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Orchestrator{
		orders:  orders,
		catalog: catalog,
		stores:  stores,
		events:  store,
		logger:  logger,
	}
}

// Run executes one pipeline pass. runID names the event stream the run's
// stage events are appended to.
func (o *Orchestrator) Run(ctx context.Context, runID string, cfg Config) (*dto.PipelineResult, error) {
	storeIDs, err := o.validate(cfg)
	if err != nil {
		return nil, err
	}

	lines, err := o.orders.GetOrderLinesInRange(cfg.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}

	// Stage 1: resolve per-order-line consumption.
	start := time.Now()
	res := resolver.New(o.catalog, entities.NewIngredientSet(cfg.TargetIngredients...))
	consumption, diags, err := res.Resolve(lines)
	if err != nil {
		return nil, fmt.Errorf("resolve stage failed: %w", err)
	}
	o.logger.WithFields(logrus.Fields{
		"lines_seen":          diags.LinesSeen,
		"rows_resolved":       diags.RowsResolved,
		"reference_gaps":      diags.ReferenceGaps,
		"invalid_quantities":  diags.InvalidQuantities,
		"dual_path_conflicts": diags.DualPathConflicts,
		"duration":            time.Since(start),
	}).Info("resolve stage completed")
	o.emit(runID, events.ResolveCompletedEvent, events.ResolveCompleted{
		Diagnostics: *diags,
		Duration:    time.Since(start),
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: aggregate to daily demand.
	start = time.Now()
	demand := aggregate.Aggregate(consumption)
	o.logger.WithFields(logrus.Fields{
		"rows_in":  len(consumption),
		"rows_out": len(demand),
		"duration": time.Since(start),
	}).Info("aggregate stage completed")
	o.emit(runID, events.AggregateCompletedEvent, events.AggregateCompleted{
		RowsIn:   len(consumption),
		RowsOut:  len(demand),
		Duration: time.Since(start),
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: densify per store into the calendar matrix.
	matrix := &entities.DemandMatrix{
		Range:  cfg.Range,
		Stores: storeIDs,
		Series: make(map[entities.StoreID]*entities.StoreSeries, len(storeIDs)),
	}
	for _, storeID := range storeIDs {
		start = time.Now()
		series, err := calendar.Densify(demand, storeID, cfg.Range, cfg.StoreConfigs[storeID])
		if err != nil {
			return nil, fmt.Errorf("densify stage failed for store %s: %w", storeID, err)
		}
		matrix.Series[storeID] = series
		o.logger.WithFields(logrus.Fields{
			"store":    storeID,
			"days":     len(series.Points),
			"observed": series.Observed(),
		}).Info("densify stage completed")
		o.emit(runID, events.DensifyCompletedEvent, events.DensifyCompleted{
			StoreID:  storeID,
			Days:     len(series.Points),
			Observed: series.Observed(),
			Duration: time.Since(start),
		})
	}

	return &dto.PipelineResult{
		Matrix:      matrix,
		Demand:      demand,
		Diagnostics: *diags,
	}, nil
}

// validate performs the fatal pre-run checks and resolves the effective store
// list
func (o *Orchestrator) validate(cfg Config) ([]entities.StoreID, error) {
	if len(cfg.TargetIngredients) == 0 {
		return nil, &ConfigurationError{Field: "target_ingredients", Reason: "ingredient set is empty"}
	}
	if cfg.Range.Start.IsZero() || cfg.Range.End.IsZero() {
		return nil, &ConfigurationError{Field: "range", Reason: "date range is unset"}
	}

	min, max, ok := o.orders.DateBounds()
	if !ok {
		return nil, &ConfigurationError{Field: "range", Reason: "no order data loaded"}
	}
	if cfg.Range.End.Before(min) || cfg.Range.Start.After(max) {
		return nil, &ConfigurationError{
			Field: "range",
			Reason: fmt.Sprintf("range %s..%s is outside available data %s..%s",
				cfg.Range.Start.Format("2006-01-02"), cfg.Range.End.Format("2006-01-02"),
				min.Format("2006-01-02"), max.Format("2006-01-02")),
		}
	}

	storeIDs := cfg.Stores
	if len(storeIDs) == 0 {
		all, err := o.stores.GetAllStores()
		if err != nil {
			return nil, fmt.Errorf("failed to list stores: %w", err)
		}
		for _, s := range all {
			storeIDs = append(storeIDs, s.ID)
		}
	} else {
		for _, id := range storeIDs {
			if _, err := o.stores.GetStore(id); err != nil {
				return nil, &ConfigurationError{Field: "stores", Reason: fmt.Sprintf("unknown store %s", id)}
			}
		}
	}
	if len(storeIDs) == 0 {
		return nil, &ConfigurationError{Field: "stores", Reason: "no stores to process"}
	}

	for id, sc := range cfg.StoreConfigs {
		if _, err := o.stores.GetStore(id); err != nil {
			return nil, &ConfigurationError{Field: "store_configs", Reason: fmt.Sprintf("unknown store %s", id)}
		}
		if sc.LeadingTruncation < 0 || sc.LeadingTruncation >= cfg.Range.Days() {
			return nil, &ConfigurationError{
				Field:  "store_configs",
				Reason: fmt.Sprintf("store %s: leading truncation %d invalid for a %d-day range", id, sc.LeadingTruncation, cfg.Range.Days()),
			}
		}
	}

	return storeIDs, nil
}

func (o *Orchestrator) emit(runID, eventType string, payload interface{}) {
	if o.events == nil {
		return
	}
	if err := o.events.AppendEvent(runID, events.NewEvent(eventType, runID, payload)); err != nil {
		o.logger.WithError(err).Warn("failed to append pipeline event")
	}
}
