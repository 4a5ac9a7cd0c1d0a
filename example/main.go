package main

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/demandcast/demandcast/pkg/application/services/forecast"
	"github.com/demandcast/demandcast/pkg/application/services/pipeline"
	"github.com/demandcast/demandcast/pkg/domain/entities"
	"github.com/demandcast/demandcast/pkg/infrastructure/events"
	fixtures "github.com/demandcast/demandcast/pkg/infrastructure/testing"
)

// Programmatic use of the pipeline: build repositories in memory, run one
// pass, and forecast each store. The CLI does the same thing with CSV or
// Postgres input.
func main() {
	ctx := context.Background()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	orderRepo, catalogRepo, storeRepo := fixtures.BuildCafeTestData()
	eventStore := events.NewInMemoryEventStore()

	orchestrator := pipeline.NewOrchestrator(orderRepo, catalogRepo, storeRepo, eventStore, logger)

	cfg := pipeline.Config{
		TargetIngredients: []entities.IngredientID{42},
		Range:             fixtures.CafeTestRange(),
		StoreConfigs: map[entities.StoreID]entities.StoreSeriesConfig{
			// the airport store does not report on weekends
			"STORE-B": {ZeroAsMissing: true},
		},
	}

	runID := uuid.NewString()
	fmt.Printf("Running demand pipeline (run %s)...\n\n", runID)

	result, err := orchestrator.Run(ctx, runID, cfg)
	if err != nil {
		fmt.Printf("pipeline failed: %v\n", err)
		return
	}

	diag := result.Diagnostics
	fmt.Println("Resolution diagnostics:")
	fmt.Printf("  Order lines seen: %d\n", diag.LinesSeen)
	fmt.Printf("  Rows resolved: %d\n", diag.RowsResolved)
	fmt.Printf("  Reference gaps: %d\n", diag.ReferenceGaps)
	fmt.Println()

	forecaster := forecast.NewService(forecast.DefaultHorizon, logger)
	forecasts, err := forecaster.ForecastAll(result.Matrix)
	if err != nil {
		fmt.Printf("forecasting failed: %v\n", err)
		return
	}

	for _, fc := range forecasts {
		fmt.Printf("%s (%s, holdout RMSE %.3f):\n", fc.StoreID, fc.Model, fc.RMSE)
		for day, value := range fc.Values {
			date := fc.Start.AddDate(0, 0, day)
			fmt.Printf("  %s  %4.0f\n", date.Format("2006-01-02"), math.Ceil(value))
		}
		fmt.Println()
	}

	streamEvents, err := eventStore.ReadEvents(runID, 0)
	if err == nil {
		fmt.Printf("Run emitted %d pipeline events\n", len(streamEvents))
	}
}
