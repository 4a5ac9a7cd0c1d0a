package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/demandcast/demandcast/pkg/application/dto"
	"github.com/demandcast/demandcast/pkg/application/services/forecast"
)

// Config holds configuration for output generation
type Config struct {
	Format     string
	OutputDir  string
	Verbose    bool
	RunTime    time.Duration
	InputFiles map[string]string
}

// Result bundles everything a run produces for rendering
type Result struct {
	Pipeline  *dto.PipelineResult       `json:"pipeline"`
	Forecasts []*forecast.StoreForecast `json:"forecasts"`
}

// Generate creates output in the specified format
func Generate(result *Result, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *Result, config Config) error {
	diag := result.Pipeline.Diagnostics

	fmt.Printf("Demand Forecast Summary\n")
	fmt.Printf("=======================\n\n")

	fmt.Printf("Order lines seen: %d\n", diag.LinesSeen)
	fmt.Printf("Rows resolved: %d\n", diag.RowsResolved)
	fmt.Printf("Reference gaps: %d\n", diag.ReferenceGaps)
	fmt.Printf("Invalid quantities: %d\n", diag.InvalidQuantities)
	fmt.Printf("Dual-path conflicts: %d\n", diag.DualPathConflicts)
	fmt.Printf("Run time: %v\n\n", config.RunTime)

	if len(result.Forecasts) > 0 {
		fmt.Printf("Selected models:\n")
		fmt.Printf("%-12s %-16s %-10s %-10s\n", "Store", "Model", "RMSE", "MAE")
		fmt.Printf("%-12s %-16s %-10s %-10s\n", "------------", "----------------", "----------", "----------")
		for _, fc := range result.Forecasts {
			fmt.Printf("%-12s %-16s %-10.3f %-10.3f\n", fc.StoreID, fc.Model, fc.RMSE, fc.MAE)
		}
		fmt.Println()

		printForecastTable(result.Forecasts)
	}

	return nil
}

// printForecastTable renders one row per forecast day with a column per
// store. Quantities are rounded up because partial units of an ingredient
// cannot be purchased.
func printForecastTable(forecasts []*forecast.StoreForecast) {
	fmt.Printf("Forecast:\n")
	fmt.Printf("%-12s", "Date")
	for _, fc := range forecasts {
		fmt.Printf(" %-12s", fc.StoreID)
	}
	fmt.Println()

	horizon := 0
	for _, fc := range forecasts {
		if len(fc.Values) > horizon {
			horizon = len(fc.Values)
		}
	}

	for day := 0; day < horizon; day++ {
		// all forecasts in one run share a start date
		fmt.Printf("%-12s", forecasts[0].Start.AddDate(0, 0, day).Format("2006-01-02"))
		for _, fc := range forecasts {
			if day < len(fc.Values) {
				fmt.Printf(" %-12.0f", math.Ceil(fc.Values[day]))
			} else {
				fmt.Printf(" %-12s", "-")
			}
		}
		fmt.Println()
	}
	fmt.Println()
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *Result, config Config) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Println(string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "forecast.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Printf("JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateCSVOutput creates CSV output files
func generateCSVOutput(result *Result, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	forecastFile := filepath.Join(config.OutputDir, "forecast.csv")
	if err := writeForecastCSV(result.Forecasts, forecastFile); err != nil {
		return fmt.Errorf("failed to write forecast CSV: %w", err)
	}

	demandFile := filepath.Join(config.OutputDir, "daily_demand.csv")
	if err := writeDemandCSV(result, demandFile); err != nil {
		return fmt.Errorf("failed to write daily demand CSV: %w", err)
	}

	if config.Verbose {
		fmt.Printf("CSV results saved to:\n")
		fmt.Printf("  Forecast: %s\n", forecastFile)
		fmt.Printf("  Daily Demand: %s\n", demandFile)
	}

	return nil
}

// writeForecastCSV writes one row per forecast day with a column per store,
// values rounded up to whole units
func writeForecastCSV(forecasts []*forecast.StoreForecast, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"date"}
	horizon := 0
	for _, fc := range forecasts {
		header = append(header, string(fc.StoreID))
		if len(fc.Values) > horizon {
			horizon = len(fc.Values)
		}
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for day := 0; day < horizon; day++ {
		row := make([]string, 0, len(header))
		row = append(row, forecasts[0].Start.AddDate(0, 0, day).Format("2006-01-02"))
		for _, fc := range forecasts {
			if day < len(fc.Values) {
				row = append(row, strconv.FormatFloat(math.Ceil(fc.Values[day]), 'f', 0, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}

// writeDemandCSV writes the aggregated daily demand rows
func writeDemandCSV(result *Result, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"store_id", "date", "quantity"}); err != nil {
		return err
	}

	for _, d := range result.Pipeline.Demand {
		row := []string{
			string(d.StoreID),
			d.Date.Format("2006-01-02"),
			d.Total.String(),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return writer.Error()
}
