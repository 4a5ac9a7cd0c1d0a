package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/demandcast/demandcast/pkg/interfaces/cli/commands"
)

func main() {
	// .env is optional; flags still win over environment values
	_ = godotenv.Load()

	var (
		dataDir = flag.String(
			"data",
			"",
			"Path to directory containing input CSV files",
		)
		dbURL             = flag.String("db", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		ordersFile        = flag.String("orders", "", "Path to order lines CSV file")
		menuFile          = flag.String("menu", "", "Path to menu items CSV file")
		recipeIngFile     = flag.String("recipe-ingredients", "", "Path to recipe ingredient CSV file")
		subLinksFile      = flag.String("subrecipe-links", "", "Path to recipe sub-recipe links CSV file")
		subIngFile        = flag.String("subrecipe-ingredients", "", "Path to sub-recipe ingredient CSV file")
		storesFile        = flag.String("stores-file", "", "Path to stores CSV file")
		ingredients       = flag.String("ingredients", "", "Comma-separated ingredient catalog IDs to track")
		stores            = flag.String("stores", "", "Comma-separated store IDs (default: all stores)")
		startDate         = flag.String("start", "", "Observation window start (YYYY-MM-DD)")
		endDate           = flag.String("end", "", "Observation window end (YYYY-MM-DD)")
		horizon           = flag.Int("horizon", 14, "Forecast horizon in days")
		zeroAsMissing     = flag.Bool("zero-as-missing", false, "Treat zero-demand days as unreported")
		leadingTruncation = flag.Int("truncate", 0, "Drop the first n days of each store series")
		outputDir         = flag.String("output", "", "Output directory for results (optional)")
		format            = flag.String("format", "text", "Output format: text, json, csv")
		verbose           = flag.Bool("verbose", false, "Enable verbose output")
		help              = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	config := commands.Config{
		DataDir:                  *dataDir,
		DatabaseURL:              *dbURL,
		OrdersFile:               *ordersFile,
		MenuFile:                 *menuFile,
		RecipeIngredientsFile:    *recipeIngFile,
		SubRecipeLinksFile:       *subLinksFile,
		SubRecipeIngredientsFile: *subIngFile,
		StoresFile:               *storesFile,
		Ingredients:              *ingredients,
		Stores:                   *stores,
		StartDate:                *startDate,
		EndDate:                  *endDate,
		Horizon:                  *horizon,
		ZeroAsMissing:            *zeroAsMissing,
		LeadingTruncation:        *leadingTruncation,
		OutputDir:                *outputDir,
		Format:                   *format,
		Verbose:                  *verbose,
		Help:                     *help,
	}

	cmd := commands.NewRunCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
