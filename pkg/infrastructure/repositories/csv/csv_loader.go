package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/demandcast/demandcast/pkg/domain/entities"
)

// Loader handles loading pipeline input tables from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// OrderLoadReport counts rows the order-line loader excluded. Exclusions are
// expected in multi-year POS exports and are not fatal.
type OrderLoadReport struct {
	RowsRead          int
	InvalidQuantities int
}

// LoadOrderLines loads order lines from a CSV file. Rows with a non-numeric
// or negative quantity are excluded and counted in the report.
func (l *Loader) LoadOrderLines(filename string) ([]*entities.OrderLine, *OrderLoadReport, error) {
	records, err := readTable(filename, []string{"order_key", "store_id", "plu", "quantity", "order_date"})
	if err != nil {
		return nil, nil, fmt.Errorf("order lines: %w", err)
	}

	report := &OrderLoadReport{}
	var lines []*entities.OrderLine
	for i, record := range records {
		report.RowsRead++

		quantity, err := decimal.NewFromString(record[3])
		if err != nil || quantity.Sign() < 0 {
			report.InvalidQuantities++
			continue
		}

		orderDate, err := time.Parse("2006-01-02", record[4])
		if err != nil {
			return nil, nil, fmt.Errorf("order lines row %d: invalid order_date %q (expected YYYY-MM-DD)", i+2, record[4])
		}

		line, err := entities.NewOrderLine(
			entities.OrderID(record[0]),
			entities.StoreID(record[1]),
			entities.PLU(record[2]),
			quantity,
			orderDate,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("order lines row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}

	return lines, report, nil
}

// LoadMenuItems loads the menu catalog from a CSV file
func (l *Loader) LoadMenuItems(filename string) ([]*entities.MenuItem, error) {
	records, err := readTable(filename, []string{"plu", "menu_item_id", "recipe_id"})
	if err != nil {
		return nil, fmt.Errorf("menu catalog: %w", err)
	}

	var items []*entities.MenuItem
	for i, record := range records {
		menuItemID, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("menu catalog row %d: invalid menu_item_id %q", i+2, record[1])
		}
		recipeID, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("menu catalog row %d: invalid recipe_id %q", i+2, record[2])
		}
		items = append(items, &entities.MenuItem{
			PLU:        entities.PLU(record[0]),
			MenuItemID: menuItemID,
			RecipeID:   entities.RecipeID(recipeID),
		})
	}

	return items, nil
}

// LoadRecipeIngredients loads direct recipe-ingredient assignments from a CSV file
func (l *Loader) LoadRecipeIngredients(filename string) ([]*entities.RecipeIngredient, error) {
	records, err := readTable(filename, []string{"recipe_id", "ingredient_id", "quantity", "unit_type_id"})
	if err != nil {
		return nil, fmt.Errorf("recipe ingredients: %w", err)
	}

	var rows []*entities.RecipeIngredient
	for i, record := range records {
		row, err := parseRecipeIngredient(record)
		if err != nil {
			return nil, fmt.Errorf("recipe ingredients row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// LoadSubRecipeLinks loads recipe-to-sub-recipe links from a CSV file
func (l *Loader) LoadSubRecipeLinks(filename string) ([]*entities.RecipeSubRecipe, error) {
	records, err := readTable(filename, []string{"recipe_id", "sub_recipe_id", "factor"})
	if err != nil {
		return nil, fmt.Errorf("sub-recipe links: %w", err)
	}

	var rows []*entities.RecipeSubRecipe
	for i, record := range records {
		recipeID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sub-recipe links row %d: invalid recipe_id %q", i+2, record[0])
		}
		subRecipeID, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("sub-recipe links row %d: invalid sub_recipe_id %q", i+2, record[1])
		}
		factor, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("sub-recipe links row %d: invalid factor %q", i+2, record[2])
		}
		row, err := entities.NewRecipeSubRecipe(entities.RecipeID(recipeID), entities.SubRecipeID(subRecipeID), factor)
		if err != nil {
			return nil, fmt.Errorf("sub-recipe links row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// LoadSubRecipeIngredients loads sub-recipe ingredient assignments from a CSV file
func (l *Loader) LoadSubRecipeIngredients(filename string) ([]*entities.SubRecipeIngredient, error) {
	records, err := readTable(filename, []string{"sub_recipe_id", "ingredient_id", "quantity", "unit_type_id"})
	if err != nil {
		return nil, fmt.Errorf("sub-recipe ingredients: %w", err)
	}

	var rows []*entities.SubRecipeIngredient
	for i, record := range records {
		row, err := parseSubRecipeIngredient(record)
		if err != nil {
			return nil, fmt.Errorf("sub-recipe ingredients row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// LoadStores loads store metadata from a CSV file
func (l *Loader) LoadStores(filename string) ([]*entities.Store, error) {
	records, err := readTable(filename, []string{"store_id", "display_name"})
	if err != nil {
		return nil, fmt.Errorf("stores: %w", err)
	}

	var stores []*entities.Store
	for i, record := range records {
		store, err := entities.NewStore(entities.StoreID(record[0]), record[1])
		if err != nil {
			return nil, fmt.Errorf("stores row %d: %w", i+2, err)
		}
		stores = append(stores, store)
	}

	return stores, nil
}

// readTable opens a CSV file, validates its header and returns the data rows
func readTable(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s is empty, expected header %v", filename, expectedHeader)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s header mismatch. Expected: %v, Got: %v", filename, expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", filename, i+2, len(expectedHeader), len(record))
		}
	}

	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseRecipeIngredient(record []string) (*entities.RecipeIngredient, error) {
	recipeID, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe_id %q", record[0])
	}
	ingredientID, err := strconv.ParseInt(record[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ingredient_id %q", record[1])
	}
	quantity, err := decimal.NewFromString(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q", record[2])
	}
	unitTypeID, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid unit_type_id %q", record[3])
	}
	return entities.NewRecipeIngredient(
		entities.RecipeID(recipeID),
		entities.IngredientID(ingredientID),
		quantity,
		entities.UnitTypeID(unitTypeID),
	)
}

func parseSubRecipeIngredient(record []string) (*entities.SubRecipeIngredient, error) {
	subRecipeID, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid sub_recipe_id %q", record[0])
	}
	ingredientID, err := strconv.ParseInt(record[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ingredient_id %q", record[1])
	}
	quantity, err := decimal.NewFromString(record[2])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q", record[2])
	}
	unitTypeID, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid unit_type_id %q", record[3])
	}
	return entities.NewSubRecipeIngredient(
		entities.SubRecipeID(subRecipeID),
		entities.IngredientID(ingredientID),
		quantity,
		entities.UnitTypeID(unitTypeID),
	)
}
