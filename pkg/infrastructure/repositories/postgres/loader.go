// Package postgres loads pipeline input tables from a PostgreSQL database.
// CSV and Postgres loaders produce the same entity slices, so the rest of the
// pipeline does not care where the data came from.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/demandcast/demandcast/pkg/domain/entities"
)

const (
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 2
	defaultConnMaxLifetime = 5 * time.Minute
)

// Loader reads the input tables from a PostgreSQL database
type Loader struct {
	db *sql.DB
}

// Open connects to the database and verifies the connection
func Open(ctx context.Context, dsn string) (*Loader, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Loader{db: db}, nil
}

// Close closes the underlying connection pool
func (l *Loader) Close() error {
	return l.db.Close()
}

// LoadOrderLines reads order lines by joining orders to their items. Rows
// with a negative quantity are excluded and counted, matching the CSV
// loader's behavior.
func (l *Loader) LoadOrderLines(ctx context.Context) ([]*entities.OrderLine, int, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT o.order_key, o.store_id, oi.plu, oi.quantity, o.order_date
		FROM orders o
		JOIN order_items oi ON oi.order_key = o.order_key
		ORDER BY o.order_date, o.order_key`)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	var lines []*entities.OrderLine
	excluded := 0
	for rows.Next() {
		var (
			orderKey, storeID, plu, quantity string
			orderDate                        time.Time
		)
		if err := rows.Scan(&orderKey, &storeID, &plu, &quantity, &orderDate); err != nil {
			return nil, 0, fmt.Errorf("failed to scan order line: %w", err)
		}

		qty, err := decimal.NewFromString(quantity)
		if err != nil || qty.Sign() < 0 {
			excluded++
			continue
		}

		line, err := entities.NewOrderLine(
			entities.OrderID(orderKey),
			entities.StoreID(storeID),
			entities.PLU(plu),
			qty,
			orderDate,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("order %s: %w", orderKey, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read order lines: %w", err)
	}

	return lines, excluded, nil
}

// LoadMenuItems reads the PLU-to-recipe catalog
func (l *Loader) LoadMenuItems(ctx context.Context) ([]*entities.MenuItem, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT plu, menu_item_id, recipe_id
		FROM menu_items
		ORDER BY plu`)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []*entities.MenuItem
	for rows.Next() {
		var (
			plu                  string
			menuItemID, recipeID int64
		)
		if err := rows.Scan(&plu, &menuItemID, &recipeID); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, &entities.MenuItem{
			PLU:        entities.PLU(plu),
			MenuItemID: menuItemID,
			RecipeID:   entities.RecipeID(recipeID),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read menu items: %w", err)
	}

	return items, nil
}

// LoadRecipeIngredients reads direct recipe-ingredient assignments
func (l *Loader) LoadRecipeIngredients(ctx context.Context) ([]*entities.RecipeIngredient, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT recipe_id, ingredient_id, quantity, unit_type_id
		FROM recipe_ingredient
		ORDER BY recipe_id, ingredient_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe ingredients: %w", err)
	}
	defer rows.Close()

	var assignments []*entities.RecipeIngredient
	for rows.Next() {
		var (
			recipeID, ingredientID, unitTypeID int64
			quantity                           string
		)
		if err := rows.Scan(&recipeID, &ingredientID, &quantity, &unitTypeID); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		qty, err := decimal.NewFromString(quantity)
		if err != nil {
			return nil, fmt.Errorf("recipe %d ingredient %d: invalid quantity %q", recipeID, ingredientID, quantity)
		}
		row, err := entities.NewRecipeIngredient(
			entities.RecipeID(recipeID),
			entities.IngredientID(ingredientID),
			qty,
			entities.UnitTypeID(unitTypeID),
		)
		if err != nil {
			return nil, fmt.Errorf("recipe %d ingredient %d: %w", recipeID, ingredientID, err)
		}
		assignments = append(assignments, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipe ingredients: %w", err)
	}

	return assignments, nil
}

// LoadSubRecipeLinks reads recipe-to-sub-recipe links
func (l *Loader) LoadSubRecipeLinks(ctx context.Context) ([]*entities.RecipeSubRecipe, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT recipe_id, sub_recipe_id, factor
		FROM recipe_subrecipe
		ORDER BY recipe_id, sub_recipe_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-recipe links: %w", err)
	}
	defer rows.Close()

	var links []*entities.RecipeSubRecipe
	for rows.Next() {
		var (
			recipeID, subRecipeID int64
			factor                string
		)
		if err := rows.Scan(&recipeID, &subRecipeID, &factor); err != nil {
			return nil, fmt.Errorf("failed to scan sub-recipe link: %w", err)
		}
		f, err := decimal.NewFromString(factor)
		if err != nil {
			return nil, fmt.Errorf("recipe %d sub-recipe %d: invalid factor %q", recipeID, subRecipeID, factor)
		}
		link, err := entities.NewRecipeSubRecipe(
			entities.RecipeID(recipeID),
			entities.SubRecipeID(subRecipeID),
			f,
		)
		if err != nil {
			return nil, fmt.Errorf("recipe %d sub-recipe %d: %w", recipeID, subRecipeID, err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sub-recipe links: %w", err)
	}

	return links, nil
}

// LoadSubRecipeIngredients reads sub-recipe ingredient assignments
func (l *Loader) LoadSubRecipeIngredients(ctx context.Context) ([]*entities.SubRecipeIngredient, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT sub_recipe_id, ingredient_id, quantity, unit_type_id
		FROM subrecipe_ingredient
		ORDER BY sub_recipe_id, ingredient_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-recipe ingredients: %w", err)
	}
	defer rows.Close()

	var assignments []*entities.SubRecipeIngredient
	for rows.Next() {
		var (
			subRecipeID, ingredientID, unitTypeID int64
			quantity                              string
		)
		if err := rows.Scan(&subRecipeID, &ingredientID, &quantity, &unitTypeID); err != nil {
			return nil, fmt.Errorf("failed to scan sub-recipe ingredient: %w", err)
		}
		qty, err := decimal.NewFromString(quantity)
		if err != nil {
			return nil, fmt.Errorf("sub-recipe %d ingredient %d: invalid quantity %q", subRecipeID, ingredientID, quantity)
		}
		row, err := entities.NewSubRecipeIngredient(
			entities.SubRecipeID(subRecipeID),
			entities.IngredientID(ingredientID),
			qty,
			entities.UnitTypeID(unitTypeID),
		)
		if err != nil {
			return nil, fmt.Errorf("sub-recipe %d ingredient %d: %w", subRecipeID, ingredientID, err)
		}
		assignments = append(assignments, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sub-recipe ingredients: %w", err)
	}

	return assignments, nil
}

// LoadStores reads store metadata
func (l *Loader) LoadStores(ctx context.Context) ([]*entities.Store, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT store_id, display_name
		FROM stores
		ORDER BY store_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	var stores []*entities.Store
	for rows.Next() {
		var storeID, displayName string
		if err := rows.Scan(&storeID, &displayName); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		store, err := entities.NewStore(entities.StoreID(storeID), displayName)
		if err != nil {
			return nil, fmt.Errorf("store %s: %w", storeID, err)
		}
		stores = append(stores, store)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stores: %w", err)
	}

	return stores, nil
}
