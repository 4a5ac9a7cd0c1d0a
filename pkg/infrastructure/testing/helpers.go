package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/demandcast/demandcast/pkg/domain/entities"
	"github.com/demandcast/demandcast/pkg/infrastructure/repositories/memory"
)

// BuildCafeTestData builds a two-store cafe scenario: one store sells an
// espresso drink whose recipe uses ground coffee directly, the other sells a
// blended drink that reaches the same ingredient through a syrup sub-recipe.
// Six weeks of daily orders give the forecasting stage enough history to fit
// seasonal models.
func BuildCafeTestData() (*memory.OrderRepository, *memory.CatalogRepository, *memory.StoreRepository) {
	catalogRepo := memory.NewCatalogRepository(5, 10)
	storeRepo := memory.NewStoreRepository(2)

	stores := []*entities.Store{
		{ID: "STORE-A", DisplayName: "Downtown"},
		{ID: "STORE-B", DisplayName: "Airport"},
	}
	for _, store := range stores {
		storeRepo.AddStore(*store)
	}

	// Espresso: PLU 2001 -> recipe 7 -> 18g ground coffee per unit
	catalogRepo.AddMenuItem(entities.MenuItem{PLU: "2001", MenuItemID: 55, RecipeID: 7})
	catalogRepo.AddRecipeIngredient(entities.RecipeIngredient{
		RecipeID:     7,
		IngredientID: 42,
		QtyPerUnit:   decimal.NewFromFloat(0.018),
		UnitTypeID:   1,
	})

	// Blended drink: PLU 2002 -> recipe 9 -> half a batch of coffee syrup,
	// which itself uses 50g ground coffee per batch
	catalogRepo.AddMenuItem(entities.MenuItem{PLU: "2002", MenuItemID: 56, RecipeID: 9})
	catalogRepo.AddSubRecipeLink(entities.RecipeSubRecipe{
		RecipeID:    9,
		SubRecipeID: 3,
		Factor:      decimal.NewFromFloat(0.5),
	})
	catalogRepo.AddSubRecipeIngredient(entities.SubRecipeIngredient{
		SubRecipeID:  3,
		IngredientID: 42,
		QtyPerUnit:   decimal.NewFromFloat(0.05),
		UnitTypeID:   1,
	})

	baseDate := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC) // a Monday
	days := 42

	orderRepo := memory.NewOrderRepository(days * 3)
	for day := 0; day < days; day++ {
		date := baseDate.AddDate(0, 0, day)

		// weekday rhythm: busier at the end of the week
		weekday := int(date.Weekday())
		espressoQty := int64(8 + 2*weekday)
		orderRepo.AddOrderLine(entities.OrderLine{
			OrderID:  entities.OrderID("A-" + date.Format("20060102")),
			StoreID:  "STORE-A",
			PLU:      "2001",
			Quantity: decimal.NewFromInt(espressoQty),
			Date:     date,
		})

		// the airport store only reports on weekdays
		if weekday >= 1 && weekday <= 5 {
			orderRepo.AddOrderLine(entities.OrderLine{
				OrderID:  entities.OrderID("B-" + date.Format("20060102")),
				StoreID:  "STORE-B",
				PLU:      "2002",
				Quantity: decimal.NewFromInt(4 + int64(weekday)),
				Date:     date,
			})
		}
	}

	return orderRepo, catalogRepo, storeRepo
}

// CafeTestRange returns the observation window matching BuildCafeTestData
func CafeTestRange() entities.DateRange {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	rng, err := entities.NewDateRange(start, start.AddDate(0, 0, 41))
	if err != nil {
		panic(err)
	}
	return rng
}

// BuildSimpleTestData creates a minimal single-store scenario for basic tests
func BuildSimpleTestData() (*memory.OrderRepository, *memory.CatalogRepository, *memory.StoreRepository) {
	catalogRepo := memory.NewCatalogRepository(1, 1)
	catalogRepo.AddMenuItem(entities.MenuItem{PLU: "1001", MenuItemID: 1, RecipeID: 7})
	catalogRepo.AddRecipeIngredient(entities.RecipeIngredient{
		RecipeID:     7,
		IngredientID: 42,
		QtyPerUnit:   decimal.NewFromFloat(0.05),
		UnitTypeID:   1,
	})

	storeRepo := memory.NewStoreRepository(1)
	storeRepo.AddStore(entities.Store{ID: "STORE-A", DisplayName: "Test Store"})

	orderRepo := memory.NewOrderRepository(1)
	orderRepo.AddOrderLine(entities.OrderLine{
		OrderID:  "ORD-1",
		StoreID:  "STORE-A",
		PLU:      "1001",
		Quantity: decimal.NewFromInt(3),
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	return orderRepo, catalogRepo, storeRepo
}
