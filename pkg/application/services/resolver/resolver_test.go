package resolver

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demandcast/demandcast/pkg/domain/entities"
	"github.com/demandcast/demandcast/pkg/infrastructure/repositories/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// buildCatalog wires a small menu:
//   - BURGER-01 -> recipe 12, which uses ingredient 27 directly (0.05 per unit)
//   - SALAD-02  -> recipe 14, which reaches ingredient 291 through sub-recipe
//     40 (factor 0.5, 0.2 per unit of sub-recipe)
//   - SOUP-03   -> recipe 16, no lettuce anywhere
func buildCatalog() *memory.CatalogRepository {
	catalog := memory.NewCatalogRepository(10, 10)

	catalog.AddMenuItem(entities.MenuItem{PLU: "BURGER-01", MenuItemID: 1, RecipeID: 12})
	catalog.AddMenuItem(entities.MenuItem{PLU: "SALAD-02", MenuItemID: 2, RecipeID: 14})
	catalog.AddMenuItem(entities.MenuItem{PLU: "SOUP-03", MenuItemID: 3, RecipeID: 16})

	catalog.AddRecipeIngredient(entities.RecipeIngredient{RecipeID: 12, IngredientID: 27, QtyPerUnit: decimal.NewFromFloat(0.05)})
	catalog.AddRecipeIngredient(entities.RecipeIngredient{RecipeID: 16, IngredientID: 99, QtyPerUnit: decimal.NewFromFloat(0.30)})

	catalog.AddSubRecipeLink(entities.RecipeSubRecipe{RecipeID: 14, SubRecipeID: 40, Factor: decimal.NewFromFloat(0.5)})
	catalog.AddSubRecipeIngredient(entities.SubRecipeIngredient{SubRecipeID: 40, IngredientID: 291, QtyPerUnit: decimal.NewFromFloat(0.2)})

	return catalog
}

func targetSet() entities.IngredientSet {
	return entities.NewIngredientSet(27, 291)
}

func TestResolver_DirectPath(t *testing.T) {
	r := New(buildCatalog(), targetSet())

	lines := []*entities.OrderLine{
		{OrderID: "O1", StoreID: "S1", PLU: "BURGER-01", Quantity: decimal.NewFromInt(3), Date: day(2023, 3, 1)},
	}

	rows, diags, err := r.Resolve(lines)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, entities.IngredientID(27), rows[0].IngredientID)
	assert.Equal(t, entities.DirectPath, rows[0].Path)
	// 3 × 0.05
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromFloat(0.15)),
		"expected 0.15, got %s", rows[0].Quantity)
	assert.Equal(t, 1, diags.RowsResolved)
	assert.Zero(t, diags.ReferenceGaps)
}

func TestResolver_SubRecipePath(t *testing.T) {
	r := New(buildCatalog(), targetSet())

	lines := []*entities.OrderLine{
		{OrderID: "O2", StoreID: "S2", PLU: "SALAD-02", Quantity: decimal.NewFromInt(4), Date: day(2023, 3, 2)},
	}

	rows, _, err := r.Resolve(lines)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, entities.IngredientID(291), rows[0].IngredientID)
	assert.Equal(t, entities.SubRecipePath, rows[0].Path)
	// 4 × 0.5 × 0.2
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromFloat(0.4)),
		"expected 0.4, got %s", rows[0].Quantity)
}

func TestResolver_NonTargetRecipeContributesNothing(t *testing.T) {
	r := New(buildCatalog(), targetSet())

	lines := []*entities.OrderLine{
		{OrderID: "O3", StoreID: "S1", PLU: "SOUP-03", Quantity: decimal.NewFromInt(2), Date: day(2023, 3, 1)},
	}

	rows, diags, err := r.Resolve(lines)
	require.NoError(t, err)
	assert.Empty(t, rows)
	// Absence, not an error: the recipe exists, it just has no target ingredient.
	assert.Zero(t, diags.ReferenceGaps)
}

func TestResolver_ReferenceGaps(t *testing.T) {
	catalog := buildCatalog()
	// Menu item whose recipe appears in no assignment table.
	catalog.AddMenuItem(entities.MenuItem{PLU: "GHOST-04", MenuItemID: 4, RecipeID: 77})
	r := New(catalog, targetSet())

	lines := []*entities.OrderLine{
		{OrderID: "O4", StoreID: "S1", PLU: "UNKNOWN-PLU", Quantity: decimal.NewFromInt(1), Date: day(2023, 3, 1)},
		{OrderID: "O5", StoreID: "S1", PLU: "GHOST-04", Quantity: decimal.NewFromInt(1), Date: day(2023, 3, 1)},
		{OrderID: "O6", StoreID: "S1", PLU: "BURGER-01", Quantity: decimal.NewFromInt(1), Date: day(2023, 3, 1)},
	}

	rows, diags, err := r.Resolve(lines)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 2, diags.ReferenceGaps)
	assert.Equal(t, 3, diags.LinesSeen)
}

func TestResolver_NegativeQuantityExcluded(t *testing.T) {
	r := New(buildCatalog(), targetSet())

	lines := []*entities.OrderLine{
		{OrderID: "O7", StoreID: "S1", PLU: "BURGER-01", Quantity: decimal.NewFromInt(-2), Date: day(2023, 3, 1)},
		{OrderID: "O8", StoreID: "S1", PLU: "BURGER-01", Quantity: decimal.NewFromInt(2), Date: day(2023, 3, 1)},
	}

	rows, diags, err := r.Resolve(lines)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, diags.InvalidQuantities)
}

func TestResolver_ZeroQuantityIsValid(t *testing.T) {
	r := New(buildCatalog(), targetSet())

	lines := []*entities.OrderLine{
		{OrderID: "O9", StoreID: "S1", PLU: "BURGER-01", Quantity: decimal.Zero, Date: day(2023, 3, 1)},
	}

	rows, diags, err := r.Resolve(lines)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Quantity.IsZero())
	assert.Zero(t, diags.InvalidQuantities)
}

func TestResolver_DoubleCountGuard(t *testing.T) {
	catalog := memory.NewCatalogRepository(4, 4)
	// Recipe 20 reaches ingredient 27 through BOTH the direct assignment and
	// a sub-recipe. The union must not double the true consumption.
	catalog.AddMenuItem(entities.MenuItem{PLU: "WRAP-05", MenuItemID: 5, RecipeID: 20})
	catalog.AddRecipeIngredient(entities.RecipeIngredient{RecipeID: 20, IngredientID: 27, QtyPerUnit: decimal.NewFromFloat(0.1)})
	catalog.AddSubRecipeLink(entities.RecipeSubRecipe{RecipeID: 20, SubRecipeID: 50, Factor: decimal.NewFromInt(1)})
	catalog.AddSubRecipeIngredient(entities.SubRecipeIngredient{SubRecipeID: 50, IngredientID: 27, QtyPerUnit: decimal.NewFromFloat(0.1)})

	r := New(catalog, entities.NewIngredientSet(27))
	lines := []*entities.OrderLine{
		{OrderID: "O10", StoreID: "S1", PLU: "WRAP-05", Quantity: decimal.NewFromInt(5), Date: day(2023, 3, 1)},
	}

	rows, diags, err := r.Resolve(lines)
	require.NoError(t, err)
	require.Len(t, rows, 1, "both paths matching must yield one row, not two")

	// Direct row wins: 5 × 0.1, not doubled.
	assert.Equal(t, entities.DirectPath, rows[0].Path)
	assert.True(t, rows[0].Quantity.Equal(decimal.NewFromFloat(0.5)),
		"expected 0.5, got %s", rows[0].Quantity)
	assert.Equal(t, 1, diags.DualPathConflicts)
}

func TestResolver_OrderIndependence(t *testing.T) {
	r := New(buildCatalog(), targetSet())

	var lines []*entities.OrderLine
	rng := rand.New(rand.NewSource(42))
	plus := []entities.PLU{"BURGER-01", "SALAD-02", "SOUP-03", "UNKNOWN"}
	for i := 0; i < 200; i++ {
		lines = append(lines, &entities.OrderLine{
			OrderID:  entities.OrderID(rune('A'+i%26)) + entities.OrderID(rune('a'+i/26)),
			StoreID:  entities.StoreID([]string{"S1", "S2", "S3"}[i%3]),
			PLU:      plus[rng.Intn(len(plus))],
			Quantity: decimal.NewFromInt(int64(rng.Intn(5))),
			Date:     day(2023, 3, 1+i%20),
		})
	}

	baseline, baseDiags, err := r.Resolve(lines)
	require.NoError(t, err)

	shuffled := make([]*entities.OrderLine, len(lines))
	copy(shuffled, lines)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	permuted, permDiags, err := r.Resolve(shuffled)
	require.NoError(t, err)

	require.Equal(t, len(baseline), len(permuted))
	for i := range baseline {
		assert.Equal(t, baseline[i].OrderID, permuted[i].OrderID)
		assert.Equal(t, baseline[i].IngredientID, permuted[i].IngredientID)
		assert.True(t, baseline[i].Quantity.Equal(permuted[i].Quantity))
	}
	assert.Equal(t, baseDiags, permDiags)
}
