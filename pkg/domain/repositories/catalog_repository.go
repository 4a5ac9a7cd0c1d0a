package repositories

import "github.com/demandcast/demandcast/pkg/domain/entities"

// CatalogRepository provides access to the menu and recipe reference data the
// resolver joins against
type CatalogRepository interface {
	// GetMenuItem returns the menu catalog entry for a PLU, or an error when
	// the PLU is not in the catalog.
	GetMenuItem(plu entities.PLU) (*entities.MenuItem, error)

	// GetRecipeIngredients returns the direct ingredient assignments of a
	// recipe. Empty slice when the recipe has none.
	GetRecipeIngredients(recipeID entities.RecipeID) ([]*entities.RecipeIngredient, error)

	// GetSubRecipeLinks returns the sub-recipe links of a recipe. Empty slice
	// when the recipe has none.
	GetSubRecipeLinks(recipeID entities.RecipeID) ([]*entities.RecipeSubRecipe, error)

	// GetSubRecipeIngredients returns the ingredient assignments of a
	// sub-recipe. Empty slice when the sub-recipe has none.
	GetSubRecipeIngredients(subRecipeID entities.SubRecipeID) ([]*entities.SubRecipeIngredient, error)

	// Full-table accessors used by the catalog integrity check.
	GetAllMenuItems() ([]*entities.MenuItem, error)
	GetAllRecipeIngredients() ([]*entities.RecipeIngredient, error)
	GetAllSubRecipeLinks() ([]*entities.RecipeSubRecipe, error)
	GetAllSubRecipeIngredients() ([]*entities.SubRecipeIngredient, error)

	LoadMenuItems(items []*entities.MenuItem) error
	LoadRecipeIngredients(rows []*entities.RecipeIngredient) error
	LoadSubRecipeLinks(rows []*entities.RecipeSubRecipe) error
	LoadSubRecipeIngredients(rows []*entities.SubRecipeIngredient) error
}
