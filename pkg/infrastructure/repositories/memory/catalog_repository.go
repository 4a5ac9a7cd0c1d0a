package memory

import (
	"fmt"

	"github.com/demandcast/demandcast/pkg/domain/entities"
	"github.com/demandcast/demandcast/pkg/domain/repositories"
)

// CatalogRepository provides a memory-efficient indexed catalog implementation.
// Rows are stored in flat slices; per-key indexes give the resolver hash-join
// lookups without row-order dependence.
type CatalogRepository struct {
	menuItems []entities.MenuItem
	menuIndex map[entities.PLU]int

	recipeIngredients []entities.RecipeIngredient
	recipeIndex       map[entities.RecipeID][]int

	subLinks     []entities.RecipeSubRecipe
	subLinkIndex map[entities.RecipeID][]int

	subIngredients []entities.SubRecipeIngredient
	subIndex       map[entities.SubRecipeID][]int
}

// NewCatalogRepository creates an indexed catalog repository
func NewCatalogRepository(expectedMenuItems, expectedAssignments int) *CatalogRepository {
	return &CatalogRepository{
		menuItems:         make([]entities.MenuItem, 0, expectedMenuItems),
		menuIndex:         make(map[entities.PLU]int, expectedMenuItems),
		recipeIngredients: make([]entities.RecipeIngredient, 0, expectedAssignments),
		recipeIndex:       make(map[entities.RecipeID][]int, expectedAssignments),
		subLinks:          make([]entities.RecipeSubRecipe, 0, expectedAssignments),
		subLinkIndex:      make(map[entities.RecipeID][]int, expectedAssignments),
		subIngredients:    make([]entities.SubRecipeIngredient, 0, expectedAssignments),
		subIndex:          make(map[entities.SubRecipeID][]int, expectedAssignments),
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// AddMenuItem adds a menu catalog entry. A later entry for the same PLU
// replaces the earlier one.
func (r *CatalogRepository) AddMenuItem(item entities.MenuItem) {
	if idx, exists := r.menuIndex[item.PLU]; exists {
		r.menuItems[idx] = item
		return
	}
	r.menuIndex[item.PLU] = len(r.menuItems)
	r.menuItems = append(r.menuItems, item)
}

// AddRecipeIngredient adds a direct recipe-to-ingredient assignment
func (r *CatalogRepository) AddRecipeIngredient(row entities.RecipeIngredient) {
	index := len(r.recipeIngredients)
	r.recipeIngredients = append(r.recipeIngredients, row)
	r.recipeIndex[row.RecipeID] = append(r.recipeIndex[row.RecipeID], index)
}

// AddSubRecipeLink adds a recipe-to-sub-recipe link
func (r *CatalogRepository) AddSubRecipeLink(row entities.RecipeSubRecipe) {
	index := len(r.subLinks)
	r.subLinks = append(r.subLinks, row)
	r.subLinkIndex[row.RecipeID] = append(r.subLinkIndex[row.RecipeID], index)
}

// AddSubRecipeIngredient adds a sub-recipe-to-ingredient assignment
func (r *CatalogRepository) AddSubRecipeIngredient(row entities.SubRecipeIngredient) {
	index := len(r.subIngredients)
	r.subIngredients = append(r.subIngredients, row)
	r.subIndex[row.SubRecipeID] = append(r.subIndex[row.SubRecipeID], index)
}

// GetMenuItem returns the menu catalog entry for a PLU
func (r *CatalogRepository) GetMenuItem(plu entities.PLU) (*entities.MenuItem, error) {
	index, exists := r.menuIndex[plu]
	if !exists {
		return nil, fmt.Errorf("menu item not found: %s", plu)
	}
	return &r.menuItems[index], nil
}

// GetRecipeIngredients returns the direct ingredient assignments of a recipe
func (r *CatalogRepository) GetRecipeIngredients(recipeID entities.RecipeID) ([]*entities.RecipeIngredient, error) {
	indexes, exists := r.recipeIndex[recipeID]
	if !exists {
		return []*entities.RecipeIngredient{}, nil
	}
	rows := make([]*entities.RecipeIngredient, 0, len(indexes))
	for _, index := range indexes {
		rows = append(rows, &r.recipeIngredients[index])
	}
	return rows, nil
}

// GetSubRecipeLinks returns the sub-recipe links of a recipe
func (r *CatalogRepository) GetSubRecipeLinks(recipeID entities.RecipeID) ([]*entities.RecipeSubRecipe, error) {
	indexes, exists := r.subLinkIndex[recipeID]
	if !exists {
		return []*entities.RecipeSubRecipe{}, nil
	}
	rows := make([]*entities.RecipeSubRecipe, 0, len(indexes))
	for _, index := range indexes {
		rows = append(rows, &r.subLinks[index])
	}
	return rows, nil
}

// GetSubRecipeIngredients returns the ingredient assignments of a sub-recipe
func (r *CatalogRepository) GetSubRecipeIngredients(subRecipeID entities.SubRecipeID) ([]*entities.SubRecipeIngredient, error) {
	indexes, exists := r.subIndex[subRecipeID]
	if !exists {
		return []*entities.SubRecipeIngredient{}, nil
	}
	rows := make([]*entities.SubRecipeIngredient, 0, len(indexes))
	for _, index := range indexes {
		rows = append(rows, &r.subIngredients[index])
	}
	return rows, nil
}

// GetAllMenuItems returns all menu catalog entries
func (r *CatalogRepository) GetAllMenuItems() ([]*entities.MenuItem, error) {
	items := make([]*entities.MenuItem, 0, len(r.menuItems))
	for i := range r.menuItems {
		items = append(items, &r.menuItems[i])
	}
	return items, nil
}

// GetAllRecipeIngredients returns all direct assignments
func (r *CatalogRepository) GetAllRecipeIngredients() ([]*entities.RecipeIngredient, error) {
	rows := make([]*entities.RecipeIngredient, 0, len(r.recipeIngredients))
	for i := range r.recipeIngredients {
		rows = append(rows, &r.recipeIngredients[i])
	}
	return rows, nil
}

// GetAllSubRecipeLinks returns all recipe-to-sub-recipe links
func (r *CatalogRepository) GetAllSubRecipeLinks() ([]*entities.RecipeSubRecipe, error) {
	rows := make([]*entities.RecipeSubRecipe, 0, len(r.subLinks))
	for i := range r.subLinks {
		rows = append(rows, &r.subLinks[i])
	}
	return rows, nil
}

// GetAllSubRecipeIngredients returns all sub-recipe assignments
func (r *CatalogRepository) GetAllSubRecipeIngredients() ([]*entities.SubRecipeIngredient, error) {
	rows := make([]*entities.SubRecipeIngredient, 0, len(r.subIngredients))
	for i := range r.subIngredients {
		rows = append(rows, &r.subIngredients[i])
	}
	return rows, nil
}

// LoadMenuItems loads menu catalog entries into the repository
func (r *CatalogRepository) LoadMenuItems(items []*entities.MenuItem) error {
	for _, item := range items {
		r.AddMenuItem(*item)
	}
	return nil
}

// LoadRecipeIngredients loads direct assignments into the repository
func (r *CatalogRepository) LoadRecipeIngredients(rows []*entities.RecipeIngredient) error {
	for _, row := range rows {
		r.AddRecipeIngredient(*row)
	}
	return nil
}

// LoadSubRecipeLinks loads recipe-to-sub-recipe links into the repository
func (r *CatalogRepository) LoadSubRecipeLinks(rows []*entities.RecipeSubRecipe) error {
	for _, row := range rows {
		r.AddSubRecipeLink(*row)
	}
	return nil
}

// LoadSubRecipeIngredients loads sub-recipe assignments into the repository
func (r *CatalogRepository) LoadSubRecipeIngredients(rows []*entities.SubRecipeIngredient) error {
	for _, row := range rows {
		r.AddSubRecipeIngredient(*row)
	}
	return nil
}
