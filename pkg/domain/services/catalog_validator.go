package services

import (
	"fmt"

	"github.com/demandcast/demandcast/pkg/domain/entities"
	"github.com/demandcast/demandcast/pkg/domain/repositories"
)

// CatalogValidator provides validation for recipe catalog integrity
type CatalogValidator struct{}

// NewCatalogValidator creates a new catalog validator
func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{}
}

// ValidationResult contains the results of catalog validation. Findings are
// warnings: reference-data incompleteness is expected in multi-year POS
// exports and is handled row-locally at resolve time.
type ValidationResult struct {
	DanglingMenuItems     []entities.PLU         // menu items whose recipe has no assignments at all
	DanglingSubRecipes    []entities.SubRecipeID // linked sub-recipes with no ingredient assignments
	NonPositiveQuantities int
	Warnings              []string
}

// ValidateCatalog performs an integrity sweep over the loaded reference data
func (v *CatalogValidator) ValidateCatalog(catalog repositories.CatalogRepository) (*ValidationResult, error) {
	result := &ValidationResult{}

	menuItems, err := catalog.GetAllMenuItems()
	if err != nil {
		return nil, fmt.Errorf("failed to read menu catalog: %w", err)
	}
	recipeIngredients, err := catalog.GetAllRecipeIngredients()
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe ingredients: %w", err)
	}
	subLinks, err := catalog.GetAllSubRecipeLinks()
	if err != nil {
		return nil, fmt.Errorf("failed to read sub-recipe links: %w", err)
	}
	subIngredients, err := catalog.GetAllSubRecipeIngredients()
	if err != nil {
		return nil, fmt.Errorf("failed to read sub-recipe ingredients: %w", err)
	}

	recipesWithIngredients := make(map[entities.RecipeID]bool)
	for _, ri := range recipeIngredients {
		recipesWithIngredients[ri.RecipeID] = true
		if ri.QtyPerUnit.Sign() <= 0 {
			result.NonPositiveQuantities++
		}
	}

	recipesWithSubRecipes := make(map[entities.RecipeID]bool)
	linkedSubRecipes := make(map[entities.SubRecipeID]bool)
	for _, link := range subLinks {
		recipesWithSubRecipes[link.RecipeID] = true
		linkedSubRecipes[link.SubRecipeID] = true
	}

	subRecipesWithIngredients := make(map[entities.SubRecipeID]bool)
	for _, si := range subIngredients {
		subRecipesWithIngredients[si.SubRecipeID] = true
		if si.QtyPerUnit.Sign() <= 0 {
			result.NonPositiveQuantities++
		}
	}

	for _, item := range menuItems {
		if !recipesWithIngredients[item.RecipeID] && !recipesWithSubRecipes[item.RecipeID] {
			result.DanglingMenuItems = append(result.DanglingMenuItems, item.PLU)
		}
	}

	for subID := range linkedSubRecipes {
		if !subRecipesWithIngredients[subID] {
			result.DanglingSubRecipes = append(result.DanglingSubRecipes, subID)
		}
	}

	if len(result.DanglingMenuItems) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d menu items resolve to recipes with no ingredient assignments", len(result.DanglingMenuItems)))
	}
	if len(result.DanglingSubRecipes) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d linked sub-recipes have no ingredient assignments", len(result.DanglingSubRecipes)))
	}
	if result.NonPositiveQuantities > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d assignments carry a non-positive per-unit quantity", result.NonPositiveQuantities))
	}

	return result, nil
}
