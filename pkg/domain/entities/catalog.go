package entities

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RecipeID represents a unique recipe identifier
type RecipeID int64

// SubRecipeID represents a unique sub-recipe identifier
type SubRecipeID int64

// IngredientID represents a unique ingredient catalog identifier
type IngredientID int64

// UnitTypeID represents the unit of measure an assignment quantity is stated in
type UnitTypeID int64

// MenuItem maps a register PLU to the recipe that produces it
type MenuItem struct {
	PLU        PLU
	MenuItemID int64
	RecipeID   RecipeID
}

// RecipeIngredient is a direct recipe-to-ingredient assignment
type RecipeIngredient struct {
	RecipeID     RecipeID
	IngredientID IngredientID
	QtyPerUnit   decimal.Decimal
	UnitTypeID   UnitTypeID
}

// RecipeSubRecipe links a recipe to a sub-recipe with a scaling factor
type RecipeSubRecipe struct {
	RecipeID    RecipeID
	SubRecipeID SubRecipeID
	Factor      decimal.Decimal
}

// SubRecipeIngredient is a sub-recipe-to-ingredient assignment
type SubRecipeIngredient struct {
	SubRecipeID  SubRecipeID
	IngredientID IngredientID
	QtyPerUnit   decimal.Decimal
	UnitTypeID   UnitTypeID
}

// NewRecipeIngredient creates a validated RecipeIngredient
func NewRecipeIngredient(recipeID RecipeID, ingredientID IngredientID, qtyPerUnit decimal.Decimal, unitTypeID UnitTypeID) (*RecipeIngredient, error) {
	if recipeID <= 0 {
		return nil, fmt.Errorf("recipe id must be positive, got %d", recipeID)
	}
	if ingredientID <= 0 {
		return nil, fmt.Errorf("ingredient id must be positive, got %d", ingredientID)
	}
	if qtyPerUnit.Sign() < 0 {
		return nil, fmt.Errorf("quantity per unit cannot be negative, got %s", qtyPerUnit)
	}
	return &RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: ingredientID,
		QtyPerUnit:   qtyPerUnit,
		UnitTypeID:   unitTypeID,
	}, nil
}

// NewRecipeSubRecipe creates a validated RecipeSubRecipe link
func NewRecipeSubRecipe(recipeID RecipeID, subRecipeID SubRecipeID, factor decimal.Decimal) (*RecipeSubRecipe, error) {
	if recipeID <= 0 {
		return nil, fmt.Errorf("recipe id must be positive, got %d", recipeID)
	}
	if subRecipeID <= 0 {
		return nil, fmt.Errorf("sub-recipe id must be positive, got %d", subRecipeID)
	}
	if factor.Sign() <= 0 {
		return nil, fmt.Errorf("factor must be positive, got %s", factor)
	}
	return &RecipeSubRecipe{
		RecipeID:    recipeID,
		SubRecipeID: subRecipeID,
		Factor:      factor,
	}, nil
}

// NewSubRecipeIngredient creates a validated SubRecipeIngredient
func NewSubRecipeIngredient(subRecipeID SubRecipeID, ingredientID IngredientID, qtyPerUnit decimal.Decimal, unitTypeID UnitTypeID) (*SubRecipeIngredient, error) {
	if subRecipeID <= 0 {
		return nil, fmt.Errorf("sub-recipe id must be positive, got %d", subRecipeID)
	}
	if ingredientID <= 0 {
		return nil, fmt.Errorf("ingredient id must be positive, got %d", ingredientID)
	}
	if qtyPerUnit.Sign() < 0 {
		return nil, fmt.Errorf("quantity per unit cannot be negative, got %s", qtyPerUnit)
	}
	return &SubRecipeIngredient{
		SubRecipeID:  subRecipeID,
		IngredientID: ingredientID,
		QtyPerUnit:   qtyPerUnit,
		UnitTypeID:   unitTypeID,
	}, nil
}

// IngredientSet is the set of catalog identifiers denoting one logical
// ingredient. A single ingredient can carry more than one identifier due to
// unit or catalog variants.
type IngredientSet map[IngredientID]struct{}

// NewIngredientSet creates an IngredientSet from a list of identifiers
func NewIngredientSet(ids ...IngredientID) IngredientSet {
	set := make(IngredientSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether the set includes the given identifier
func (s IngredientSet) Contains(id IngredientID) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the set members in ascending order
func (s IngredientSet) IDs() []IngredientID {
	ids := make([]IngredientID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
