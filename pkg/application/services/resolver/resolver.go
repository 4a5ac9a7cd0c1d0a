package resolver

import (
	"sort"

	"github.com/demandcast/demandcast/pkg/application/dto"
	"github.com/demandcast/demandcast/pkg/domain/entities"
	"github.com/demandcast/demandcast/pkg/domain/repositories"
)

// Resolver joins order lines to recipe and sub-recipe ingredient assignments
// and computes per-order-line consumption for a target ingredient set.
type Resolver struct {
	catalog repositories.CatalogRepository
	targets entities.IngredientSet
}

// New creates a resolver for the given catalog and target ingredient set
func New(catalog repositories.CatalogRepository, targets entities.IngredientSet) *Resolver {
	return &Resolver{
		catalog: catalog,
		targets: targets,
	}
}

// Resolve produces the ResolvedConsumption set for the given order lines.
//
// Output is a pure function of the input set: permuting the input rows yields
// the same rows (the result is sorted for determinism). Row-local failures —
// an unresolvable recipe chain, a negative quantity — exclude the row and
// increment a diagnostic count.
func (r *Resolver) Resolve(lines []*entities.OrderLine) ([]*entities.ResolvedConsumption, *dto.ResolveDiagnostics, error) {
	diags := &dto.ResolveDiagnostics{}
	var resolved []*entities.ResolvedConsumption

	for _, line := range lines {
		diags.LinesSeen++

		if line.Quantity.Sign() < 0 {
			diags.InvalidQuantities++
			continue
		}

		menuItem, err := r.catalog.GetMenuItem(line.PLU)
		if err != nil {
			// Reference-data incompleteness is expected in multi-year POS
			// exports; drop the line and count it.
			diags.ReferenceGaps++
			continue
		}

		rows, err := r.resolveLine(line, menuItem.RecipeID, diags)
		if err != nil {
			return nil, nil, err
		}
		resolved = append(resolved, rows...)
	}

	diags.RowsResolved = len(resolved)
	sortResolved(resolved)
	return resolved, diags, nil
}

// resolveLine walks both join paths for one order line. It returns no rows
// when the recipe matches neither assignment table (ReferenceGap, counted
// here) or when the recipe touches no target ingredient (absence, not an
// error).
func (r *Resolver) resolveLine(line *entities.OrderLine, recipeID entities.RecipeID, diags *dto.ResolveDiagnostics) ([]*entities.ResolvedConsumption, error) {
	direct, err := r.catalog.GetRecipeIngredients(recipeID)
	if err != nil {
		return nil, err
	}
	links, err := r.catalog.GetSubRecipeLinks(recipeID)
	if err != nil {
		return nil, err
	}

	if len(direct) == 0 && len(links) == 0 {
		diags.ReferenceGaps++
		return nil, nil
	}

	perIngredient := make(map[entities.IngredientID]*entities.ResolvedConsumption)

	// Direct path: quantity_ordered × quantity_per_unit.
	for _, assignment := range direct {
		if !r.targets.Contains(assignment.IngredientID) {
			continue
		}
		consumed := line.Quantity.Mul(assignment.QtyPerUnit)
		if existing, ok := perIngredient[assignment.IngredientID]; ok {
			existing.Quantity = existing.Quantity.Add(consumed)
			continue
		}
		perIngredient[assignment.IngredientID] = &entities.ResolvedConsumption{
			OrderID:      line.OrderID,
			StoreID:      line.StoreID,
			Date:         line.Date,
			IngredientID: assignment.IngredientID,
			Quantity:     consumed,
			Path:         entities.DirectPath,
		}
	}

	// Indirect path: quantity_ordered × factor × quantity_per_unit. A recipe
	// normally reaches an ingredient through one path only; when both paths
	// match the same ingredient the direct row wins and the conflict is
	// counted rather than double-counted.
	for _, link := range links {
		subRows, err := r.catalog.GetSubRecipeIngredients(link.SubRecipeID)
		if err != nil {
			return nil, err
		}
		for _, assignment := range subRows {
			if !r.targets.Contains(assignment.IngredientID) {
				continue
			}
			if existing, ok := perIngredient[assignment.IngredientID]; ok && existing.Path == entities.DirectPath {
				diags.DualPathConflicts++
				continue
			}
			consumed := line.Quantity.Mul(link.Factor).Mul(assignment.QtyPerUnit)
			if existing, ok := perIngredient[assignment.IngredientID]; ok {
				existing.Quantity = existing.Quantity.Add(consumed)
				continue
			}
			perIngredient[assignment.IngredientID] = &entities.ResolvedConsumption{
				OrderID:      line.OrderID,
				StoreID:      line.StoreID,
				Date:         line.Date,
				IngredientID: assignment.IngredientID,
				Quantity:     consumed,
				Path:         entities.SubRecipePath,
			}
		}
	}

	rows := make([]*entities.ResolvedConsumption, 0, len(perIngredient))
	for _, row := range perIngredient {
		rows = append(rows, row)
	}
	return rows, nil
}

// sortResolved orders rows by (date, store, order, ingredient) so the output
// is stable regardless of input permutation
func sortResolved(rows []*entities.ResolvedConsumption) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StoreID != b.StoreID {
			return a.StoreID < b.StoreID
		}
		if a.OrderID != b.OrderID {
			return a.OrderID < b.OrderID
		}
		return a.IngredientID < b.IngredientID
	})
}
