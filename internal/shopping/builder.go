package shopping

import (
	"sort"

	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/units"
)

// Input carries everything the shopping-list pipeline needs. The caller is
// responsible for fetching it all up front; Build performs no I/O.
type Input struct {
	// Plan is the meal plan to shop for.
	Plan models.MealPlan

	// Recipes resolves every recipe id the plan references.
	Recipes map[string]models.Recipe

	// Staples are the user's standing items, merged into the aggregate once
	// per list regardless of the plan's recipes. Filters and modified
	// amounts apply to them like any other ingredient.
	Staples []models.IngredientLine

	// Overrides are the user corrections for the plan's date.
	Overrides Overrides

	// Categories are the user's category mappings.
	Categories []models.CategoryMapping
}

// UnresolvedEntry reports an ingredient whose aggregate hit a unit-family
// conflict that no modified amount resolved. It needs manual resolution and is
// excluded from the entry list rather than included with an arbitrary unit.
type UnresolvedEntry struct {
	Key      models.IngredientKey
	Conflict *units.UnitConflict
}

// Diagnostics carries the non-fatal problems encountered while building.
type Diagnostics struct {
	Unresolved []UnresolvedEntry
}

// listRow pairs an entry with its provenance for sorting. Derived entries
// order before extras when everything else ties.
type listRow struct {
	entry     models.ShoppingListEntry
	fromExtra bool
}

// Build computes the ordered shopping list for a plan: aggregate the planned
// recipes, fold in the staples, apply overrides, resolve categories, and sort
// by category then ingredient name. It is deterministic: identical inputs produce an identical
// list. The error return is reserved for usage errors such as a plan
// referencing a recipe the caller did not supply.
func Build(in Input) ([]models.ShoppingListEntry, Diagnostics, error) {
	totals, err := Aggregate(in.Plan.Recipes, in.Recipes)
	if err != nil {
		return nil, Diagnostics{}, err
	}
	for _, line := range in.Staples {
		mergeLine(totals, line.Key, line.Quantity)
	}

	merged, extras := in.Overrides.Apply(totals)
	resolver := NewCategoryResolver(in.Categories)

	var diags Diagnostics
	rows := make([]listRow, 0, len(merged)+len(extras))
	for key, total := range merged {
		if total.Unresolved {
			diags.Unresolved = append(diags.Unresolved, UnresolvedEntry{Key: key, Conflict: total.Conflict})
			continue
		}
		rows = append(rows, listRow{entry: models.ShoppingListEntry{
			Name:     key.Name,
			Form:     key.Form,
			Quantity: total.Quantity,
			Category: resolver.Resolve(key.Name),
		}})
	}
	for _, extra := range extras {
		rows = append(rows, listRow{fromExtra: true, entry: models.ShoppingListEntry{
			Name:     models.NormalizeName(extra.Name),
			Quantity: extra.Quantity,
			Category: resolver.Resolve(extra.Name),
		}})
	}

	// Keys can tie on (category, name, form) when they differ only in unit
	// family, and an extra can share a derived entry's name. The tiebreak
	// chain must fully order every row or the output depends on map
	// iteration order.
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.entry.Category != b.entry.Category {
			return a.entry.Category < b.entry.Category
		}
		if a.entry.Name != b.entry.Name {
			return a.entry.Name < b.entry.Name
		}
		if a.entry.Form != b.entry.Form {
			return a.entry.Form < b.entry.Form
		}
		if a.fromExtra != b.fromExtra {
			return !a.fromExtra
		}
		if af, bf := a.entry.Quantity.Family(), b.entry.Quantity.Family(); af != bf {
			return af.String() < bf.String()
		}
		return a.entry.Quantity.String() < b.entry.Quantity.String()
	})

	entries := make([]models.ShoppingListEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.entry
	}
	sort.Slice(diags.Unresolved, func(i, j int) bool {
		a, b := diags.Unresolved[i].Key, diags.Unresolved[j].Key
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Form < b.Form
	})

	return entries, diags, nil
}
