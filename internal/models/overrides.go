package models

import (
	"time"

	"github.com/mealwright/mealwright/internal/units"
)

// FilteredIngredient excludes an ingredient key from the shopping list for a
// plan date, regardless of its computed amount.
type FilteredIngredient struct {
	UserID   string
	PlanDate time.Time
	Key      IngredientKey
}

// ModifiedAmount replaces the computed quantity for an ingredient key with a
// user-asserted one. Applying a modified amount also resolves any unit
// conflict recorded for the key during aggregation.
type ModifiedAmount struct {
	UserID   string
	PlanDate time.Time
	Key      IngredientKey
	Quantity units.Quantity
}

// ExtraItem is a manually added shopping-list entry with no backing recipe.
// Extras are keyed by name only and are never merged with recipe-derived
// ingredients, even when the names coincide.
type ExtraItem struct {
	UserID   string
	PlanDate time.Time
	Name     string
	Quantity units.Quantity
}

// CategoryMapping assigns an ingredient name to a display category for one
// user. Unmapped names fall back to the "Misc" category.
type CategoryMapping struct {
	UserID         string
	IngredientName string
	Category       string
}

// ShoppingListEntry is one line of the final shopping list.
type ShoppingListEntry struct {
	// Name is the normalized ingredient name.
	Name string

	// Form is the descriptive form, empty when none.
	Form string

	// Quantity is the final amount to buy.
	Quantity units.Quantity

	// Category is the display category, "Misc" when unmapped.
	Category string
}
