package models

import (
	"strings"

	"github.com/mealwright/mealwright/internal/units"
)

// IngredientKey uniquely identifies an ingredient for merge purposes. Name and
// form are normalized (lowercased, whitespace-trimmed); the measure type keeps
// "1 cup rice" and "1 bag rice" distinct even when the names match.
type IngredientKey struct {
	// Name is the normalized ingredient name.
	Name string

	// Form is the normalized descriptive form, e.g. "chopped". Empty when the
	// line carries no form.
	Form string

	// MeasureType is the unit family of the line's quantity: "Volume",
	// "Weight" or "Count".
	MeasureType string
}

// NormalizeName lowercases and collapses whitespace so the same ingredient
// written by different authors produces the same key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// NewIngredientKey builds a normalized key from raw name, form and quantity.
func NewIngredientKey(name, form string, q units.Quantity) IngredientKey {
	return IngredientKey{
		Name:        NormalizeName(name),
		Form:        NormalizeName(form),
		MeasureType: q.Family().String(),
	}
}

// IngredientLine is one measured ingredient within a recipe.
type IngredientLine struct {
	// Key is the line's merge identity.
	Key IngredientKey

	// Quantity is the measured amount for one serving of the recipe.
	Quantity units.Quantity
}

// Recipe is a parsed recipe. Recipes are immutable once parsed; re-parsing an
// edited recipe produces a new value.
type Recipe struct {
	// ID is the unique identifier for the recipe (UUID format).
	ID string

	// Title is the human-readable recipe name.
	Title string

	// Ingredients are the recipe's ingredient lines in source order.
	Ingredients []IngredientLine
}
