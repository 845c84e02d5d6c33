package models

import "time"

// PlannedRecipe schedules a recipe at a positive multiplier. The count scales
// every quantity in the recipe linearly before aggregation.
type PlannedRecipe struct {
	// RecipeID references the scheduled recipe.
	RecipeID string

	// Count is how many times the recipe is planned. Must be positive.
	Count int64
}

// MealPlan is the set of recipes a user has scheduled for a date. Only the
// most recent plan date per user drives shopping-list generation; older dates
// are history.
type MealPlan struct {
	// UserID is the owner of the plan.
	UserID string

	// Date is the plan date. Plans are keyed by (user, date).
	Date time.Time

	// Recipes are the planned recipes with their multipliers.
	Recipes []PlannedRecipe
}
