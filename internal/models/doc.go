// Package models defines the core domain models for Mealwright.
//
// # Models
//
//   - Recipe: a parsed recipe with its ordered ingredient lines
//   - IngredientLine / IngredientKey: a measured ingredient and its merge identity
//   - MealPlan / PlannedRecipe: recipes scheduled for a date at a multiplier
//   - FilteredIngredient, ModifiedAmount, ExtraItem: user overrides layered on
//     top of the computed shopping list
//   - CategoryMapping: per-user ingredient-to-category assignments
//   - ShoppingListEntry: one line of the final shopping list
//   - User: a registered account
//
// # Design Principles
//
//  1. Recipes are immutable once parsed; editing a recipe re-parses its text
//     into a new value rather than mutating in place.
//  2. Ingredient identity is the normalized (name, form, measure type) triple,
//     so the same ingredient written by different authors merges correctly.
//  3. Overrides are scoped to (user, plan date) and reference ingredients by
//     key; extra items are keyed by name only and never merge with
//     recipe-derived entries.
//  4. Models use ID strings instead of pointers for relationships to avoid
//     circular references.
package models
