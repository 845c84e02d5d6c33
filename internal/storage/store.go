// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/shopping"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for persistence operations. This abstraction
// allows swapping storage backends (SQLite, PostgreSQL, etc.) without
// changing the service layer.
//
// The shopping engine itself never touches a Store: services fetch everything
// through these methods first and hand plain values to the engine. The store
// is also the serialization point for concurrent mutation of one
// (user, plan date); the engine provides no locking of its own.
type Store interface {
	// SaveRecipe persists a recipe with its raw text. Upserts by recipe ID;
	// a new recipe gets its ID assigned here.
	SaveRecipe(ctx context.Context, userID string, rec *models.Recipe, rawText string) error

	// GetRecipes retrieves the given recipes for a user. Every id must exist;
	// a missing id returns ErrNotFound.
	GetRecipes(ctx context.Context, userID string, ids []string) (map[string]models.Recipe, error)

	// GetAllRecipes lists all of a user's recipes.
	GetAllRecipes(ctx context.Context, userID string) ([]models.Recipe, error)

	// DeleteRecipe removes a recipe.
	DeleteRecipe(ctx context.Context, userID, recipeID string) error

	// SavePlan upserts the plan for (user, date), replacing its recipe set.
	SavePlan(ctx context.Context, plan *models.MealPlan) error

	// GetLatestPlan returns the plan with the maximum date for the user, or
	// ErrNotFound when the user has no plans.
	GetLatestPlan(ctx context.Context, userID string) (*models.MealPlan, error)

	// GetPlan returns the plan for an exact (user, date).
	GetPlan(ctx context.Context, userID string, date time.Time) (*models.MealPlan, error)

	// GetPlanDates lists the user's plan dates, newest first.
	GetPlanDates(ctx context.Context, userID string) ([]time.Time, error)

	// DeletePlan removes the plan for (user, date) and cascades deletion of
	// every override scoped to it: filters, modified amounts and extra items
	// are meaningless once their plan is gone.
	DeletePlan(ctx context.Context, userID string, date time.Time) error

	// SaveFilteredIngredient upserts an ingredient exclusion.
	SaveFilteredIngredient(ctx context.Context, f *models.FilteredIngredient) error

	// DeleteFilteredIngredient removes an exclusion.
	DeleteFilteredIngredient(ctx context.Context, f *models.FilteredIngredient) error

	// GetFilteredIngredients lists the exclusions for (user, date).
	GetFilteredIngredients(ctx context.Context, userID string, date time.Time) ([]models.FilteredIngredient, error)

	// SaveModifiedAmount upserts an amount correction.
	SaveModifiedAmount(ctx context.Context, m *models.ModifiedAmount) error

	// GetModifiedAmounts lists the amount corrections for (user, date).
	GetModifiedAmounts(ctx context.Context, userID string, date time.Time) ([]models.ModifiedAmount, error)

	// SaveExtraItem upserts a manually added item by (user, date, name).
	SaveExtraItem(ctx context.Context, e *models.ExtraItem) error

	// DeleteExtraItem removes a manually added item.
	DeleteExtraItem(ctx context.Context, userID string, date time.Time, name string) error

	// GetExtraItems lists the manual additions for (user, date).
	GetExtraItems(ctx context.Context, userID string, date time.Time) ([]models.ExtraItem, error)

	// SaveStaples replaces the user's staples text. Staples are one
	// per-user list of standing items, stored as recipe-format text and
	// merged into every shopping list.
	SaveStaples(ctx context.Context, userID, rawText string) error

	// GetStaples returns the user's staples text, or ErrNotFound when the
	// user has never saved one.
	GetStaples(ctx context.Context, userID string) (string, error)

	// SaveCategoryMapping upserts a mapping by (user, ingredient name).
	SaveCategoryMapping(ctx context.Context, m *models.CategoryMapping) error

	// GetCategoryMappings lists the user's category mappings.
	GetCategoryMappings(ctx context.Context, userID string) ([]models.CategoryMapping, error)

	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email, or ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by id, or ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}

// OverridesFor fetches all three override kinds for (user, date) and bundles
// them in pipeline order.
func OverridesFor(ctx context.Context, s Store, userID string, date time.Time) (shopping.Overrides, error) {
	filtered, err := s.GetFilteredIngredients(ctx, userID, date)
	if err != nil {
		return shopping.Overrides{}, err
	}
	modified, err := s.GetModifiedAmounts(ctx, userID, date)
	if err != nil {
		return shopping.Overrides{}, err
	}
	extras, err := s.GetExtraItems(ctx, userID, date)
	if err != nil {
		return shopping.Overrides{}, err
	}
	return shopping.Overrides{Filtered: filtered, Modified: modified, Extras: extras}, nil
}
