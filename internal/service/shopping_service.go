// Package service implements the application services that sit between the
// HTTP/CLI surfaces and the shopping engine. Services fetch state through the
// storage.Store, hand plain values to the pure packages, and persist results.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/recipe"
	"github.com/mealwright/mealwright/internal/shopping"
	"github.com/mealwright/mealwright/internal/storage"
)

// ErrNoPlan is returned when a user asks for a shopping list without any
// saved meal plan.
var ErrNoPlan = errors.New("no meal plan found")

// ShoppingList is a built list together with the plan date it was built for
// and any diagnostics the pipeline surfaced.
type ShoppingList struct {
	Date        time.Time
	Entries     []models.ShoppingListEntry
	Diagnostics shopping.Diagnostics
}

// ShoppingListService builds shopping lists from stored plans.
type ShoppingListService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewShoppingListService creates a new shopping list service.
func NewShoppingListService(store storage.Store, logger *slog.Logger) *ShoppingListService {
	return &ShoppingListService{store: store, logger: logger}
}

// Build computes the shopping list for the user's most recent plan date.
func (s *ShoppingListService) Build(ctx context.Context, userID string) (*ShoppingList, error) {
	plan, err := s.store.GetLatestPlan(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoPlan
		}
		return nil, fmt.Errorf("failed to load latest plan: %w", err)
	}
	return s.buildForPlan(ctx, plan)
}

// BuildForDate computes the shopping list for an exact plan date.
func (s *ShoppingListService) BuildForDate(ctx context.Context, userID string, date time.Time) (*ShoppingList, error) {
	plan, err := s.store.GetPlan(ctx, userID, date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoPlan
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	return s.buildForPlan(ctx, plan)
}

func (s *ShoppingListService) buildForPlan(ctx context.Context, plan *models.MealPlan) (*ShoppingList, error) {
	ids := make([]string, 0, len(plan.Recipes))
	for _, pr := range plan.Recipes {
		ids = append(ids, pr.RecipeID)
	}
	recipes, err := s.store.GetRecipes(ctx, plan.UserID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load planned recipes: %w", err)
	}

	overrides, err := storage.OverridesFor(ctx, s.store, plan.UserID, plan.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load overrides: %w", err)
	}

	staples, err := loadStaples(ctx, s.store, plan.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load staples: %w", err)
	}

	mappings, err := s.store.GetCategoryMappings(ctx, plan.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category mappings: %w", err)
	}

	entries, diags, err := shopping.Build(shopping.Input{
		Plan:       *plan,
		Recipes:    recipes,
		Staples:    staples,
		Overrides:  overrides,
		Categories: mappings,
	})
	if err != nil {
		return nil, err
	}

	if n := len(diags.Unresolved); n > 0 {
		s.logger.Warn("shopping list has unresolved ingredients",
			"user_id", plan.UserID, "plan_date", plan.Date.Format("2006-01-02"), "count", n)
	}

	return &ShoppingList{Date: plan.Date, Entries: entries, Diagnostics: diags}, nil
}

// loadStaples fetches and parses the user's staples text. A user who never
// saved staples gets an empty list, not an error.
func loadStaples(ctx context.Context, store storage.Store, userID string) ([]models.IngredientLine, error) {
	raw, err := store.GetStaples(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec, _, err := recipe.Parse(raw)
	if err != nil {
		return nil, err
	}
	return rec.Ingredients, nil
}
