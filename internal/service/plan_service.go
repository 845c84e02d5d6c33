package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/storage"
)

// ErrInvalidCount is returned when a planned recipe carries a non-positive
// multiplier.
var ErrInvalidCount = errors.New("planned recipe count must be positive")

// PlanService manages meal plans.
type PlanService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewPlanService creates a new plan service.
func NewPlanService(store storage.Store, logger *slog.Logger) *PlanService {
	return &PlanService{store: store, logger: logger}
}

// Set upserts the plan for (user, date). Every referenced recipe must exist
// and every count must be positive; the previous recipe set for the date is
// replaced, not merged.
func (s *PlanService) Set(ctx context.Context, userID string, date time.Time, planned []models.PlannedRecipe) error {
	ids := make([]string, 0, len(planned))
	for _, pr := range planned {
		if pr.Count <= 0 {
			return fmt.Errorf("%w: recipe %s has count %d", ErrInvalidCount, pr.RecipeID, pr.Count)
		}
		ids = append(ids, pr.RecipeID)
	}
	if _, err := s.store.GetRecipes(ctx, userID, ids); err != nil {
		return fmt.Errorf("plan references unknown recipe: %w", err)
	}

	plan := &models.MealPlan{UserID: userID, Date: date, Recipes: planned}
	if err := s.store.SavePlan(ctx, plan); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}

	s.logger.Info("plan saved",
		"user_id", userID, "plan_date", date.Format("2006-01-02"), "recipes", len(planned))
	return nil
}

// Get returns the plan for an exact date.
func (s *PlanService) Get(ctx context.Context, userID string, date time.Time) (*models.MealPlan, error) {
	return s.store.GetPlan(ctx, userID, date)
}

// Latest returns the plan with the most recent date.
func (s *PlanService) Latest(ctx context.Context, userID string) (*models.MealPlan, error) {
	return s.store.GetLatestPlan(ctx, userID)
}

// Dates lists the user's plan dates, newest first.
func (s *PlanService) Dates(ctx context.Context, userID string) ([]time.Time, error) {
	return s.store.GetPlanDates(ctx, userID)
}

// Delete removes the plan for a date along with every override scoped to it.
func (s *PlanService) Delete(ctx context.Context, userID string, date time.Time) error {
	return s.store.DeletePlan(ctx, userID, date)
}
