package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/storage"
	"github.com/mealwright/mealwright/internal/units"
)

// ErrMeasureMismatch is returned when a modified amount's unit family does
// not match the key it corrects. A volume key cannot be corrected to grams;
// that would reintroduce the conflict the override exists to resolve.
var ErrMeasureMismatch = errors.New("amount unit family does not match ingredient key")

// OverrideService manages the per-plan-date corrections: ingredient filters,
// modified amounts, extra items, plus the per-user category mappings.
// Amounts arrive as text ("2 1/2 cups") and are parsed here, so the surfaces
// above never handle quantities directly.
type OverrideService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewOverrideService creates a new override service.
func NewOverrideService(store storage.Store, logger *slog.Logger) *OverrideService {
	return &OverrideService{store: store, logger: logger}
}

// Filter excludes an ingredient key from the list for a plan date.
func (s *OverrideService) Filter(ctx context.Context, userID string, date time.Time, key models.IngredientKey) error {
	f := &models.FilteredIngredient{UserID: userID, PlanDate: date, Key: normalizeKey(key)}
	return s.store.SaveFilteredIngredient(ctx, f)
}

// Unfilter removes an exclusion.
func (s *OverrideService) Unfilter(ctx context.Context, userID string, date time.Time, key models.IngredientKey) error {
	f := &models.FilteredIngredient{UserID: userID, PlanDate: date, Key: normalizeKey(key)}
	return s.store.DeleteFilteredIngredient(ctx, f)
}

// SetAmount replaces the computed quantity for an ingredient key with the
// parsed amount text. The amount's unit family must match the key's.
func (s *OverrideService) SetAmount(ctx context.Context, userID string, date time.Time, key models.IngredientKey, amount string) error {
	q, err := units.Parse(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	key = normalizeKey(key)
	if q.Family().String() != key.MeasureType {
		return fmt.Errorf("%w: %s vs %s", ErrMeasureMismatch, q.Family(), key.MeasureType)
	}

	m := &models.ModifiedAmount{UserID: userID, PlanDate: date, Key: key, Quantity: q}
	if err := s.store.SaveModifiedAmount(ctx, m); err != nil {
		return err
	}
	s.logger.Info("amount overridden",
		"user_id", userID, "plan_date", date.Format("2006-01-02"), "name", key.Name, "amount", q.String())
	return nil
}

// AddExtra adds a manual item for a plan date, upserting by name.
func (s *OverrideService) AddExtra(ctx context.Context, userID string, date time.Time, name, amount string) error {
	q, err := units.Parse(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	e := &models.ExtraItem{UserID: userID, PlanDate: date, Name: name, Quantity: q}
	return s.store.SaveExtraItem(ctx, e)
}

// RemoveExtra removes a manual item by name.
func (s *OverrideService) RemoveExtra(ctx context.Context, userID string, date time.Time, name string) error {
	return s.store.DeleteExtraItem(ctx, userID, date, name)
}

// SetCategory assigns an ingredient name to a display category.
func (s *OverrideService) SetCategory(ctx context.Context, userID, ingredientName, category string) error {
	m := &models.CategoryMapping{UserID: userID, IngredientName: ingredientName, Category: category}
	return s.store.SaveCategoryMapping(ctx, m)
}

func normalizeKey(key models.IngredientKey) models.IngredientKey {
	key.Name = models.NormalizeName(key.Name)
	key.Form = models.NormalizeName(key.Form)
	return key
}
