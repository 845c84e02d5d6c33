package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/recipe"
	"github.com/mealwright/mealwright/internal/storage"
)

// RecipeService ingests, lists and deletes recipes.
type RecipeService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(store storage.Store, logger *slog.Logger) *RecipeService {
	return &RecipeService{store: store, logger: logger}
}

// Ingest parses raw recipe text and persists it. Malformed ingredient lines
// are returned as warnings; the recipe is saved with its well-formed lines.
// An update keeps the existing id so plans referencing it stay valid.
func (s *RecipeService) Ingest(ctx context.Context, userID, recipeID, raw string) (*models.Recipe, []*recipe.ParseError, error) {
	rec, warnings, err := recipe.Parse(raw)
	if err != nil {
		return nil, nil, err
	}
	rec.ID = recipeID

	if err := s.store.SaveRecipe(ctx, userID, &rec, raw); err != nil {
		return nil, nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	s.logger.Info("recipe ingested",
		"user_id", userID, "recipe_id", rec.ID, "title", rec.Title,
		"ingredients", len(rec.Ingredients), "warnings", len(warnings))
	return &rec, warnings, nil
}

// Get returns one recipe by id.
func (s *RecipeService) Get(ctx context.Context, userID, recipeID string) (*models.Recipe, error) {
	recipes, err := s.store.GetRecipes(ctx, userID, []string{recipeID})
	if err != nil {
		return nil, err
	}
	rec := recipes[recipeID]
	return &rec, nil
}

// List returns all of the user's recipes, ordered by title.
func (s *RecipeService) List(ctx context.Context, userID string) ([]models.Recipe, error) {
	return s.store.GetAllRecipes(ctx, userID)
}

// Delete removes a recipe.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID string) error {
	return s.store.DeleteRecipe(ctx, userID, recipeID)
}

// SetStaples replaces the user's standing staples list. The text uses the
// recipe format; its title only labels the list. Malformed lines are
// returned as warnings, same as recipe ingestion.
func (s *RecipeService) SetStaples(ctx context.Context, userID, raw string) ([]*recipe.ParseError, error) {
	rec, warnings, err := recipe.Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveStaples(ctx, userID, raw); err != nil {
		return nil, fmt.Errorf("failed to save staples: %w", err)
	}
	s.logger.Info("staples saved",
		"user_id", userID, "items", len(rec.Ingredients), "warnings", len(warnings))
	return warnings, nil
}

// Staples returns the user's staples lines, empty when never set.
func (s *RecipeService) Staples(ctx context.Context, userID string) ([]models.IngredientLine, error) {
	return loadStaples(ctx, s.store, userID)
}
