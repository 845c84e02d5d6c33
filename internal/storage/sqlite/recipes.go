package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/recipe"
	"github.com/mealwright/mealwright/internal/storage"
)

// SaveRecipe persists a recipe with its raw text, upserting by recipe id.
// Recipes with no id get one assigned.
func (s *SQLiteStore) SaveRecipe(ctx context.Context, userID string, rec *models.Recipe, rawText string) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recipes (user_id, recipe_id, title, recipe_text) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, recipe_id) DO UPDATE SET title=excluded.title, recipe_text=excluded.recipe_text`,
		userID, rec.ID, rec.Title, rawText,
	)
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

// GetRecipes retrieves the given recipes for a user, re-parsing their stored
// text. Lines that failed to parse at save time are absent from the stored
// recipe's line set already, so re-parsing is warning-free here.
func (s *SQLiteStore) GetRecipes(ctx context.Context, userID string, ids []string) (map[string]models.Recipe, error) {
	recipes := make(map[string]models.Recipe, len(ids))
	for _, id := range ids {
		rec, err := s.getRecipe(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		recipes[id] = *rec
	}
	return recipes, nil
}

func (s *SQLiteStore) getRecipe(ctx context.Context, userID, recipeID string) (*models.Recipe, error) {
	var title, text string
	err := s.db.QueryRowContext(ctx,
		"SELECT title, recipe_text FROM recipes WHERE user_id = ? AND recipe_id = ?",
		userID, recipeID,
	).Scan(&title, &text)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recipe %s: %w", recipeID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return parseStored(recipeID, title, text)
}

func parseStored(recipeID, title, text string) (*models.Recipe, error) {
	rec, _, err := recipe.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored recipe %s: %w", recipeID, err)
	}
	rec.ID = recipeID
	rec.Title = title
	return &rec, nil
}

// GetAllRecipes lists all of a user's recipes ordered by title.
func (s *SQLiteStore) GetAllRecipes(ctx context.Context, userID string) ([]models.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT recipe_id, title, recipe_text FROM recipes WHERE user_id = ? ORDER BY title",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var id, title, text string
		if err := rows.Scan(&id, &title, &text); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		rec, err := parseStored(id, title, text)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipes: %w", err)
	}
	return recipes, nil
}

// DeleteRecipe removes a recipe.
func (s *SQLiteStore) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM recipes WHERE user_id = ? AND recipe_id = ?",
		userID, recipeID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}
