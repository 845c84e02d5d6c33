package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/storage"
)

// SavePlan upserts the plan for (user, date), replacing its recipe set.
func (s *SQLiteStore) SavePlan(ctx context.Context, plan *models.MealPlan) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	date := dateString(plan.Date)
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO plans (user_id, plan_date) VALUES (?, ?) ON CONFLICT DO NOTHING",
		plan.UserID, date,
	); err != nil {
		return fmt.Errorf("failed to upsert plan: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM plan_recipes WHERE user_id = ? AND plan_date = ?",
		plan.UserID, date,
	); err != nil {
		return fmt.Errorf("failed to clear plan recipes: %w", err)
	}

	for _, pr := range plan.Recipes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO plan_recipes (user_id, plan_date, recipe_id, count) VALUES (?, ?, ?, ?)",
			plan.UserID, date, pr.RecipeID, pr.Count,
		); err != nil {
			return fmt.Errorf("failed to insert plan recipe: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetLatestPlan returns the plan with the maximum date for the user.
func (s *SQLiteStore) GetLatestPlan(ctx context.Context, userID string) (*models.MealPlan, error) {
	// MAX over an empty set yields NULL, not ErrNoRows.
	var date sql.NullString
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(plan_date) FROM plans WHERE user_id = ?",
		userID,
	).Scan(&date)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest plan date: %w", err)
	}
	if !date.Valid {
		return nil, fmt.Errorf("no plans for user %s: %w", userID, storage.ErrNotFound)
	}
	parsed, err := parseDate(date.String)
	if err != nil {
		return nil, err
	}
	return s.GetPlan(ctx, userID, parsed)
}

// GetPlan returns the plan for an exact (user, date).
func (s *SQLiteStore) GetPlan(ctx context.Context, userID string, date time.Time) (*models.MealPlan, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM plans WHERE user_id = ? AND plan_date = ?",
		userID, dateString(date),
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan for %s on %s: %w", userID, dateString(date), storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT recipe_id, count FROM plan_recipes WHERE user_id = ? AND plan_date = ? ORDER BY recipe_id",
		userID, dateString(date),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan recipes: %w", err)
	}
	defer rows.Close()

	plan := &models.MealPlan{UserID: userID, Date: date}
	for rows.Next() {
		var pr models.PlannedRecipe
		if err := rows.Scan(&pr.RecipeID, &pr.Count); err != nil {
			return nil, fmt.Errorf("failed to scan plan recipe: %w", err)
		}
		plan.Recipes = append(plan.Recipes, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan recipes: %w", err)
	}
	return plan, nil
}

// GetPlanDates lists the user's plan dates, newest first.
func (s *SQLiteStore) GetPlanDates(ctx context.Context, userID string) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT plan_date FROM plans WHERE user_id = ? ORDER BY plan_date DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan plan date: %w", err)
		}
		date, err := parseDate(raw)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plan dates: %w", err)
	}
	return dates, nil
}

// DeletePlan removes the plan for (user, date). The schema's foreign keys
// cascade the delete to plan recipes, filtered ingredients, modified amounts
// and extra items scoped to the plan.
func (s *SQLiteStore) DeletePlan(ctx context.Context, userID string, date time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM plans WHERE user_id = ? AND plan_date = ?",
		userID, dateString(date),
	)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	return nil
}
