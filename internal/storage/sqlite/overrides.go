package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/units"
)

// SaveFilteredIngredient upserts an ingredient exclusion.
func (s *SQLiteStore) SaveFilteredIngredient(ctx context.Context, f *models.FilteredIngredient) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO filtered_ingredients (user_id, plan_date, name, form, measure_type) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		f.UserID, dateString(f.PlanDate), f.Key.Name, f.Key.Form, f.Key.MeasureType,
	)
	if err != nil {
		return fmt.Errorf("failed to save filtered ingredient: %w", err)
	}
	return nil
}

// DeleteFilteredIngredient removes an exclusion.
func (s *SQLiteStore) DeleteFilteredIngredient(ctx context.Context, f *models.FilteredIngredient) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM filtered_ingredients WHERE user_id = ? AND plan_date = ? AND name = ? AND form = ? AND measure_type = ?",
		f.UserID, dateString(f.PlanDate), f.Key.Name, f.Key.Form, f.Key.MeasureType,
	)
	if err != nil {
		return fmt.Errorf("failed to delete filtered ingredient: %w", err)
	}
	return nil
}

// GetFilteredIngredients lists the exclusions for (user, date).
func (s *SQLiteStore) GetFilteredIngredients(ctx context.Context, userID string, date time.Time) ([]models.FilteredIngredient, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, form, measure_type FROM filtered_ingredients
		 WHERE user_id = ? AND plan_date = ? ORDER BY name, form, measure_type`,
		userID, dateString(date),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get filtered ingredients: %w", err)
	}
	defer rows.Close()

	var filtered []models.FilteredIngredient
	for rows.Next() {
		f := models.FilteredIngredient{UserID: userID, PlanDate: date}
		if err := rows.Scan(&f.Key.Name, &f.Key.Form, &f.Key.MeasureType); err != nil {
			return nil, fmt.Errorf("failed to scan filtered ingredient: %w", err)
		}
		filtered = append(filtered, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate filtered ingredients: %w", err)
	}
	return filtered, nil
}

// SaveModifiedAmount upserts an amount correction. The quantity is stored in
// its text form, which round-trips exactly.
func (s *SQLiteStore) SaveModifiedAmount(ctx context.Context, m *models.ModifiedAmount) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO modified_amts (user_id, plan_date, name, form, measure_type, amt) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, plan_date, name, form, measure_type) DO UPDATE SET amt=excluded.amt`,
		m.UserID, dateString(m.PlanDate), m.Key.Name, m.Key.Form, m.Key.MeasureType, m.Quantity.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save modified amount: %w", err)
	}
	return nil
}

// GetModifiedAmounts lists the amount corrections for (user, date).
func (s *SQLiteStore) GetModifiedAmounts(ctx context.Context, userID string, date time.Time) ([]models.ModifiedAmount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, form, measure_type, amt FROM modified_amts
		 WHERE user_id = ? AND plan_date = ? ORDER BY name, form, measure_type`,
		userID, dateString(date),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get modified amounts: %w", err)
	}
	defer rows.Close()

	var modified []models.ModifiedAmount
	for rows.Next() {
		m := models.ModifiedAmount{UserID: userID, PlanDate: date}
		var amt string
		if err := rows.Scan(&m.Key.Name, &m.Key.Form, &m.Key.MeasureType, &amt); err != nil {
			return nil, fmt.Errorf("failed to scan modified amount: %w", err)
		}
		q, err := units.Parse(amt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored amount %q: %w", amt, err)
		}
		m.Quantity = q
		modified = append(modified, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate modified amounts: %w", err)
	}
	return modified, nil
}

// SaveExtraItem upserts a manually added item by (user, date, name).
func (s *SQLiteStore) SaveExtraItem(ctx context.Context, e *models.ExtraItem) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO extra_items (user_id, plan_date, name, amt) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, plan_date, name) DO UPDATE SET amt=excluded.amt`,
		e.UserID, dateString(e.PlanDate), e.Name, e.Quantity.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to save extra item: %w", err)
	}
	return nil
}

// DeleteExtraItem removes a manually added item.
func (s *SQLiteStore) DeleteExtraItem(ctx context.Context, userID string, date time.Time, name string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM extra_items WHERE user_id = ? AND plan_date = ? AND name = ?",
		userID, dateString(date), name,
	)
	if err != nil {
		return fmt.Errorf("failed to delete extra item: %w", err)
	}
	return nil
}

// GetExtraItems lists the manual additions for (user, date).
func (s *SQLiteStore) GetExtraItems(ctx context.Context, userID string, date time.Time) ([]models.ExtraItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, amt FROM extra_items WHERE user_id = ? AND plan_date = ? ORDER BY name",
		userID, dateString(date),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get extra items: %w", err)
	}
	defer rows.Close()

	var extras []models.ExtraItem
	for rows.Next() {
		e := models.ExtraItem{UserID: userID, PlanDate: date}
		var amt string
		if err := rows.Scan(&e.Name, &amt); err != nil {
			return nil, fmt.Errorf("failed to scan extra item: %w", err)
		}
		q, err := units.Parse(amt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored amount %q: %w", amt, err)
		}
		e.Quantity = q
		extras = append(extras, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate extra items: %w", err)
	}
	return extras, nil
}

// SaveCategoryMapping upserts a mapping by (user, ingredient name).
func (s *SQLiteStore) SaveCategoryMapping(ctx context.Context, m *models.CategoryMapping) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO category_mappings (user_id, ingredient_name, category_name) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, ingredient_name) DO UPDATE SET category_name=excluded.category_name`,
		m.UserID, models.NormalizeName(m.IngredientName), m.Category,
	)
	if err != nil {
		return fmt.Errorf("failed to save category mapping: %w", err)
	}
	return nil
}

// GetCategoryMappings lists the user's category mappings.
func (s *SQLiteStore) GetCategoryMappings(ctx context.Context, userID string) ([]models.CategoryMapping, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT ingredient_name, category_name FROM category_mappings WHERE user_id = ? ORDER BY ingredient_name",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get category mappings: %w", err)
	}
	defer rows.Close()

	var mappings []models.CategoryMapping
	for rows.Next() {
		m := models.CategoryMapping{UserID: userID}
		if err := rows.Scan(&m.IngredientName, &m.Category); err != nil {
			return nil, fmt.Errorf("failed to scan category mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category mappings: %w", err)
	}
	return mappings, nil
}
