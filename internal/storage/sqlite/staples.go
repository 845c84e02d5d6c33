package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mealwright/mealwright/internal/storage"
)

// SaveStaples replaces the user's staples text.
func (s *SQLiteStore) SaveStaples(ctx context.Context, userID, rawText string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO staples (user_id, staples_text) VALUES (?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET staples_text=excluded.staples_text`,
		userID, rawText,
	)
	if err != nil {
		return fmt.Errorf("failed to save staples: %w", err)
	}
	return nil
}

// GetStaples returns the user's staples text, or ErrNotFound when unset.
func (s *SQLiteStore) GetStaples(ctx context.Context, userID string) (string, error) {
	var text string
	err := s.db.QueryRowContext(ctx,
		`SELECT staples_text FROM staples WHERE user_id = ?`, userID,
	).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get staples: %w", err)
	}
	return text, nil
}
