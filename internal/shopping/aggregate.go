// Package shopping computes shopping lists from meal plans.
//
// The pipeline runs aggregate -> override -> categorize -> sort. Every stage
// is a pure function of its inputs: identical inputs always produce an
// identical list, and the package holds no state between invocations, so it is
// safe to call concurrently for different users or plan dates. All required
// data must be fetched by the caller beforehand; nothing here performs I/O.
package shopping

import (
	"errors"
	"fmt"

	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/units"
)

// Total is the running aggregate for one ingredient key. When merging hit a
// unit-family conflict the total is flagged unresolved: the quantity seen
// before the clash is retained for display, and the key is carried through the
// pipeline until a modified amount resolves it or it is surfaced as a
// diagnostic.
type Total struct {
	Quantity   units.Quantity
	Unresolved bool
	Conflict   *units.UnitConflict
}

// ErrUnknownRecipe is returned when a plan references a recipe id the caller
// did not supply. This is a usage error, not a recoverable diagnostic.
var ErrUnknownRecipe = errors.New("plan references unknown recipe")

// Aggregate scales each planned recipe's ingredient lines by its count and
// merges them into per-key totals. Unit conflicts within a key are recorded
// on the total rather than aborting the merge.
func Aggregate(planned []models.PlannedRecipe, recipes map[string]models.Recipe) (map[models.IngredientKey]Total, error) {
	totals := make(map[models.IngredientKey]Total)
	for _, pr := range planned {
		rec, ok := recipes[pr.RecipeID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, pr.RecipeID)
		}
		if pr.Count <= 0 {
			return nil, fmt.Errorf("recipe %s planned with non-positive count %d", pr.RecipeID, pr.Count)
		}
		for _, line := range rec.Ingredients {
			mergeLine(totals, line.Key, units.Scale(line.Quantity, pr.Count))
		}
	}
	return totals, nil
}

// mergeLine folds one quantity into the running total for its key. A
// unit-family clash flags the total unresolved, keeping the first-seen
// quantity for display.
func mergeLine(totals map[models.IngredientKey]Total, key models.IngredientKey, q units.Quantity) {
	cur, exists := totals[key]
	if !exists {
		totals[key] = Total{Quantity: q}
		return
	}
	if cur.Unresolved {
		return
	}
	sum, err := units.Add(cur.Quantity, q)
	if err != nil {
		var conflict *units.UnitConflict
		errors.As(err, &conflict)
		totals[key] = Total{Quantity: cur.Quantity, Unresolved: true, Conflict: conflict}
		return
	}
	totals[key] = Total{Quantity: sum}
}
