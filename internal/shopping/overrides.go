package shopping

import (
	"github.com/mealwright/mealwright/internal/models"
)

// Overrides bundles the user corrections applied on top of an aggregate for
// one (user, plan date).
type Overrides struct {
	Filtered []models.FilteredIngredient
	Modified []models.ModifiedAmount
	Extras   []models.ExtraItem
}

// Apply layers the overrides onto the aggregate in the load-bearing order:
// filters remove keys, modified amounts replace quantities (resolving any
// recorded conflict), extras are appended untouched. The order matters: an
// extra item sharing a name with a filtered ingredient still appears, because
// extras are keyed by name only and appended after filtering.
//
// The input map is not mutated.
func (o Overrides) Apply(totals map[models.IngredientKey]Total) (map[models.IngredientKey]Total, []models.ExtraItem) {
	out := make(map[models.IngredientKey]Total, len(totals))
	for k, v := range totals {
		out[k] = v
	}

	for _, f := range o.Filtered {
		delete(out, f.Key)
	}

	for _, m := range o.Modified {
		if _, ok := out[m.Key]; !ok {
			continue
		}
		out[m.Key] = Total{Quantity: m.Quantity}
	}

	return out, o.Extras
}
