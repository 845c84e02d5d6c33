package shopping

import (
	"github.com/mealwright/mealwright/internal/models"
)

// DefaultCategory is assigned to ingredients with no category mapping.
const DefaultCategory = "Misc"

// CategoryResolver maps ingredient names to display categories for one user.
type CategoryResolver struct {
	byName map[string]string
}

// NewCategoryResolver indexes the user's category mappings. Lookup uses the
// same normalization as ingredient keys, so "Flour" and "flour" resolve alike.
func NewCategoryResolver(mappings []models.CategoryMapping) *CategoryResolver {
	byName := make(map[string]string, len(mappings))
	for _, m := range mappings {
		byName[models.NormalizeName(m.IngredientName)] = m.Category
	}
	return &CategoryResolver{byName: byName}
}

// Resolve returns the category for an ingredient name, or DefaultCategory
// when the name is unmapped.
func (r *CategoryResolver) Resolve(name string) string {
	if cat, ok := r.byName[models.NormalizeName(name)]; ok {
		return cat
	}
	return DefaultCategory
}
