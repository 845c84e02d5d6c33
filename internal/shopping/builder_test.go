package shopping

import (
	"reflect"
	"testing"
	"time"

	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/recipe"
	"github.com/mealwright/mealwright/internal/units"
)

func mustRecipe(t *testing.T, raw string) models.Recipe {
	t.Helper()
	rec, parseErrs, err := recipe.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse recipe: %v", err)
	}
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	return rec
}

func testPlan(recipes ...models.PlannedRecipe) models.MealPlan {
	return models.MealPlan{
		UserID:  "alice",
		Date:    time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Recipes: recipes,
	}
}

func TestAggregateScalesByCount(t *testing.T) {
	rec := mustRecipe(t, "title: Cake\n1 cup flour\n2 tbsp sugar\n3 eggs\n")
	rec.ID = "cake"

	totals, err := Aggregate(
		[]models.PlannedRecipe{{RecipeID: "cake", Count: 3}},
		map[string]models.Recipe{"cake": rec},
	)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	for _, line := range rec.Ingredients {
		got, ok := totals[line.Key]
		if !ok {
			t.Fatalf("missing key %+v", line.Key)
		}
		want := units.Scale(line.Quantity, 3)
		if got.Quantity != want {
			t.Errorf("key %v: got %v, want %v", line.Key.Name, got.Quantity, want)
		}
	}
}

// Planning the same recipe twice at count 1 equals planning it once at count 2.
func TestAggregateDoubleEqualsCountTwo(t *testing.T) {
	rec := mustRecipe(t, "title: Soup\n2 cups broth\n1/2 tsp salt\n")
	rec.ID = "soup"
	recipes := map[string]models.Recipe{"soup": rec}

	twice, err := Aggregate([]models.PlannedRecipe{
		{RecipeID: "soup", Count: 1},
		{RecipeID: "soup", Count: 1},
	}, recipes)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	doubled, err := Aggregate([]models.PlannedRecipe{{RecipeID: "soup", Count: 2}}, recipes)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if !reflect.DeepEqual(twice, doubled) {
		t.Errorf("aggregate mismatch:\n twice: %+v\n doubled: %+v", twice, doubled)
	}
}

func TestAggregateUnknownRecipe(t *testing.T) {
	_, err := Aggregate([]models.PlannedRecipe{{RecipeID: "ghost", Count: 1}}, nil)
	if err == nil {
		t.Fatal("Aggregate succeeded, want ErrUnknownRecipe")
	}
}

func TestAggregateRecordsConflict(t *testing.T) {
	// Two hand-built lines sharing a key but measured in different families.
	key := models.IngredientKey{Name: "rice", MeasureType: "Volume"}
	recA := models.Recipe{ID: "a", Title: "A", Ingredients: []models.IngredientLine{
		{Key: key, Quantity: units.New(units.Whole(1), units.Cup)},
	}}
	recB := models.Recipe{ID: "b", Title: "B", Ingredients: []models.IngredientLine{
		{Key: key, Quantity: units.New(units.Whole(200), units.Gram)},
	}}

	totals, err := Aggregate(
		[]models.PlannedRecipe{{RecipeID: "a", Count: 1}, {RecipeID: "b", Count: 1}},
		map[string]models.Recipe{"a": recA, "b": recB},
	)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	total := totals[key]
	if !total.Unresolved {
		t.Fatal("total not flagged unresolved after unit conflict")
	}
	if total.Conflict == nil {
		t.Fatal("conflict not recorded")
	}
	if total.Conflict.A != units.Cup || total.Conflict.B != units.Gram {
		t.Errorf("conflict units = %v/%v, want cup/gram", total.Conflict.A, total.Conflict.B)
	}
	// First-seen quantity is retained for display.
	if total.Quantity != units.New(units.Whole(1), units.Cup) {
		t.Errorf("retained quantity = %v, want 1 cup", total.Quantity)
	}
}

// The worked scenario: Recipe A = "1 cup flour" + "2 tbsp sugar", Recipe B =
// "1/2 cup flour", plan = {A x2, B x1}. Flour aggregates to 2 1/2 cups, sugar
// to 4 tbsp.
func scenarioInput(t *testing.T) Input {
	t.Helper()
	recA := mustRecipe(t, "title: A\n1 cup flour\n2 tbsp sugar\n")
	recA.ID = "a"
	recB := mustRecipe(t, "title: B\n1/2 cup flour\n")
	recB.ID = "b"
	return Input{
		Plan:    testPlan(models.PlannedRecipe{RecipeID: "a", Count: 2}, models.PlannedRecipe{RecipeID: "b", Count: 1}),
		Recipes: map[string]models.Recipe{"a": recA, "b": recB},
	}
}

func findEntry(entries []models.ShoppingListEntry, name string) (models.ShoppingListEntry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return models.ShoppingListEntry{}, false
}

func TestBuildScenarioAggregate(t *testing.T) {
	entries, diags, err := Build(scenarioInput(t))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(diags.Unresolved) != 0 {
		t.Fatalf("unexpected unresolved entries: %+v", diags.Unresolved)
	}

	flour, ok := findEntry(entries, "flour")
	if !ok {
		t.Fatal("no flour entry")
	}
	if want := units.New(units.Frac(5, 2), units.Cup); flour.Quantity != want {
		t.Errorf("flour = %v, want %v", flour.Quantity, want)
	}

	sugar, ok := findEntry(entries, "sugar")
	if !ok {
		t.Fatal("no sugar entry")
	}
	if want := units.New(units.Whole(4), units.Tbsp); sugar.Quantity != want {
		t.Errorf("sugar = %v, want %v", sugar.Quantity, want)
	}
}

func TestBuildFilterRemovesEntry(t *testing.T) {
	in := scenarioInput(t)
	sugarKey := models.IngredientKey{Name: "sugar", MeasureType: "Volume"}
	in.Overrides.Filtered = []models.FilteredIngredient{{Key: sugarKey}}

	entries, _, err := Build(in)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := findEntry(entries, "sugar"); ok {
		t.Error("sugar still present after filter")
	}
	flour, ok := findEntry(entries, "flour")
	if !ok {
		t.Fatal("flour entry missing")
	}
	if want := units.New(units.Frac(5, 2), units.Cup); flour.Quantity != want {
		t.Errorf("flour changed by unrelated filter: %v, want %v", flour.Quantity, want)
	}
}

func TestBuildModifiedAmountWins(t *testing.T) {
	in := scenarioInput(t)
	flourKey := models.IngredientKey{Name: "flour", MeasureType: "Volume"}
	in.Overrides.Modified = []models.ModifiedAmount{
		{Key: flourKey, Quantity: units.New(units.Whole(3), units.Cup)},
	}

	entries, _, err := Build(in)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	flour, ok := findEntry(entries, "flour")
	if !ok {
		t.Fatal("flour entry missing")
	}
	if want := units.New(units.Whole(3), units.Cup); flour.Quantity != want {
		t.Errorf("flour = %v, want %v", flour.Quantity, want)
	}
}

func TestBuildExtraItem(t *testing.T) {
	in := scenarioInput(t)
	in.Overrides.Extras = []models.ExtraItem{
		{Name: "Paper Towels", Quantity: units.Count(1)},
	}

	entries, _, err := Build(in)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var matches []models.ShoppingListEntry
	for _, e := range entries {
		if e.Name == "paper towels" {
			matches = append(matches, e)
		}
	}
	if len(matches) != 1 {
		t.Fatalf("paper towels appears %d times, want 1", len(matches))
	}
	got := matches[0]
	if got.Quantity != units.Count(1) {
		t.Errorf("quantity = %v, want 1", got.Quantity)
	}
	if got.Category != DefaultCategory {
		t.Errorf("category = %q, want %q", got.Category, DefaultCategory)
	}
}

// A filtered ingredient and an extra item of the same name coexist: the
// filter removes the derived entry, the extra is appended afterwards.
func TestBuildFilteredThenExtraStillAppears(t *testing.T) {
	in := scenarioInput(t)
	sugarKey := models.IngredientKey{Name: "sugar", MeasureType: "Volume"}
	in.Overrides.Filtered = []models.FilteredIngredient{{Key: sugarKey}}
	in.Overrides.Extras = []models.ExtraItem{
		{Name: "sugar", Quantity: units.New(units.Whole(1), units.Cup)},
	}

	entries, _, err := Build(in)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	sugar, ok := findEntry(entries, "sugar")
	if !ok {
		t.Fatal("extra sugar missing after filter")
	}
	if want := units.New(units.Whole(1), units.Cup); sugar.Quantity != want {
		t.Errorf("sugar = %v, want the extra's quantity %v", sugar.Quantity, want)
	}
}

func TestBuildCategories(t *testing.T) {
	in := scenarioInput(t)
	in.Categories = []models.CategoryMapping{
		{IngredientName: "Flour", Category: "Baking"},
	}

	entries, _, err := Build(in)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	flour, _ := findEntry(entries, "flour")
	if flour.Category != "Baking" {
		t.Errorf("flour category = %q, want Baking", flour.Category)
	}
	sugar, _ := findEntry(entries, "sugar")
	if sugar.Category != DefaultCategory {
		t.Errorf("sugar category = %q, want %q", sugar.Category, DefaultCategory)
	}

	// Sorted by category then name: Baking/flour before Misc/sugar.
	if entries[0].Name != "flour" || entries[1].Name != "sugar" {
		t.Errorf("unexpected order: %+v", entries)
	}
}

func conflictedInput(t *testing.T) (Input, models.IngredientKey) {
	t.Helper()
	key := models.IngredientKey{Name: "rice", MeasureType: "Volume"}
	recA := models.Recipe{ID: "a", Title: "A", Ingredients: []models.IngredientLine{
		{Key: key, Quantity: units.New(units.Whole(1), units.Cup)},
	}}
	recB := models.Recipe{ID: "b", Title: "B", Ingredients: []models.IngredientLine{
		{Key: key, Quantity: units.New(units.Whole(200), units.Gram)},
	}}
	in := Input{
		Plan:    testPlan(models.PlannedRecipe{RecipeID: "a", Count: 1}, models.PlannedRecipe{RecipeID: "b", Count: 1}),
		Recipes: map[string]models.Recipe{"a": recA, "b": recB},
	}
	return in, key
}

func TestBuildUnresolvedSurfacesAsDiagnostic(t *testing.T) {
	in, key := conflictedInput(t)
	entries, diags, err := Build(in)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := findEntry(entries, "rice"); ok {
		t.Error("unresolved entry included in list")
	}
	if len(diags.Unresolved) != 1 {
		t.Fatalf("got %d unresolved diagnostics, want 1", len(diags.Unresolved))
	}
	if diags.Unresolved[0].Key != key {
		t.Errorf("diagnostic key = %+v, want %+v", diags.Unresolved[0].Key, key)
	}
}

func TestBuildModifiedAmountResolvesConflict(t *testing.T) {
	in, key := conflictedInput(t)
	in.Overrides.Modified = []models.ModifiedAmount{
		{Key: key, Quantity: units.New(units.Whole(2), units.Cup)},
	}
	entries, diags, err := Build(in)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(diags.Unresolved) != 0 {
		t.Fatalf("conflict not resolved by modified amount: %+v", diags.Unresolved)
	}
	rice, ok := findEntry(entries, "rice")
	if !ok {
		t.Fatal("rice entry missing")
	}
	if want := units.New(units.Whole(2), units.Cup); rice.Quantity != want {
		t.Errorf("rice = %v, want %v", rice.Quantity, want)
	}
}

func TestBuildFilterRemovesUnresolved(t *testing.T) {
	in, key := conflictedInput(t)
	in.Overrides.Filtered = []models.FilteredIngredient{{Key: key}}
	entries, diags, err := Build(in)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := findEntry(entries, "rice"); ok {
		t.Error("filtered unresolved entry still present")
	}
	if len(diags.Unresolved) != 0 {
		t.Errorf("filtered key still reported unresolved: %+v", diags.Unresolved)
	}
}

func TestBuildDeterministic(t *testing.T) {
	in := scenarioInput(t)
	in.Overrides.Extras = []models.ExtraItem{
		{Name: "coffee", Quantity: units.Count(1)},
	}
	in.Categories = []models.CategoryMapping{
		{IngredientName: "flour", Category: "Baking"},
		{IngredientName: "sugar", Category: "Baking"},
	}

	first, _, err := Build(in)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, _, err := Build(in)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Build is not deterministic:\n first: %+v\n again: %+v", first, again)
		}
	}
}

// Staples merge into the aggregate like another recipe: a staple sharing a
// key with a planned ingredient sums with it, and filters apply to staples
// like anything else.
func TestBuildMergesStaples(t *testing.T) {
	staples := mustRecipe(t, "title: Staples\n1/2 cup flour\n1 coffee\n")
	in := scenarioInput(t)
	in.Staples = staples.Ingredients

	entries, _, err := Build(in)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	flour, ok := findEntry(entries, "flour")
	if !ok {
		t.Fatal("no flour entry")
	}
	if want := units.New(units.Whole(3), units.Cup); flour.Quantity != want {
		t.Errorf("flour = %v, want %v (2 1/2 planned + 1/2 staple)", flour.Quantity, want)
	}
	if _, ok := findEntry(entries, "coffee"); !ok {
		t.Error("staple-only item missing from list")
	}

	in.Overrides.Filtered = []models.FilteredIngredient{
		{Key: models.IngredientKey{Name: "coffee", MeasureType: "Count"}},
	}
	entries, _, err = Build(in)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := findEntry(entries, "coffee"); ok {
		t.Error("filtered staple still present")
	}
}

// Entries that tie on (category, name, form) must still order stably: keys
// differing only in unit family, and an extra sharing a derived entry's name.
func TestBuildOrdersTiedNames(t *testing.T) {
	rec := models.Recipe{ID: "r", Title: "Rice Two Ways", Ingredients: []models.IngredientLine{
		{
			Key:      models.IngredientKey{Name: "rice", MeasureType: "Volume"},
			Quantity: units.New(units.Whole(1), units.Cup),
		},
		{
			Key:      models.IngredientKey{Name: "rice", MeasureType: "Weight"},
			Quantity: units.New(units.Whole(200), units.Gram),
		},
	}}
	in := Input{
		Plan:    testPlan(models.PlannedRecipe{RecipeID: "r", Count: 1}),
		Recipes: map[string]models.Recipe{"r": rec},
		Overrides: Overrides{Extras: []models.ExtraItem{
			{Name: "rice", Quantity: units.Count(1)},
		}},
	}

	want := []string{"1 cup", "200 grams", "1"}
	for i := 0; i < 200; i++ {
		entries, _, err := Build(in)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if len(entries) != len(want) {
			t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
		}
		for j, e := range entries {
			if e.Name != "rice" {
				t.Fatalf("entry %d has name %q", j, e.Name)
			}
			if got := e.Quantity.String(); got != want[j] {
				t.Fatalf("run %d: entry %d = %q, want %q (full order %+v)", i, j, got, want[j], entries)
			}
		}
	}
}
