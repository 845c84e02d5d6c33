package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/mealwright/mealwright/internal/auth"
	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/storage"
	"github.com/mealwright/mealwright/internal/storage/sqlite"
	"github.com/mealwright/mealwright/internal/units"
)

type services struct {
	store    storage.Store
	recipes  *RecipeService
	plans    *PlanService
	override *OverrideService
	shopping *ShoppingListService
}

func setupServices(t *testing.T) *services {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &services{
		store:    store,
		recipes:  NewRecipeService(store, logger),
		plans:    NewPlanService(store, logger),
		override: NewOverrideService(store, logger),
		shopping: NewShoppingListService(store, logger),
	}
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

const pancakesText = `Pancakes
1 1/2 cups flour
2 tbsp sugar
1 cup milk
2 eggs
`

func TestIngestAndBuild(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	rec, warnings, err := svc.recipes.Ingest(ctx, "alice", "", pancakesText)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if rec.ID == "" {
		t.Fatal("expected recipe to get an id")
	}
	if rec.Title != "Pancakes" {
		t.Errorf("title = %q, want Pancakes", rec.Title)
	}

	planDate := date(t, "2026-08-24")
	planned := []models.PlannedRecipe{{RecipeID: rec.ID, Count: 2}}
	if err := svc.plans.Set(ctx, "alice", planDate, planned); err != nil {
		t.Fatalf("Set plan failed: %v", err)
	}

	list, err := svc.shopping.Build(ctx, "alice")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !list.Date.Equal(planDate) {
		t.Errorf("list date = %v, want %v", list.Date, planDate)
	}
	if len(list.Entries) != 4 {
		t.Fatalf("got %d entries, want 4: %+v", len(list.Entries), list.Entries)
	}

	byName := make(map[string]models.ShoppingListEntry)
	for _, e := range list.Entries {
		byName[e.Name] = e
	}
	if got := byName["flour"].Quantity.String(); got != "3 cups" {
		t.Errorf("flour = %q, want 3 cups", got)
	}
	if got := byName["sugar"].Quantity.String(); got != "4 tbsps" {
		t.Errorf("sugar = %q, want 4 tbsps", got)
	}
	if got := byName["eggs"].Quantity.String(); got != "4" {
		t.Errorf("eggs = %q, want 4", got)
	}
}

func TestBuildNoPlan(t *testing.T) {
	svc := setupServices(t)

	_, err := svc.shopping.Build(context.Background(), "alice")
	if !errors.Is(err, ErrNoPlan) {
		t.Fatalf("got %v, want ErrNoPlan", err)
	}
}

func TestSetPlanRejectsUnknownRecipe(t *testing.T) {
	svc := setupServices(t)

	planned := []models.PlannedRecipe{{RecipeID: "nope", Count: 1}}
	err := svc.plans.Set(context.Background(), "alice", date(t, "2026-08-24"), planned)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSetPlanRejectsNonPositiveCount(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	rec, _, err := svc.recipes.Ingest(ctx, "alice", "", pancakesText)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	planned := []models.PlannedRecipe{{RecipeID: rec.ID, Count: 0}}
	err = svc.plans.Set(ctx, "alice", date(t, "2026-08-24"), planned)
	if !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("got %v, want ErrInvalidCount", err)
	}
}

func TestOverridesShapeTheList(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	rec, _, err := svc.recipes.Ingest(ctx, "alice", "", pancakesText)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}

	planDate := date(t, "2026-08-24")
	if err := svc.plans.Set(ctx, "alice", planDate, []models.PlannedRecipe{{RecipeID: rec.ID, Count: 1}}); err != nil {
		t.Fatalf("Set plan failed: %v", err)
	}

	sugarKey := models.IngredientKey{Name: "sugar", MeasureType: units.FamilyVolume.String()}
	if err := svc.override.Filter(ctx, "alice", planDate, sugarKey); err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	flourKey := models.IngredientKey{Name: "flour", MeasureType: units.FamilyVolume.String()}
	if err := svc.override.SetAmount(ctx, "alice", planDate, flourKey, "2 cups"); err != nil {
		t.Fatalf("SetAmount failed: %v", err)
	}
	if err := svc.override.AddExtra(ctx, "alice", planDate, "Paper Towels", "1"); err != nil {
		t.Fatalf("AddExtra failed: %v", err)
	}
	if err := svc.override.SetCategory(ctx, "alice", "milk", "Dairy"); err != nil {
		t.Fatalf("SetCategory failed: %v", err)
	}

	list, err := svc.shopping.Build(ctx, "alice")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	byName := make(map[string]models.ShoppingListEntry)
	for _, e := range list.Entries {
		byName[e.Name] = e
	}
	if _, ok := byName["sugar"]; ok {
		t.Error("sugar should be filtered out")
	}
	if got := byName["flour"].Quantity.String(); got != "2 cups" {
		t.Errorf("flour = %q, want overridden 2 cups", got)
	}
	if got := byName["milk"].Category; got != "Dairy" {
		t.Errorf("milk category = %q, want Dairy", got)
	}
	if e, ok := byName["paper towels"]; !ok {
		t.Error("extra item missing from list")
	} else if e.Quantity.String() != "1" {
		t.Errorf("extra quantity = %q, want 1", e.Quantity.String())
	}
}

func TestStaplesMergeIntoList(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	rec, _, err := svc.recipes.Ingest(ctx, "alice", "", pancakesText)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if err := svc.plans.Set(ctx, "alice", date(t, "2026-08-24"), []models.PlannedRecipe{{RecipeID: rec.ID, Count: 1}}); err != nil {
		t.Fatalf("Set plan failed: %v", err)
	}

	warnings, err := svc.recipes.SetStaples(ctx, "alice", "Staples\n1/2 cup flour\n1 dish soap\n")
	if err != nil {
		t.Fatalf("SetStaples failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	list, err := svc.shopping.Build(ctx, "alice")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	byName := make(map[string]models.ShoppingListEntry)
	for _, e := range list.Entries {
		byName[e.Name] = e
	}
	if got := byName["flour"].Quantity.String(); got != "2 cups" {
		t.Errorf("flour = %q, want 2 cups (1 1/2 planned + 1/2 staple)", got)
	}
	if _, ok := byName["dish soap"]; !ok {
		t.Error("staple-only item missing from list")
	}

	lines, err := svc.recipes.Staples(ctx, "alice")
	if err != nil {
		t.Fatalf("Staples failed: %v", err)
	}
	if len(lines) != 2 {
		t.Errorf("got %d staple lines, want 2", len(lines))
	}
}

func TestStaplesUnsetIsEmpty(t *testing.T) {
	svc := setupServices(t)

	lines, err := svc.recipes.Staples(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Staples failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("got %d lines for unset staples, want 0", len(lines))
	}
}

func TestSetAmountRejectsMeasureMismatch(t *testing.T) {
	svc := setupServices(t)

	key := models.IngredientKey{Name: "flour", MeasureType: units.FamilyVolume.String()}
	err := svc.override.SetAmount(context.Background(), "alice", date(t, "2026-08-24"), key, "200 g")
	if !errors.Is(err, ErrMeasureMismatch) {
		t.Fatalf("got %v, want ErrMeasureMismatch", err)
	}
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authSvc := NewAuthService(auth.NewPasswordAuthenticator(svc.store), jwtManager, logger)

	user, token, err := authSvc.Register(ctx, "alice@example.com", "Alice", "correct horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	claims, err := jwtManager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims user = %q, want %q", claims.UserID, user.ID)
	}

	if _, _, err := authSvc.Login(ctx, "alice@example.com", "correct horse"); err != nil {
		t.Errorf("Login failed: %v", err)
	}
	if _, _, err := authSvc.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("got %v, want ErrInvalidCredentials", err)
	}
}
