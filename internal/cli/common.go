package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/mealwright/mealwright/internal/service"
	"github.com/mealwright/mealwright/internal/storage"
	"github.com/mealwright/mealwright/internal/storage/sqlite"
)

const dateLayout = "2006-01-02"

func defaultDBPath() string {
	if v := os.Getenv("DB_PATH"); v != "" {
		return v
	}
	return "data/mealwright.db"
}

// app bundles the store and services a command needs. Callers must Close it.
type app struct {
	store    storage.Store
	recipes  *service.RecipeService
	plans    *service.PlanService
	override *service.OverrideService
	shopping *service.ShoppingListService
}

func newApp() (*app, error) {
	store, err := sqlite.New(dbPath)
	if err != nil {
		return nil, err
	}
	logger := slog.Default()
	return &app{
		store:    store,
		recipes:  service.NewRecipeService(store, logger),
		plans:    service.NewPlanService(store, logger),
		override: service.NewOverrideService(store, logger),
		shopping: service.NewShoppingListService(store, logger),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func parseDateArg(s string) (time.Time, error) {
	if s == "" || s == "today" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(dateLayout, s)
}
