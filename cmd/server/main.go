package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/mealwright/mealwright/internal/auth"
	"github.com/mealwright/mealwright/internal/config"
	"github.com/mealwright/mealwright/internal/server"
	"github.com/mealwright/mealwright/internal/service"
	"github.com/mealwright/mealwright/internal/storage/sqlite"
	"github.com/mealwright/mealwright/pkg/logging"
)

func main() {
	logging.SetupJSON()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	logger := slog.Default()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	srv := server.New(
		service.NewAuthService(authenticator, jwtManager, logger),
		service.NewRecipeService(store, logger),
		service.NewPlanService(store, logger),
		service.NewOverrideService(store, logger),
		service.NewShoppingListService(store, logger),
		jwtManager,
		logger,
	)

	addr := ":" + cfg.Port
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
