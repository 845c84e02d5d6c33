// Package server exposes the application services over a JSON HTTP API.
//
// Routes under /api/v1 require a Bearer token except the auth endpoints.
// /metrics serves Prometheus metrics and /healthz is an unauthenticated
// liveness probe.
package server

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mealwright/mealwright/internal/auth"
	"github.com/mealwright/mealwright/internal/middleware"
	"github.com/mealwright/mealwright/internal/service"
)

// Server wires the services into an http.Handler.
type Server struct {
	auth     *service.AuthService
	recipes  *service.RecipeService
	plans    *service.PlanService
	override *service.OverrideService
	shopping *service.ShoppingListService

	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

// New creates a server over the given services.
func New(
	authSvc *service.AuthService,
	recipes *service.RecipeService,
	plans *service.PlanService,
	override *service.OverrideService,
	shopping *service.ShoppingListService,
	jwtManager *auth.JWTManager,
	logger *slog.Logger,
) *Server {
	return &Server{
		auth:       authSvc,
		recipes:    recipes,
		plans:      plans,
		override:   override,
		shopping:   shopping,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Handler builds the full route table with middleware applied. The returned
// handler speaks h2c so HTTP/2 clients work without TLS termination.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/v1/list", s.handleGetList)
	api.HandleFunc("POST /api/v1/recipes", s.handleAddRecipe)
	api.HandleFunc("GET /api/v1/recipes", s.handleListRecipes)
	api.HandleFunc("GET /api/v1/recipes/{id}", s.handleGetRecipe)
	api.HandleFunc("DELETE /api/v1/recipes/{id}", s.handleDeleteRecipe)
	api.HandleFunc("GET /api/v1/staples", s.handleGetStaples)
	api.HandleFunc("PUT /api/v1/staples", s.handleSetStaples)
	api.HandleFunc("PUT /api/v1/plan", s.handleSetPlan)
	api.HandleFunc("GET /api/v1/plan/dates", s.handlePlanDates)
	api.HandleFunc("DELETE /api/v1/plan/{date}", s.handleDeletePlan)
	api.HandleFunc("POST /api/v1/overrides/filter", s.handleFilter)
	api.HandleFunc("DELETE /api/v1/overrides/filter", s.handleUnfilter)
	api.HandleFunc("PUT /api/v1/overrides/amount", s.handleSetAmount)
	api.HandleFunc("PUT /api/v1/overrides/extra", s.handleAddExtra)
	api.HandleFunc("DELETE /api/v1/overrides/extra", s.handleRemoveExtra)
	api.HandleFunc("PUT /api/v1/categories", s.handleSetCategory)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", middleware.RequireAuth(s.jwtManager, api))
	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.Logging(middleware.Metrics(mux))
	return h2c.NewHandler(handler, &http2.Server{})
}
