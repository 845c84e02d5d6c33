package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mealwright/mealwright/internal/auth"
	"github.com/mealwright/mealwright/internal/middleware"
	"github.com/mealwright/mealwright/internal/models"
	"github.com/mealwright/mealwright/internal/service"
	"github.com/mealwright/mealwright/internal/storage"
)

const dateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeServiceError maps known service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNoPlan), errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, service.ErrInvalidCount), errors.Is(err, service.ErrMeasureMismatch):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, auth.ErrEmailExists):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, auth.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

type credentialsRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Password    string `json:"password"`
}

type sessionResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !readJSON(w, r, &req) {
		return
	}
	user, token, err := s.auth.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{UserID: user.ID, Email: user.Email, Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !readJSON(w, r, &req) {
		return
	}
	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{UserID: user.ID, Email: user.Email, Token: token})
}

type listEntry struct {
	Name     string `json:"name"`
	Form     string `json:"form,omitempty"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
}

type unresolvedEntry struct {
	Name   string `json:"name"`
	Form   string `json:"form,omitempty"`
	Reason string `json:"reason"`
}

type listResponse struct {
	Date       string            `json:"date"`
	Entries    []listEntry       `json:"entries"`
	Unresolved []unresolvedEntry `json:"unresolved,omitempty"`
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var list *service.ShoppingList
	var err error
	if d := r.URL.Query().Get("date"); d != "" {
		date, perr := time.Parse(dateLayout, d)
		if perr != nil {
			writeError(w, http.StatusBadRequest, perr)
			return
		}
		list, err = s.shopping.BuildForDate(r.Context(), userID, date)
	} else {
		list, err = s.shopping.Build(r.Context(), userID)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := listResponse{
		Date:    list.Date.Format(dateLayout),
		Entries: make([]listEntry, 0, len(list.Entries)),
	}
	for _, e := range list.Entries {
		resp.Entries = append(resp.Entries, listEntry{
			Name:     e.Name,
			Form:     e.Form,
			Quantity: e.Quantity.String(),
			Category: e.Category,
		})
	}
	for _, u := range list.Diagnostics.Unresolved {
		resp.Unresolved = append(resp.Unresolved, unresolvedEntry{
			Name:   u.Key.Name,
			Form:   u.Key.Form,
			Reason: u.Conflict.Error(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type recipeRequest struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
}

type recipeResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Ingredients int      `json:"ingredients"`
	Warnings    []string `json:"warnings,omitempty"`
}

func (s *Server) handleAddRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if !readJSON(w, r, &req) {
		return
	}
	rec, warnings, err := s.recipes.Ingest(r.Context(), middleware.GetUserID(r.Context()), req.ID, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := recipeResponse{ID: rec.ID, Title: rec.Title, Ingredients: len(rec.Ingredients)}
	for _, warn := range warnings {
		resp.Warnings = append(resp.Warnings, warn.Error())
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.recipes.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := make([]recipeResponse, 0, len(recipes))
	for _, rec := range recipes {
		resp = append(resp, recipeResponse{ID: rec.ID, Title: rec.Title, Ingredients: len(rec.Ingredients)})
	}
	writeJSON(w, http.StatusOK, resp)
}

type ingredientLine struct {
	Name     string `json:"name"`
	Form     string `json:"form,omitempty"`
	Quantity string `json:"quantity"`
}

type recipeDetail struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Ingredients []ingredientLine `json:"ingredients"`
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	rec, err := s.recipes.Get(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	detail := recipeDetail{ID: rec.ID, Title: rec.Title, Ingredients: make([]ingredientLine, 0, len(rec.Ingredients))}
	for _, line := range rec.Ingredients {
		detail.Ingredients = append(detail.Ingredients, ingredientLine{
			Name:     line.Key.Name,
			Form:     line.Key.Form,
			Quantity: line.Quantity.String(),
		})
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	err := s.recipes.Delete(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type staplesRequest struct {
	Text string `json:"text"`
}

type staplesResponse struct {
	Items    []ingredientLine `json:"items"`
	Warnings []string         `json:"warnings,omitempty"`
}

func (s *Server) handleSetStaples(w http.ResponseWriter, r *http.Request) {
	var req staplesRequest
	if !readJSON(w, r, &req) {
		return
	}
	warnings, err := s.recipes.SetStaples(r.Context(), middleware.GetUserID(r.Context()), req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var resp staplesResponse
	for _, warn := range warnings {
		resp.Warnings = append(resp.Warnings, warn.Error())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetStaples(w http.ResponseWriter, r *http.Request) {
	lines, err := s.recipes.Staples(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := staplesResponse{Items: make([]ingredientLine, 0, len(lines))}
	for _, line := range lines {
		resp.Items = append(resp.Items, ingredientLine{
			Name:     line.Key.Name,
			Form:     line.Key.Form,
			Quantity: line.Quantity.String(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type planRequest struct {
	Date    string `json:"date"`
	Recipes []struct {
		RecipeID string `json:"recipe_id"`
		Count    int64  `json:"count"`
	} `json:"recipes"`
}

func (s *Server) handleSetPlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if !readJSON(w, r, &req) {
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	planned := make([]models.PlannedRecipe, 0, len(req.Recipes))
	for _, pr := range req.Recipes {
		planned = append(planned, models.PlannedRecipe{RecipeID: pr.RecipeID, Count: pr.Count})
	}
	if err := s.plans.Set(r.Context(), middleware.GetUserID(r.Context()), date, planned); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlanDates(w http.ResponseWriter, r *http.Request) {
	dates, err := s.plans.Dates(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(dateLayout))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse(dateLayout, r.PathValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.plans.Delete(r.Context(), middleware.GetUserID(r.Context()), date); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type overrideRequest struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	Form        string `json:"form,omitempty"`
	MeasureType string `json:"measure_type,omitempty"`
	Amount      string `json:"amount,omitempty"`
}

func (req overrideRequest) key() models.IngredientKey {
	return models.IngredientKey{Name: req.Name, Form: req.Form, MeasureType: req.MeasureType}
}

func (s *Server) overrideArgs(w http.ResponseWriter, r *http.Request) (string, time.Time, overrideRequest, bool) {
	var req overrideRequest
	if !readJSON(w, r, &req) {
		return "", time.Time{}, req, false
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return "", time.Time{}, req, false
	}
	return middleware.GetUserID(r.Context()), date, req, true
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	userID, date, req, ok := s.overrideArgs(w, r)
	if !ok {
		return
	}
	if err := s.override.Filter(r.Context(), userID, date, req.key()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnfilter(w http.ResponseWriter, r *http.Request) {
	userID, date, req, ok := s.overrideArgs(w, r)
	if !ok {
		return
	}
	if err := s.override.Unfilter(r.Context(), userID, date, req.key()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetAmount(w http.ResponseWriter, r *http.Request) {
	userID, date, req, ok := s.overrideArgs(w, r)
	if !ok {
		return
	}
	if err := s.override.SetAmount(r.Context(), userID, date, req.key(), req.Amount); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddExtra(w http.ResponseWriter, r *http.Request) {
	userID, date, req, ok := s.overrideArgs(w, r)
	if !ok {
		return
	}
	if err := s.override.AddExtra(r.Context(), userID, date, req.Name, req.Amount); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveExtra(w http.ResponseWriter, r *http.Request) {
	userID, date, req, ok := s.overrideArgs(w, r)
	if !ok {
		return
	}
	if err := s.override.RemoveExtra(r.Context(), userID, date, req.Name); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type categoryRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (s *Server) handleSetCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !readJSON(w, r, &req) {
		return
	}
	err := s.override.SetCategory(r.Context(), middleware.GetUserID(r.Context()), req.Name, req.Category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
