// Package server exposes the consolidation pipeline over HTTP and
// serves the companion request form.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Veraticus/billfold/internal/model"
)

// ConsolidationRunner runs the whole pipeline for one request: list,
// download, consolidate, upload, email.
type ConsolidationRunner interface {
	Consolidate(ctx context.Context, period model.Period, email string) error
}

// Handler serves the consolidation endpoint.
type Handler struct {
	runner ConsolidationRunner
	logger *slog.Logger
}

// NewHandler creates the HTTP handler.
func NewHandler(runner ConsolidationRunner) *Handler {
	return &Handler{
		runner: runner,
		logger: slog.Default().With("component", "server"),
	}
}

type consolidateRequest struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Email string `json:"email"`
}

type apiResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Consolidate handles POST requests. Validation failures are reported
// with field-level detail; anything that goes wrong inside the
// pipeline collapses to a generic 500 with the detail only in logs.
func (h *Handler) Consolidate(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("request_id", uuid.NewString())

	var req consolidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "request body must be valid JSON"})
		return
	}

	if req.Year == "" || req.Month == "" || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "year, month and email are required"})
		return
	}

	period, err := model.ParsePeriod(req.Year, req.Month)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: err.Error()})
		return
	}

	logger.Info("Starting consolidation",
		"year", period.Year,
		"month", period.Month,
		"email", req.Email)

	if err := h.runner.Consolidate(r.Context(), period, req.Email); err != nil {
		logger.Error("Consolidation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, apiResponse{Error: "failed to consolidate invoices"})
		return
	}

	logger.Info("Consolidation complete")
	writeJSON(w, http.StatusOK, apiResponse{Message: "Consolidated invoices were delivered to the administrator"})
}

// MethodNotAllowed is wired as the router's fallback for known paths
// hit with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, apiResponse{Error: "method not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, body apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
