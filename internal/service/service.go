// Package service exposes the price sheet, the roster, and the firing
// archive over a JSON HTTP API.
package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evanwills/firing-pricing-adjuster/internal/auth"
	"github.com/evanwills/firing-pricing-adjuster/internal/middleware"
	"github.com/evanwills/firing-pricing-adjuster/internal/registry"
	"github.com/evanwills/firing-pricing-adjuster/internal/sheet"
	"github.com/evanwills/firing-pricing-adjuster/internal/storage"
	"github.com/evanwills/firing-pricing-adjuster/pkg/metrics"
)

// Deps bundles what the router needs.
type Deps struct {
	Sheet         *sheet.Sheet
	Store         storage.Store
	Authenticator auth.Authenticator
	JWT           *auth.JWTManager
	Metrics       *metrics.Metrics
}

// NewRouter builds the full API router with logging, CORS, and metrics
// middleware applied, plus /healthz and /metrics endpoints.
func NewRouter(deps Deps) http.Handler {
	sheetSvc := NewSheetService(deps.Sheet, deps.Store, deps.Metrics)
	firingSvc := NewFiringService(deps.Sheet, deps.Store, deps.Metrics)
	authSvc := NewAuthService(deps.Authenticator, deps.JWT)

	r := chi.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.Logging)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/auth/register", authSvc.Register)
		api.Post("/auth/login", authSvc.Login)

		// Reads are open; mutations need a session.
		api.Group(func(open chi.Router) {
			open.Use(middleware.OptionalAuth(deps.JWT))
			open.Get("/sheet", sheetSvc.GetSheet)
			open.Get("/sheet/report", sheetSvc.GetReport)
			open.Get("/members", sheetSvc.ListMembers)
			open.Get("/firings", firingSvc.ListFirings)
			open.Get("/firings/{firingID}", firingSvc.GetFiring)
		})

		api.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth(deps.JWT))
			authed.Post("/sheet/actions", sheetSvc.ApplyAction)
			authed.Put("/sheet/fields", sheetSvc.SetFields)
			authed.Post("/sheet/pieces", sheetSvc.ApplyPieceChange)
			authed.Post("/sheet/prepaid", sheetSvc.SetPrepaid)
			authed.Post("/sheet/reset", sheetSvc.Reset)
			authed.Post("/members", sheetSvc.SaveMember)
			authed.Patch("/members/{memberID}", sheetSvc.UpdateMember)
			authed.Post("/firings", firingSvc.ArchiveFiring)
		})
	})

	return r
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses: unknown members are
// 404, rejected input is 400, anything else (including the defensive id
// generation guard) is 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, sheet.ErrUnknownMember):
		status = http.StatusNotFound
	case errors.Is(err, sheet.ErrInvalidAction), errors.Is(err, sheet.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, registry.ErrIDGeneration):
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decode reads the request body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
