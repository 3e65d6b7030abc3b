package service

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evanwills/firing-pricing-adjuster/internal/sheet"
	"github.com/evanwills/firing-pricing-adjuster/internal/storage"
	"github.com/evanwills/firing-pricing-adjuster/pkg/metrics"
)

// FiringService archives priced sheets and serves the firing history.
type FiringService struct {
	sheet   *sheet.Sheet
	store   storage.Store
	metrics *metrics.Metrics
}

// NewFiringService creates a FiringService.
func NewFiringService(s *sheet.Sheet, store storage.Store, m *metrics.Metrics) *FiringService {
	return &FiringService{sheet: s, store: store, metrics: m}
}

// ArchiveFiring snapshots the current sheet into the firing archive and
// resets the work list for the next load.
func (s *FiringService) ArchiveFiring(w http.ResponseWriter, r *http.Request) {
	problems := s.sheet.Problems()
	if len(problems) > 0 {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":    "sheet is not ready to archive",
			"problems": problems,
		})
		return
	}

	firing := s.sheet.Firing()
	if err := s.store.CreateFiring(r.Context(), &firing); err != nil {
		slog.Error("Failed to archive firing", "error", err)
		writeError(w, err)
		return
	}

	s.sheet.Reset(r.Context())
	if s.metrics != nil {
		s.metrics.FiringArchived()
	}

	slog.Info("Firing archived", "firing_id", firing.ID, "makers", len(firing.Work))
	writeJSON(w, http.StatusCreated, firing)
}

// GetFiring returns one archived firing.
func (s *FiringService) GetFiring(w http.ResponseWriter, r *http.Request) {
	firingID := chi.URLParam(r, "firingID")

	firing, err := s.store.GetFiring(r.Context(), firingID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, firing)
}

// ListFirings returns the firing history, newest first.
func (s *FiringService) ListFirings(w http.ResponseWriter, r *http.Request) {
	firings, err := s.store.ListFirings(r.Context())
	if err != nil {
		slog.Error("Failed to list firings", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, firings)
}
