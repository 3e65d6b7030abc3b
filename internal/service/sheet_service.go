package service

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evanwills/firing-pricing-adjuster/internal/models"
	"github.com/evanwills/firing-pricing-adjuster/internal/sheet"
	"github.com/evanwills/firing-pricing-adjuster/internal/storage"
	"github.com/evanwills/firing-pricing-adjuster/pkg/metrics"
)

// SheetService handles the in-progress price sheet and the roster.
type SheetService struct {
	sheet   *sheet.Sheet
	store   storage.Store
	metrics *metrics.Metrics
}

// NewSheetService creates a SheetService.
func NewSheetService(s *sheet.Sheet, store storage.Store, m *metrics.Metrics) *SheetService {
	return &SheetService{sheet: s, store: store, metrics: m}
}

type sheetResponse struct {
	models.Firing
	Problems []string `json:"problems"`
}

// GetSheet returns the current sheet plus anything still blocking
// pricing.
func (s *SheetService) GetSheet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sheetResponse{
		Firing:   s.sheet.Firing(),
		Problems: s.sheet.Problems(),
	})
}

// GetReport renders the shareable text report.
func (s *SheetService) GetReport(w http.ResponseWriter, r *http.Request) {
	problems := s.sheet.Problems()
	if len(problems) > 0 {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":    "sheet is not ready for pricing",
			"problems": problems,
		})
		return
	}

	if s.metrics != nil {
		s.metrics.ReportRendered()
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.sheet.Report()))
}

type actionRequest struct {
	Action   string `json:"action"`
	MemberID string `json:"memberId"`
}

// ApplyAction dispatches one of the closed action tags against a member.
func (s *SheetService) ApplyAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	action, err := sheet.ParseAction(req.Action)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.sheet.Apply(r.Context(), action, req.MemberID); err != nil {
		slog.Warn("Action failed", "action", req.Action, "member_id", req.MemberID, "error", err)
		writeError(w, err)
		return
	}

	slog.Info("Action applied", "action", req.Action, "member_id", req.MemberID)
	writeJSON(w, http.StatusOK, s.sheet.Firing())
}

type fieldsRequest struct {
	FiringDate *string  `json:"firingDate,omitempty"`
	FiringType *string  `json:"firingType,omitempty"`
	FiringTemp *int     `json:"firingTemp,omitempty"`
	FiringCost *float64 `json:"firingCost,omitempty"`
}

// SetFields updates any of the four scalar sheet fields. Fields are
// applied in a fixed order (type before temp, so a type switch resets
// the temperature first) and the first rejection aborts the rest.
func (s *SheetService) SetFields(w http.ResponseWriter, r *http.Request) {
	var req fieldsRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	ctx := r.Context()
	if req.FiringDate != nil {
		if err := s.sheet.SetDate(ctx, *req.FiringDate); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.FiringType != nil {
		if err := s.sheet.SetType(ctx, *req.FiringType); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.FiringTemp != nil {
		if err := s.sheet.SetTemp(ctx, *req.FiringTemp); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.FiringCost != nil {
		if err := s.sheet.SetCost(ctx, *req.FiringCost); err != nil {
			writeError(w, err)
			return
		}
		if s.metrics != nil {
			s.metrics.ReallocationDone()
		}
	}

	writeJSON(w, http.StatusOK, s.sheet.Firing())
}

type pieceChangeRequest struct {
	MakerID string  `json:"id"`
	Index   *int    `json:"index"` // null appends
	Value   float64 `json:"value"`
}

// ApplyPieceChange edits one maker's piece list. A null index appends, a
// zero value removes, matching the original form's change events.
func (s *SheetService) ApplyPieceChange(w http.ResponseWriter, r *http.Request) {
	var req pieceChangeRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	index := -1
	if req.Index != nil {
		index = *req.Index
	}

	if err := s.sheet.ApplyPieceChange(r.Context(), req.MakerID, index, req.Value); err != nil {
		writeError(w, err)
		return
	}

	if s.metrics != nil {
		s.metrics.ReallocationDone()
	}
	writeJSON(w, http.StatusOK, s.sheet.Firing())
}

type prepaidRequest struct {
	MakerID string `json:"id"`
	Prepaid bool   `json:"prepaid"`
}

// SetPrepaid flags a maker's work as covered by another payment.
func (s *SheetService) SetPrepaid(w http.ResponseWriter, r *http.Request) {
	var req prepaidRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.sheet.SetPrepaid(r.Context(), req.MakerID, req.Prepaid); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sheet.Firing())
}

// Reset clears the work list for a fresh pricing pass.
func (s *SheetService) Reset(w http.ResponseWriter, r *http.Request) {
	s.sheet.Reset(r.Context())
	writeJSON(w, http.StatusOK, s.sheet.Firing())
}

// ListMembers returns the roster sorted by Pos, optionally filtered by
// the name query parameter.
func (s *SheetService) ListMembers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sheet.Members(r.URL.Query().Get("name")))
}

type memberRequest struct {
	Name       string `json:"name"`
	MakersMark string `json:"makersMark"`
}

// SaveMember adds a new member to the roster.
func (s *SheetService) SaveMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := decode(r, &req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "member name is required"})
		return
	}

	member, err := s.sheet.UpdateMember(r.Context(), "", req.Name, req.MakersMark)
	if err != nil {
		slog.Error("Failed to add member", "name", req.Name, "error", err)
		writeError(w, err)
		return
	}

	s.persistRoster(r)
	slog.Info("Member added", "member_id", member.ID, "name", member.Name)
	writeJSON(w, http.StatusCreated, member)
}

// UpdateMember edits an existing member's name or mark; the id in the
// URL never changes.
func (s *SheetService) UpdateMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")

	var req memberRequest
	if err := decode(r, &req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "member name is required"})
		return
	}

	member, err := s.sheet.UpdateMember(r.Context(), memberID, req.Name, req.MakersMark)
	if err != nil {
		writeError(w, err)
		return
	}

	s.persistRoster(r)
	slog.Info("Member updated", "member_id", member.ID)
	writeJSON(w, http.StatusOK, member)
}

// persistRoster mirrors the roster into durable storage. Best-effort,
// like the sheet's own field cache.
func (s *SheetService) persistRoster(r *http.Request) {
	members := s.sheet.Members("")
	if err := s.store.SaveMembers(r.Context(), members); err != nil {
		slog.Warn("Failed to persist roster", "error", err)
	}
	if s.metrics != nil {
		s.metrics.SetRosterSize(len(members))
	}
}
