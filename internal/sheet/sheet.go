// Package sheet holds the in-progress price sheet for the current firing
// and orchestrates the roster, the allocator, and the field cache.
//
// The original tool ran one browser event at a time; serving the sheet
// over HTTP introduces concurrency it was never designed for, so every
// operation runs to completion under a single mutex. Each mutation
// receives its full working set, computes a new state, replaces the held
// state atomically, then persists best-effort.
package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/evanwills/firing-pricing-adjuster/internal/allocator"
	"github.com/evanwills/firing-pricing-adjuster/internal/models"
	"github.com/evanwills/firing-pricing-adjuster/internal/registry"
	"github.com/evanwills/firing-pricing-adjuster/internal/report"
	"github.com/evanwills/firing-pricing-adjuster/internal/storage"
)

// Cache keys, one per sheet field. Structured values are stored as JSON,
// scalars as plain text.
const (
	keyFiringDate = "firingDate"
	keyFiringType = "firingType"
	keyFiringTemp = "firingTemp"
	keyFiringCost = "firingCost"
	keyPackedBy   = "packedBy"
	keyPricedBy   = "pricedBy"
	keyMembers    = "membersList"
	keyWork       = "work"
)

// Default sheet values used when the cache is cold or unusable.
const (
	defaultFiringType = "Bisque"
	defaultFiringTemp = 1000
	defaultFiringCost = 85
)

// List caps from the original form: the packed-by list stops growing at
// six members, the priced-by list at five.
const (
	maxPackers = 6
	maxPricers = 5
)

// dateWindow is how far back a firing date may be set.
const dateWindow = 30 * 24 * time.Hour

const dateLayout = "2006-01-02"

// Sheet is the mutable working state for the current firing.
type Sheet struct {
	mu     sync.Mutex
	firing models.Firing
	roster []models.Member
	cache  storage.KV

	// now is replaceable in tests; the date window depends on it.
	now func() time.Time
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithClock overrides the time source used for date validation and
// defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Sheet) { s.now = now }
}

// New creates a sheet with default firing values backed by the given
// field cache.
func New(cache storage.KV, opts ...Option) *Sheet {
	s := &Sheet{
		cache: cache,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.firing = models.Firing{
		Date:     s.now().Format(dateLayout),
		Type:     defaultFiringType,
		Temp:     defaultFiringTemp,
		Cost:     defaultFiringCost,
		PackedBy: []models.Member{},
		PricedBy: []models.Member{},
		Work:     []models.Maker{},
	}
	return s
}

// Load restores the sheet from the cache. Missing or unreadable keys keep
// their defaults; a cold cache is not an error.
func (s *Sheet) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok := s.get(ctx, keyFiringDate); ok {
		if _, err := time.Parse(dateLayout, raw); err == nil {
			s.firing.Date = raw
		}
	}
	if raw, ok := s.get(ctx, keyFiringType); ok {
		if _, found := models.FiringTypeByName(raw); found {
			s.firing.Type = raw
		}
	}
	if raw, ok := s.get(ctx, keyFiringTemp); ok {
		if temp, err := strconv.Atoi(raw); err == nil {
			s.firing.Temp = temp
		}
	}
	if raw, ok := s.get(ctx, keyFiringCost); ok {
		if cost, err := strconv.ParseFloat(raw, 64); err == nil {
			s.firing.Cost = cost
		}
	}
	s.loadJSON(ctx, keyPackedBy, &s.firing.PackedBy)
	s.loadJSON(ctx, keyPricedBy, &s.firing.PricedBy)
	s.loadJSON(ctx, keyMembers, &s.roster)
	s.loadJSON(ctx, keyWork, &s.firing.Work)

	// Cached work may predate the current cost; bring totals back in
	// line before anyone reads them.
	s.firing.Work = allocator.Reallocate(s.firing.Cost, s.firing.Work)
}

// SeedRoster installs a roster loaded from elsewhere (the durable store)
// when the field cache had none. A roster already present wins.
func (s *Sheet) SeedRoster(members []models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.roster) == 0 {
		s.roster = append([]models.Member(nil), members...)
	}
}

func (s *Sheet) get(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("sheet cache read failed", "key", key, "error", err)
		return "", false
	}
	return raw, ok
}

func (s *Sheet) loadJSON(ctx context.Context, key string, dest any) {
	raw, ok := s.get(ctx, key)
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		slog.Warn("sheet cache value unreadable", "key", key, "error", err)
	}
}

// persist writes one field to the cache. Persistence is best-effort:
// failures are logged and never surface to the mutation that triggered
// them.
func (s *Sheet) persist(ctx context.Context, key, value string) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		slog.Warn("sheet cache write failed", "key", key, "error", err)
	}
}

func (s *Sheet) persistJSON(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("sheet cache encode failed", "key", key, "error", err)
		return
	}
	s.persist(ctx, key, string(data))
}

// Firing returns a deep copy of the current firing state.
func (s *Sheet) Firing() models.Firing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFiring(s.firing)
}

// Members returns the roster sorted by Pos, optionally narrowed to names
// matching the filter (case- and punctuation-insensitive).
func (s *Sheet) Members(filter string) []models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := registry.SortMembers(s.roster)
	if filter == "" {
		return sorted
	}
	matched := make([]models.Member, 0, len(sorted))
	for _, m := range sorted {
		if registry.MatchesFilter(m.Name, filter) {
			matched = append(matched, m)
		}
	}
	return matched
}

// Apply dispatches an action against a member id. Add actions are no-ops
// when the member is already in the target list or the list is at its
// cap; remove actions pop the most recent entry. Referencing an id not in
// the roster aborts with ErrUnknownMember before anything is mutated.
func (s *Sheet) Apply(ctx context.Context, action Action, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch action {
	case ActionSetPackedBy:
		member, err := s.lookup(memberID)
		if err != nil {
			return err
		}
		if !registry.IsMember(s.firing.PackedBy, memberID) && len(s.firing.PackedBy) < maxPackers {
			s.firing.PackedBy = append(s.firing.PackedBy, member)
		}
		s.persistJSON(ctx, keyPackedBy, s.firing.PackedBy)

	case ActionSetPricedBy:
		member, err := s.lookup(memberID)
		if err != nil {
			return err
		}
		if !registry.IsMember(s.firing.PricedBy, memberID) && len(s.firing.PricedBy) < maxPricers {
			s.firing.PricedBy = append(s.firing.PricedBy, member)
		}
		s.persistJSON(ctx, keyPricedBy, s.firing.PricedBy)

	case ActionSetPotter:
		member, err := s.lookup(memberID)
		if err != nil {
			return err
		}
		if !registry.IsMember(s.firing.Work, memberID) {
			s.firing.Work = append(s.firing.Work, registry.NewMaker(member))
			s.persistJSON(ctx, keyWork, s.firing.Work)
		}

	case ActionRemovePackedBy:
		if n := len(s.firing.PackedBy); n > 0 {
			s.firing.PackedBy = s.firing.PackedBy[:n-1]
		}
		s.persistJSON(ctx, keyPackedBy, s.firing.PackedBy)

	case ActionRemovePricedBy:
		if n := len(s.firing.PricedBy); n > 0 {
			s.firing.PricedBy = s.firing.PricedBy[:n-1]
		}
		s.persistJSON(ctx, keyPricedBy, s.firing.PricedBy)

	default:
		return fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	return nil
}

func (s *Sheet) lookup(memberID string) (models.Member, error) {
	for _, m := range s.roster {
		if m.ID == memberID {
			return m, nil
		}
	}
	return models.Member{}, fmt.Errorf("%w: %q", ErrUnknownMember, memberID)
}

// UpdateMember commits a member add or edit. An empty id means a new
// member: a unique id is generated from the name and the member joins the
// roster with Pos set to the roster size at that moment. A non-empty id
// edits that member's name and mark; the id itself never changes. Every
// list embedding a snapshot of the member is refreshed so displays always
// show the latest name and mark.
func (s *Sheet) UpdateMember(ctx context.Context, id, name, mark string) (models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var member models.Member
	if id == "" {
		newID, err := registry.GenerateUniqueID(s.roster, name)
		if err != nil {
			return models.Member{}, err
		}
		member = models.Member{
			ID:         newID,
			Name:       name,
			MakersMark: mark,
			Pos:        len(s.roster),
		}
		s.roster = append(s.roster, member)
	} else {
		idx := -1
		for i, m := range s.roster {
			if m.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return models.Member{}, fmt.Errorf("%w: %q", ErrUnknownMember, id)
		}
		s.roster[idx].Name = name
		s.roster[idx].MakersMark = mark
		member = s.roster[idx]
		s.refreshSnapshots(ctx, member)
	}

	s.persistJSON(ctx, keyMembers, s.roster)
	return member, nil
}

// refreshSnapshots pushes an edited member's latest details into every
// sheet list that carries a copy.
func (s *Sheet) refreshSnapshots(ctx context.Context, member models.Member) {
	for i := range s.firing.PackedBy {
		if s.firing.PackedBy[i].ID == member.ID {
			s.firing.PackedBy[i] = member
			s.persistJSON(ctx, keyPackedBy, s.firing.PackedBy)
		}
	}
	for i := range s.firing.PricedBy {
		if s.firing.PricedBy[i].ID == member.ID {
			s.firing.PricedBy[i] = member
			s.persistJSON(ctx, keyPricedBy, s.firing.PricedBy)
		}
	}
	for i := range s.firing.Work {
		if s.firing.Work[i].ID == member.ID {
			s.firing.Work[i].Member = member
			s.persistJSON(ctx, keyWork, s.firing.Work)
		}
	}
}

// ApplyPieceChange edits one maker's piece list and reprices the whole
// sheet. A negative index appends (ignored when the value is zero, since
// zero means "not a real entry"); a zero value at a valid index removes
// that piece; anything else replaces the price at the index.
func (s *Sheet) ApplyPieceChange(ctx context.Context, makerID string, index int, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, m := range s.firing.Work {
		if m.ID == makerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %q is not a maker in this firing", ErrUnknownMember, makerID)
	}

	if value < 0 {
		return fmt.Errorf("%w: piece price must not be negative", ErrValidation)
	}

	pieces := append([]float64(nil), s.firing.Work[idx].Pieces...)
	switch {
	case index < 0:
		if value == 0 {
			return nil
		}
		pieces = append(pieces, value)
	case index >= len(pieces):
		return fmt.Errorf("%w: piece index %d out of range", ErrValidation, index)
	case value == 0:
		pieces = append(pieces[:index], pieces[index+1:]...)
	default:
		pieces[index] = value
	}

	s.firing.Work[idx].Pieces = pieces
	s.reprice(ctx)
	return nil
}

// SetPrepaid flags a maker's work as covered by another payment. The flag
// is carried on the record but does not feed the allocation.
func (s *Sheet) SetPrepaid(ctx context.Context, makerID string, prepaid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.firing.Work {
		if s.firing.Work[i].ID == makerID {
			s.firing.Work[i].Prepaid = prepaid
			s.persistJSON(ctx, keyWork, s.firing.Work)
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not a maker in this firing", ErrUnknownMember, makerID)
}

// reprice reallocates the work list against the current cost and persists
// it. Callers hold the mutex.
func (s *Sheet) reprice(ctx context.Context) {
	s.firing.Work = allocator.Reallocate(s.firing.Cost, s.firing.Work)
	s.persistJSON(ctx, keyWork, s.firing.Work)
}

// SetDate sets the day the firing started. Dates are rejected outside the
// window from thirty days ago up to today.
func (s *Sheet) SetDate(ctx context.Context, iso string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	date, err := time.Parse(dateLayout, iso)
	if err != nil {
		return fmt.Errorf("%w: firing date %q is not a valid date", ErrValidation, iso)
	}

	today := s.now().Truncate(24 * time.Hour)
	earliest := today.Add(-dateWindow)
	if date.After(today) || date.Before(earliest) {
		return fmt.Errorf("%w: firing date %q is outside %s to %s",
			ErrValidation, iso, earliest.Format(dateLayout), today.Format(dateLayout))
	}

	s.firing.Date = iso
	s.persist(ctx, keyFiringDate, iso)
	return nil
}

// SetType switches the firing type. The type must be in the catalog; the
// top temperature resets to the type's default.
func (s *Sheet) SetType(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ft, ok := models.FiringTypeByName(name)
	if !ok {
		return fmt.Errorf("%w: unknown firing type %q", ErrValidation, name)
	}

	s.firing.Type = ft.Name
	s.firing.Temp = ft.DefaultTemp
	s.persist(ctx, keyFiringType, ft.Name)
	s.persist(ctx, keyFiringTemp, strconv.Itoa(ft.DefaultTemp))
	return nil
}

// SetTemp sets the top temperature, validated against the current firing
// type's range.
func (s *Sheet) SetTemp(ctx context.Context, temp int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ft, ok := models.FiringTypeByName(s.firing.Type)
	if !ok {
		return fmt.Errorf("%w: unknown firing type %q", ErrValidation, s.firing.Type)
	}
	if temp < ft.MinTemp || temp > ft.MaxTemp {
		return fmt.Errorf("%w: %d°C is outside the %s range %d-%d°C",
			ErrValidation, temp, ft.Name, ft.MinTemp, ft.MaxTemp)
	}

	s.firing.Temp = temp
	s.persist(ctx, keyFiringTemp, strconv.Itoa(temp))
	return nil
}

// SetCost sets the fixed firing cost and reprices every maker. Negative
// costs are rejected here so the allocator never sees one.
func (s *Sheet) SetCost(ctx context.Context, cost float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cost < 0 {
		return fmt.Errorf("%w: firing cost must not be negative", ErrValidation)
	}

	s.firing.Cost = cost
	s.persist(ctx, keyFiringCost, strconv.FormatFloat(cost, 'f', -1, 64))
	s.reprice(ctx)
	return nil
}

// Reset clears the work list, starting pricing over for the same kiln
// load. Metadata, crew lists, and the roster survive.
func (s *Sheet) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.firing.Work = []models.Maker{}
	s.persistJSON(ctx, keyWork, s.firing.Work)
}

// Problems reports what still blocks pricing: a missing date or an empty
// packed-by or priced-by list. An empty result means pricing can start.
func (s *Sheet) Problems() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var problems []string
	if s.firing.Date == "" {
		problems = append(problems, "enter the date the firing started")
	}
	if len(s.firing.PackedBy) == 0 {
		problems = append(problems, "list one or more of the people who packed the kiln")
	}
	if len(s.firing.PricedBy) == 0 {
		problems = append(problems, "list one or more of the people who unpacked the kiln")
	}
	return problems
}

// Report renders the shareable text report for the current sheet.
func (s *Sheet) Report() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return report.Render(s.firing)
}

func copyFiring(f models.Firing) models.Firing {
	out := f
	out.PackedBy = append([]models.Member(nil), f.PackedBy...)
	out.PricedBy = append([]models.Member(nil), f.PricedBy...)
	out.Work = make([]models.Maker, len(f.Work))
	for i, m := range f.Work {
		m.Pieces = append([]float64(nil), m.Pieces...)
		out.Work[i] = m
	}
	return out
}
