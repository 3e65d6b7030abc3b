package models

// Member is a co-op member known to the roster.
type Member struct {
	// ID is the unique identifier, derived from the name at creation
	// (lowercased, punctuation stripped, numeric suffix on collision).
	// Immutable once assigned; name edits never change it.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// MakersMark is an optional visual identifier for the member's work,
	// e.g. an SVG string or a short mark. Empty when the member has none.
	MakersMark string `json:"makersMark,omitempty"`

	// Pos is the explicit ordering key used for stable sorted display.
	// Assigned at creation as the roster size at that moment and never
	// reassigned, so ties are possible and sorts must stay stable.
	Pos int `json:"pos"`
}

// Key returns the member's id. Satisfies registry.Keyed.
func (m Member) Key() string { return m.ID }

// Maker is a member's participation in one firing: the raw prices of the
// pieces they put through the kiln, plus the derived totals.
type Maker struct {
	// ID matches the referenced Member's ID. At most one Maker per
	// member per firing.
	ID string `json:"id"`

	// Member is a snapshot of the member's details at the time the work
	// entry was last touched.
	Member Member `json:"member"`

	// Pieces holds the raw per-piece prices in insertion order. A price
	// of zero is treated as "not a real entry" and removed at the edit
	// boundary, so entries here are always intended to count.
	Pieces []float64 `json:"pieces"`

	// Total is the sum of Pieces. Derived; recomputed by the allocator.
	Total float64 `json:"total"`

	// AdjustedTotal is Total rescaled so that all makers' adjusted
	// totals sum to the firing's fixed cost. Derived; recomputed by the
	// allocator whenever any pieces or the cost change.
	AdjustedTotal float64 `json:"adjustedTotal"`

	// Prepaid marks work already covered by another payment (e.g. a
	// class fee). Reserved: it does not feed the allocation formula.
	Prepaid bool `json:"prepaid"`
}

// Key returns the maker's id. Satisfies registry.Keyed.
func (m Maker) Key() string { return m.ID }
