package registry

import (
	"testing"

	"github.com/evanwills/firing-pricing-adjuster/internal/models"
)

func members(ids ...string) []models.Member {
	out := make([]models.Member, len(ids))
	for i, id := range ids {
		out[i] = models.Member{ID: id, Name: id, Pos: i}
	}
	return out
}

func TestGenerateUniqueID(t *testing.T) {
	tests := []struct {
		name     string
		existing []models.Member
		proposed string
		want     string
	}{
		{
			name:     "empty roster uses the bare slug",
			existing: nil,
			proposed: "Mark Malek",
			want:     "markmalek",
		},
		{
			name:     "collision appends suffix",
			existing: members("gabe"),
			proposed: "Gabe",
			want:     "gabe1",
		},
		{
			name:     "punctuation is stripped before collision check",
			existing: members("gabe"),
			proposed: "G@be!",
			want:     "gabe1",
		},
		{
			name:     "hyphens survive",
			existing: nil,
			proposed: "Anne-Marie",
			want:     "anne-marie",
		},
		{
			name:     "suffix keeps climbing past taken slots",
			existing: members("gabe", "gabe1", "gabe2", "evanw"),
			proposed: "Gabe",
			want:     "gabe3",
		},
		{
			name:     "no collision with unrelated ids",
			existing: members("evanw", "georgiep"),
			proposed: "Gabe",
			want:     "gabe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateUniqueID(tt.existing, tt.proposed)
			if err != nil {
				t.Fatalf("GenerateUniqueID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GenerateUniqueID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateUniqueIDNeverCollides(t *testing.T) {
	// Build up a roster one member at a time from names that all
	// normalize to the same slug; every generated id must be fresh.
	names := []string{"Gabe", "G@be!", "gabe", "GABE", "Ga.be", "g a b e"}

	var roster []models.Member
	seen := make(map[string]bool)

	for _, name := range names {
		id, err := GenerateUniqueID(roster, name)
		if err != nil {
			t.Fatalf("GenerateUniqueID(%q) error = %v", name, err)
		}
		if seen[id] {
			t.Fatalf("GenerateUniqueID(%q) returned duplicate id %q", name, id)
		}
		seen[id] = true
		roster = append(roster, models.Member{ID: id, Name: name, Pos: len(roster)})
	}
}

func TestIsMember(t *testing.T) {
	roster := members("evanw", "georgiep")

	if !IsMember(roster, "evanw") {
		t.Error("IsMember should find evanw")
	}
	if IsMember(roster, "gabe") {
		t.Error("IsMember should not find gabe")
	}

	work := []models.Maker{{ID: "evanw"}}
	if !IsMember(work, "evanw") {
		t.Error("IsMember should work on makers too")
	}
}

func TestSortMembers(t *testing.T) {
	in := []models.Member{
		{ID: "c", Pos: 2},
		{ID: "a", Pos: 0},
		{ID: "b1", Pos: 1},
		{ID: "b2", Pos: 1},
	}

	got := SortMembers(in)

	wantOrder := []string{"a", "b1", "b2", "c"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("sorted[%d] = %q, want %q", i, got[i].ID, id)
		}
	}

	// Input untouched.
	if in[0].ID != "c" {
		t.Error("SortMembers mutated its input")
	}
}

func TestSortMembersStable(t *testing.T) {
	// All members share Pos 0; relative input order must survive.
	in := []models.Member{
		{ID: "first", Pos: 0},
		{ID: "second", Pos: 0},
		{ID: "third", Pos: 0},
	}

	got := SortMembers(in)

	for i, want := range []string{"first", "second", "third"} {
		if got[i].ID != want {
			t.Errorf("sorted[%d] = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Mark Malek", "markmalek"},
		{"G@be!", "gabe"},
		{"Anne-Marie", "annemarie"},
		{"", ""},
		{"123 Go", "123go"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.raw); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestMatchesFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   bool
	}{
		{"Mark Malek", "mark", true},
		{"Mark Malek", "MALEK", true},
		{"O'Brien", "obr", true},
		{"Mark Malek", "gabe", false},
		{"Mark Malek", "", true},
	}

	for _, tt := range tests {
		if got := MatchesFilter(tt.name, tt.filter); got != tt.want {
			t.Errorf("MatchesFilter(%q, %q) = %v, want %v", tt.name, tt.filter, got, tt.want)
		}
	}
}

func TestNewMaker(t *testing.T) {
	member := models.Member{ID: "evanw", Name: "Evan Wills", Pos: 0}
	maker := NewMaker(member)

	if maker.ID != member.ID {
		t.Errorf("maker id = %q, want %q", maker.ID, member.ID)
	}
	if maker.Member != member {
		t.Errorf("maker member snapshot = %+v, want %+v", maker.Member, member)
	}
	if len(maker.Pieces) != 0 {
		t.Errorf("new maker has %d pieces, want 0", len(maker.Pieces))
	}
	if maker.Total != 0 || maker.AdjustedTotal != 0 {
		t.Error("new maker totals should be zero")
	}
	if maker.Prepaid {
		t.Error("new maker should not be prepaid")
	}
}
