// Package registry manages the co-op's member roster: stable id
// generation, membership queries, sorting, and name matching.
package registry

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/evanwills/firing-pricing-adjuster/internal/models"
)

// ErrIDGeneration is returned when the id search exhausts its attempts
// without finding a free slot. With distinct suffixes per attempt this is
// unreachable in practice; it exists to guard the search invariant.
var ErrIDGeneration = errors.New("unable to generate a unique member id")

var (
	idStrip   = regexp.MustCompile(`[^a-z0-9-]+`)
	nameStrip = regexp.MustCompile(`[^a-z0-9]+`)
)

// Keyed is anything identified by a member id. Both Member and Maker
// satisfy it, so membership queries work on rosters and work lists alike.
type Keyed interface {
	Key() string
}

// IsMember reports whether id is already present in list.
func IsMember[T Keyed](list []T, id string) bool {
	for _, item := range list {
		if item.Key() == id {
			return true
		}
	}
	return false
}

// GenerateUniqueID derives a roster-unique id from a proposed display
// name. The candidate is the lowercased name with everything outside
// [a-z0-9-] stripped; on collision an increasing integer suffix is
// appended and the search retried. Exhausting the search returns an error
// wrapping ErrIDGeneration and the caller must abort its add/edit.
func GenerateUniqueID(existing []models.Member, proposedName string) (string, error) {
	base := idStrip.ReplaceAllString(strings.ToLower(proposedName), "")

	// The bare slug plus len(existing) suffixed retries always yields
	// more distinct candidates than there are ids to collide with, so
	// the error branch below is a guard, not an expected outcome.
	candidate := base
	for c := 1; c <= len(existing)+1; c++ {
		if !IsMember(existing, candidate) {
			return candidate, nil
		}
		candidate = base + strconv.Itoa(c)
	}

	return "", fmt.Errorf("%w for %q", ErrIDGeneration, proposedName)
}

// SortMembers returns a new slice ordered by ascending Pos. The sort is
// stable, so members sharing a Pos keep their relative input order. Pos
// values are never touched; they are assigned once at creation.
func SortMembers(list []models.Member) []models.Member {
	out := append([]models.Member(nil), list...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pos < out[j].Pos
	})
	return out
}

// NormalizeName lowercases a name and strips everything outside [a-z0-9].
// Used for filter matching; note id derivation keeps hyphens, this does
// not.
func NormalizeName(raw string) string {
	return nameStrip.ReplaceAllString(strings.ToLower(raw), "")
}

// MatchesFilter reports whether a display name contains the filter text,
// ignoring case and punctuation. The filter is normalized too, so
// "O'Brien" matches the filter "obr".
func MatchesFilter(name, filter string) bool {
	return strings.Contains(NormalizeName(name), NormalizeName(filter))
}

// NewMaker creates an empty work entry for a member: no pieces yet, both
// totals zero, not prepaid.
func NewMaker(member models.Member) models.Maker {
	return models.Maker{
		ID:     member.ID,
		Member: member,
		Pieces: []float64{},
	}
}
