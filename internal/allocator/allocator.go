// Package allocator rescales raw piece prices so that every maker pays a
// proportional share of a firing's fixed cost.
package allocator

import (
	"github.com/evanwills/firing-pricing-adjuster/internal/models"
)

// Sum adds up a list of piece prices.
func Sum(pieces []float64) float64 {
	var total float64
	for _, p := range pieces {
		total += p
	}
	return total
}

// Reallocate recomputes every maker's raw total and cost-adjusted total so
// that the adjusted totals sum to fixedCost while preserving each maker's
// share of the grand total.
//
// Two passes: first sum each maker's pieces and accumulate the grand total,
// then scale each raw total by fixedCost/grandTotal. When the grand total
// is zero there is nothing to apportion and every adjusted total is zero;
// no division happens in that case.
//
// The input is never mutated. The returned slice is freshly allocated, has
// the same length and order as the input, and each maker's Pieces slice is
// copied so edits to the result cannot leak back to the caller.
//
// No validation happens here: a negative fixedCost or negative piece
// prices flow through the arithmetic unchanged. Rejecting them is the
// caller's job.
func Reallocate(fixedCost float64, makers []models.Maker) []models.Maker {
	out := make([]models.Maker, len(makers))

	var grandTotal float64
	for i, m := range makers {
		m.Pieces = append([]float64(nil), m.Pieces...)
		m.Total = Sum(m.Pieces)
		grandTotal += m.Total
		out[i] = m
	}

	if grandTotal == 0 {
		for i := range out {
			out[i].AdjustedTotal = 0
		}
		return out
	}

	factor := fixedCost / grandTotal
	for i := range out {
		out[i].AdjustedTotal = out[i].Total * factor
	}

	return out
}
