// Package models defines the core domain models for the firing pricing
// adjuster.
//
// # Models
//
//   - Member: a co-op member known to the roster
//   - Maker: a member's work entry in the current firing
//   - Firing: one kiln session (the "price sheet")
//   - FiringType: catalog entry with temperature bounds
//   - User: a login account for a member
//
// # Design Principles
//
//  1. **Derived fields stay derived**: Maker.Total and Maker.AdjustedTotal
//     are always recomputed from Pieces and the firing cost, never set
//     independently. The allocator package owns that recomputation.
//  2. **Stable identity**: Member.ID is derived from the name at creation
//     and never changes afterwards, even when the name is edited.
//  3. **Avoid circular references**: Makers embed a snapshot of their
//     Member rather than pointing back into the roster.
package models
