// Package particle implements the fixed-capacity particle pool backing
// every lifecycle stage.
//
// A [Field] owns parallel slices of position, velocity, color, lifetime,
// and state. Slots are allocated once and recycled; nothing grows after
// construction, so a steady frame never allocates. Each slot is in exactly
// one of four states and moves through them one way only:
//
//	inactive -> free        (spawn)
//	free     -> stuck       (surface capture)
//	free     -> consumed    (horizon capture)
//	free     -> inactive    (lifetime or range expiry)
//
// Stuck and consumed are permanent for the lifetime of the owning field.
// When a spawn request exceeds the remaining inactive slots the field
// spawns what it can and drops the rest without error.
package particle
