// Package stellar provides the shared primitives of the lifecycle engine.
//
// The package defines the vocabulary every other package speaks:
//
//   - [Vec3]: point or direction in simulation space
//   - [RGB]: normalized particle color
//   - [Phase]: the five lifecycle stages, strictly ordered
//   - [Range]: uniform sampling interval for spawn parameters
//   - [TrigTable]: precomputed sin/cos for per-frame spherical math
//
// Phases form a one-way progression: NEBULA_COLLAPSE, MAIN_SEQUENCE,
// RED_GIANT, SUPERNOVA, REMNANT. There are no skips and no reversals;
// [Phase.Next] is the only way forward and REMNANT has no successor.
package stellar
