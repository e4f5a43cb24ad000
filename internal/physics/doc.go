// Package physics implements the force model and spawn samplers shared by
// every lifecycle stage.
//
// A single parameterized model, [RadialForce], serves nebula collapse,
// stellar wind, supernova ejecta, and remnant accretion; stages differ only
// in their constants. The model is pure: [RadialForce.Apply] maps one
// particle's position and velocity to a new velocity with no hidden state,
// so the only randomness in the system lives in the spawn samplers.
//
// All tuning constants are per-frame quantities at the reference frame rate
// and are scaled by elapsed frames, so behavior at 60 FPS matches the hand
// tuning exactly and degrades gracefully at other rates.
package physics
