// Package phase implements the five lifecycle stages as self-contained
// bodies.
//
// Each [Body] owns its particle fields and visual state, advances them
// one frame at a time, and reports completion through a predicate the
// director polls. Bodies never talk to each other; continuity across a
// transition comes from explicit seeding (the star starts at the exact
// radius the protostar ended with) and from the director crossfading the
// outgoing body's opacity.
//
// NebulaCollapse completes on a collapse-progress threshold, the three
// middle stages on configured durations, and Remnant never completes.
package phase
