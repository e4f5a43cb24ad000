// Package director runs the stellar lifecycle state machine.
//
// A Director owns exactly one active phase body plus, during a
// crossfade, the previous body fading out. Each Advance call steps the
// active body, polls its completion predicate, and on completion
// constructs the next stage seeded with the outgoing stage's visual
// radius so handovers show no pop. Phases progress strictly forward:
//
//	NEBULA_COLLAPSE -> MAIN_SEQUENCE -> RED_GIANT -> SUPERNOVA -> REMNANT
//
// The remnant is terminal; its completion predicate never fires.
//
// Sound and other fire-and-forget effects hang off CueSink: the
// director emits named cues at phase entries and one-shot moments and
// never waits on the sink.
package director
