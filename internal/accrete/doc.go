// Package accrete couples particle capture to mass bookkeeping.
//
// A [Ledger] counts consumed mass in fixed quanta and derives the live
// capture radius from it; mass only ever grows and the radius only ever
// follows, up to a hard cap. A [Gate] tests free particles against a
// capture boundary each frame and either sticks them to a surface or
// consumes them into a ledger, depending on its mode. Sticking can be
// closed permanently once a body reaches critical mass; there is no way
// to reopen it.
package accrete
