// Package telemetry carries read-only views of the running simulation.
//
// The director publishes a [Snapshot] per frame and each phase body
// publishes a [BodyView]; renderers, audio, and recorders consume these
// and never reach into simulation internals. [History] samples snapshots
// at a fixed interval for charts and run recordings.
package telemetry
