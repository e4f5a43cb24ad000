// Package analysis extracts scalar findings from recorded run series.
//
//   - [PowerSpectrum]: magnitude spectrum of a sampled series
//   - [DominantPeriod]: strongest oscillation period in a series
//   - [PulsationPeriod]: the star's radial pulsation period from a run
//   - [MassGrowthRate]: average mass accretion rate over a series
//   - [PhaseSpans]: simulated seconds spent in each lifecycle phase
//
// Series come from the telemetry sampler, directly or reloaded from a
// stored run.
package analysis
