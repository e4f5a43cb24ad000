package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

// PowerSpectrum returns the magnitude of each frequency bin below the
// Nyquist limit. The mean is removed first so bin zero does not swamp
// the oscillations.
func PowerSpectrum(values []float64) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range values {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod finds the strongest oscillation in a series sampled
// every dt seconds and returns its period. Too-short series cannot
// carry a full cycle and come back as ErrEmptySeries.
func DominantPeriod(values []float64, dt float64) (float64, error) {
	if len(values) < 4 || dt <= 0 {
		return 0, fmt.Errorf("%w: need at least 4 samples and a positive interval", stellar.ErrEmptySeries)
	}

	ps := PowerSpectrum(values)
	best, bestMag := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestMag {
			best, bestMag = k, ps[k]
		}
	}
	if best == 0 {
		return 0, fmt.Errorf("%w: series carries no oscillation", stellar.ErrEmptySeries)
	}

	return float64(len(values)) * dt / float64(best), nil
}

// PulsationPeriod measures the star's radial pulsation from a recorded
// series. Sampling cadence is inferred from the timestamps.
func PulsationPeriod(samples []telemetry.Sample) (float64, error) {
	if len(samples) < 4 {
		return 0, fmt.Errorf("%w: need at least 4 samples", stellar.ErrEmptySeries)
	}

	dt := (samples[len(samples)-1].Time - samples[0].Time) / float64(len(samples)-1)
	radii := make([]float64, len(samples))
	for i, s := range samples {
		radii[i] = s.StarRadius
	}
	return DominantPeriod(radii, dt)
}
