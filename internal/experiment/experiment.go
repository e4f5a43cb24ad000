// Package experiment runs the lifecycle headless: no renderer, no audio,
// just a director stepped at a fixed cadence with its telemetry recorded.
// Single runs feed the run and bench commands; ensembles and parameter
// sweeps build on them.
package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/director"
	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

// Config controls one headless run.
type Config struct {
	Duration float64 // simulated seconds to cover
	Step     float64 // seconds per director step
	Interval float64 // sampling cadence; <= 0 falls back to 0.25
}

// Result is everything a headless run produced. History holds the same
// samples as Samples and exists so a run can be recorded as-is.
type Result struct {
	Seed        int64
	Samples     []telemetry.Sample
	History     *telemetry.History
	Final       telemetry.Snapshot
	Transitions []telemetry.Transition
	Steps       int
	Wall        time.Duration
}

func (rc Config) validate() error {
	if rc.Duration <= 0 {
		return fmt.Errorf("run duration must be positive, got %g", rc.Duration)
	}
	if rc.Step <= 0 || rc.Step > director.MaxStep {
		return fmt.Errorf("run step must be in (0, %g], got %g", director.MaxStep, rc.Step)
	}
	return nil
}

// Run drives a fresh director until Duration simulated seconds have
// passed or ctx is cancelled. Cancellation returns the partial result
// alongside ctx.Err, so a long run interrupted at the terminal still
// yields its series.
func Run(ctx context.Context, cfg *config.Config, rc Config) (*Result, error) {
	if err := rc.validate(); err != nil {
		return nil, err
	}
	interval := rc.Interval
	if interval <= 0 {
		interval = 0.25
	}

	d := director.New(cfg)
	hist := telemetry.NewHistory(interval, 0)
	result := &Result{Seed: cfg.Seed}

	start := time.Now()
	for d.TotalElapsed() < rc.Duration {
		select {
		case <-ctx.Done():
			result.finish(d, hist, start)
			return result, ctx.Err()
		default:
		}

		before := d.TotalElapsed()
		d.Advance(rc.Step)
		hist.Observe(d.TotalElapsed()-before, d.Snapshot())
		result.Steps++
	}

	result.finish(d, hist, start)
	return result, nil
}

func (r *Result) finish(d *director.Director, hist *telemetry.History, start time.Time) {
	r.Wall = time.Since(start)
	r.Samples = hist.Samples()
	r.History = hist
	r.Final = d.Snapshot()
	r.Transitions = d.Transitions()
}

// IgnitedAt returns when the collapse handed over to the main sequence,
// or false if the run never got that far.
func (r *Result) IgnitedAt() (float64, bool) {
	for _, tr := range r.Transitions {
		if tr.From == stellar.NebulaCollapse {
			return tr.AtTime, true
		}
	}
	return 0, false
}
