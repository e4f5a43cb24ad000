package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/phase"
)

// Ensemble repeats one configuration across consecutive seeds. Each run
// gets its own director, so runs execute concurrently.
type Ensemble struct {
	base      *config.Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: cfg, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, rc Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := *e.base
			cfgCopy.Seed = e.seedStart + int64(idx)

			results[idx], errs[idx] = Run(ctx, &cfgCopy, rc)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Summary aggregates an ensemble: how the coin flips landed and how the
// typical run unfolded.
type Summary struct {
	Runs         int
	BlackHoles   int
	NeutronStars int
	Ignited      int     // runs whose collapse finished within the duration
	MeanIgnition float64 // over ignited runs only
	MeanMass     float64 // final consumed mass over all runs
}

func Summarize(results []*Result) Summary {
	var s Summary
	s.Runs = len(results)

	var ignitionTotal float64
	for _, r := range results {
		switch r.Final.RemnantKind {
		case phase.BlackHole.String():
			s.BlackHoles++
		case phase.NeutronStar.String():
			s.NeutronStars++
		}
		if at, ok := r.IgnitedAt(); ok {
			s.Ignited++
			ignitionTotal += at
		}
		s.MeanMass += r.Final.ConsumedMass
	}

	if s.Ignited > 0 {
		s.MeanIgnition = ignitionTotal / float64(s.Ignited)
	}
	if s.Runs > 0 {
		s.MeanMass /= float64(s.Runs)
	}
	return s
}

// FinalPhases tallies where each run ended, keyed by phase name.
func FinalPhases(results []*Result) map[string]int {
	counts := make(map[string]int)
	for _, r := range results {
		counts[r.Final.Phase.String()]++
	}
	return counts
}

// Stat is a min/mean/max over the runs that reported a value.
type Stat struct {
	Min, Mean, Max float64
	N              int
}

// TransitionTimes aggregates when each phase arrived across an
// ensemble, keyed by the destination phase name. Runs that never
// reached a phase simply do not contribute to its entry.
func TransitionTimes(results []*Result) map[string]Stat {
	stats := make(map[string]Stat)
	for _, r := range results {
		for _, tr := range r.Transitions {
			key := tr.To.String()
			s, seen := stats[key]
			if !seen {
				s = Stat{Min: tr.AtTime, Max: tr.AtTime}
			}
			if tr.AtTime < s.Min {
				s.Min = tr.AtTime
			}
			if tr.AtTime > s.Max {
				s.Max = tr.AtTime
			}
			s.Mean += tr.AtTime
			s.N++
			stats[key] = s
		}
	}
	for key, s := range stats {
		s.Mean /= float64(s.N)
		stats[key] = s
	}
	return stats
}
