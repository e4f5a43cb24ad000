package storage

import (
	"encoding/json"
	"io"
)

// ExportData is the flattened column layout of one recorded run, meant
// for downstream tooling that would rather decode one document than
// walk a run directory.
type ExportData struct {
	RunMetadata
	Times         []float64 `json:"times"`
	Phases        []string  `json:"phases"`
	Mass          []float64 `json:"mass"`
	CaptureRadius []float64 `json:"capture_radius"`
	StarRadius    []float64 `json:"star_radius"`
	Progress      []float64 `json:"progress"`
	Free          []int     `json:"free"`
	Stuck         []int     `json:"stuck"`
	Consumed      []int     `json:"consumed"`
}

// ExportJSON writes one run as a single indented JSON document.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	data := ExportData{RunMetadata: *meta}
	for _, sm := range samples {
		data.Times = append(data.Times, sm.Time)
		data.Phases = append(data.Phases, sm.Phase.String())
		data.Mass = append(data.Mass, sm.Mass)
		data.CaptureRadius = append(data.CaptureRadius, sm.CaptureRadius)
		data.StarRadius = append(data.StarRadius, sm.StarRadius)
		data.Progress = append(data.Progress, sm.Progress)
		data.Free = append(data.Free, sm.Free)
		data.Stuck = append(data.Stuck, sm.Stuck)
		data.Consumed = append(data.Consumed, sm.Consumed)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV re-emits a run's series as CSV.
func (s *Store) ExportCSV(runID string, w io.Writer) error {
	samples, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}
	return writeSeries(w, samples)
}
