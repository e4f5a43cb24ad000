package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/telemetry"
)

// Store keeps recorded runs on disk, one directory per run holding
// metadata.json, series.csv and the config.yaml that produced it.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type TransitionRecord struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	At   float64 `json:"at"`
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Duration    float64            `json:"duration"`
	Interval    float64            `json:"interval"`
	FinalPhase  string             `json:"final_phase"`
	RemnantKind string             `json:"remnant_kind,omitempty"`
	Transitions []TransitionRecord `json:"transitions"`
}

var seriesHeader = []string{
	"time", "phase", "mass", "capture_radius", "star_radius",
	"progress", "free", "stuck", "consumed",
}

// Save records one finished or in-flight run: the sampled series, the
// final snapshot's summary, and the config used.
func (s *Store) Save(preset string, cfg *config.Config, hist *telemetry.History, final telemetry.Snapshot) (string, error) {
	runID := fmt.Sprintf("%s_%d", preset, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Preset:     preset,
		Timestamp:  time.Now(),
		Seed:       cfg.Seed,
		Duration:   final.TotalElapsed,
		Interval:   hist.Interval(),
		FinalPhase: final.Phase.String(),
	}
	if final.RemnantKind != "" {
		meta.RemnantKind = final.RemnantKind
	}
	for _, tr := range final.Transitions {
		meta.Transitions = append(meta.Transitions, TransitionRecord{
			From: tr.From.String(),
			To:   tr.To.String(),
			At:   tr.AtTime,
		})
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := config.Save(filepath.Join(runDir, "config.yaml"), cfg); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeSeries(csvFile, hist.Samples()); err != nil {
		return "", err
	}
	return runID, nil
}

func writeSeries(w io.Writer, samples []telemetry.Sample) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(seriesHeader); err != nil {
		return err
	}
	for _, sm := range samples {
		row := []string{
			strconv.FormatFloat(sm.Time, 'f', 6, 64),
			sm.Phase.String(),
			strconv.FormatFloat(sm.Mass, 'f', 6, 64),
			strconv.FormatFloat(sm.CaptureRadius, 'f', 6, 64),
			strconv.FormatFloat(sm.StarRadius, 'f', 6, 64),
			strconv.FormatFloat(sm.Progress, 'f', 6, 64),
			strconv.Itoa(sm.Free),
			strconv.Itoa(sm.Stuck),
			strconv.Itoa(sm.Consumed),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// List returns metadata for every readable run. Directories without a
// parseable metadata.json are skipped, not reported.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", stellar.ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadConfig reads back the exact config a run was recorded with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(s.baseDir, runID, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", stellar.ErrRunNotFound, runID)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadSeries reads a run's sampled series back. Rows that fail to parse
// are skipped; a missing run is ErrRunNotFound.
func (s *Store) LoadSeries(runID string) ([]telemetry.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", stellar.ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []telemetry.Sample{}, nil
	}

	samples := make([]telemetry.Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < len(seriesHeader) {
			continue
		}
		sm, ok := parseSample(rec)
		if !ok {
			continue
		}
		samples = append(samples, sm)
	}
	return samples, nil
}

func parseSample(rec []string) (telemetry.Sample, bool) {
	var sm telemetry.Sample
	var err error

	if sm.Time, err = strconv.ParseFloat(rec[0], 64); err != nil {
		return sm, false
	}
	if sm.Phase, err = stellar.ParsePhase(rec[1]); err != nil {
		return sm, false
	}

	floats := []*float64{&sm.Mass, &sm.CaptureRadius, &sm.StarRadius, &sm.Progress}
	for i, dst := range floats {
		if *dst, err = strconv.ParseFloat(rec[2+i], 64); err != nil {
			return sm, false
		}
	}
	ints := []*int{&sm.Free, &sm.Stuck, &sm.Consumed}
	for i, dst := range ints {
		if *dst, err = strconv.Atoi(rec[6+i]); err != nil {
			return sm, false
		}
	}
	return sm, true
}
