package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/dotgrid/internal/anim"
	"github.com/san-kum/dotgrid/internal/trace"
)

var ErrRunNotFound = errors.New("storage: run not found")

var sampleHeader = []string{
	"frame", "time", "delta", "dots",
	"mean_hue", "mean_saturation", "mean_luminance", "mean_displacement",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	DPR       float64            `json:"dpr"`
	Frames    int                `json:"frames"`
	Interval  float64            `json:"interval_ms"`
	Params    anim.Params        `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Summary reduces samples to the metrics stored with a run.
func Summary(samples []trace.Sample) map[string]float64 {
	m := map[string]float64{}
	if len(samples) == 0 {
		return m
	}
	last := samples[len(samples)-1]
	m["dots"] = float64(last.Dots)
	m["final_mean_hue"] = last.MeanHue
	m["final_mean_luminance"] = last.MeanLuminance

	var disp float64
	for _, s := range samples {
		disp += s.MeanDisplacement
	}
	m["avg_displacement"] = disp / float64(len(samples))
	return m
}

// Save writes metadata.json and samples.csv into a new run directory and
// returns the run ID. ID and Timestamp are filled in when empty.
func (s *Store) Save(meta RunMetadata, samples []trace.Sample) (string, error) {
	now := time.Now()
	if meta.Preset == "" {
		meta.Preset = "custom"
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Preset, now.UnixNano())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}
	if meta.Metrics == nil {
		meta.Metrics = Summary(samples)
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
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

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(sampleHeader); err != nil {
		return "", err
	}
	for _, smp := range samples {
		row := []string{
			strconv.FormatUint(smp.Frame, 10),
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
			strconv.FormatFloat(smp.Delta, 'f', 6, 64),
			strconv.Itoa(smp.Dots),
			strconv.FormatFloat(smp.MeanHue, 'f', 6, 64),
			strconv.FormatFloat(smp.MeanSaturation, 'f', 6, 64),
			strconv.FormatFloat(smp.MeanLuminance, 'f', 6, 64),
			strconv.FormatFloat(smp.MeanDisplacement, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, newest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]trace.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(sampleHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []trace.Sample{}, nil
	}

	samples := make([]trace.Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		smp, err := parseSample(rec)
		if err != nil {
			return nil, fmt.Errorf("samples.csv line %d: %w", i+2, err)
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func parseSample(rec []string) (trace.Sample, error) {
	var smp trace.Sample
	var err error
	if smp.Frame, err = strconv.ParseUint(rec[0], 10, 64); err != nil {
		return smp, err
	}
	if smp.Dots, err = strconv.Atoi(rec[3]); err != nil {
		return smp, err
	}
	floats := []*float64{
		&smp.Time, &smp.Delta, nil,
		&smp.MeanHue, &smp.MeanSaturation, &smp.MeanLuminance, &smp.MeanDisplacement,
	}
	for i, dst := range floats {
		if dst == nil {
			continue
		}
		if *dst, err = strconv.ParseFloat(rec[i+1], 64); err != nil {
			return smp, err
		}
	}
	return smp, nil
}

type ExportData struct {
	RunMetadata
	Samples []trace.Sample `json:"samples"`
}

// ExportJSON writes a run's metadata and samples as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Samples: samples})
}
