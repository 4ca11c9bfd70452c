package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"

	// tick, particles, spread, energy
	fixedColumns = 4
	// a1, a2, tip_x, tip_y, hue
	pendulumColumns = 5
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo is what the caller knows about a run before it is stored.
type RunInfo struct {
	Preset      string  `json:"preset"`
	Seed        int64   `json:"seed"`
	Count       int     `json:"count"`
	Delta       float64 `json:"delta"`
	Ticks       int     `json:"ticks"`
	SampleEvery int     `json:"sample_every"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Variant     string  `json:"variant"`
}

type RunMetadata struct {
	RunInfo
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	TicksTaken int                `json:"ticks_taken"`
	Samples    int                `json:"samples"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", info.Preset, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		RunInfo:    info,
		ID:         runID,
		Timestamp:  now,
		TicksTaken: result.TicksTaken,
		Samples:    len(result.Samples),
		Metrics:    finiteMetrics(result.Metrics),
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteSamplesCSV(csvFile, result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

// json cannot encode NaN or Inf.
func finiteMetrics(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[k] = v
	}
	return out
}

// List returns stored runs, newest first. Directories without readable
// metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", dynamo.ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", dynamo.ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return ReadSamplesCSV(file)
}

// WriteSamplesCSV writes one row per sample with the ensemble columns first
// and then five columns per pendulum.
func WriteSamplesCSV(out io.Writer, samples []sim.Sample) error {
	w := csv.NewWriter(out)

	header := []string{"tick", "particles", "spread", "energy"}
	if len(samples) > 0 {
		for i := range samples[0].Pendulums {
			header = append(header,
				fmt.Sprintf("p%d_a1", i), fmt.Sprintf("p%d_a2", i),
				fmt.Sprintf("p%d_x", i), fmt.Sprintf("p%d_y", i),
				fmt.Sprintf("p%d_hue", i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Tick),
			strconv.Itoa(s.Particles),
			formatFloat(s.Spread),
			formatFloat(s.Energy),
		}
		for _, p := range s.Pendulums {
			row = append(row, formatFloat(p.A1), formatFloat(p.A2),
				formatFloat(p.TipX), formatFloat(p.TipY), formatFloat(p.Hue))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func ReadSamplesCSV(in io.Reader) ([]sim.Sample, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for line, record := range records[1:] {
		if len(record) < fixedColumns || (len(record)-fixedColumns)%pendulumColumns != 0 {
			return nil, fmt.Errorf("samples line %d: unexpected column count %d", line+2, len(record))
		}

		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("samples line %d column %d: %w", line+2, j+1, err)
			}
			vals[j] = v
		}

		s := sim.Sample{
			Tick:      int(vals[0]),
			Particles: int(vals[1]),
			Spread:    vals[2],
			Energy:    vals[3],
			Pendulums: make([]sim.PendulumSample, 0, (len(vals)-fixedColumns)/pendulumColumns),
		}
		for j := fixedColumns; j < len(vals); j += pendulumColumns {
			s.Pendulums = append(s.Pendulums, sim.PendulumSample{
				A1: vals[j], A2: vals[j+1], TipX: vals[j+2], TipY: vals[j+3], Hue: vals[j+4],
			})
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type jsonPendulum struct {
	A1   *float64 `json:"a1"`
	A2   *float64 `json:"a2"`
	TipX *float64 `json:"tip_x"`
	TipY *float64 `json:"tip_y"`
	Hue  *float64 `json:"hue"`
}

type jsonSample struct {
	Tick      int            `json:"tick"`
	Particles int            `json:"particles"`
	Spread    *float64       `json:"spread"`
	Energy    *float64       `json:"energy"`
	Pendulums []jsonPendulum `json:"pendulums"`
}

// nullable is nil for values json cannot encode.
func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// WriteRunJSON writes the run metadata and its samples as one indented JSON
// document. NaN and Inf sample values are written as null.
func WriteRunJSON(out io.Writer, meta *RunMetadata, samples []sim.Sample) error {
	m := *meta
	m.Metrics = finiteMetrics(meta.Metrics)

	rows := make([]jsonSample, len(samples))
	for i, s := range samples {
		ps := make([]jsonPendulum, len(s.Pendulums))
		for j, p := range s.Pendulums {
			ps[j] = jsonPendulum{
				A1: nullable(p.A1), A2: nullable(p.A2),
				TipX: nullable(p.TipX), TipY: nullable(p.TipY),
				Hue: nullable(p.Hue),
			}
		}
		rows[i] = jsonSample{
			Tick:      s.Tick,
			Particles: s.Particles,
			Spread:    nullable(s.Spread),
			Energy:    nullable(s.Energy),
			Pendulums: ps,
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*RunMetadata
		Samples []jsonSample `json:"samples"`
	}{&m, rows})
}
