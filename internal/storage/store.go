// Package storage keeps completed runs on disk, one directory per run
// holding metadata.json, channels.csv and the model document.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/gaitsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	channelsFile = "channels.csv"
	documentFile = "model.yaml"
)

var (
	ErrRunNotFound = errors.New("storage: run not found")
	ErrAmbiguous   = errors.New("storage: run id prefix is ambiguous")
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

type RunMetadata struct {
	ID          string             `json:"id"`
	Model       string             `json:"model"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Integrator  string             `json:"integrator"`
	Steps       int                `json:"steps"`
	Aborted     bool               `json:"aborted"`
	AbortReason string             `json:"abort_reason,omitempty"`
	Channels    []string           `json:"channels"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Create allocates a new run directory and returns its id and path.
func (s *Store) Create() (string, string, error) {
	id := uuid.NewString()
	dir := s.RunDir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", err
	}
	return id, dir, nil
}

func (s *Store) RunDir(id string) string {
	return filepath.Join(s.baseDir, id)
}

// Save writes the metadata, the channel table and, when non-empty, the
// model document into the run directory made by Create.
func (s *Store) Save(meta RunMetadata, result *sim.Result, document []byte) error {
	if meta.ID == "" {
		return fmt.Errorf("storage: metadata has no run id")
	}
	dir := s.RunDir(meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Steps = result.StepsTaken
	meta.Aborted = result.Aborted
	meta.AbortReason = result.AbortReason
	meta.Channels = result.Channels
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(dir, metadataFile), meta); err != nil {
		return err
	}
	if err := writeChannels(filepath.Join(dir, channelsFile), result); err != nil {
		return err
	}
	if len(document) > 0 {
		if err := os.WriteFile(filepath.Join(dir, documentFile), document, 0644); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeChannels(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"time"}, result.Channels...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, row := range result.Samples {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.FormatFloat(result.Times[i], 'g', -1, 64))
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

// Resolve expands a unique prefix of a run id.
func (s *Store) Resolve(prefix string) (string, error) {
	if _, err := os.Stat(filepath.Join(s.RunDir(prefix), metadataFile)); err == nil {
		return prefix, nil
	}
	entries, err := os.ReadDir(s.baseDir)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	var match string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %s", ErrAmbiguous, prefix)
		}
		match = entry.Name()
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	}
	return match, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.RunDir(runID), metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
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

// LoadChannels reads the channel table back into a result. Metrics and
// abort state come from the metadata.
func (s *Store) LoadChannels(runID string) (*sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.RunDir(runID), channelsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", channelsFile, err)
	}

	result := &sim.Result{
		Metrics:     meta.Metrics,
		StepsTaken:  meta.Steps,
		Aborted:     meta.Aborted,
		AbortReason: meta.AbortReason,
	}
	if len(records) == 0 {
		return result, nil
	}
	result.Channels = records[0][1:]

	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %d: %w", channelsFile, i+1, j, err)
			}
			vals[j] = v
		}
		result.Times = append(result.Times, vals[0])
		result.Samples = append(result.Samples, vals[1:])
	}
	return result, nil
}

// Document returns the stored model document, if any.
func (s *Store) Document(runID string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.RunDir(runID), documentFile))
}
