// Package storage persists finished matches: one directory per run with a
// JSON metadata file and a zstd-compressed trajectory CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/san-kum/sweepsim/internal/arena"
	"github.com/san-kum/sweepsim/internal/match"
)

const trajectoryFile = "trajectory.csv.zst"

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
	ID             string             `json:"id"`
	Subleague      string             `json:"subleague"`
	Driver         string             `json:"driver"`
	Timestamp      time.Time          `json:"timestamp"`
	Seed           int64              `json:"seed"`
	Dt             float64            `json:"dt"`
	Steps          int                `json:"steps"`
	Score          int                `json:"score"`
	CleanedPercent float64            `json:"cleanedPercent"`
	Events         []arena.ScoreEvent `json:"events,omitempty"`
	Metrics        map[string]float64 `json:"metrics"`
}

func (s *Store) Save(subleague, driver string, dt float64, seed int64, result *match.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", subleague, uuid.New().String()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Subleague:      subleague,
		Driver:         driver,
		Timestamp:      time.Now(),
		Seed:           seed,
		Dt:             dt,
		Steps:          result.StepsTaken,
		Score:          result.Score,
		CleanedPercent: result.CleanedPercent,
		Events:         result.ScoreLog,
		Metrics:        result.Metrics,
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

	if err := s.saveTrajectory(runDir, result); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) saveTrajectory(runDir string, result *match.Result) error {
	file, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return err
	}
	defer file.Close()

	zw, err := zstd.NewWriter(file)
	if err != nil {
		return err
	}
	defer zw.Close()

	w := csv.NewWriter(zw)
	defer w.Flush()

	if err := w.Write([]string{"time", "x", "y", "yaw"}); err != nil {
		return err
	}
	for i, p := range result.Poses {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
			strconv.FormatFloat(p.Yaw, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

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
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) ([]match.Pose, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	zr, err := zstd.NewReader(file)
	if err != nil {
		return nil, nil, err
	}
	defer zr.Close()

	r := csv.NewReader(zr)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []match.Pose{}, []float64{}, nil
	}

	poses := make([]match.Pose, 0, len(records)-1)
	times := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		x, _ := strconv.ParseFloat(record[1], 64)
		y, _ := strconv.ParseFloat(record[2], 64)
		yaw, _ := strconv.ParseFloat(record[3], 64)
		times = append(times, t)
		poses = append(poses, match.Pose{X: x, Y: y, Yaw: yaw})
	}
	return poses, times, nil
}
