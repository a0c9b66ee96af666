package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/san-kum/asciiscape/internal/metrics"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{"index", "elapsed", "dt", "glyphs", "mean_alpha"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// Recording describes one saved headless run.
type Recording struct {
	ID        string             `json:"id"`
	Theme     string             `json:"theme"`
	ColorMode string             `json:"color_mode"`
	Scenario  string             `json:"scenario,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      uint64             `json:"seed"`
	FPS       int                `json:"fps"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	DPR       float64            `json:"dpr"`
	Duration  float64            `json:"duration"`
	Summary   metrics.Summary    `json:"summary"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a recording and its per-frame stats, assigning the ID and
// timestamp.
func (s *Store) Save(rec Recording, stats []metrics.FrameStats) (string, error) {
	now := time.Now()
	rec.ID = fmt.Sprintf("%s_%d", rec.Theme, now.UnixNano())
	rec.Timestamp = now
	runDir := filepath.Join(s.baseDir, rec.ID)
	for i := 1; exists(runDir); i++ {
		rec.ID = fmt.Sprintf("%s_%d_%d", rec.Theme, now.UnixNano(), i)
		runDir = filepath.Join(s.baseDir, rec.ID)
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", errors.Wrap(err, "write metadata")
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteFramesCSV(csvFile, stats); err != nil {
		return "", errors.Wrap(err, "write frames")
	}
	return rec.ID, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// WriteFramesCSV writes frame stats with a header row.
func WriteFramesCSV(out io.Writer, stats []metrics.FrameStats) error {
	w := csv.NewWriter(out)
	if err := w.Write(framesHeader); err != nil {
		return err
	}
	for _, st := range stats {
		row := []string{
			strconv.Itoa(st.Index),
			strconv.FormatFloat(st.Elapsed, 'f', 6, 64),
			strconv.FormatFloat(st.Dt, 'f', 6, 64),
			strconv.Itoa(st.Glyphs),
			strconv.FormatFloat(st.MeanAlpha, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable recording, newest first.
func (s *Store) List() ([]Recording, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Recording{}, nil
		}
		return nil, err
	}

	recs := make([]Recording, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		recs = append(recs, *rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Timestamp.Equal(recs[j].Timestamp) {
			return recs[i].ID > recs[j].ID
		}
		return recs[i].Timestamp.After(recs[j].Timestamp)
	})
	return recs, nil
}

func (s *Store) Load(id string) (*Recording, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var rec Recording
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrapf(err, "parse %s", id)
	}
	return &rec, nil
}

// LoadStats reads the per-frame stats of a recording. Malformed rows are
// skipped.
func (s *Store) LoadStats(id string) ([]metrics.FrameStats, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read frames of %s", id)
	}
	if len(records) < 2 {
		return []metrics.FrameStats{}, nil
	}

	stats := make([]metrics.FrameStats, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(framesHeader) {
			continue
		}
		var st metrics.FrameStats
		var perr error
		parseInt := func(s string) int {
			v, err := strconv.Atoi(s)
			if err != nil {
				perr = err
			}
			return v
		}
		parseFloat := func(s string) float64 {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				perr = err
			}
			return v
		}
		st.Index = parseInt(record[0])
		st.Elapsed = parseFloat(record[1])
		st.Dt = parseFloat(record[2])
		st.Glyphs = parseInt(record[3])
		st.MeanAlpha = parseFloat(record[4])
		if perr != nil {
			continue
		}
		stats = append(stats, st)
	}
	return stats, nil
}
