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

	"github.com/cespare/xxhash"
	"github.com/charmbracelet/log"

	"github.com/san-kum/randwalk/internal/walk"
)

const (
	metadataFile = "metadata.json"
	pointsFile   = "points.csv"
)

type Store struct {
	baseDir string
	logger  *log.Logger
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{
		baseDir: baseDir,
		logger:  log.New(io.Discard),
		now:     time.Now,
	}
}

func (s *Store) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Steps         int                `json:"steps"`
	MaxStepLength float64            `json:"max_step_length"`
	Seed          uint64             `json:"seed"`
	Mode          string             `json:"mode"`
	Metrics       map[string]float64 `json:"metrics"`
}

// RunID derives a run identifier from the timestamp and the walk inputs.
func RunID(ts time.Time, p walk.Params, seed uint64) string {
	key := fmt.Sprintf("%d|%g|%d|%d", p.Steps, p.MaxStepLength, seed, ts.UnixNano())
	return fmt.Sprintf("walk_%d_%08x", ts.Unix(), uint32(xxhash.Sum64String(key)))
}

func (s *Store) Save(p walk.Params, seed uint64, mode string, st *walk.State, metrics map[string]float64) (string, error) {
	ts := s.now()
	runID := RunID(ts, p, seed)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     ts,
		Steps:         p.Steps,
		MaxStepLength: p.MaxStepLength,
		Seed:          seed,
		Mode:          mode,
		Metrics:       metrics,
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := writePoints(filepath.Join(runDir, pointsFile), st); err != nil {
		return "", fmt.Errorf("write points: %w", err)
	}

	s.logger.Info("saved run", "id", runID, "points", len(st.Points), "dir", runDir)
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writePoints(path string, st *walk.State) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteCSV(f, st); err != nil {
		return err
	}
	return f.Sync()
}

// WriteCSV writes one row per point: step, x, y, radius.
func WriteCSV(w io.Writer, st *walk.State) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"step", "x", "y", "radius"}); err != nil {
		return err
	}
	for i, p := range st.Points {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
			strconv.FormatFloat(p.Radius(), 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// List returns saved runs, oldest first.
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
			s.logger.Debug("skipping run dir", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadPoints reads the saved walk back. Rows that fail to parse are
// skipped.
func (s *Store) LoadPoints(runID string) (*walk.State, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, pointsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	st := &walk.State{Points: make([]walk.Point, 0, len(records))}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 3 {
			continue
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		st.Append(walk.Point{X: x, Y: y})
	}

	if len(st.Points) == 0 {
		return walk.NewState(), nil
	}
	s.logger.Debug("loaded run", "id", runID, "points", len(st.Points))
	return st, nil
}
