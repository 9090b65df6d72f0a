package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/randwalk/internal/walk"
)

func testWalk(t *testing.T) (walk.Params, *walk.State) {
	t.Helper()
	p := walk.Params{Steps: 20, MaxStepLength: 1.0, Seed: 42}
	st, err := walk.Run(p)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return p, st
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	p, w := testWalk(t)
	runID, err := st.Save(p, 42, "trajectory", w, map[string]float64{"final_distance": 1.5})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "walk_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Steps != 20 || meta.Seed != 42 || meta.Mode != "trajectory" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["final_distance"] != 1.5 {
		t.Errorf("expected final_distance 1.5, got %f", meta.Metrics["final_distance"])
	}

	loaded, err := st.LoadPoints(runID)
	if err != nil {
		t.Fatalf("load points failed: %v", err)
	}
	if len(loaded.Points) != 21 {
		t.Fatalf("expected 21 points, got %d", len(loaded.Points))
	}
	if loaded.Points[0] != walk.Origin {
		t.Errorf("first point should be origin, got %v", loaded.Points[0])
	}
	// the CSV round trip is exact
	for i := range w.Points {
		if loaded.Points[i] != w.Points[i] {
			t.Errorf("point %d: got %v, want %v", i, loaded.Points[i], w.Points[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	calls := 0
	st.now = func() time.Time {
		calls++
		return base.Add(time.Duration(-calls) * time.Minute)
	}

	p, w := testWalk(t)
	first, _ := st.Save(p, 1, "trajectory", w, nil)
	second, _ := st.Save(p, 2, "distribution", w, nil)

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("runs not sorted by timestamp: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	p, w := testWalk(t)
	runID, err := st.Save(p, 42, "trajectory", w, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "points.csv")); os.IsNotExist(err) {
		t.Error("points.csv not created")
	}
}

func TestRunID(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	p := walk.Params{Steps: 10, MaxStepLength: 1}

	a := RunID(ts, p, 1)
	if a != RunID(ts, p, 1) {
		t.Error("run id should be deterministic")
	}
	if a == RunID(ts, p, 2) {
		t.Error("different seeds should give different run ids")
	}
	if !strings.HasPrefix(a, "walk_1700000000_") {
		t.Errorf("unexpected run id %q", a)
	}
}

func TestWriteCSV(t *testing.T) {
	st := walk.NewState()
	st.Append(walk.Point{X: 3, Y: 4})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, st); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "step,x,y,radius" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[2] != "1,3,4,5" {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestWriteCSV_FullPrecision(t *testing.T) {
	st := walk.NewState()
	st.Append(walk.Point{X: 0.1234567891, Y: -1e-9})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, st); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasPrefix(lines[2], "1,0.1234567891,-1e-09,") {
		t.Errorf("coordinates were rounded: %q", lines[2])
	}
}

func TestExportJSON(t *testing.T) {
	p, w := testWalk(t)
	meta := &RunMetadata{ID: "walk_1", Steps: p.Steps, MaxStepLength: p.MaxStepLength, Seed: 42, Mode: "distribution"}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, w); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var out ExportData
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out.ID != "walk_1" || len(out.X) != 21 || len(out.Y) != 21 || len(out.Radii) != 21 {
		t.Errorf("unexpected export %+v", out)
	}
}
