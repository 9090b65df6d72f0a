package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/randwalk/internal/view"
	"github.com/san-kum/randwalk/internal/walk"
)

func testPayload(t *testing.T, m view.Mode) view.Payload {
	t.Helper()
	st, err := walk.Run(walk.Params{Steps: 50, MaxStepLength: 1, Seed: 7})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return view.Build(st, m)
}

func TestTrajectorySVG(t *testing.T) {
	p := testPayload(t, view.Trajectory)

	var buf bytes.Buffer
	TrajectorySVG(&buf, p.Points, 400, 300, "#00ffff")
	out := buf.String()

	if !strings.Contains(out, "<svg") {
		t.Error("missing svg element")
	}
	if !strings.Contains(out, "<polyline") {
		t.Error("missing polyline for path")
	}
	if !strings.Contains(out, "steps: 50") {
		t.Error("missing step label")
	}
}

func TestTrajectorySVG_SinglePoint(t *testing.T) {
	var buf bytes.Buffer
	TrajectorySVG(&buf, []walk.Point{walk.Origin}, 400, 300, "#00ffff")
	out := buf.String()

	if strings.Contains(out, "<polyline") {
		t.Error("single point should not draw a polyline")
	}
	if !strings.Contains(out, "<circle") {
		t.Error("expected origin marker")
	}
}

func TestHistogramSVG(t *testing.T) {
	p := testPayload(t, view.Distribution)

	var buf bytes.Buffer
	HistogramSVG(&buf, p.Histogram(), 400, 300, "#0077be")
	out := buf.String()

	// one background rect plus one per bin
	if n := strings.Count(out, "<rect"); n != view.DefaultBins+1 {
		t.Errorf("expected %d rects, got %d", view.DefaultBins+1, n)
	}
}

func TestPayloadSVG_Mode(t *testing.T) {
	var traj, dist bytes.Buffer
	PayloadSVG(&traj, testPayload(t, view.Trajectory), 400, 300)
	PayloadSVG(&dist, testPayload(t, view.Distribution), 400, 300)

	if !strings.Contains(traj.String(), "<polyline") {
		t.Error("trajectory payload should draw a path")
	}
	if strings.Contains(dist.String(), "<polyline") {
		t.Error("distribution payload should not draw a path")
	}
}

func TestTrajectoryPNG(t *testing.T) {
	p := testPayload(t, view.Trajectory)

	var buf bytes.Buffer
	if err := TrajectoryPNG(&buf, p.Points, 640, 480); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestHistogramPNG(t *testing.T) {
	p := testPayload(t, view.Distribution)

	var buf bytes.Buffer
	if err := HistogramPNG(&buf, p.Histogram(), 640, 480); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestHistogramPNG_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := HistogramPNG(&buf, view.Histogram(nil, view.DefaultBins), 640, 480); err == nil {
		t.Error("expected error for empty histogram")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"walk.svg", SVG, false},
		{"walk.PNG", PNG, false},
		{"walk.gif", SVG, true},
		{"walk", SVG, true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFileSurface(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walk.svg")
	s, err := NewFileSurface(path, 400, 300)
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}

	if err := s.Flush(); err == nil {
		t.Error("flush before render should fail")
	}

	sess := view.NewSession(s, view.Trajectory)
	id, err := sess.Start(walk.Params{Steps: 10, MaxStepLength: 1, Seed: 3})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for {
		more, err := sess.Tick(id)
		if err != nil {
			t.Fatalf("tick: %v", err)
		}
		if !more {
			break
		}
	}

	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "steps: 10") {
		t.Error("flushed file should hold the final frame")
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := s.Flush(); err == nil {
		t.Error("flush after clear should fail")
	}
}

func TestFileSurface_Encode(t *testing.T) {
	s := &FileSurface{Format: PNG, Width: 320, Height: 240}

	var buf bytes.Buffer
	if err := s.Encode(&buf); err == nil {
		t.Error("encode before render should fail")
	}

	if err := s.Render(testPayload(t, view.Distribution)); err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := s.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
