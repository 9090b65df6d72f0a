package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/randwalk/internal/view"
)

type Format int

const (
	SVG Format = iota
	PNG
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return SVG, nil
	case ".png":
		return PNG, nil
	}
	return SVG, fmt.Errorf("unsupported export format: %q", filepath.Ext(path))
}

// FileSurface keeps the latest payload and writes it on Flush. Writing every
// frame to disk would only leave the last one anyway.
type FileSurface struct {
	Path          string
	Format        Format
	Width, Height int

	last    *view.Payload
	stopped bool
}

func NewFileSurface(path string, width, height int) (*FileSurface, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &FileSurface{Path: path, Format: f, Width: width, Height: height}, nil
}

func (s *FileSurface) Render(p view.Payload) error {
	s.last = &p
	return nil
}

func (s *FileSurface) Clear() error {
	s.last = nil
	return nil
}

func (s *FileSurface) StopAnimation() { s.stopped = true }

// Stopped reports whether the run feeding this surface was halted early.
func (s *FileSurface) Stopped() bool { return s.stopped }

func (s *FileSurface) Flush() error {
	if s.last == nil {
		return fmt.Errorf("nothing rendered to %s", s.Path)
	}
	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes the latest payload to w in the surface's format.
func (s *FileSurface) Encode(w io.Writer) error {
	if s.last == nil {
		return fmt.Errorf("nothing rendered")
	}
	if s.Format == PNG {
		return PayloadPNG(w, *s.last, s.Width, s.Height)
	}
	PayloadSVG(w, *s.last, s.Width, s.Height)
	return nil
}
