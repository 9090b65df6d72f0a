package view

import (
	"fmt"
	"strings"
)

// Mode selects how the walk is drawn.
type Mode int

const (
	Trajectory Mode = iota
	Distribution
)

var modeNames = map[Mode]string{
	Trajectory:   "trajectory",
	Distribution: "distribution",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Next cycles to the other mode.
func (m Mode) Next() Mode {
	if m == Trajectory {
		return Distribution
	}
	return Trajectory
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trajectory", "path":
		return Trajectory, nil
	case "distribution", "histogram":
		return Distribution, nil
	}
	return Trajectory, fmt.Errorf("%w: %q (available: %v)", ErrUnknownMode, s, ModeNames())
}

func ModeNames() []string {
	return []string{Trajectory.String(), Distribution.String()}
}
