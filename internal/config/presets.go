package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	"classic": {
		Steps: 100, MaxStepLength: 1.0, Mode: "trajectory", FPS: 30,
	},
	"long": {
		Steps: 2000, MaxStepLength: 1.0, Mode: "trajectory", FPS: 60,
	},
	"spread": {
		Steps: 1000, MaxStepLength: 1.0, Mode: "distribution", FPS: 60,
	},
	"giant": {
		Steps: 200, MaxStepLength: 10.0, Mode: "trajectory", FPS: 30,
	},
	"frozen": {
		Steps: 5, MaxStepLength: 0.0, Mode: "distribution", FPS: 5,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset overwrites the walk and animation fields of c with the named
// preset.
func (c *Config) ApplyPreset(name string) error {
	p := GetPreset(name)
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Steps = p.Steps
	c.MaxStepLength = p.MaxStepLength
	c.Mode = p.Mode
	c.FPS = p.FPS
	return nil
}
