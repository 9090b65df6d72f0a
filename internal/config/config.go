package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/randwalk/internal/view"
	"github.com/san-kum/randwalk/internal/walk"
)

const (
	DefaultSteps         = 100
	DefaultMaxStepLength = 1.0
	DefaultMode          = "trajectory"
	DefaultFPS           = 30
	DefaultTheme         = "cyberpunk"
	DefaultDataDir       = ".randwalk"
)

type Config struct {
	Steps         int     `yaml:"steps" mapstructure:"steps"`
	MaxStepLength float64 `yaml:"max_step_length" mapstructure:"max_step_length"`
	Mode          string  `yaml:"mode" mapstructure:"mode"`
	Seed          uint64  `yaml:"seed" mapstructure:"seed"`
	FPS           int     `yaml:"fps" mapstructure:"fps"`
	Theme         string  `yaml:"theme" mapstructure:"theme"`
	DataDir       string  `yaml:"data_dir" mapstructure:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Steps:         DefaultSteps,
		MaxStepLength: DefaultMaxStepLength,
		Mode:          DefaultMode,
		FPS:           DefaultFPS,
		Theme:         DefaultTheme,
		DataDir:       DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto unmarshals path onto cfg. Fields missing from the file keep
// their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Apply decodes overrides onto c. Values may be strings, so "steps": "50"
// is accepted.
func (c *Config) Apply(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	return dec.Decode(overrides)
}

// ParseOverrides turns key=value pairs into a map for Apply.
func ParseOverrides(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid override %q (want key=value)", kv)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}

// Params validates the walk parameters of c.
func (c *Config) Params() (walk.Params, error) {
	p := walk.Params{Steps: c.Steps, MaxStepLength: c.MaxStepLength, Seed: c.Seed}
	if err := p.Validate(); err != nil {
		return walk.Params{}, err
	}
	return p, nil
}

func (c *Config) ViewMode() (view.Mode, error) {
	return view.ParseMode(c.Mode)
}
