package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dotgrid/internal/anim"
)

const (
	DefaultDebounce   = 80 * time.Millisecond
	DefaultFPS        = 60
	DefaultPixelScale = 2.5
)

// Config carries every tunable of the effect and its drivers. Zero Seed
// means seed from the clock; zero DevicePixelRatio means ask the display.
type Config struct {
	CellSize        float64       `yaml:"cell_size"`
	HueMin          float64       `yaml:"hue_min"`
	HueMax          float64       `yaml:"hue_max"`
	SeedProbability float64       `yaml:"seed_probability"`
	AmplitudeMin    float64       `yaml:"amplitude_min"`
	AmplitudeMax    float64       `yaml:"amplitude_max"`
	Debounce        time.Duration `yaml:"debounce"`
	PositionEasing  float64       `yaml:"position_easing"`
	DeltaScale      float64       `yaml:"delta_scale"`
	FadeAlpha       float64       `yaml:"fade_alpha"`
	SnapThreshold   float64       `yaml:"snap_threshold"`
	LuminanceMin    int           `yaml:"luminance_min"`
	LuminanceMax    int           `yaml:"luminance_max"`
	SaturationMin   int           `yaml:"saturation_min"`
	SaturationMax   int           `yaml:"saturation_max"`
	VelocityMin     int           `yaml:"velocity_min"`
	VelocityMax     int           `yaml:"velocity_max"`

	FPS              int     `yaml:"fps"`
	Seed             int64   `yaml:"seed"`
	PixelScale       float64 `yaml:"pixel_scale"`
	DevicePixelRatio float64 `yaml:"device_pixel_ratio"`
}

func DefaultConfig() *Config {
	p := anim.DefaultParams()
	return &Config{
		CellSize:        p.CellSize,
		HueMin:          p.HueMin,
		HueMax:          p.HueMax,
		SeedProbability: p.SeedProbability,
		AmplitudeMin:    p.AmplitudeMin,
		AmplitudeMax:    p.AmplitudeMax,
		Debounce:        DefaultDebounce,
		PositionEasing:  p.PositionEasing,
		DeltaScale:      p.DeltaScale,
		FadeAlpha:       p.FadeAlpha,
		SnapThreshold:   p.SnapThreshold,
		LuminanceMin:    p.LuminanceMin,
		LuminanceMax:    p.LuminanceMax,
		SaturationMin:   p.SaturationMin,
		SaturationMax:   p.SaturationMax,
		VelocityMin:     p.VelocityMin,
		VelocityMax:     p.VelocityMax,
		FPS:             DefaultFPS,
		PixelScale:      DefaultPixelScale,
	}
}

// Load reads a config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Apply(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply overlays the keys present in a YAML file onto c and validates the
// result.
func (c *Config) Apply(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	return c.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// AnimParams converts the animation fields to the core parameter set.
func (c *Config) AnimParams() anim.Params {
	return anim.Params{
		CellSize:        c.CellSize,
		HueMin:          c.HueMin,
		HueMax:          c.HueMax,
		SeedProbability: c.SeedProbability,
		AmplitudeMin:    c.AmplitudeMin,
		AmplitudeMax:    c.AmplitudeMax,
		PositionEasing:  c.PositionEasing,
		SnapThreshold:   c.SnapThreshold,
		DeltaScale:      c.DeltaScale,
		FadeAlpha:       c.FadeAlpha,
		LuminanceMin:    c.LuminanceMin,
		LuminanceMax:    c.LuminanceMax,
		SaturationMin:   c.SaturationMin,
		SaturationMax:   c.SaturationMax,
		VelocityMin:     c.VelocityMin,
		VelocityMax:     c.VelocityMax,
	}
}
