package config

import (
	"sort"

	"github.com/san-kum/dotgrid/internal/anim"
)

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"dense": with(func(c *Config) {
		c.CellSize = 4
		c.SeedProbability = 0.05
	}),
	"ember": with(func(c *Config) {
		c.HueMin, c.HueMax = 5, 45
		c.SaturationMin = 70
		c.FadeAlpha = 0.85
	}),
	"ocean": with(func(c *Config) {
		c.HueMin, c.HueMax = 190, 230
		c.SaturationMin = 60
		c.AmplitudeMax = 3
	}),
	"calm": with(func(c *Config) {
		c.PositionEasing = 0.04
		c.VelocityMin, c.VelocityMax = 1, 2
		c.FadeAlpha = 0.9
	}),
}

func with(fn func(*Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AnimPresets returns every preset's animation parameters in name order.
func AnimPresets() []anim.Preset {
	names := ListPresets()
	out := make([]anim.Preset, len(names))
	for i, name := range names {
		out[i] = anim.Preset{Name: name, Params: Presets[name].AnimParams()}
	}
	return out
}
