package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// FieldError names the offending key.
type FieldError struct {
	Field  string
	Value  any
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: invalid %s: %s (got %v)", e.Field, e.Reason, e.Value)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate reports every out-of-range field, joined.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, field string, value any, reason string) {
		if !ok {
			errs = append(errs, &FieldError{Field: field, Value: value, Reason: reason})
		}
	}

	check(c.CellSize > 0, "cell_size", c.CellSize, "must be positive")
	check(c.HueMin <= c.HueMax, "hue_max", c.HueMax, "must not be below hue_min")
	check(c.SeedProbability >= 0 && c.SeedProbability <= 1, "seed_probability", c.SeedProbability, "must be within [0, 1]")
	check(c.AmplitudeMin >= 0, "amplitude_min", c.AmplitudeMin, "must not be negative")
	check(c.AmplitudeMin <= c.AmplitudeMax, "amplitude_max", c.AmplitudeMax, "must not be below amplitude_min")
	check(c.Debounce > 0, "debounce", c.Debounce, "must be positive")
	check(c.PositionEasing > 0 && c.PositionEasing <= 1, "position_easing", c.PositionEasing, "must be within (0, 1]")
	check(c.DeltaScale > 0, "delta_scale", c.DeltaScale, "must be positive")
	check(c.FadeAlpha >= 0 && c.FadeAlpha <= 1, "fade_alpha", c.FadeAlpha, "must be within [0, 1]")
	check(c.SnapThreshold > 0, "snap_threshold", c.SnapThreshold, "must be positive")
	check(c.LuminanceMin >= 0 && c.LuminanceMin <= c.LuminanceMax && c.LuminanceMax <= 100,
		"luminance_max", c.LuminanceMax, "range must satisfy 0 <= min <= max <= 100")
	check(c.SaturationMin >= 0 && c.SaturationMin <= c.SaturationMax && c.SaturationMax <= 100,
		"saturation_max", c.SaturationMax, "range must satisfy 0 <= min <= max <= 100")
	check(c.VelocityMin >= 0 && c.VelocityMin <= c.VelocityMax,
		"velocity_max", c.VelocityMax, "range must satisfy 0 <= min <= max")
	check(c.FPS > 0 && c.FPS <= 240, "fps", c.FPS, "must be within [1, 240]")
	check(c.PixelScale > 0, "pixel_scale", c.PixelScale, "must be positive")
	check(c.DevicePixelRatio >= 0, "device_pixel_ratio", c.DevicePixelRatio, "must not be negative")

	return errors.Join(errs...)
}
