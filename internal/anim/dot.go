package anim

import "math"

// Dot is one animated element. Its position oscillates per axis between the
// anchor and a random outward point; its color shifts each time an axis
// returns to the anchor. Luminance drifts toward a periodically resampled
// target on its own schedule.
type Dot struct {
	X, Y             float64
	OriginX, OriginY float64
	TargetX, TargetY float64
	Amplitude        float64
	Size             float64

	Hue               float64
	HueVelocity       float64
	Saturation        float64
	Luminance         float64
	TargetLuminance   float64
	LuminanceVelocity float64

	// ColorUpdates counts color-update events, including the one at construction.
	ColorUpdates int

	p   *Params
	rng Rand
}

// NewDot anchors a dot at (x, y). Hue starts at the lower bound and the
// first color update moves it inside the band.
func NewDot(x, y, size, amplitude float64, p *Params, rng Rand) *Dot {
	d := &Dot{
		X:         x,
		Y:         y,
		OriginX:   x,
		OriginY:   y,
		Amplitude: amplitude,
		Size:      size,
		Hue:       p.HueMin,
		p:         p,
		rng:       rng,
	}
	d.Luminance = float64(randInt(rng, p.LuminanceMin, p.LuminanceMax))
	d.TargetX = x + rng.Float64()*amplitude
	d.TargetY = y + rng.Float64()*amplitude
	d.HueVelocity = float64(randInt(rng, p.VelocityMin, p.VelocityMax)) / 10
	d.LuminanceVelocity = float64(randInt(rng, p.VelocityMin, p.VelocityMax)) / 10

	d.UpdateColor()
	d.retargetLuminance()
	return d
}

// UpdateColor advances the hue, bouncing off the band edges, and resamples
// the saturation.
func (d *Dot) UpdateColor() {
	d.Hue += d.HueVelocity
	switch {
	case d.Hue > d.p.HueMax:
		d.Hue = d.p.HueMax
		d.HueVelocity = -d.HueVelocity
	case d.Hue < d.p.HueMin:
		d.Hue = d.p.HueMin
		d.HueVelocity = -d.HueVelocity
	}
	d.Saturation = float64(randInt(d.rng, d.p.SaturationMin, d.p.SaturationMax))
	d.ColorUpdates++
}

func (d *Dot) retargetLuminance() {
	d.TargetLuminance = float64(randInt(d.rng, d.p.LuminanceMin, d.p.LuminanceMax))
}

// Update advances luminance, then X, then Y by one frame of the given delta.
func (d *Dot) Update(delta float64) {
	d.Luminance += (d.TargetLuminance - d.Luminance) * ease(delta, d.LuminanceVelocity)
	if math.Abs(d.Luminance-d.TargetLuminance) < d.p.SnapThreshold {
		d.retargetLuminance()
	}

	k := ease(delta, d.p.PositionEasing)
	d.X += (d.TargetX - d.X) * k
	d.Y += (d.TargetY - d.Y) * k

	d.TargetX = d.settle(d.X, d.OriginX, d.TargetX)
	d.TargetY = d.settle(d.Y, d.OriginY, d.TargetY)
}

// settle returns the next target for one axis. An axis resting at the anchor
// heads outward; an axis arriving at its outward point heads home and
// refreshes the color.
func (d *Dot) settle(current, origin, target float64) float64 {
	if math.Abs(current-target) >= d.p.SnapThreshold {
		return target
	}
	if target == origin {
		return origin + d.rng.Float64()*d.Amplitude
	}
	d.UpdateColor()
	return origin
}

func (d *Dot) Color() HSL {
	return HSL{H: d.Hue, S: d.Saturation, L: d.Luminance}
}

// Draw fills a circle of diameter Size centered on the current position.
func (d *Dot) Draw(s Surface) {
	s.FillCircle(d.X, d.Y, d.Size/2, d.Color())
}

// ease is the fraction of the remaining distance covered this frame, capped
// at 1 so a long frame lands on the target instead of overshooting it.
func ease(delta, rate float64) float64 {
	k := delta * rate
	if k < 0 {
		return 0
	}
	if k > 1 {
		return 1
	}
	return k
}
