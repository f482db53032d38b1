package anim

import "math"

// Scene owns every dot of the effect. Seeding replaces the collection.
type Scene struct {
	params        Params
	rng           Rand
	dots          []*Dot
	width, height float64
}

func NewScene(p Params, rng Rand) *Scene {
	return &Scene{params: p, rng: rng}
}

// Seed partitions the viewport into cells of side itemSize and anchors a dot
// at the top-left corner of each cell with probability SeedProbability.
// It returns the number of dots created.
func (s *Scene) Seed(width, height, itemSize float64) int {
	s.dots = nil
	s.width, s.height = math.Max(width, 0), math.Max(height, 0)
	if itemSize <= 0 || width <= 0 || height <= 0 {
		return 0
	}

	nx := int(math.Floor(width / itemSize))
	ny := int(math.Floor(height / itemSize))
	ampLo := int(math.Round(itemSize * s.params.AmplitudeMin))
	ampHi := int(math.Round(itemSize * s.params.AmplitudeMax))

	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			if s.rng.Float64() >= s.params.SeedProbability {
				continue
			}
			x, y := float64(i)*itemSize, float64(j)*itemSize
			amp := float64(randInt(s.rng, ampLo, ampHi))
			s.dots = append(s.dots, NewDot(x, y, itemSize, amp, &s.params, s.rng))
		}
	}
	return len(s.dots)
}

func (s *Scene) Update(delta float64) {
	for _, d := range s.dots {
		d.Update(delta)
	}
}

// Render fades the previous frame with a translucent black overlay, which
// leaves short trails, then draws every dot.
func (s *Scene) Render(surface Surface) {
	surface.FillRect(0, 0, s.width, s.height, FadeColor(s.params.FadeAlpha))
	for _, d := range s.dots {
		d.Draw(surface)
	}
}

func (s *Scene) Dots() []*Dot { return s.dots }

func (s *Scene) Len() int { return len(s.dots) }

func (s *Scene) Bounds() (width, height float64) { return s.width, s.height }

func (s *Scene) Params() Params { return s.params }

// Stats summarizes the scene for traces and the status bar.
type Stats struct {
	Dots             int
	MeanHue          float64
	MeanSaturation   float64
	MeanLuminance    float64
	MeanDisplacement float64
}

func (s *Scene) Stats() Stats {
	st := Stats{Dots: len(s.dots)}
	if st.Dots == 0 {
		return st
	}
	for _, d := range s.dots {
		st.MeanHue += d.Hue
		st.MeanSaturation += d.Saturation
		st.MeanLuminance += d.Luminance
		st.MeanDisplacement += math.Hypot(d.X-d.OriginX, d.Y-d.OriginY)
	}
	n := float64(st.Dots)
	st.MeanHue /= n
	st.MeanSaturation /= n
	st.MeanLuminance /= n
	st.MeanDisplacement /= n
	return st
}
