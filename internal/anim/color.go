package anim

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL is a color in CSS notation: hue in degrees, saturation and lightness
// in percent. It satisfies color.Color.
type HSL struct {
	H, S, L float64
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%.1f, %.1f%%, %.1f%%)", c.H, c.S, c.L)
}

// Colorful converts to a go-colorful color clamped to the sRGB gamut.
func (c HSL) Colorful() colorful.Color {
	return colorful.Hsl(c.H, unit(c.S/100), unit(c.L/100)).Clamped()
}

func (c HSL) RGBA() (r, g, b, a uint32) {
	return c.Colorful().RGBA()
}

// Hex returns the #rrggbb form used by terminal styles.
func (c HSL) Hex() string {
	return c.Colorful().Hex()
}

// FadeColor is the black overlay painted over the whole viewport each frame.
func FadeColor(alpha float64) color.NRGBA {
	return color.NRGBA{A: uint8(unit(alpha)*255 + 0.5)}
}

func unit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
