package anim

import "image/color"

// Surface receives draw calls in logical (CSS-pixel) coordinates.
// Implementations composite with source-over.
type Surface interface {
	FillRect(x, y, w, h float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
}
