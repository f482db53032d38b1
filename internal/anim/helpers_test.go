package anim

import "image/color"

type rect struct {
	x, y, w, h float64
	c          color.Color
}

type circle struct {
	cx, cy, r float64
	c         color.Color
}

type recordingSurface struct {
	rects   []rect
	circles []circle
	calls   []string
}

func (s *recordingSurface) FillRect(x, y, w, h float64, c color.Color) {
	s.rects = append(s.rects, rect{x, y, w, h, c})
	s.calls = append(s.calls, "rect")
}

func (s *recordingSurface) FillCircle(cx, cy, r float64, c color.Color) {
	s.circles = append(s.circles, circle{cx, cy, r, c})
	s.calls = append(s.calls, "circle")
}
