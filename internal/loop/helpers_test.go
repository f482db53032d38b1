package loop_test

import (
	"image/color"

	"github.com/san-kum/dotgrid/internal/loop"
)

// countingFrames wraps a Queue and counts effective cancellations.
type countingFrames struct {
	*loop.Queue
	requests int
	cancels  int
}

func newCountingFrames() *countingFrames {
	return &countingFrames{Queue: loop.NewQueue()}
}

func (f *countingFrames) RequestFrame(fn func()) loop.FrameID {
	f.requests++
	return f.Queue.RequestFrame(fn)
}

func (f *countingFrames) CancelFrame(id loop.FrameID) {
	if pending, ok := f.Pending(); ok && pending == id {
		f.cancels++
	}
	f.Queue.CancelFrame(id)
}

type fakeSurface struct {
	resizes []loop.Viewport
	rects   int
	circles int
}

func (s *fakeSurface) Resize(w, h, dpr float64) {
	s.resizes = append(s.resizes, loop.Viewport{Width: w, Height: h, DPR: dpr})
}

func (s *fakeSurface) FillRect(x, y, w, h float64, c color.Color) { s.rects++ }

func (s *fakeSurface) FillCircle(cx, cy, r float64, c color.Color) { s.circles++ }

type observerFunc func(st *loop.AnimationState)

func (f observerFunc) OnFrame(st *loop.AnimationState) { f(st) }
