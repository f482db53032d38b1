package raster

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"time"

	"github.com/san-kum/dotgrid/internal/loop"
)

var ErrEmptyRecording = errors.New("raster: empty recording")

// Recorder is a frame observer that captures every Nth frame of a Surface
// as a paletted GIF frame.
type Recorder struct {
	surface *Surface
	every   int
	scale   float64
	delay   int
	frames  []*image.Paletted
	delays  []int
}

// NewRecorder captures one frame out of every `every`, resampled by scale.
// interval is the time between rendered frames and sets the GIF delay.
func NewRecorder(s *Surface, every int, scale float64, interval time.Duration) *Recorder {
	if every < 1 {
		every = 1
	}
	if scale <= 0 {
		scale = 1
	}
	// GIF delays are in hundredths of a second.
	delay := int(math.Round(float64(interval) * float64(every) / float64(10*time.Millisecond)))
	if delay < 1 {
		delay = 1
	}
	return &Recorder{surface: s, every: every, scale: scale, delay: delay}
}

func (r *Recorder) OnFrame(st *loop.AnimationState) {
	if st.Frames%uint64(r.every) != 0 {
		return
	}
	r.Capture()
}

// Capture quantizes the surface's current image to the Plan 9 palette.
func (r *Recorder) Capture() {
	src := scale(r.surface.Image(), r.scale)
	b := src.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, b.Min)
	r.frames = append(r.frames, dst)
	r.delays = append(r.delays, r.delay)
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Frames() []*image.Paletted { return r.frames }

// WriteGIF encodes the captured frames as a looping animation.
func (r *Recorder) WriteGIF(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrEmptyRecording
	}
	anim := gif.GIF{LoopCount: 0}
	for i, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delays[i])
	}
	return gif.EncodeAll(w, &anim)
}
