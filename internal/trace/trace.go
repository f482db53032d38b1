package trace

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/san-kum/dotgrid/internal/anim"
	"github.com/san-kum/dotgrid/internal/loop"
)

var ErrInvalidOptions = errors.New("trace: invalid options")

// epoch is the manual clock's start; samples report time relative to it.
var epoch = time.Unix(0, 0)

type Options struct {
	Params   anim.Params
	Width    float64
	Height   float64
	DPR      float64
	Frames   int
	Interval time.Duration
	Seed     int64

	// Surface is optional; without one frames are updated but not drawn.
	Surface   loop.Surface
	Observers []loop.Observer
	Logger    *log.Logger
}

func (o Options) validate() error {
	switch {
	case o.Frames <= 0:
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidOptions, o.Frames)
	case o.Interval <= 0:
		return fmt.Errorf("%w: interval must be positive, got %s", ErrInvalidOptions, o.Interval)
	case o.Width < 0 || o.Height < 0:
		return fmt.Errorf("%w: negative viewport %gx%g", ErrInvalidOptions, o.Width, o.Height)
	}
	return nil
}

// Sample is the scene summary after one frame.
type Sample struct {
	Frame            uint64  `json:"frame"`
	Time             float64 `json:"time"`
	Delta            float64 `json:"delta"`
	Dots             int     `json:"dots"`
	MeanHue          float64 `json:"mean_hue"`
	MeanSaturation   float64 `json:"mean_saturation"`
	MeanLuminance    float64 `json:"mean_luminance"`
	MeanDisplacement float64 `json:"mean_displacement"`
}

type Result struct {
	Samples []Sample
	Seeds   uint64
	// Elapsed is simulated time, not wall-clock time.
	Elapsed time.Duration
}

type sampler struct {
	clock   anim.Clock
	samples []Sample
}

func (s *sampler) OnFrame(st *loop.AnimationState) {
	stats := st.Scene.Stats()
	s.samples = append(s.samples, Sample{
		Frame:            st.Frames,
		Time:             s.clock.Now().Sub(epoch).Seconds(),
		Delta:            st.Timer.Delta(),
		Dots:             stats.Dots,
		MeanHue:          stats.MeanHue,
		MeanSaturation:   stats.MeanSaturation,
		MeanLuminance:    stats.MeanLuminance,
		MeanDisplacement: stats.MeanDisplacement,
	})
}

// Run seeds a scene for the viewport and advances it opts.Frames times,
// moving the clock by opts.Interval before each frame.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.DPR <= 0 {
		opts.DPR = 1
	}

	clock := anim.NewManualClock(epoch)
	queue := loop.NewQueue()
	lc := loop.New(loop.Options{
		Params:  opts.Params,
		Clock:   clock,
		Rand:    anim.NewRand(opts.Seed),
		Frames:  queue,
		Surface: opts.Surface,
		Logger:  opts.Logger,
	})

	s := &sampler{clock: clock, samples: make([]Sample, 0, opts.Frames)}
	lc.AddObserver(s)
	for _, o := range opts.Observers {
		lc.AddObserver(o)
	}

	lc.Open(loop.Viewport{Width: opts.Width, Height: opts.Height, DPR: opts.DPR})
	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		clock.Advance(opts.Interval)
		if !queue.Step() {
			break
		}
	}
	lc.Stop()

	return &Result{
		Samples: s.samples,
		Seeds:   lc.State().Seeds,
		Elapsed: clock.Now().Sub(epoch),
	}, nil
}
