package loop

import (
	"io"
	"log"
	"math"
	"time"

	"github.com/san-kum/dotgrid/internal/anim"
)

// DefaultDebounce is the quiet period after the last resize before re-seeding.
const DefaultDebounce = 80 * time.Millisecond

type Status int

const (
	Stopped Status = iota
	Running
)

func (s Status) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Viewport is the logical drawing area and its device pixel ratio.
type Viewport struct {
	Width, Height float64
	DPR           float64
}

// Backing returns the backing-store size in device pixels.
func (v Viewport) Backing() (int, int) {
	dpr := v.DPR
	if dpr <= 0 {
		dpr = 1
	}
	return int(math.Round(math.Max(v.Width, 0) * dpr)), int(math.Round(math.Max(v.Height, 0) * dpr))
}

// Surface is a drawing surface whose backing store follows the viewport.
// Resize sets the logical-to-device scale to dpr; it never compounds with a
// previous scale.
type Surface interface {
	anim.Surface
	Resize(width, height, dpr float64)
}

// Observer is notified after every rendered frame.
type Observer interface {
	OnFrame(st *AnimationState)
}

// AnimationState is everything the frame chain mutates.
type AnimationState struct {
	Timer    *anim.Timer
	Scene    *anim.Scene
	Status   Status
	Frame    FrameID
	Viewport Viewport

	// Frames counts rendered frames; Seeds counts scene rebuilds.
	Frames uint64
	Seeds  uint64

	seeded    bool
	seededFor Viewport
}

type Options struct {
	Params   anim.Params
	Debounce time.Duration
	Clock    anim.Clock
	Rand     anim.Rand
	Frames   Frames
	Surface  Surface
	Logger   *log.Logger
}

// Lifecycle is the Stopped/Running state machine around the frame chain.
type Lifecycle struct {
	params    anim.Params
	clock     anim.Clock
	rng       anim.Rand
	frames    Frames
	surface   Surface
	logger    *log.Logger
	debounce  *Debouncer
	observers []Observer
	pending   Viewport
	state     AnimationState
}

func New(opts Options) *Lifecycle {
	if opts.Clock == nil {
		opts.Clock = anim.SystemClock{}
	}
	if opts.Rand == nil {
		opts.Rand = anim.NewRand(time.Now().UnixNano())
	}
	if opts.Frames == nil {
		opts.Frames = NewQueue()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	l := &Lifecycle{
		params:   opts.Params,
		clock:    opts.Clock,
		rng:      opts.Rand,
		frames:   opts.Frames,
		surface:  opts.Surface,
		logger:   opts.Logger,
		debounce: NewDebouncer(opts.Debounce),
	}
	l.state.Timer = anim.NewTimer(l.clock, l.params.DeltaScale)
	l.state.Scene = anim.NewScene(l.params, l.rng)
	return l
}

func (l *Lifecycle) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Lifecycle) State() *AnimationState { return &l.state }

func (l *Lifecycle) Status() Status { return l.state.Status }

func (l *Lifecycle) Debouncer() *Debouncer { return l.debounce }

func (l *Lifecycle) Params() anim.Params { return l.params }

// Open sizes the surface and seeds the first scene.
func (l *Lifecycle) Open(vp Viewport) {
	l.ResizeSurface(vp)
	l.Init(vp)
}

// Init seeds the scene for vp and starts the frame chain. It is a no-op when
// a scene is already seeded for the same viewport.
func (l *Lifecycle) Init(vp Viewport) bool {
	st := &l.state
	if st.seeded && st.seededFor == vp {
		return false
	}
	st.seeded = true
	st.seededFor = vp
	st.Viewport = vp
	l.pending = vp

	st.Scene = anim.NewScene(l.params, l.rng)
	n := st.Scene.Seed(vp.Width, vp.Height, l.params.CellSize)
	st.Seeds++
	l.logger.Printf("seeded %d dots for %.0fx%.0f", n, vp.Width, vp.Height)

	l.Start()
	return true
}

// Start resets the timer and requests the first frame unless already running.
func (l *Lifecycle) Start() {
	st := &l.state
	if st.Status == Running {
		return
	}
	st.Timer.Reset()
	st.Status = Running
	st.Frame = l.frames.RequestFrame(l.frame)
	l.logger.Printf("started")
}

// Stop cancels the pending frame. A frame already executing completes.
// Calling Stop while stopped does nothing.
func (l *Lifecycle) Stop() {
	st := &l.state
	if st.Status == Stopped && st.Frame == 0 {
		return
	}
	st.Status = Stopped
	if st.Frame != 0 {
		l.frames.CancelFrame(st.Frame)
		st.Frame = 0
	}
	l.logger.Printf("stopped")
}

// SetVisible pauses the animation while hidden and resumes it when shown.
func (l *Lifecycle) SetVisible(visible bool) {
	if visible {
		l.Start()
	} else {
		l.Stop()
	}
}

// ResizeSurface matches the surface to vp immediately.
func (l *Lifecycle) ResizeSurface(vp Viewport) {
	if l.surface != nil {
		l.surface.Resize(vp.Width, vp.Height, vp.DPR)
	}
}

// Resize handles a viewport change: the surface follows at once, the scene is
// rebuilt once resizing has been quiet for the debounce delay. It returns the
// debounce generation for drivers that deliver timer messages.
func (l *Lifecycle) Resize(vp Viewport) uint64 {
	l.ResizeSurface(vp)
	l.pending = vp
	l.logger.Printf("resize %.0fx%.0f@%.2f", vp.Width, vp.Height, vp.DPR)
	return l.debounce.Trigger(l.clock.Now(), l.reseedPending)
}

// FireDebounce runs the debounced re-seed if gen is still the latest resize.
func (l *Lifecycle) FireDebounce(gen uint64) bool {
	return l.debounce.Fire(gen)
}

// PollDebounce runs the debounced re-seed once its quiet period has elapsed.
func (l *Lifecycle) PollDebounce() bool {
	gen, ok := l.debounce.Due(l.clock.Now())
	if !ok {
		return false
	}
	return l.debounce.Fire(gen)
}

// Reseed tears the scene down and seeds it again at the current viewport.
func (l *Lifecycle) Reseed() {
	if l.state.Seeds == 0 {
		return
	}
	l.pending = l.state.Viewport
	l.reseedPending()
}

// SetParams swaps the animation constants and rebuilds the scene with them.
func (l *Lifecycle) SetParams(p anim.Params) {
	l.params = p
	l.state.Timer = anim.NewTimer(l.clock, p.DeltaScale)
	if l.state.Seeds == 0 {
		l.state.Scene = anim.NewScene(p, l.rng)
		return
	}
	l.Reseed()
}

func (l *Lifecycle) reseedPending() {
	l.state.seeded = false
	l.Stop()
	l.Init(l.pending)
}

// frame is the single link of the callback chain: tick, update, render,
// then request the next frame while running.
func (l *Lifecycle) frame() {
	st := &l.state
	st.Frame = 0

	delta := st.Timer.Tick()
	st.Scene.Update(delta)
	if l.surface != nil {
		st.Scene.Render(l.surface)
	}
	st.Frames++

	for _, o := range l.observers {
		o.OnFrame(st)
	}

	if st.Status == Running {
		st.Frame = l.frames.RequestFrame(l.frame)
	}
}
