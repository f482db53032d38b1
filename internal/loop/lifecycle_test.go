package loop_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dotgrid/internal/anim"
	"github.com/san-kum/dotgrid/internal/loop"
)

var _ = Describe("Lifecycle", func() {
	var (
		clock   *anim.ManualClock
		frames  *countingFrames
		surface *fakeSurface
		lc      *loop.Lifecycle
		vp      loop.Viewport
	)

	BeforeEach(func() {
		clock = anim.NewManualClock(time.Unix(1000, 0))
		frames = newCountingFrames()
		surface = &fakeSurface{}

		p := anim.DefaultParams()
		p.SeedProbability = 1
		lc = loop.New(loop.Options{
			Params:  p,
			Clock:   clock,
			Rand:    anim.NewRand(7),
			Frames:  frames,
			Surface: surface,
		})
		vp = loop.Viewport{Width: 50, Height: 50, DPR: 2}
	})

	It("starts stopped with an empty scene", func() {
		Expect(lc.Status()).To(Equal(loop.Stopped))
		Expect(lc.State().Scene.Len()).To(BeZero())
		_, ok := frames.Pending()
		Expect(ok).To(BeFalse())
	})

	Describe("Open", func() {
		BeforeEach(func() {
			lc.Open(vp)
		})

		It("sizes the surface, seeds and starts", func() {
			Expect(surface.resizes).To(Equal([]loop.Viewport{vp}))
			Expect(lc.State().Scene.Len()).To(Equal(100))
			Expect(lc.State().Seeds).To(Equal(uint64(1)))
			Expect(lc.Status()).To(Equal(loop.Running))
			Expect(lc.State().Frame).NotTo(BeZero())
		})

		It("does not reseed for the same viewport", func() {
			before := lc.State().Scene
			Expect(lc.Init(vp)).To(BeFalse())
			Expect(lc.State().Scene).To(BeIdenticalTo(before))
			Expect(lc.State().Seeds).To(Equal(uint64(1)))
		})

		It("reseeds for a different viewport", func() {
			Expect(lc.Init(loop.Viewport{Width: 100, Height: 50, DPR: 2})).To(BeTrue())
			Expect(lc.State().Scene.Len()).To(Equal(200))
		})
	})

	Describe("Stop", func() {
		It("is idempotent", func() {
			lc.Open(vp)

			lc.Stop()
			lc.Stop()

			Expect(lc.Status()).To(Equal(loop.Stopped))
			Expect(frames.cancels).To(Equal(1))
			_, ok := frames.Pending()
			Expect(ok).To(BeFalse())
		})

		It("does nothing before the first start", func() {
			lc.Stop()
			Expect(lc.Status()).To(Equal(loop.Stopped))
			Expect(frames.cancels).To(BeZero())
		})

		It("lets the current frame finish without rescheduling", func() {
			lc.Open(vp)
			lc.AddObserver(observerFunc(func(st *loop.AnimationState) {
				if st.Frames == 3 {
					lc.Stop()
				}
			}))

			for frames.Step() {
				clock.Advance(16 * time.Millisecond)
			}

			Expect(lc.State().Frames).To(Equal(uint64(3)))
			Expect(lc.Status()).To(Equal(loop.Stopped))
		})
	})

	Describe("frame chain", func() {
		BeforeEach(func() {
			lc.Open(vp)
		})

		It("ticks, updates and renders, then requests the next frame", func() {
			clock.Advance(50 * time.Millisecond)
			Expect(frames.Step()).To(BeTrue())

			st := lc.State()
			Expect(st.Frames).To(Equal(uint64(1)))
			Expect(st.Timer.Delta()).To(BeNumerically("~", 0.5, 1e-9))
			Expect(surface.rects).To(Equal(1))
			Expect(surface.circles).To(Equal(100))
			Expect(st.Frame).NotTo(BeZero())
		})

		It("keeps exactly one frame pending", func() {
			for i := 0; i < 10; i++ {
				clock.Advance(16 * time.Millisecond)
				Expect(frames.Step()).To(BeTrue())
			}
			Expect(frames.requests).To(Equal(11))
			Expect(lc.State().Frames).To(Equal(uint64(10)))
		})

		It("resets the timer when restarting after a pause", func() {
			lc.Stop()
			clock.Advance(10 * time.Second)
			lc.Start()

			Expect(frames.Step()).To(BeTrue())
			Expect(lc.State().Timer.Delta()).To(BeZero())
		})
	})

	Describe("visibility", func() {
		BeforeEach(func() {
			lc.Open(vp)
		})

		It("pauses while hidden and resumes when shown", func() {
			lc.SetVisible(false)
			Expect(lc.Status()).To(Equal(loop.Stopped))
			Expect(frames.Step()).To(BeFalse())

			lc.SetVisible(true)
			Expect(lc.Status()).To(Equal(loop.Running))
			Expect(frames.Step()).To(BeTrue())
		})

		It("does not double-request when shown twice", func() {
			lc.SetVisible(true)
			lc.SetVisible(true)
			Expect(frames.requests).To(Equal(1))
		})
	})

	Describe("Resize", func() {
		BeforeEach(func() {
			lc.Open(vp)
		})

		It("resizes the surface immediately but reseeds after the quiet period", func() {
			next := loop.Viewport{Width: 100, Height: 100, DPR: 1}
			lc.Resize(next)

			Expect(surface.resizes).To(HaveLen(2))
			Expect(surface.resizes[1]).To(Equal(next))
			Expect(lc.State().Seeds).To(Equal(uint64(1)))

			clock.Advance(loop.DefaultDebounce)
			Expect(lc.PollDebounce()).To(BeTrue())
			Expect(lc.State().Seeds).To(Equal(uint64(2)))
			Expect(lc.State().Viewport).To(Equal(next))
			Expect(lc.State().Scene.Len()).To(Equal(400))
		})

		It("collapses a burst into one reseed at the last dimensions", func() {
			for i := 1; i <= 5; i++ {
				lc.Resize(loop.Viewport{Width: 50 + float64(i)*10, Height: 50, DPR: 2})
				clock.Advance(10 * time.Millisecond)
			}

			clock.Advance(loop.DefaultDebounce - 20*time.Millisecond)
			Expect(lc.PollDebounce()).To(BeFalse())

			clock.Advance(10 * time.Millisecond)
			Expect(lc.PollDebounce()).To(BeTrue())
			Expect(lc.PollDebounce()).To(BeFalse())

			st := lc.State()
			Expect(st.Seeds).To(Equal(uint64(2)))
			Expect(st.Viewport.Width).To(Equal(100.0))
			w, h := st.Scene.Bounds()
			Expect(w).To(Equal(100.0))
			Expect(h).To(Equal(50.0))
		})

		It("fires only the latest generation for timer-message drivers", func() {
			var gens []uint64
			for i := 1; i <= 5; i++ {
				gens = append(gens, lc.Resize(loop.Viewport{Width: 50 + float64(i)*10, Height: 50, DPR: 2}))
			}

			for _, g := range gens[:4] {
				Expect(lc.FireDebounce(g)).To(BeFalse())
			}
			Expect(lc.FireDebounce(gens[4])).To(BeTrue())
			Expect(lc.State().Seeds).To(Equal(uint64(2)))
			Expect(lc.State().Viewport.Width).To(Equal(100.0))
		})

		It("restarts a stopped animation after reseeding", func() {
			lc.SetVisible(false)
			lc.Resize(loop.Viewport{Width: 80, Height: 80, DPR: 1})
			clock.Advance(loop.DefaultDebounce)

			Expect(lc.PollDebounce()).To(BeTrue())
			Expect(lc.Status()).To(Equal(loop.Running))
		})

		It("reseeds even when the burst ends on the original viewport", func() {
			lc.Resize(loop.Viewport{Width: 80, Height: 80, DPR: 1})
			lc.Resize(vp)
			clock.Advance(loop.DefaultDebounce)

			Expect(lc.PollDebounce()).To(BeTrue())
			Expect(lc.State().Seeds).To(Equal(uint64(2)))
		})
	})

	Describe("SetParams", func() {
		It("rebuilds the scene with the new constants", func() {
			lc.Open(vp)
			p := anim.DefaultParams()
			p.SeedProbability = 0

			lc.SetParams(p)
			Expect(lc.State().Scene.Len()).To(BeZero())
			Expect(lc.Params().SeedProbability).To(BeZero())
			Expect(lc.Status()).To(Equal(loop.Running))
		})

		It("only stores them before the first seed", func() {
			lc.SetParams(anim.DefaultParams())
			Expect(lc.Status()).To(Equal(loop.Stopped))
			Expect(lc.State().Seeds).To(BeZero())
		})
	})

	It("treats a zero viewport as an empty scene", func() {
		lc.Open(loop.Viewport{})
		Expect(lc.State().Scene.Len()).To(BeZero())
		Expect(frames.Step()).To(BeTrue())
		Expect(surface.circles).To(BeZero())
	})
})

var _ = Describe("Viewport", func() {
	It("computes the backing size in device pixels", func() {
		w, h := loop.Viewport{Width: 100.4, Height: 50, DPR: 2}.Backing()
		Expect(w).To(Equal(201))
		Expect(h).To(Equal(100))
	})

	It("treats a missing ratio as 1", func() {
		w, h := loop.Viewport{Width: 30, Height: 20}.Backing()
		Expect(w).To(Equal(30))
		Expect(h).To(Equal(20))
	})
})
