package loop_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dotgrid/internal/loop"
)

var _ = Describe("Debouncer", func() {
	var (
		d     *loop.Debouncer
		start time.Time
		calls int
	)

	BeforeEach(func() {
		d = loop.NewDebouncer(80 * time.Millisecond)
		start = time.Unix(1000, 0)
		calls = 0
	})

	fn := func() { calls++ }

	It("is not due before the quiet period", func() {
		d.Trigger(start, fn)
		_, ok := d.Due(start.Add(79 * time.Millisecond))
		Expect(ok).To(BeFalse())

		gen, ok := d.Due(start.Add(80 * time.Millisecond))
		Expect(ok).To(BeTrue())
		Expect(d.Fire(gen)).To(BeTrue())
		Expect(calls).To(Equal(1))
		Expect(d.Pending()).To(BeFalse())
	})

	It("restarts the quiet period on every trigger", func() {
		d.Trigger(start, fn)
		d.Trigger(start.Add(60*time.Millisecond), fn)

		_, ok := d.Due(start.Add(100 * time.Millisecond))
		Expect(ok).To(BeFalse())
		_, ok = d.Due(start.Add(140 * time.Millisecond))
		Expect(ok).To(BeTrue())
	})

	It("fires only the latest generation", func() {
		g1 := d.Trigger(start, fn)
		g2 := d.Trigger(start, fn)

		Expect(d.Fire(g1)).To(BeFalse())
		Expect(d.Fire(g2)).To(BeTrue())
		Expect(d.Fire(g2)).To(BeFalse())
		Expect(calls).To(Equal(1))
	})

	It("drops the call when cancelled", func() {
		gen := d.Trigger(start, fn)
		d.Cancel()

		Expect(d.Fire(gen)).To(BeFalse())
		_, ok := d.Due(start.Add(time.Second))
		Expect(ok).To(BeFalse())
		Expect(calls).To(BeZero())
	})
})
