package loop_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dotgrid/internal/loop"
)

var _ = Describe("Queue", func() {
	var q *loop.Queue

	BeforeEach(func() {
		q = loop.NewQueue()
	})

	It("starts empty", func() {
		_, ok := q.Pending()
		Expect(ok).To(BeFalse())
		Expect(q.Step()).To(BeFalse())
	})

	It("fires the pending callback once", func() {
		calls := 0
		id := q.RequestFrame(func() { calls++ })
		Expect(id).NotTo(BeZero())

		Expect(q.Fire(id)).To(BeTrue())
		Expect(q.Fire(id)).To(BeFalse())
		Expect(calls).To(Equal(1))
	})

	It("keeps only the latest request", func() {
		var got []string
		first := q.RequestFrame(func() { got = append(got, "first") })
		second := q.RequestFrame(func() { got = append(got, "second") })

		Expect(q.Fire(first)).To(BeFalse())
		Expect(q.Fire(second)).To(BeTrue())
		Expect(got).To(Equal([]string{"second"}))
	})

	It("ignores cancellation of a stale id", func() {
		first := q.RequestFrame(func() {})
		second := q.RequestFrame(func() {})

		q.CancelFrame(first)
		id, ok := q.Pending()
		Expect(ok).To(BeTrue())
		Expect(id).To(Equal(second))

		q.CancelFrame(second)
		_, ok = q.Pending()
		Expect(ok).To(BeFalse())
	})

	It("lets a callback request the next frame", func() {
		calls := 0
		var tick func()
		tick = func() {
			calls++
			if calls < 3 {
				q.RequestFrame(tick)
			}
		}
		q.RequestFrame(tick)

		for q.Step() {
		}
		Expect(calls).To(Equal(3))
	})
})
