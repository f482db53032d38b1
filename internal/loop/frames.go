package loop

// FrameID identifies a requested frame callback. Zero means none.
type FrameID uint64

// Frames is the "run this before the next repaint" primitive.
type Frames interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// Queue holds at most one pending frame callback. A driver asks for the
// pending ID, waits for its next refresh opportunity, then fires it.
type Queue struct {
	next    FrameID
	pending FrameID
	fn      func()
}

func NewQueue() *Queue {
	return &Queue{}
}

// RequestFrame replaces any pending callback with fn.
func (q *Queue) RequestFrame(fn func()) FrameID {
	q.next++
	q.pending = q.next
	q.fn = fn
	return q.pending
}

// CancelFrame drops the pending callback if id still names it.
func (q *Queue) CancelFrame(id FrameID) {
	if id != 0 && id == q.pending {
		q.pending = 0
		q.fn = nil
	}
}

func (q *Queue) Pending() (FrameID, bool) {
	return q.pending, q.pending != 0
}

// Fire runs the callback for id. Stale or cancelled IDs are ignored.
func (q *Queue) Fire(id FrameID) bool {
	if id == 0 || id != q.pending {
		return false
	}
	fn := q.fn
	q.pending = 0
	q.fn = nil
	fn()
	return true
}

// Step fires whatever is pending.
func (q *Queue) Step() bool {
	id, ok := q.Pending()
	if !ok {
		return false
	}
	return q.Fire(id)
}
