package main

// frameQueue is a requestAnimationFrame-style scheduler driven by the ebiten
// Update tick. Callbacks requested while the queue drains run on the next
// tick.
type frameQueue struct {
	next    uint64
	pending map[uint64]func()
	order   []uint64
}

func newFrameQueue() *frameQueue {
	return &frameQueue{pending: make(map[uint64]func())}
}

func (q *frameQueue) RequestFrame(cb func()) func() {
	id := q.next
	q.next++
	q.pending[id] = cb
	q.order = append(q.order, id)
	return func() { delete(q.pending, id) }
}

// Drain runs everything that was requested before the call, in request
// order. A callback cancelled by an earlier one in the same drain is
// skipped.
func (q *frameQueue) Drain() {
	due := q.order
	q.order = nil
	for _, id := range due {
		cb, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		cb()
	}
}

func (q *frameQueue) Pending() int {
	return len(q.pending)
}
