package conn

import (
	"sync"

	"github.com/xbeecore/xbee/frame"
)

// packetFIFO is the bounded received-packet queue described in §4.4:
// multi-producer/multi-consumer in the general case, but
// single-producer in practice since only the worker goroutine pushes.
// A plain Go channel cannot implement the required "overflow drops
// oldest" policy (a full channel send either blocks or is refused; it
// cannot evict the head to make room), so this is a mutex-and-slice
// ring instead.
type packetFIFO struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []frame.Frame
	cap     int
	dropped uint64
	closed  bool
}

func newPacketFIFO(capacity int) *packetFIFO {
	q := &packetFIFO{items: make([]frame.Frame, 0, capacity), cap: capacity}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push enqueues f, evicting the oldest entry first if the FIFO is at
// capacity. It reports whether an entry was dropped.
func (q *packetFIFO) push(f frame.Frame) (dropped bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) >= q.cap {
		q.items = q.items[1:]
		q.dropped++
		dropped = true
	}
	q.items = append(q.items, f)
	q.cond.Signal()
	return dropped
}

// pop removes and returns the oldest entry, blocking until one is
// available or the FIFO is closed (in which case ok is false).
func (q *packetFIFO) pop() (f frame.Frame, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return nil, false
	}
	f, q.items = q.items[0], q.items[1:]
	return f, true
}

// tryPop removes and returns the oldest entry without blocking.
func (q *packetFIFO) tryPop() (f frame.Frame, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}
	f, q.items = q.items[0], q.items[1:]
	return f, true
}

// droppedCount returns the number of entries evicted by overflow.
func (q *packetFIFO) droppedCount() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// close wakes any blocked pop so it returns ok=false.
func (q *packetFIFO) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
