package conn

import (
	"sync"
	"sync/atomic"

	"github.com/xbeecore/xbee/frame"
)

// ListenerHandle identifies a registered listener for later removal.
type ListenerHandle uint64

// anyFrameID is the sentinel used by a per-frame-ID listener that
// wants every frame, not just one carrying a particular frame ID.
const anyFrameID frame.FrameID = frame.NoFrameID

var handleSeq uint64

func nextHandle() ListenerHandle {
	return ListenerHandle(atomic.AddUint64(&handleSeq, 1))
}

// frameListener backs both the all-frames registry and the
// per-frame-ID registry. Invocations of one listener run on
// independent goroutines (bounded by the dispatcher's semaphore), so
// a mutex alone only prevents two invocations from overlapping; it
// does not say which one runs first. Tickets turn that into a strict
// ordering: the dispatcher hands out tickets in dispatch order
// (nextDispatchTicket, called only from the single worker goroutine),
// and invoke blocks each call until its own ticket is up, so a
// listener observes frames in arrival order even though its
// invocations race to be scheduled, per §4.4.
type frameListener struct {
	handle ListenerHandle
	fn     func(frame.Frame)
	await  frame.FrameID

	mu         sync.Mutex
	cond       *sync.Cond
	ticket     uint64
	nextTicket uint64
}

func newFrameListener(handle ListenerHandle, fn func(frame.Frame), await frame.FrameID) *frameListener {
	l := &frameListener{handle: handle, fn: fn, await: await}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// nextDispatchTicket assigns the next dispatch-order ticket for l.
// Callers must only call this from the single dispatcher goroutine,
// so tickets for one listener are handed out in the same order
// frames were dispatched.
func (l *frameListener) nextDispatchTicket() uint64 {
	t := l.ticket
	l.ticket++
	return t
}

func (l *frameListener) invoke(ticket uint64, f frame.Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.nextTicket != ticket {
		l.cond.Wait()
	}
	l.fn(f)
	l.nextTicket++
	l.cond.Broadcast()
}

// typedListener backs each of the seven typed-event registries, with
// the same ticket-ordered invoke as frameListener.
type typedListener struct {
	handle ListenerHandle
	fn     func(interface{})

	mu         sync.Mutex
	cond       *sync.Cond
	ticket     uint64
	nextTicket uint64
}

func newTypedListener(handle ListenerHandle, fn func(interface{})) *typedListener {
	l := &typedListener{handle: handle, fn: fn}
	l.cond = sync.NewCond(&l.mu)
	return l
}

func (l *typedListener) nextDispatchTicket() uint64 {
	t := l.ticket
	l.ticket++
	return t
}

func (l *typedListener) invoke(ticket uint64, evt interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for l.nextTicket != ticket {
		l.cond.Wait()
	}
	l.fn(evt)
	l.nextTicket++
	l.cond.Broadcast()
}

// registry holds every listener collection under a single mutex, per
// §4.6: "The listener registries are guarded by a registry-wide mutex;
// callbacks are invoked outside that mutex."
type registry struct {
	mu sync.Mutex

	allFrames []*frameListener
	byFrameID []*frameListener

	data            []*typedListener
	explicitData    []*typedListener
	ioSample        []*typedListener
	modemStatus     []*typedListener
	sms             []*typedListener
	ipData          []*typedListener
	userDataRelay   []*typedListener
}

func newRegistry() *registry {
	return &registry{}
}

func (r *registry) addAllFrames(fn func(frame.Frame)) ListenerHandle {
	l := newFrameListener(nextHandle(), fn, anyFrameID)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allFrames = append(r.allFrames, l)
	return l.handle
}

func (r *registry) removeAllFrames(h ListenerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.allFrames = removeListener(r.allFrames, h)
}

// addPacket registers a per-frame-ID listener. await == anyFrameID
// means "notify for every frame", matching "packet-received listener
// (all frames, or filtered by frame ID)" in §4.5. A listener filtered
// to a specific ID is deregistered automatically the first time it
// fires (§4.4 step 5).
func (r *registry) addPacket(await frame.FrameID, fn func(frame.Frame)) ListenerHandle {
	l := newFrameListener(nextHandle(), fn, await)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byFrameID = append(r.byFrameID, l)
	return l.handle
}

func (r *registry) removePacket(h ListenerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byFrameID = removeListener(r.byFrameID, h)
}

func removeListener(ls []*frameListener, h ListenerHandle) []*frameListener {
	out := ls[:0]
	for _, l := range ls {
		if l.handle != h {
			out = append(out, l)
		}
	}
	return out
}

func removeTyped(ls []*typedListener, h ListenerHandle) []*typedListener {
	out := ls[:0]
	for _, l := range ls {
		if l.handle != h {
			out = append(out, l)
		}
	}
	return out
}

// snapshotAllFrames and the snapshot* family below copy the relevant
// slice under the registry mutex and return it for lock-free dispatch,
// per §4.6's "callbacks are invoked outside that mutex" rule.
func (r *registry) snapshotAllFrames() []*frameListener {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*frameListener, len(r.allFrames))
	copy(out, r.allFrames)
	return out
}

// snapshotPacketMatches returns the per-frame-ID listeners that should
// fire for f, and removes the ones filtered to a specific matching ID
// from the registry (one-shot deregistration, §4.4 step 5).
func (r *registry) snapshotPacketMatches(f frame.Frame, id frame.FrameID, hasID bool) []*frameListener {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*frameListener
	kept := r.byFrameID[:0]
	for _, l := range r.byFrameID {
		switch {
		case l.await == anyFrameID:
			matched = append(matched, l)
			kept = append(kept, l)
		case hasID && l.await == id:
			matched = append(matched, l)
			// deregistered: not appended to kept.
		default:
			kept = append(kept, l)
		}
	}
	r.byFrameID = kept
	return matched
}

func addTyped(mu *sync.Mutex, ls *[]*typedListener, fn func(interface{})) ListenerHandle {
	l := newTypedListener(nextHandle(), fn)
	mu.Lock()
	defer mu.Unlock()
	*ls = append(*ls, l)
	return l.handle
}

func snapshotTyped(mu *sync.Mutex, ls []*typedListener) []*typedListener {
	mu.Lock()
	defer mu.Unlock()
	out := make([]*typedListener, len(ls))
	copy(out, ls)
	return out
}

func (r *registry) addData(fn func(interface{})) ListenerHandle {
	return addTyped(&r.mu, &r.data, fn)
}
func (r *registry) removeData(h ListenerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = removeTyped(r.data, h)
}
func (r *registry) snapshotData() []*typedListener { return snapshotTyped(&r.mu, r.data) }

func (r *registry) addExplicitData(fn func(interface{})) ListenerHandle {
	return addTyped(&r.mu, &r.explicitData, fn)
}
func (r *registry) removeExplicitData(h ListenerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.explicitData = removeTyped(r.explicitData, h)
}
func (r *registry) snapshotExplicitData() []*typedListener { return snapshotTyped(&r.mu, r.explicitData) }

func (r *registry) addIOSample(fn func(interface{})) ListenerHandle {
	return addTyped(&r.mu, &r.ioSample, fn)
}
func (r *registry) removeIOSample(h ListenerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ioSample = removeTyped(r.ioSample, h)
}
func (r *registry) snapshotIOSample() []*typedListener { return snapshotTyped(&r.mu, r.ioSample) }

func (r *registry) addModemStatus(fn func(interface{})) ListenerHandle {
	return addTyped(&r.mu, &r.modemStatus, fn)
}
func (r *registry) removeModemStatus(h ListenerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modemStatus = removeTyped(r.modemStatus, h)
}
func (r *registry) snapshotModemStatus() []*typedListener { return snapshotTyped(&r.mu, r.modemStatus) }

func (r *registry) addSMS(fn func(interface{})) ListenerHandle {
	return addTyped(&r.mu, &r.sms, fn)
}
func (r *registry) removeSMS(h ListenerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sms = removeTyped(r.sms, h)
}
func (r *registry) snapshotSMS() []*typedListener { return snapshotTyped(&r.mu, r.sms) }

func (r *registry) addIPData(fn func(interface{})) ListenerHandle {
	return addTyped(&r.mu, &r.ipData, fn)
}
func (r *registry) removeIPData(h ListenerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ipData = removeTyped(r.ipData, h)
}
func (r *registry) snapshotIPData() []*typedListener { return snapshotTyped(&r.mu, r.ipData) }

func (r *registry) addUserDataRelay(fn func(interface{})) ListenerHandle {
	return addTyped(&r.mu, &r.userDataRelay, fn)
}
func (r *registry) removeUserDataRelay(h ListenerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userDataRelay = removeTyped(r.userDataRelay, h)
}
func (r *registry) snapshotUserDataRelay() []*typedListener { return snapshotTyped(&r.mu, r.userDataRelay) }
