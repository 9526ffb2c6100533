// Package trace provides the observability hooks used across the
// transport, framer and conn packages. There is no process-wide
// logger: every lifecycle event is delivered through a *ConnTrace
// carried on a context.Context, mirroring how the teacher's NETCONF
// client surfaces connect/read/write/execute events.
package trace

import (
	"context"
	"log"
	"time"

	"github.com/imdario/mergo"

	"github.com/xbeecore/xbee/frame"
)

// unique type to prevent accidental context key collisions.
type traceContextKey struct{}

// ConnTrace holds optional callbacks invoked at points in a
// connection's lifecycle. A nil field is never invoked; ContextTrace
// always returns a fully-populated trace by merging NoOpHooks into
// whatever the caller supplied.
type ConnTrace struct {
	// ConnectStart is called before a transport is opened.
	ConnectStart func(target string)
	// ConnectDone is called once the transport open attempt completes.
	ConnectDone func(target string, err error, d time.Duration)
	// ConnectionClosed is called after the transport is closed.
	ConnectionClosed func(target string, err error)

	// ReadStart is called before a read from the underlying transport.
	ReadStart func(target string)
	// ReadDone is called after a read from the underlying transport.
	ReadDone func(target string, n int, err error, d time.Duration)
	// WriteStart is called before a write to the underlying transport.
	WriteStart func(target string, n int)
	// WriteDone is called after a write to the underlying transport.
	WriteDone func(target string, n int, err error, d time.Duration)

	// FrameDecoded is called for every successfully decoded inbound
	// frame, before dispatch.
	FrameDecoded func(f frame.Frame)
	// FrameDropped is called when a frame is dropped due to a framing
	// or decode error (§7); the reader resumes scanning afterwards.
	FrameDropped func(reason error)

	// ListenerInvoked is called after a listener callback returns.
	ListenerInvoked func(kind string, d time.Duration, err error)

	// RequestStart is called before a synchronous Request is sent.
	RequestStart func(id frame.FrameID, t frame.Type)
	// RequestDone is called once a synchronous Request completes
	// (success, AT/transmit error, or timeout).
	RequestDone func(id frame.FrameID, t frame.Type, err error, d time.Duration)

	// Error is called for any error that does not already have a more
	// specific hook (terminal transport errors, authentication
	// failures).
	Error func(context, target string, err error)
}

// WithConnTrace returns a context carrying trace, retrievable with
// ContextTrace.
func WithConnTrace(ctx context.Context, t *ConnTrace) context.Context {
	return context.WithValue(ctx, traceContextKey{}, t)
}

// ContextTrace returns the ConnTrace attached to ctx, backfilled with
// NoOpHooks for any field the caller left nil. If ctx carries no
// trace, NoOpHooks is returned directly.
func ContextTrace(ctx context.Context) *ConnTrace {
	t, _ := ctx.Value(traceContextKey{}).(*ConnTrace)
	if t == nil {
		return NoOpHooks
	}
	merged := *t
	_ = mergo.Merge(&merged, NoOpHooks)
	return &merged
}

// DefaultHooks logs only errors, via the standard library logger.
var DefaultHooks = &ConnTrace{
	Error: func(context, target string, err error) {
		log.Printf("xbee-Error context:%s target:%s err:%v", context, target, err)
	},
}

// DiagnosticHooks logs every lifecycle event; useful when developing
// against a new transport.
var DiagnosticHooks = &ConnTrace{
	ConnectStart: func(target string) {
		log.Printf("xbee-ConnectStart target:%s", target)
	},
	ConnectDone: func(target string, err error, d time.Duration) {
		log.Printf("xbee-ConnectDone target:%s err:%v took:%dms", target, err, d.Milliseconds())
	},
	ConnectionClosed: func(target string, err error) {
		log.Printf("xbee-ConnectionClosed target:%s err:%v", target, err)
	},
	ReadStart: func(target string) {
		log.Printf("xbee-ReadStart target:%s", target)
	},
	ReadDone: func(target string, n int, err error, d time.Duration) {
		log.Printf("xbee-ReadDone target:%s n:%d err:%v took:%dms", target, n, err, d.Milliseconds())
	},
	WriteStart: func(target string, n int) {
		log.Printf("xbee-WriteStart target:%s n:%d", target, n)
	},
	WriteDone: func(target string, n int, err error, d time.Duration) {
		log.Printf("xbee-WriteDone target:%s n:%d err:%v took:%dms", target, n, err, d.Milliseconds())
	},
	FrameDecoded: func(f frame.Frame) {
		log.Printf("xbee-FrameDecoded type:%s", f.Type())
	},
	FrameDropped: func(reason error) {
		log.Printf("xbee-FrameDropped reason:%v", reason)
	},
	ListenerInvoked: func(kind string, d time.Duration, err error) {
		log.Printf("xbee-ListenerInvoked kind:%s err:%v took:%dms", kind, err, d.Milliseconds())
	},
	RequestStart: func(id frame.FrameID, t frame.Type) {
		log.Printf("xbee-RequestStart id:%d type:%s", id, t)
	},
	RequestDone: func(id frame.FrameID, t frame.Type, err error, d time.Duration) {
		log.Printf("xbee-RequestDone id:%d type:%s err:%v took:%dms", id, t, err, d.Milliseconds())
	},
	Error: DefaultHooks.Error,
}

// NoOpHooks does nothing; it is the zero-cost default merged into any
// partially-populated trace supplied by a caller.
var NoOpHooks = &ConnTrace{
	ConnectStart:     func(target string) {},
	ConnectDone:      func(target string, err error, d time.Duration) {},
	ConnectionClosed: func(target string, err error) {},
	ReadStart:        func(target string) {},
	ReadDone:         func(target string, n int, err error, d time.Duration) {},
	WriteStart:       func(target string, n int) {},
	WriteDone:        func(target string, n int, err error, d time.Duration) {},
	FrameDecoded:     func(f frame.Frame) {},
	FrameDropped:     func(reason error) {},
	ListenerInvoked:  func(kind string, d time.Duration, err error) {},
	RequestStart:     func(id frame.FrameID, t frame.Type) {},
	RequestDone:      func(id frame.FrameID, t frame.Type, err error, d time.Duration) {},
	Error:            func(context, target string, err error) {},
}
