package trace

import (
	"context"
	"testing"
	"time"

	"github.com/xbeecore/xbee/frame"
)

func TestContextTraceWithNoTraceReturnsNoOpHooks(t *testing.T) {
	tr := ContextTrace(context.Background())
	if tr != NoOpHooks {
		t.Fatalf("ContextTrace(no trace) = %p, want NoOpHooks (%p)", tr, NoOpHooks)
	}
	// Every hook must be callable without panicking.
	tr.ConnectStart("target")
	tr.ConnectDone("target", nil, 0)
	tr.ConnectionClosed("target", nil)
	tr.ReadStart("target")
	tr.ReadDone("target", 0, nil, 0)
	tr.WriteStart("target", 0)
	tr.WriteDone("target", 0, nil, 0)
	tr.FrameDecoded(frame.ModemStatus{})
	tr.FrameDropped(nil)
	tr.ListenerInvoked("kind", 0, nil)
	tr.RequestStart(frame.FrameID(1), frame.TypeATCommand)
	tr.RequestDone(frame.FrameID(1), frame.TypeATCommand, nil, 0)
	tr.Error("ctx", "target", nil)
}

func TestContextTraceMergesPartialHooksWithNoOp(t *testing.T) {
	var fired int
	partial := &ConnTrace{
		FrameDecoded: func(f frame.Frame) { fired++ },
	}

	ctx := WithConnTrace(context.Background(), partial)
	tr := ContextTrace(ctx)

	tr.FrameDecoded(frame.ModemStatus{})
	if fired != 1 {
		t.Errorf("caller-supplied FrameDecoded fired %d times, want 1", fired)
	}

	// ConnectStart was left nil on partial; ContextTrace must have
	// backfilled it with a callable no-op rather than leaving it nil.
	if tr.ConnectStart == nil {
		t.Fatal("ConnectStart is nil after merge, want backfilled no-op")
	}
	tr.ConnectStart("target") // must not panic
}

func TestContextTraceDoesNotMutateCallerTrace(t *testing.T) {
	partial := &ConnTrace{}
	ctx := WithConnTrace(context.Background(), partial)
	_ = ContextTrace(ctx)

	if partial.ConnectStart != nil {
		t.Error("ContextTrace mutated the caller's original *ConnTrace in place")
	}
}

func TestDiagnosticHooksAllPopulated(t *testing.T) {
	h := DiagnosticHooks
	if h.ConnectStart == nil || h.ConnectDone == nil || h.ConnectionClosed == nil ||
		h.ReadStart == nil || h.ReadDone == nil || h.WriteStart == nil || h.WriteDone == nil ||
		h.FrameDecoded == nil || h.FrameDropped == nil || h.ListenerInvoked == nil ||
		h.RequestStart == nil || h.RequestDone == nil || h.Error == nil {
		t.Fatal("DiagnosticHooks has an unpopulated field")
	}
	// Must be callable without panicking.
	h.ConnectDone("t", nil, time.Millisecond)
	h.RequestDone(frame.FrameID(1), frame.TypeATCommand, nil, time.Millisecond)
}

func TestDefaultHooksOnlyLogsErrors(t *testing.T) {
	if DefaultHooks.Error == nil {
		t.Fatal("DefaultHooks.Error is nil")
	}
	if DefaultHooks.ConnectStart != nil {
		t.Error("DefaultHooks.ConnectStart is non-nil, want DefaultHooks to log only errors")
	}
}
