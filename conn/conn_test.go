package conn_test

import (
	"context"
	"testing"
	"time"

	"github.com/xbeecore/xbee/conn"
	"github.com/xbeecore/xbee/frame"
)

const testTimeout = 2 * time.Second

func TestAddAllFramesListenerReceivesDecodedFrames(t *testing.T) {
	client, server := newConnPipe()
	_, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	got := make(chan frame.Frame, 1)
	c.AddAllFramesListener(func(f frame.Frame) {
		select {
		case got <- f:
		default:
		}
	})

	want := frame.ModemStatus{Status: frame.ModemStatusJoinedNetwork}
	if err := wr.WriteFrame(want.Encode()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	select {
	case f := <-got:
		ms, ok := f.(frame.ModemStatus)
		if !ok || ms.Status != frame.ModemStatusJoinedNetwork {
			t.Errorf("listener received %#v, want %#v", f, want)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for all-frames listener")
	}
}

func TestPacketListenerSpecificIDFiresOnceAndDeregisters(t *testing.T) {
	client, server := newConnPipe()
	_, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	calls := make(chan frame.Frame, 4)
	c.AddPacketListener(frame.FrameID(7), func(f frame.Frame) { calls <- f })

	match := frame.ATCommandResponse{FrameID: 7, Command: frame.ATCmd{'N', 'I'}, Status: frame.ATStatusOK}
	other := frame.ATCommandResponse{FrameID: 8, Command: frame.ATCmd{'N', 'I'}, Status: frame.ATStatusOK}

	if err := wr.WriteFrame(match.Encode()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	select {
	case f := <-calls:
		if resp := f.(frame.ATCommandResponse); resp.FrameID != 7 {
			t.Errorf("listener fired for frame ID %d, want 7", resp.FrameID)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for matching packet listener")
	}

	// A second matching frame must NOT re-trigger: the listener
	// deregisters itself after its first match (§4.4 step 5).
	if err := wr.WriteFrame(match.Encode()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if err := wr.WriteFrame(other.Encode()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	select {
	case f := <-calls:
		t.Fatalf("listener fired again after deregistering, got %#v", f)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestPacketListenerAnyIDFiresForEveryFrame(t *testing.T) {
	client, server := newConnPipe()
	_, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	calls := make(chan frame.Frame, 8)
	c.AddPacketListener(frame.NoFrameID, func(f frame.Frame) { calls <- f })

	for i := 0; i < 3; i++ {
		f := frame.ModemStatus{Status: frame.ModemStatusNetworkWokeUp}
		if err := wr.WriteFrame(f.Encode()); err != nil {
			t.Fatalf("WriteFrame #%d: %v", i, err)
		}
		select {
		case <-calls:
		case <-time.After(testTimeout):
			t.Fatalf("timed out waiting for any-ID listener invocation #%d", i)
		}
	}
}

func TestDataReceivedListener(t *testing.T) {
	client, server := newConnPipe()
	_, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	got := make(chan conn.DataReceivedEvent, 1)
	c.AddDataReceivedListener(func(evt conn.DataReceivedEvent) { got <- evt })

	src := frame.DecodeAddress64([]byte{0, 0x13, 0xA2, 0, 0x40, 0, 0, 1})
	rp := frame.ReceivePacket{Src64: src, Options: frame.ReceiveOptionsAcknowledged, Data: []byte("hello")}
	if err := wr.WriteFrame(rp.Encode()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	select {
	case evt := <-got:
		if evt.Src64 != src || string(evt.Data) != "hello" {
			t.Errorf("DataReceivedEvent = %#v, want Src64=%v Data=hello", evt, src)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for data-received listener")
	}
}

func TestRequestSuccess(t *testing.T) {
	client, server := newConnPipe()
	rd, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	serverDone := make(chan error, 1)
	go func() {
		payload, err := rd.ReadFrame()
		if err != nil {
			serverDone <- err
			return
		}
		f, err := decodeFrame(payload)
		if err != nil {
			serverDone <- err
			return
		}
		req := f.(frame.ATCommand)
		resp := frame.ATCommandResponse{FrameID: req.FrameID, Command: req.Command, Status: frame.ATStatusOK, Value: []byte("XBee")}
		serverDone <- wr.WriteFrame(resp.Encode())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	req := frame.ATCommand{FrameID: c.NextFrameID(), Command: frame.ATCmd{'N', 'I'}}
	resp, err := c.Request(ctx, req)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	got := resp.(frame.ATCommandResponse)
	if got.FrameID != req.FrameID || string(got.Value) != "XBee" {
		t.Errorf("Request response = %#v, want FrameID=%d Value=XBee", got, req.FrameID)
	}
	if err := <-serverDone; err != nil {
		t.Fatalf("server side: %v", err)
	}
}

func TestRequestATError(t *testing.T) {
	client, server := newConnPipe()
	rd, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	go func() {
		payload, err := rd.ReadFrame()
		if err != nil {
			return
		}
		f, _ := decodeFrame(payload)
		req := f.(frame.ATCommand)
		resp := frame.ATCommandResponse{FrameID: req.FrameID, Command: req.Command, Status: frame.ATStatusInvalidParameter}
		_ = wr.WriteFrame(resp.Encode())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	req := frame.ATCommand{FrameID: c.NextFrameID(), Command: frame.ATCmd{'D', '0'}}
	_, err = c.Request(ctx, req)
	atErr, ok := err.(*conn.ATError)
	if !ok {
		t.Fatalf("Request error = %#v (%T), want *conn.ATError", err, err)
	}
	if atErr.Status != frame.ATStatusInvalidParameter {
		t.Errorf("ATError.Status = %s, want InvalidParameter", atErr.Status)
	}
}

func TestRequestTimeout(t *testing.T) {
	client, server := newConnPipe()
	rd, _ := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client, conn.WithRequestTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	go func() {
		// Drain the request off the wire but never answer it.
		_, _ = rd.ReadFrame()
	}()

	req := frame.ATCommand{FrameID: c.NextFrameID(), Command: frame.ATCmd{'N', 'I'}}
	_, err = c.Request(context.Background(), req)
	if err != conn.ErrTimeout {
		t.Errorf("Request error = %v, want ErrTimeout", err)
	}
}

func TestFIFOOverflowDropsOldest(t *testing.T) {
	client, server := newConnPipe()
	_, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client, conn.WithFIFOCapacity(2))
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	for i := 0; i < 5; i++ {
		f := frame.ModemStatus{Status: frame.ModemStatusCode(i)}
		if err := wr.WriteFrame(f.Encode()); err != nil {
			t.Fatalf("WriteFrame #%d: %v", i, err)
		}
	}

	deadline := time.Now().Add(testTimeout)
	for c.DroppedCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if c.DroppedCount() == 0 {
		t.Fatal("DroppedCount() stayed 0 after overflowing a 2-entry FIFO with 5 frames")
	}
}

func TestStopWakesPendingRequest(t *testing.T) {
	client, server := newConnPipe()
	rd, _ := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}

	// Drain the request off the wire so Send completes; the Request
	// call then blocks waiting for a response that never comes, which
	// is the state Stop is meant to wake it from.
	go func() { _, _ = rd.ReadFrame() }()

	errCh := make(chan error, 1)
	go func() {
		req := frame.ATCommand{FrameID: c.NextFrameID(), Command: frame.ATCmd{'N', 'I'}}
		_, err := c.Request(context.Background(), req)
		errCh <- err
	}()

	time.Sleep(50 * time.Millisecond)
	c.Stop()

	select {
	case err := <-errCh:
		if err != conn.ErrClosed {
			t.Errorf("Request after Stop() = %v, want ErrClosed", err)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for Stop to wake a pending Request")
	}
}

func TestConnIDIsUniquePerInstance(t *testing.T) {
	client1, server1 := newConnPipe()
	defer server1.Close()
	client2, server2 := newConnPipe()
	defer server2.Close()

	c1, err := conn.New(context.Background(), client1)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c1.Stop()
	c2, err := conn.New(context.Background(), client2)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c2.Stop()

	if c1.ID() == "" {
		t.Error("ID() returned empty string")
	}
	if c1.ID() == c2.ID() {
		t.Errorf("two Conn instances share ID() = %s", c1.ID())
	}
}

func decodeFrame(payload []byte) (frame.Frame, error) {
	return frame.Decode(payload)
}
