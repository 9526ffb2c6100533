package conn_test

import (
	"context"
	"testing"
	"time"

	"github.com/xbeecore/xbee/conn"
	"github.com/xbeecore/xbee/frame"
)

func TestExplicitDataReceivedListener(t *testing.T) {
	client, server := newConnPipe()
	_, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	got := make(chan conn.ExplicitDataReceivedEvent, 1)
	c.AddExplicitDataReceivedListener(func(evt conn.ExplicitDataReceivedEvent) { got <- evt })

	src64 := frame.DecodeAddress64([]byte{0, 0x13, 0xA2, 0, 0x40, 0, 0, 1})
	f := frame.ExplicitRXIndicator{
		Src64: src64, SrcEndpoint: 0xE8, DstEndpoint: 0xE8,
		ClusterID: 0x0011, ProfileID: 0xC105, Data: []byte("hi"),
	}
	if err := wr.WriteFrame(f.Encode()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	select {
	case evt := <-got:
		if evt.Src64 != src64 || evt.ClusterID != 0x0011 || string(evt.Data) != "hi" {
			t.Errorf("ExplicitDataReceivedEvent = %#v, want Src64=%v ClusterID=0x11 Data=hi", evt, src64)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for explicit-data-received listener")
	}
}

func TestIOSampleReceivedListener(t *testing.T) {
	client, server := newConnPipe()
	_, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	got := make(chan conn.IOSampleReceivedEvent, 1)
	c.AddIOSampleReceivedListener(func(evt conn.IOSampleReceivedEvent) { got <- evt })

	src := frame.DecodeAddress16([]byte{0xFF, 0xFE})
	sample := frame.IOSample{
		Variant:      frame.IOSampleGeneric,
		AnalogValues: map[byte]uint16{},
	}
	f := frame.RXIO16{Src: src, Sample: sample}
	if err := wr.WriteFrame(f.Encode()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	select {
	case evt := <-got:
		if evt.Src16 != src {
			t.Errorf("IOSampleReceivedEvent.Src16 = %v, want %v", evt.Src16, src)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for io-sample-received listener")
	}
}

func TestModemStatusListener(t *testing.T) {
	client, server := newConnPipe()
	_, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	got := make(chan conn.ModemStatusEvent, 1)
	c.AddModemStatusListener(func(evt conn.ModemStatusEvent) { got <- evt })

	f := frame.ModemStatus{Status: frame.ModemStatusCoordinatorStarted}
	if err := wr.WriteFrame(f.Encode()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	select {
	case evt := <-got:
		if evt.Status != frame.ModemStatusCoordinatorStarted {
			t.Errorf("ModemStatusEvent.Status = %v, want CoordinatorStarted", evt.Status)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for modem-status listener")
	}
}

func TestSMSReceivedListener(t *testing.T) {
	client, server := newConnPipe()
	_, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	got := make(chan conn.SMSReceivedEvent, 1)
	c.AddSMSReceivedListener(func(evt conn.SMSReceivedEvent) { got <- evt })

	f := frame.RXSMS{PhoneNumber: "+15555550123", Data: []byte("hello")}
	if err := wr.WriteFrame(f.Encode()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	select {
	case evt := <-got:
		if evt.PhoneNumber != "+15555550123" || string(evt.Data) != "hello" {
			t.Errorf("SMSReceivedEvent = %#v, want PhoneNumber=+15555550123 Data=hello", evt)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for sms-received listener")
	}
}

func TestIPDataReceivedListener(t *testing.T) {
	client, server := newConnPipe()
	_, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	got := make(chan conn.IPDataReceivedEvent, 1)
	c.AddIPDataReceivedListener(func(evt conn.IPDataReceivedEvent) { got <- evt })

	f := frame.RXIPv4{
		Src: frame.IPv4Addr{192, 168, 1, 1}, DestPort: 4660, SrcPort: 80,
		Protocol: frame.IPProtocolTCP, Data: []byte("payload"),
	}
	if err := wr.WriteFrame(f.Encode()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	select {
	case evt := <-got:
		if evt.Src != f.Src || evt.Protocol != frame.IPProtocolTCP || string(evt.Data) != "payload" {
			t.Errorf("IPDataReceivedEvent = %#v, want Src=%v Protocol=TCP Data=payload", evt, f.Src)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for ip-data-received listener")
	}
}

func TestUserDataRelayReceivedListener(t *testing.T) {
	client, server := newConnPipe()
	_, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	got := make(chan conn.UserDataRelayReceivedEvent, 1)
	c.AddUserDataRelayReceivedListener(func(evt conn.UserDataRelayReceivedEvent) { got <- evt })

	f := frame.UserDataRelayOutput{SourceInterface: frame.RelayInterfaceBLE, Data: []byte("relayed")}
	if err := wr.WriteFrame(f.Encode()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	select {
	case evt := <-got:
		if evt.SourceInterface != frame.RelayInterfaceBLE || string(evt.Data) != "relayed" {
			t.Errorf("UserDataRelayReceivedEvent = %#v, want SourceInterface=BLE Data=relayed", evt)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for user-data-relay-received listener")
	}
}

func TestRemoveAllFramesListenerStopsDelivery(t *testing.T) {
	client, server := newConnPipe()
	_, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	got := make(chan frame.Frame, 2)
	h := c.AddAllFramesListener(func(f frame.Frame) { got <- f })
	c.RemoveAllFramesListener(h)

	f := frame.ModemStatus{Status: frame.ModemStatusNetworkWentToSleep}
	if err := wr.WriteFrame(f.Encode()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	select {
	case evt := <-got:
		t.Fatalf("removed all-frames listener still fired: %#v", evt)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRemovePacketListenerBeforeMatchStopsDelivery(t *testing.T) {
	client, server := newConnPipe()
	_, wr := newServerFramer(server)
	defer server.Close()

	c, err := conn.New(context.Background(), client)
	if err != nil {
		t.Fatalf("conn.New: %v", err)
	}
	defer c.Stop()

	got := make(chan frame.Frame, 2)
	h := c.AddPacketListener(frame.FrameID(3), func(f frame.Frame) { got <- f })
	c.RemovePacketListener(h)

	resp := frame.ATCommandResponse{FrameID: 3, Command: frame.ATCmd{'N', 'I'}, Status: frame.ATStatusOK}
	if err := wr.WriteFrame(resp.Encode()); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	select {
	case evt := <-got:
		t.Fatalf("removed packet listener still fired: %#v", evt)
	case <-time.After(200 * time.Millisecond):
	}
}
