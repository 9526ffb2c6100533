package conn

import "github.com/xbeecore/xbee/frame"

// DataReceivedEvent is delivered to data-received listeners for
// RECEIVE_PACKET, RX64 and RX16 frames.
type DataReceivedEvent struct {
	Src64   frame.Address64
	Src16   frame.Address16
	Options frame.ReceiveOptions
	Data    []byte
}

// ExplicitDataReceivedEvent is delivered to explicit-data-received
// listeners for EXPLICIT_RX_INDICATOR frames.
type ExplicitDataReceivedEvent struct {
	Src64       frame.Address64
	Src16       frame.Address16
	SrcEndpoint byte
	DstEndpoint byte
	ClusterID   uint16
	ProfileID   uint16
	Options     frame.ReceiveOptions
	Data        []byte
}

// IOSampleReceivedEvent is delivered to IO-sample-received listeners
// for RX_IO64, RX_IO16 and IO_DATA_SAMPLE_RX_INDICATOR frames.
type IOSampleReceivedEvent struct {
	Src64  frame.Address64
	Src16  frame.Address16
	Sample frame.IOSample
}

// ModemStatusEvent is delivered to modem-status-received listeners
// for MODEM_STATUS frames.
type ModemStatusEvent struct {
	Status frame.ModemStatusCode
}

// SMSReceivedEvent is delivered to SMS-received listeners for RX_SMS
// frames.
type SMSReceivedEvent struct {
	PhoneNumber string
	Data        []byte
}

// IPDataReceivedEvent is delivered to IP-data-received listeners for
// RX_IPV4 frames.
type IPDataReceivedEvent struct {
	Src      frame.IPv4Addr
	DestPort uint16
	SrcPort  uint16
	Protocol frame.IPProtocol
	Data     []byte
}

// UserDataRelayReceivedEvent is delivered to
// user-data-relay-received listeners for USER_DATA_RELAY_OUTPUT
// frames.
type UserDataRelayReceivedEvent struct {
	SourceInterface frame.RelayInterface
	Data            []byte
}

// RemoteDeviceResolver resolves a received frame's source address
// against a higher-level device directory; it is consulted by none of
// the core dispatch logic, but is threaded through Conn so that
// application code building typed events with resolved device
// identities (rather than raw addresses) has a single extension
// point, mirroring how the teacher's Session exposes ServerCapabilities
// as a resolved, higher-level view over raw protocol state.
type RemoteDeviceResolver interface {
	// Resolve returns an application-defined identifier for the
	// device at addr, or ok=false if unknown.
	Resolve(addr frame.Address64) (id string, ok bool)
}
