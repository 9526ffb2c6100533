package transport

import "context"

// SerialFactory documents the shape a serial-port driver must expose
// to be usable as a Dialer target "/dev/ttyUSB0"-style path. No serial
// driver is implemented in this module (out of scope); a real driver
// (e.g. one wrapping go.bug.st/serial) satisfies this by opening the
// named port and returning it as a ByteStream.
type SerialFactory interface {
	// OpenPort opens the serial device named by path at baud bits/s.
	OpenPort(ctx context.Context, path string, baud int) (ByteStream, error)
}

// BLEFactory documents the shape a BLE central driver must expose to
// be usable as a Dialer target a peripheral identifier (address or
// advertised name). No BLE driver is implemented in this module (out
// of scope); a real driver connects to the peripheral, discovers the
// XBee BLE Unlock and API service characteristics, and returns a
// ByteStream that multiplexes notify/write onto Read/Write.
type BLEFactory interface {
	// Connect establishes a GATT connection to the peripheral
	// identified by id.
	Connect(ctx context.Context, id string) (ByteStream, error)
}

// SerialDialer adapts a SerialFactory to a Dialer, fixing the baud
// rate used for every Dial call.
type SerialDialer struct {
	Factory SerialFactory
	Baud    int
}

// Dial opens target (a device path) via the wrapped SerialFactory.
func (d SerialDialer) Dial(ctx context.Context, target string) (ByteStream, error) {
	return d.Factory.OpenPort(ctx, target, d.Baud)
}

// BLEDialer adapts a BLEFactory to a Dialer.
type BLEDialer struct {
	Factory BLEFactory
}

// Dial connects to target (a peripheral identifier) via the wrapped
// BLEFactory.
func (d BLEDialer) Dial(ctx context.Context, target string) (ByteStream, error) {
	return d.Factory.Connect(ctx, target)
}
