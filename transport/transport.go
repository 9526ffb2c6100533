// Package transport defines the byte-stream abstraction that conn
// requires of a serial port or BLE GATT link, and wraps it with the
// connect/read/write trace hooks from conn/trace. It is the XBee
// analogue of the teacher's netconf/client SSH transport: the same
// open/read/write/close lifecycle and trace-wrapped reader/writer
// pair, generalized away from SSH to any ReadWriteCloser.
package transport

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/xbeecore/xbee/conn/trace"
)

// ByteStream is the raw, untraced transport a dialer hands back: a
// duplex byte stream plus liveness/readiness queries. Serial port and
// BLE GATT implementations satisfy this directly; net.Conn already
// does via its embedded io.ReadWriteCloser.
type ByteStream interface {
	io.Reader
	io.Writer
	io.Closer

	// IsOpen reports whether the stream is still usable.
	IsOpen() bool
}

// Dialer opens a ByteStream to target. target's format is
// implementation-defined: a device path for serial ("/dev/ttyUSB0"),
// a peripheral identifier for BLE.
type Dialer interface {
	Dial(ctx context.Context, target string) (ByteStream, error)
}

// Transport is what conn.Conn's reader and writer operate on: a traced
// duplex byte stream. It embeds ByteStream so a Transport can also be
// passed anywhere a ByteStream is expected.
type Transport interface {
	ByteStream
}

type impl struct {
	stream ByteStream
	trace  *trace.ConnTrace
	target string
}

// Open dials target via dialer and wraps the resulting ByteStream with
// connect/read/write tracing drawn from ctx (see
// conn/trace.ContextTrace). The returned Transport is not safe for
// concurrent Read and concurrent Write (conn.Conn serializes reads
// via its own worker goroutine; framer.Writer serializes writes with
// its own mutex), but a single Read may run concurrently with a single Write.
func Open(ctx context.Context, dialer Dialer, target string) (rt Transport, err error) {
	t := trace.ContextTrace(ctx)

	t.ConnectStart(target)
	defer func(begin time.Time) {
		t.ConnectDone(target, err, time.Since(begin))
	}(time.Now())

	stream, err := dialer.Dial(ctx, target)
	if err != nil {
		return nil, errors.Wrap(err, "transport: dial")
	}

	im := &impl{stream: stream, trace: t, target: target}
	return im, nil
}

func (t *impl) Read(p []byte) (int, error) {
	t.trace.ReadStart(t.target)
	begin := time.Now()
	n, err := t.stream.Read(p)
	t.trace.ReadDone(t.target, n, err, time.Since(begin))
	return n, errors.Wrap(err, "transport: read")
}

func (t *impl) Write(p []byte) (int, error) {
	t.trace.WriteStart(t.target, len(p))
	begin := time.Now()
	n, err := t.stream.Write(p)
	t.trace.WriteDone(t.target, n, err, time.Since(begin))
	return n, errors.Wrap(err, "transport: write")
}

func (t *impl) Close() (err error) {
	defer func() { t.trace.ConnectionClosed(t.target, err) }()
	return errors.Wrap(t.stream.Close(), "transport: close")
}

func (t *impl) IsOpen() bool {
	return t.stream.IsOpen()
}
