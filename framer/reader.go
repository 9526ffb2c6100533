package framer

import (
	"bufio"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/xbeecore/xbee/frame"
)

// deadliner is implemented by transports (e.g. net.Conn, serial ports)
// that support per-read deadlines. Readers over a transport without
// this capability never time out: ReadFrame blocks until the
// transport returns bytes or an error.
type deadliner interface {
	SetReadDeadline(t time.Time) error
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithReadTimeout sets the per-byte read timeout. The zero value
// disables the timeout.
func WithReadTimeout(d time.Duration) ReaderOption {
	return func(r *Reader) { r.timeout = d }
}

// defaultReadTimeout is applied when no WithReadTimeout option is
// given, matching the ~300ms budget of the wire protocol.
const defaultReadTimeout = 300 * time.Millisecond

// Reader assembles validated frame payloads from a byte stream,
// per the envelope described in §6: delimiter, big-endian length,
// payload, checksum. It assumes it is positioned at (or before) a
// delimiter on every call to ReadFrame; it is not safe for concurrent
// use.
type Reader struct {
	br      *bufio.Reader
	dl      deadliner
	mode    Mode
	timeout time.Duration
}

// NewReader creates a Reader over r, operating in the given mode.
func NewReader(r io.Reader, mode Mode, opts ...ReaderOption) (*Reader, error) {
	if !mode.valid() {
		return nil, ErrInvalidMode
	}
	rd := &Reader{br: bufio.NewReader(r), mode: mode, timeout: defaultReadTimeout}
	if dl, ok := r.(deadliner); ok {
		rd.dl = dl
	}
	for _, opt := range opts {
		opt(rd)
	}
	return rd, nil
}

// ReadFrame scans forward to the next start delimiter, reads the
// length-prefixed, checksummed payload that follows, and returns it
// undecoded (frame.Decode performs the type dispatch). A malformed
// frame — bad checksum, an unescaped special byte in APIEscaped mode,
// or a timed-out read — is returned as an error; callers should log
// and resume scanning for the next delimiter, per §7.
func (r *Reader) ReadFrame() ([]byte, error) {
	if err := r.syncToDelimiter(); err != nil {
		return nil, err
	}

	lenBytes, err := r.readEscaped(2)
	if err != nil {
		return nil, err
	}
	length := int(lenBytes[0])<<8 | int(lenBytes[1])

	payload, err := r.readEscaped(length)
	if err != nil {
		return nil, err
	}

	checksumBytes, err := r.readEscaped(1)
	if err != nil {
		return nil, err
	}
	checksum := checksumBytes[0]

	if !frame.Validate(payload, checksum) {
		return nil, &ChecksumError{Expected: frame.Generate(payload), Got: checksum}
	}
	return payload, nil
}

// syncToDelimiter discards bytes until the start delimiter is seen.
func (r *Reader) syncToDelimiter() error {
	for {
		b, err := r.readRawByte()
		if err != nil {
			return err
		}
		if b == delimiterByte {
			return nil
		}
	}
}

const delimiterByte = 0x7E

// readEscaped reads n logical bytes, transparently undoing API2 byte
// stuffing. In API (unescaped) mode it is equivalent to reading n raw
// bytes.
func (r *Reader) readEscaped(n int) ([]byte, error) {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := r.readRawByte()
		if err != nil {
			return nil, err
		}
		if r.mode == APIEscaped {
			if b == escapeByte {
				b, err = r.readRawByte()
				if err != nil {
					return nil, err
				}
				b = frame.Escape(b)
			} else if frame.IsSpecial(b) {
				return nil, ErrUnescapedSpecial
			}
		}
		out[i] = b
	}
	return out, nil
}

const escapeByte = 0x7D

// readRawByte reads a single byte off the wire, applying the
// configured per-byte timeout when the underlying reader supports
// deadlines.
func (r *Reader) readRawByte() (byte, error) {
	if r.dl != nil && r.timeout > 0 {
		if err := r.dl.SetReadDeadline(time.Now().Add(r.timeout)); err != nil {
			return 0, errors.Wrap(err, "framer: set read deadline")
		}
	}
	b, err := r.br.ReadByte()
	if err != nil {
		if ne, ok := err.(interface{ Timeout() bool }); ok && ne.Timeout() {
			return 0, ErrIncompletePacket
		}
		return 0, errors.Wrap(err, "framer: read")
	}
	return b, nil
}
