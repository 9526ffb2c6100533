package framer

import (
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/xbeecore/xbee/frame"
)

// Writer serializes payloads to the envelope described in §6:
// delimiter, big-endian length, payload, checksum, escaping the whole
// envelope (delimiter excluded) when the mode is APIEscaped. A single
// Writer may be shared by multiple goroutines: WriteFrame holds an
// internal mutex so that an outbound frame's escape-and-write
// completes atomically relative to any other outbound frame (§5).
type Writer struct {
	w    io.Writer
	mode Mode
	mu   sync.Mutex
}

// NewWriter creates a Writer over w, operating in the given mode.
func NewWriter(w io.Writer, mode Mode) (*Writer, error) {
	if !mode.valid() {
		return nil, ErrInvalidMode
	}
	return &Writer{w: w, mode: mode}, nil
}

// WriteFrame writes payload as a complete frame: delimiter, length,
// payload, checksum, escaped if the mode is APIEscaped. The checksum
// is always computed over the unescaped payload.
func (wr *Writer) WriteFrame(payload []byte) error {
	if len(payload) > 0xFFFF {
		return errors.Errorf("framer: payload too long (%d bytes)", len(payload))
	}

	checksum := frame.Generate(payload)

	body := make([]byte, 0, 2+len(payload)+1)
	body = append(body, byte(len(payload)>>8), byte(len(payload)))
	body = append(body, payload...)
	body = append(body, checksum)

	if wr.mode == APIEscaped {
		body = escapeBody(body)
	}

	envelope := make([]byte, 0, 1+len(body))
	envelope = append(envelope, delimiterByte)
	envelope = append(envelope, body...)

	wr.mu.Lock()
	defer wr.mu.Unlock()

	_, err := wr.w.Write(envelope)
	return errors.Wrap(err, "framer: write")
}

// escapeBody byte-stuffs every special byte in body (the delimiter is
// never part of body; WriteFrame prepends it unescaped separately).
func escapeBody(body []byte) []byte {
	out := make([]byte, 0, len(body))
	for _, b := range body {
		if frame.IsSpecial(b) {
			out = append(out, escapeByte, frame.Escape(b))
		} else {
			out = append(out, b)
		}
	}
	return out
}
