package framer

import "github.com/pkg/errors"

// ErrIncompletePacket is returned when the configured per-byte read
// timeout expires before a full frame has been assembled.
var ErrIncompletePacket = errors.New("framer: incomplete packet (read timeout)")

// ErrUnescapedSpecial is returned when, in APIEscaped mode, a special
// byte (0x7E, 0x7D, 0x11, 0x13) appears in the frame body without a
// preceding 0x7D escape marker.
var ErrUnescapedSpecial = errors.New("framer: unescaped special byte in frame body")

// ChecksumError is returned when a frame's trailing checksum byte does
// not match the checksum computed over its payload.
type ChecksumError struct {
	Expected byte
	Got      byte
}

func (e *ChecksumError) Error() string {
	return errors.Errorf("framer: bad checksum: expected 0x%02X, got 0x%02X", e.Expected, e.Got).Error()
}
