package frame

import "github.com/pkg/errors"

// ErrShortPayload is returned when a payload is shorter than the
// minimum length required for its declared type.
var ErrShortPayload = errors.New("frame: payload shorter than minimum for type")

// ErrEmptyPayload is returned when Decode is given a zero-length
// payload; there is no type byte to dispatch on.
var ErrEmptyPayload = errors.New("frame: empty payload")

func shortPayloadErr(t Type, got, min int) error {
	return errors.Wrapf(ErrShortPayload, "%s: got %d bytes, need at least %d", t, got, min)
}
