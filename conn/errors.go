package conn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/xbeecore/xbee/frame"
)

// ErrClosed is returned by Send and Request once the Conn has been
// stopped.
var ErrClosed = errors.New("conn: closed")

// ErrTimeout is returned by Request when no matching response frame
// arrived within the caller's deadline. The per-frame-ID waiter is
// deregistered before this error is returned.
var ErrTimeout = errors.New("conn: request timed out")

// ATError reports a non-OK status in an AT_COMMAND_RESPONSE or
// REMOTE_AT_COMMAND_RESPONSE frame.
type ATError struct {
	Command frame.ATCmd
	Status  frame.ATStatus
}

func (e *ATError) Error() string {
	return fmt.Sprintf("conn: AT command %s failed: %s", e.Command, e.Status)
}

// TransmitError reports a non-Success delivery status in a
// TRANSMIT_STATUS frame.
type TransmitError struct {
	FrameID frame.FrameID
	Status  frame.DeliveryStatus
}

func (e *TransmitError) Error() string {
	return fmt.Sprintf("conn: transmit %d failed: delivery status 0x%02X", e.FrameID, byte(e.Status))
}

// malformedFrameErr wraps a decode failure for the trace hook's
// FrameDropped; the frame itself is dropped, not dispatched.
func malformedFrameErr(err error) error {
	return errors.Wrap(err, "conn: malformed frame")
}
