package srp

import "github.com/pkg/errors"

// ErrAuthFailed is returned when the peer's proof (M2) does not match
// the client's expectation, or when the peer reports a BLE Unlock
// error code instead of continuing the handshake.
var ErrAuthFailed = errors.New("srp: authentication failed")

// ErrUnexpectedPhase is returned when a response frame's phase does
// not match what the current state expects.
var ErrUnexpectedPhase = errors.New("srp: unexpected phase in response")

// ErrShortMessage is returned when a response frame's payload is too
// short for the fields its phase requires.
var ErrShortMessage = errors.New("srp: short BLE Unlock message")
