// Package srp implements the client side of the BLE Unlock SRP-6a
// handshake (§4.7 / C5): four BLE_UNLOCK / BLE_UNLOCK_RESPONSE frames
// exchanged over an already-open Conn, producing a shared session key
// and a pair of traffic nonces. The wire frames are defined in
// package frame (BLEUnlock, BLEUnlockResponse); this package owns
// only the SRP-6a arithmetic and the phase sequencing.
package srp

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/pkg/errors"

	"github.com/xbeecore/xbee/conn"
	"github.com/xbeecore/xbee/frame"
)

// defaultUsername is fixed by the BLE Unlock protocol: every XBee
// presents the same SRP identity, "apiservice"; only the password
// (the device's configured BLE password) is secret. A caller driving
// a non-conformant bridge may override it with WithUsername; conn.Config
// carries the same default as a policy value so the two stay in sync.
const defaultUsername = "apiservice"

// defaultTimeout is the handshake ceiling required by §4.5: a client
// that never hears a phase response must not block forever even
// against a deadline-less context. It matches conn.DefaultConfig's
// SRPTimeout.
const defaultTimeout = 20 * time.Second

const saltLen = 4

// phase4Len is the fixed length of a spec-conformant phase-4 response:
// a 32-byte M2 proof followed by a 12-byte TX nonce and a 12-byte RX
// nonce (§3, §4.5).
const phase4Len = 32 + 12 + 12

// State names a step in the four-phase handshake.
type State int

// Recognized states.
const (
	StateInit State = iota
	StatePhase1
	StatePhase2
	StatePhase3
	StatePhase4
	StateDone
	StateError
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StatePhase1:
		return "Phase1"
	case StatePhase2:
		return "Phase2"
	case StatePhase3:
		return "Phase3"
	case StatePhase4:
		return "Phase4"
	case StateDone:
		return "Done"
	case StateError:
		return "Error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Result is the outcome of a successful Authenticate call.
type Result struct {
	SharedKey [32]byte
	TXNonce   [12]byte
	RXNonce   [12]byte
}

// FrameRoundTripper is the minimal surface Authenticate requires of a
// Conn: send a BLE Unlock frame, and be notified of BLE Unlock
// response frames as they arrive. *conn.Conn satisfies this directly.
type FrameRoundTripper interface {
	Send(f frame.Frame) error
	AddPacketListener(id frame.FrameID, fn func(frame.Frame)) conn.ListenerHandle
	RemovePacketListener(h conn.ListenerHandle)
}

// Client runs one BLE Unlock handshake. A Client is single-use: call
// Authenticate once per connection, per §4.7's "authentication is
// strictly sequential" and "it is the only producer of BLE_UNLOCK
// frames on the outbound path" constraints.
type Client struct {
	username string
	password string
	timeout  time.Duration
	state    State
}

// ClientOption configures a Client constructed by NewClient.
type ClientOption func(*Client)

// WithUsername overrides the SRP identity presented in phase 1. Only
// a non-conformant bridge should need this; real XBees require
// "apiservice".
func WithUsername(username string) ClientOption {
	return func(c *Client) { c.username = username }
}

// WithTimeout overrides the handshake ceiling Authenticate enforces
// internally, regardless of whether the caller's context carries its
// own deadline. The default is 20s (§4.5).
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// NewClient creates a Client for the given device password, using the
// protocol-fixed "apiservice" identity and the 20s default handshake
// timeout unless overridden by opts.
func NewClient(password string, opts ...ClientOption) *Client {
	c := &Client{username: defaultUsername, password: password, timeout: defaultTimeout, state: StateInit}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the handshake's current step, for diagnostics.
func (c *Client) State() State { return c.state }

// Authenticate runs the full four-phase SRP-6a exchange over rt and
// returns the derived session key and traffic nonces.
func (c *Client) Authenticate(ctx context.Context, rt FrameRoundTripper) (*Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	a, err := randomExponent()
	if err != nil {
		c.state = StateError
		return nil, errors.Wrap(err, "srp: generate private exponent")
	}
	A := modExp(g, a)

	c.state = StatePhase1
	if err := rt.Send(frame.BLEUnlock{Phase: frame.BLEUnlockPhase1, Data: pad(A)}); err != nil {
		c.state = StateError
		return nil, errors.Wrap(err, "srp: send phase 1")
	}

	c.state = StatePhase2
	resp, err := awaitResponse(ctx, rt, frame.BLEUnlockPhase2)
	if err != nil {
		c.state = StateError
		return nil, err
	}
	if len(resp.Data) < saltLen+1 {
		c.state = StateError
		return nil, ErrShortMessage
	}
	salt := resp.Data[:saltLen]
	B := new(big.Int).SetBytes(resp.Data[saltLen:])
	if B.Sign() == 0 {
		c.state = StateError
		return nil, errors.New("srp: server sent zero B")
	}

	k := computeK()
	u := hInt(pad(A), pad(B))
	x := hInt(salt, h([]byte(c.username+":"+c.password)))

	// S = (B - k*g^x) ^ (a + u*x) mod N
	kgx := modExp(g, x)
	kgx.Mul(kgx, k)
	base := modN(new(big.Int).Sub(B, kgx))
	exp := new(big.Int).Add(a, new(big.Int).Mul(u, x))
	S := modExp(base, exp)

	K := h(S.Bytes())

	m1 := h(xorBytes(h(N.Bytes()), h(g.Bytes())), h([]byte(c.username)), salt, pad(A), pad(B), K)

	c.state = StatePhase3
	if err := rt.Send(frame.BLEUnlock{Phase: frame.BLEUnlockPhase3, Data: m1}); err != nil {
		c.state = StateError
		return nil, errors.Wrap(err, "srp: send phase 3")
	}

	c.state = StatePhase4
	resp4, err := awaitResponse(ctx, rt, frame.BLEUnlockPhase4)
	if err != nil {
		c.state = StateError
		return nil, err
	}
	if len(resp4.Data) < phase4Len {
		c.state = StateError
		return nil, ErrShortMessage
	}
	m2 := h(pad(A), m1, K)
	if !bytesEqual(resp4.Data[:32], m2) {
		c.state = StateError
		return nil, ErrAuthFailed
	}

	c.state = StateDone

	result := &Result{}
	copy(result.SharedKey[:], K)
	copy(result.TXNonce[:], resp4.Data[32:44])
	copy(result.RXNonce[:], resp4.Data[44:56])
	return result, nil
}

func awaitResponse(ctx context.Context, rt FrameRoundTripper, expect frame.BLEUnlockPhase) (frame.BLEUnlockResponse, error) {
	ch := make(chan frame.BLEUnlockResponse, 1)
	var handle conn.ListenerHandle
	handle = rt.AddPacketListener(frame.NoFrameID, func(f frame.Frame) {
		resp, ok := f.(frame.BLEUnlockResponse)
		if !ok {
			return
		}
		select {
		case ch <- resp:
		default:
		}
	})
	defer rt.RemovePacketListener(handle)

	select {
	case resp := <-ch:
		if code, isErr := resp.IsError(); isErr {
			return frame.BLEUnlockResponse{}, errors.Wrapf(ErrAuthFailed, "peer reported %s", code)
		}
		if resp.Phase != expect {
			return frame.BLEUnlockResponse{}, ErrUnexpectedPhase
		}
		return resp, nil
	case <-ctx.Done():
		return frame.BLEUnlockResponse{}, ctx.Err()
	}
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
