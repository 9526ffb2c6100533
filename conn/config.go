package conn

import (
	"time"

	"github.com/xbeecore/xbee/framer"
)

// Config configures a Conn's dispatcher and framing behaviour.
type Config struct {
	// Mode selects the wire framing variant (API or APIEscaped).
	Mode framer.Mode
	// ReadTimeout bounds each byte read from the transport; zero
	// disables the timeout.
	ReadTimeout time.Duration
	// FIFOCapacity bounds the received-packet queue exposed by Poll.
	// It should be a power of two; the default is 50 per spec, kept
	// here rather than rounded up, since nothing in the dispatcher
	// relies on a power-of-two capacity.
	FIFOCapacity int
	// MaxParallelListeners bounds the number of listener invocations
	// the dispatcher runs concurrently; the bound is shared across all
	// inbound frames of the Conn.
	MaxParallelListeners int64
	// RequestTimeout is the default timeout applied by Request when
	// the caller's context carries no deadline.
	RequestTimeout time.Duration
	// SRPUsername is the identity presented in the BLE Unlock SRP-6a
	// handshake. The protocol fixes this to "apiservice"; it is
	// exposed here, rather than hardcoded in package srp, because it
	// is a deployment policy a caller may need to override against a
	// non-conformant bridge, not an SRP-6a arithmetic detail.
	SRPUsername string
	// SRPTimeout bounds the BLE Unlock handshake started against this
	// Conn. It is honored even when the caller's context carries no
	// deadline of its own.
	SRPTimeout time.Duration
}

// DefaultConfig matches the defaults named in spec §4.4/§4.6: a
// 50-entry FIFO, 20 parallel listener invocations, a 300ms read
// timeout, a 5s request timeout and a 20s SRP-6a handshake ceiling.
var DefaultConfig = &Config{
	Mode:                 framer.API,
	ReadTimeout:          300 * time.Millisecond,
	FIFOCapacity:         50,
	MaxParallelListeners: 20,
	RequestTimeout:       5 * time.Second,
	SRPUsername:          "apiservice",
	SRPTimeout:           20 * time.Second,
}

// Option configures a Config.
type Option func(*Config)

// WithMode overrides the framing mode.
func WithMode(m framer.Mode) Option {
	return func(c *Config) { c.Mode = m }
}

// WithReadTimeout overrides the per-byte read timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Config) { c.ReadTimeout = d }
}

// WithFIFOCapacity overrides the received-packet FIFO capacity.
func WithFIFOCapacity(n int) Option {
	return func(c *Config) { c.FIFOCapacity = n }
}

// WithMaxParallelListeners overrides the dispatcher's listener
// concurrency bound.
func WithMaxParallelListeners(n int64) Option {
	return func(c *Config) { c.MaxParallelListeners = n }
}

// WithRequestTimeout overrides the default Request timeout applied
// when the caller's context carries no deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) { c.RequestTimeout = d }
}

// WithSRPUsername overrides the identity presented in the BLE Unlock
// SRP-6a handshake.
func WithSRPUsername(username string) Option {
	return func(c *Config) { c.SRPUsername = username }
}

// WithSRPTimeout overrides the BLE Unlock handshake ceiling.
func WithSRPTimeout(d time.Duration) Option {
	return func(c *Config) { c.SRPTimeout = d }
}

func buildConfig(opts ...Option) *Config {
	cfg := *DefaultConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}
