package frame

// Checksum accumulates an XBee API frame checksum over a payload.
//
// The checksum is defined over unescaped payload bytes only: sum all
// bytes mod 256, then the checksum byte is 0xFF minus that sum.
// Verification sums the payload and the checksum byte and requires the
// result mod 256 to equal 0xFF.
type Checksum struct {
	sum byte
}

// Add folds a single byte into the running sum.
func (c *Checksum) Add(b byte) {
	c.sum += b
}

// AddBytes folds a sequence of bytes into the running sum.
func (c *Checksum) AddBytes(bs []byte) {
	for _, b := range bs {
		c.sum += b
	}
}

// Generate returns the checksum byte for the bytes folded in so far.
func (c *Checksum) Generate() byte {
	return 0xFF - c.sum
}

// Validate reports whether checksum is the correct checksum for the
// bytes folded in so far.
func (c *Checksum) Validate(checksum byte) bool {
	return byte(c.sum+checksum) == 0xFF
}

// Generate computes the checksum byte for payload in a single call.
func Generate(payload []byte) byte {
	var c Checksum
	c.AddBytes(payload)
	return c.Generate()
}

// Validate reports whether checksum is the correct checksum byte for
// payload.
func Validate(payload []byte, checksum byte) bool {
	var c Checksum
	c.AddBytes(payload)
	return c.Validate(checksum)
}

const (
	delimiter = 0x7E
	escape    = 0x7D
	xon       = 0x11
	xoff      = 0x13
	escapeXOR = 0x20
)

// IsSpecial reports whether b is one of the four bytes that require
// byte-stuffing in API2 (escaped) mode.
func IsSpecial(b byte) bool {
	switch b {
	case delimiter, escape, xon, xoff:
		return true
	default:
		return false
	}
}

// Escape returns the escaped representation of a special byte, as
// placed on the wire immediately after an 0x7D escape marker.
func Escape(b byte) byte {
	return b ^ escapeXOR
}
