package framer

import "github.com/pkg/errors"

// Mode selects which on-wire framing variant a Reader or Writer uses.
type Mode int

// Recognized operating modes.
const (
	// API is the unescaped framing variant.
	API Mode = iota
	// APIEscaped is the byte-stuffed (API2) framing variant.
	APIEscaped
)

func (m Mode) String() string {
	switch m {
	case API:
		return "API"
	case APIEscaped:
		return "APIEscaped"
	}
	return "Mode(invalid)"
}

func (m Mode) valid() bool {
	return m == API || m == APIEscaped
}

// ErrInvalidMode is returned when a Reader or Writer is constructed
// with a Mode other than API or APIEscaped.
var ErrInvalidMode = errors.New("framer: invalid operating mode")
