// Package frame implements the XBee API frame catalog: the closed
// enumeration of frame types and the encode/decode pair for each
// type's payload. It knows nothing about delimiters, length prefixes,
// checksums or escaping — see package framer for the envelope that
// wraps a frame's payload on the wire.
package frame

// Frame is implemented by every recognized payload shape plus Unknown.
// Encode returns the payload bytes (type byte included, envelope
// excluded); Type identifies which shape Encode will produce.
type Frame interface {
	Type() Type
	Encode() []byte
}

// decoders is the dispatch table used by Decode, keyed by the leading
// type byte. Unrecognized type bytes fall through to Unknown.
var decoders = map[Type]func([]byte) (Frame, error){
	TypeTX64:                           decodeTX64,
	TypeTX16:                           decodeTX16,
	TypeATCommand:                      decodeATCommand,
	TypeATCommandQueue:                 decodeATCommandQueue,
	TypeTransmitRequest:                decodeTransmitRequest,
	TypeExplicitAddressingCommandFrame: decodeExplicitAddressingCommandFrame,
	TypeRemoteATCommandRequest:         decodeRemoteATCommandRequest,
	TypeTXSMS:                          decodeTXSMS,
	TypeTXIPv4:                         decodeTXIPv4,
	TypeTXRequestTLSProfile:            decodeTXRequestTLSProfile,
	TypeUserDataRelay:                  decodeUserDataRelay,
	TypeBLEUnlock:                      decodeBLEUnlock,

	TypeRX64:                    decodeRX64,
	TypeRX16:                    decodeRX16,
	TypeRXIO64:                  decodeRXIO64,
	TypeRXIO16:                  decodeRXIO16,
	TypeATCommandResponse:       decodeATCommandResponse,
	TypeModemStatus:             decodeModemStatus,
	TypeTransmitStatus:          decodeTransmitStatus,
	TypeReceivePacket:           decodeReceivePacket,
	TypeExplicitRXIndicator:     decodeExplicitRXIndicator,
	TypeIODataSampleRXIndicator: decodeIODataSampleRXIndicator,
	TypeRemoteATCommandResponse: decodeRemoteATCommandResponse,
	TypeRXSMS:                   decodeRXSMS,
	TypeRXIPv4:                  decodeRXIPv4,
	TypeUserDataRelayOutput:     decodeUserDataRelayOutput,
	TypeBLEUnlockResponse:       decodeBLEUnlockResponse,
}

// Decode decodes a single frame payload (type byte plus type-specific
// bytes, no envelope) into its typed representation. An unrecognized
// type byte produces an Unknown frame carrying the raw payload rather
// than an error, per the "forward compatibility" contract of the
// frame catalog.
func Decode(payload []byte) (Frame, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}

	t := Type(payload[0])

	dec, ok := decoders[t]
	if !ok {
		return Unknown{RawType: t, Payload: append([]byte(nil), payload[1:]...)}, nil
	}
	return dec(payload)
}

// IDOf returns the frame ID carried by f, if its type has a frame ID
// field (Type.NeedsFrameID, plus the response types that echo a
// request's frame ID back). ok is false for frame types that carry no
// frame ID at all — conn uses this to decide which per-frame-ID
// listeners and outstanding Request waiters a given inbound frame can
// satisfy.
func IDOf(f Frame) (id FrameID, ok bool) {
	switch v := f.(type) {
	case TX64:
		return v.FrameID, true
	case TX16:
		return v.FrameID, true
	case ATCommand:
		return v.FrameID, true
	case ATCommandQueue:
		return v.FrameID, true
	case ATCommandResponse:
		return v.FrameID, true
	case TransmitRequest:
		return v.FrameID, true
	case TransmitStatus:
		return v.FrameID, true
	case ExplicitAddressingCommandFrame:
		return v.FrameID, true
	case RemoteATCommandRequest:
		return v.FrameID, true
	case RemoteATCommandResponse:
		return v.FrameID, true
	case TXSMS:
		return v.FrameID, true
	case TXIPv4:
		return v.FrameID, true
	case TXRequestTLSProfile:
		return v.FrameID, true
	case UserDataRelay:
		return v.FrameID, true
	default:
		return NoFrameID, false
	}
}

// Unknown preserves an unrecognized type byte and its raw remaining
// payload for forward compatibility.
type Unknown struct {
	RawType Type
	Payload []byte
}

// Type returns the original, unrecognized type byte.
func (u Unknown) Type() Type { return u.RawType }

// Encode reproduces the original payload verbatim.
func (u Unknown) Encode() []byte {
	out := make([]byte, 1+len(u.Payload))
	out[0] = byte(u.RawType)
	copy(out[1:], u.Payload)
	return out
}
