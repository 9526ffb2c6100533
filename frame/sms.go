package frame

const phoneNumberFieldLen = 20

const minTXSMSLen = 1 + 1 + phoneNumberFieldLen

// TXSMS is frame type 0x1F: send an SMS via a Cellular XBee.
type TXSMS struct {
	FrameID     FrameID
	PhoneNumber string
	Data        []byte
}

// Type implements Frame.
func (f TXSMS) Type() Type { return TypeTXSMS }

// Encode implements Frame.
func (f TXSMS) Encode() []byte {
	out := make([]byte, 2+phoneNumberFieldLen, 2+phoneNumberFieldLen+len(f.Data))
	out[0] = byte(TypeTXSMS)
	out[1] = byte(f.FrameID)
	copy(out[2:], encodePhoneNumber(f.PhoneNumber))
	return append(out, f.Data...)
}

func decodeTXSMS(b []byte) (Frame, error) {
	if len(b) < minTXSMSLen {
		return nil, shortPayloadErr(TypeTXSMS, len(b), minTXSMSLen)
	}
	return TXSMS{
		FrameID:     FrameID(b[1]),
		PhoneNumber: decodePhoneNumber(b[2 : 2+phoneNumberFieldLen]),
		Data:        cloneTail(b, 2+phoneNumberFieldLen),
	}, nil
}

const minRXSMSLen = 1 + phoneNumberFieldLen

// RXSMS is frame type 0x9F: an SMS received via a Cellular XBee.
// Carries no frame ID.
type RXSMS struct {
	PhoneNumber string
	Data        []byte
}

// Type implements Frame.
func (f RXSMS) Type() Type { return TypeRXSMS }

// Encode implements Frame.
func (f RXSMS) Encode() []byte {
	out := make([]byte, 1+phoneNumberFieldLen, 1+phoneNumberFieldLen+len(f.Data))
	out[0] = byte(TypeRXSMS)
	copy(out[1:], encodePhoneNumber(f.PhoneNumber))
	return append(out, f.Data...)
}

func decodeRXSMS(b []byte) (Frame, error) {
	if len(b) < minRXSMSLen {
		return nil, shortPayloadErr(TypeRXSMS, len(b), minRXSMSLen)
	}
	return RXSMS{
		PhoneNumber: decodePhoneNumber(b[1 : 1+phoneNumberFieldLen]),
		Data:        cloneTail(b, 1+phoneNumberFieldLen),
	}, nil
}

// encodePhoneNumber space-pads an ASCII phone number to the fixed
// 20-byte field width, truncating anything longer.
func encodePhoneNumber(number string) []byte {
	out := make([]byte, phoneNumberFieldLen)
	for i := range out {
		out[i] = ' '
	}
	copy(out, number)
	return out
}

// decodePhoneNumber trims the trailing space padding from a fixed
// 20-byte phone-number field.
func decodePhoneNumber(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == ' ' {
		end--
	}
	return string(b[:end])
}
