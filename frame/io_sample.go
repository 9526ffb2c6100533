package frame

import "encoding/binary"

// IOSampleVariant distinguishes the two wire layouts that an IOSample
// payload may use. The variant is selected on decode by the parity of
// the payload length (see decodeIOSample), and is
// preserved on the struct so that Encode reproduces the same layout.
type IOSampleVariant int

const (
	// IOSampleRaw802 is the legacy 802.15.4 layout: a single combined
	// 16-bit channel-indicator field (digital bits low, analog bits
	// 9-14) and no supply-voltage reading.
	IOSampleRaw802 IOSampleVariant = iota
	// IOSampleGeneric is the layout used by RX_IO_64/16 and
	// IO_DATA_SAMPLE_RX_INDICATOR on ZigBee/DigiMesh firmware: a
	// separate 16-bit digital mask and 8-bit analog mask, the analog
	// mask's bit 7 flagging an appended supply-voltage reading.
	IOSampleGeneric
)

// IOSample is a decoded digital/analog pin-state snapshot.
type IOSample struct {
	Variant IOSampleVariant

	// DigitalMask has one bit set per enabled digital line. Meaningful
	// bit range depends on Variant (raw802: bits 0-8; generic: bits
	// 0-14).
	DigitalMask uint16

	// AnalogMask has one bit set per enabled analog line. For
	// IOSampleGeneric, bit 7 is the supply-voltage flag rather than a
	// channel; for IOSampleRaw802 all set bits are channels (the raw
	// layout has no supply-voltage bit).
	AnalogMask uint16

	// DigitalValues is a bitmap aligned to DigitalMask, valid only
	// when DigitalMask is non-zero.
	DigitalValues uint16

	// AnalogValues maps an enabled analog channel index to its 16-bit
	// reading.
	AnalogValues map[byte]uint16

	// SupplyVoltage is the decoded supply-voltage reading, or nil if
	// the variant/firmware did not provide one. A missing reading is
	// represented as absent, never as zero.
	SupplyVoltage *uint16
}

const sampleCountByte = 1 // XBee IO frames always report one sample per frame.

// decodeIOSample decodes an IO-sample payload (the portion of a
// RX_IO_64/RX_IO_16/IO_DATA_SAMPLE_RX_INDICATOR frame following the
// address/options prefix). The variant is chosen by the parity of
// len(b): raw802 payload lengths are always odd, generic payload
// lengths are always even, for any combination of enabled channels:
// raw802 is 1 count byte + 2 indicator bytes + 2-byte fields, generic
// is 1 count byte + 2 digital-mask bytes + 1 analog-mask byte + 2-byte
// fields.
func decodeIOSample(b []byte) (IOSample, error) {
	if len(b) < 3 {
		return IOSample{}, ErrShortPayload
	}
	// b[0] is the sample count; always 1, not separately exposed.
	if len(b)%2 == 0 {
		return decodeIOSampleGeneric(b[1:])
	}
	return decodeIOSampleRaw802(b[1:])
}

func decodeIOSampleRaw802(b []byte) (IOSample, error) {
	if len(b) < 2 {
		return IOSample{}, ErrShortPayload
	}
	combined := binary.BigEndian.Uint16(b[0:2])
	digitalMask := combined & 0x01FF     // bits 0-8
	analogMask := (combined >> 9) & 0x3F // bits 9-14, 6 analog channels

	s := IOSample{Variant: IOSampleRaw802, DigitalMask: digitalMask, AnalogMask: analogMask}
	rest := b[2:]

	if digitalMask != 0 {
		if len(rest) < 2 {
			return IOSample{}, ErrShortPayload
		}
		s.DigitalValues = binary.BigEndian.Uint16(rest[0:2]) & digitalMask
		rest = rest[2:]
	}

	s.AnalogValues = make(map[byte]uint16)
	for ch := byte(0); ch < 6; ch++ {
		if analogMask&(1<<ch) == 0 {
			continue
		}
		if len(rest) < 2 {
			return IOSample{}, ErrShortPayload
		}
		s.AnalogValues[ch] = binary.BigEndian.Uint16(rest[0:2])
		rest = rest[2:]
	}
	return s, nil
}

func decodeIOSampleGeneric(b []byte) (IOSample, error) {
	if len(b) < 3 {
		return IOSample{}, ErrShortPayload
	}
	digitalMask := binary.BigEndian.Uint16(b[0:2]) & 0x7FFF // 15 bits
	analogMaskByte := b[2]
	hasSupply := analogMaskByte&0x80 != 0
	analogMask := uint16(analogMaskByte) & 0x7F // low 7 bits are channels

	s := IOSample{Variant: IOSampleGeneric, DigitalMask: digitalMask, AnalogMask: uint16(analogMaskByte)}
	rest := b[3:]

	if digitalMask != 0 {
		if len(rest) < 2 {
			return IOSample{}, ErrShortPayload
		}
		s.DigitalValues = binary.BigEndian.Uint16(rest[0:2]) & digitalMask
		rest = rest[2:]
	}

	s.AnalogValues = make(map[byte]uint16)
	for ch := byte(0); ch < 7; ch++ {
		if analogMask&(1<<ch) == 0 {
			continue
		}
		if len(rest) < 2 {
			return IOSample{}, ErrShortPayload
		}
		s.AnalogValues[ch] = binary.BigEndian.Uint16(rest[0:2])
		rest = rest[2:]
	}

	if hasSupply {
		if len(rest) < 2 {
			return IOSample{}, ErrShortPayload
		}
		v := binary.BigEndian.Uint16(rest[0:2])
		s.SupplyVoltage = &v
	}
	return s, nil
}

// encode serializes the sample back to its original variant layout.
func (s IOSample) encode() []byte {
	out := []byte{sampleCountByte}

	switch s.Variant {
	case IOSampleRaw802:
		combined := (s.DigitalMask & 0x01FF) | ((s.AnalogMask & 0x3F) << 9)
		out = binary.BigEndian.AppendUint16(out, combined)
		if s.DigitalMask != 0 {
			out = binary.BigEndian.AppendUint16(out, s.DigitalValues)
		}
		for ch := byte(0); ch < 6; ch++ {
			if s.AnalogMask&(1<<ch) == 0 {
				continue
			}
			out = binary.BigEndian.AppendUint16(out, s.AnalogValues[ch])
		}
	case IOSampleGeneric:
		out = binary.BigEndian.AppendUint16(out, s.DigitalMask&0x7FFF)
		analogMaskByte := byte(s.AnalogMask) & 0x7F
		if s.SupplyVoltage != nil {
			analogMaskByte |= 0x80
		}
		out = append(out, analogMaskByte)
		if s.DigitalMask != 0 {
			out = binary.BigEndian.AppendUint16(out, s.DigitalValues)
		}
		for ch := byte(0); ch < 7; ch++ {
			if analogMaskByte&0x7F&(1<<ch) == 0 {
				continue
			}
			out = binary.BigEndian.AppendUint16(out, s.AnalogValues[ch])
		}
		if s.SupplyVoltage != nil {
			out = binary.BigEndian.AppendUint16(out, *s.SupplyVoltage)
		}
	}
	return out
}
