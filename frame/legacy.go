package frame

const minTX64Len = 11

// TX64 is frame type 0x00: legacy raw-802.15.4 send to a 64-bit
// address.
type TX64 struct {
	FrameID FrameID
	Dest    Address64
	Options TransmitOption
	Data    []byte
}

// Type implements Frame.
func (f TX64) Type() Type { return TypeTX64 }

// Encode implements Frame.
func (f TX64) Encode() []byte {
	out := make([]byte, 0, minTX64Len+len(f.Data))
	out = append(out, byte(TypeTX64), byte(f.FrameID))
	out = append(out, f.Dest.Bytes()...)
	out = append(out, byte(f.Options))
	return append(out, f.Data...)
}

func decodeTX64(b []byte) (Frame, error) {
	if len(b) < minTX64Len {
		return nil, shortPayloadErr(TypeTX64, len(b), minTX64Len)
	}
	return TX64{
		FrameID: FrameID(b[1]),
		Dest:    DecodeAddress64(b[2:10]),
		Options: TransmitOption(b[10]),
		Data:    cloneTail(b, 11),
	}, nil
}

const minTX16Len = 5

// TX16 is frame type 0x01: legacy raw-802.15.4 send to a 16-bit
// address.
type TX16 struct {
	FrameID FrameID
	Dest    Address16
	Options TransmitOption
	Data    []byte
}

// Type implements Frame.
func (f TX16) Type() Type { return TypeTX16 }

// Encode implements Frame.
func (f TX16) Encode() []byte {
	out := make([]byte, 0, minTX16Len+len(f.Data))
	out = append(out, byte(TypeTX16), byte(f.FrameID))
	out = append(out, f.Dest.Bytes()...)
	out = append(out, byte(f.Options))
	return append(out, f.Data...)
}

func decodeTX16(b []byte) (Frame, error) {
	if len(b) < minTX16Len {
		return nil, shortPayloadErr(TypeTX16, len(b), minTX16Len)
	}
	return TX16{
		FrameID: FrameID(b[1]),
		Dest:    DecodeAddress16(b[2:4]),
		Options: TransmitOption(b[4]),
		Data:    cloneTail(b, 5),
	}, nil
}

const minRX64Len = 11

// RX64 is frame type 0x80: legacy raw-802.15.4 receive from a 64-bit
// address. Carries no frame ID.
type RX64 struct {
	Src     Address64
	RSSI    byte
	Options ReceiveOptions
	Data    []byte
}

// Type implements Frame.
func (f RX64) Type() Type { return TypeRX64 }

// Encode implements Frame.
func (f RX64) Encode() []byte {
	out := make([]byte, 0, minRX64Len+len(f.Data))
	out = append(out, byte(TypeRX64))
	out = append(out, f.Src.Bytes()...)
	out = append(out, f.RSSI, byte(f.Options))
	return append(out, f.Data...)
}

func decodeRX64(b []byte) (Frame, error) {
	if len(b) < minRX64Len {
		return nil, shortPayloadErr(TypeRX64, len(b), minRX64Len)
	}
	return RX64{
		Src:     DecodeAddress64(b[1:9]),
		RSSI:    b[9],
		Options: ReceiveOptions(b[10]),
		Data:    cloneTail(b, 11),
	}, nil
}

const minRX16Len = 5

// RX16 is frame type 0x81: legacy raw-802.15.4 receive from a 16-bit
// address. Carries no frame ID.
type RX16 struct {
	Src     Address16
	RSSI    byte
	Options ReceiveOptions
	Data    []byte
}

// Type implements Frame.
func (f RX16) Type() Type { return TypeRX16 }

// Encode implements Frame.
func (f RX16) Encode() []byte {
	out := make([]byte, 0, minRX16Len+len(f.Data))
	out = append(out, byte(TypeRX16))
	out = append(out, f.Src.Bytes()...)
	out = append(out, f.RSSI, byte(f.Options))
	return append(out, f.Data...)
}

func decodeRX16(b []byte) (Frame, error) {
	if len(b) < minRX16Len {
		return nil, shortPayloadErr(TypeRX16, len(b), minRX16Len)
	}
	return RX16{
		Src:     DecodeAddress16(b[1:3]),
		RSSI:    b[3],
		Options: ReceiveOptions(b[4]),
		Data:    cloneTail(b, 5),
	}, nil
}

const minRXIO64Len = 11 + 3 // address prefix + smallest IO sample

// RXIO64 is frame type 0x82: legacy IO sample delivered from a 64-bit
// address.
type RXIO64 struct {
	Src     Address64
	RSSI    byte
	Options ReceiveOptions
	Sample  IOSample
}

// Type implements Frame.
func (f RXIO64) Type() Type { return TypeRXIO64 }

// Encode implements Frame.
func (f RXIO64) Encode() []byte {
	out := append([]byte{byte(TypeRXIO64)}, f.Src.Bytes()...)
	out = append(out, f.RSSI, byte(f.Options))
	return append(out, f.Sample.encode()...)
}

func decodeRXIO64(b []byte) (Frame, error) {
	if len(b) < minRXIO64Len {
		return nil, shortPayloadErr(TypeRXIO64, len(b), minRXIO64Len)
	}
	sample, err := decodeIOSample(b[11:])
	if err != nil {
		return nil, err
	}
	return RXIO64{
		Src:     DecodeAddress64(b[1:9]),
		RSSI:    b[9],
		Options: ReceiveOptions(b[10]),
		Sample:  sample,
	}, nil
}

const minRXIO16Len = 5 + 3

// RXIO16 is frame type 0x83: legacy IO sample delivered from a 16-bit
// address.
type RXIO16 struct {
	Src     Address16
	RSSI    byte
	Options ReceiveOptions
	Sample  IOSample
}

// Type implements Frame.
func (f RXIO16) Type() Type { return TypeRXIO16 }

// Encode implements Frame.
func (f RXIO16) Encode() []byte {
	out := append([]byte{byte(TypeRXIO16)}, f.Src.Bytes()...)
	out = append(out, f.RSSI, byte(f.Options))
	return append(out, f.Sample.encode()...)
}

func decodeRXIO16(b []byte) (Frame, error) {
	if len(b) < minRXIO16Len {
		return nil, shortPayloadErr(TypeRXIO16, len(b), minRXIO16Len)
	}
	sample, err := decodeIOSample(b[5:])
	if err != nil {
		return nil, err
	}
	return RXIO16{
		Src:     DecodeAddress16(b[1:3]),
		RSSI:    b[3],
		Options: ReceiveOptions(b[4]),
		Sample:  sample,
	}, nil
}

const minIODataSampleRXIndicatorLen = 12 + 3

// IODataSampleRXIndicator is frame type 0x92: the ZigBee/DigiMesh IO
// sample delivery frame.
type IODataSampleRXIndicator struct {
	Src64   Address64
	Src16   Address16
	Options ReceiveOptions
	Sample  IOSample
}

// Type implements Frame.
func (f IODataSampleRXIndicator) Type() Type { return TypeIODataSampleRXIndicator }

// Encode implements Frame.
func (f IODataSampleRXIndicator) Encode() []byte {
	out := append([]byte{byte(TypeIODataSampleRXIndicator)}, f.Src64.Bytes()...)
	out = append(out, f.Src16.Bytes()...)
	out = append(out, byte(f.Options))
	return append(out, f.Sample.encode()...)
}

func decodeIODataSampleRXIndicator(b []byte) (Frame, error) {
	if len(b) < minIODataSampleRXIndicatorLen {
		return nil, shortPayloadErr(TypeIODataSampleRXIndicator, len(b), minIODataSampleRXIndicatorLen)
	}
	sample, err := decodeIOSample(b[12:])
	if err != nil {
		return nil, err
	}
	return IODataSampleRXIndicator{
		Src64:   DecodeAddress64(b[1:9]),
		Src16:   DecodeAddress16(b[9:11]),
		Options: ReceiveOptions(b[11]),
		Sample:  sample,
	}, nil
}
