package frame

import "fmt"

// RelayInterface identifies a local interface that user data can be
// relayed to or from.
type RelayInterface byte

// Recognized relay interfaces.
const (
	RelayInterfaceSerial      RelayInterface = 0
	RelayInterfaceBLE         RelayInterface = 1
	RelayInterfaceMicroPython RelayInterface = 2
)

func (i RelayInterface) String() string {
	switch i {
	case RelayInterfaceSerial:
		return "Serial"
	case RelayInterfaceBLE:
		return "BLE"
	case RelayInterfaceMicroPython:
		return "MicroPython"
	}
	return fmt.Sprintf("RelayInterface(%d)", byte(i))
}

const minUserDataRelayLen = 3

// UserDataRelay is frame type 0x2D: relay data from the host to
// another local interface (BLE, MicroPython).
type UserDataRelay struct {
	FrameID              FrameID
	DestinationInterface RelayInterface
	Data                 []byte
}

// Type implements Frame.
func (f UserDataRelay) Type() Type { return TypeUserDataRelay }

// Encode implements Frame.
func (f UserDataRelay) Encode() []byte {
	out := make([]byte, 3, 3+len(f.Data))
	out[0] = byte(TypeUserDataRelay)
	out[1] = byte(f.FrameID)
	out[2] = byte(f.DestinationInterface)
	return append(out, f.Data...)
}

func decodeUserDataRelay(b []byte) (Frame, error) {
	if len(b) < minUserDataRelayLen {
		return nil, shortPayloadErr(TypeUserDataRelay, len(b), minUserDataRelayLen)
	}
	return UserDataRelay{
		FrameID:              FrameID(b[1]),
		DestinationInterface: RelayInterface(b[2]),
		Data:                 cloneTail(b, 3),
	}, nil
}

const minUserDataRelayOutputLen = 2

// UserDataRelayOutput is frame type 0xAD: data relayed to the host
// from another local interface. Carries no frame ID.
type UserDataRelayOutput struct {
	SourceInterface RelayInterface
	Data            []byte
}

// Type implements Frame.
func (f UserDataRelayOutput) Type() Type { return TypeUserDataRelayOutput }

// Encode implements Frame.
func (f UserDataRelayOutput) Encode() []byte {
	out := make([]byte, 2, 2+len(f.Data))
	out[0] = byte(TypeUserDataRelayOutput)
	out[1] = byte(f.SourceInterface)
	return append(out, f.Data...)
}

func decodeUserDataRelayOutput(b []byte) (Frame, error) {
	if len(b) < minUserDataRelayOutputLen {
		return nil, shortPayloadErr(TypeUserDataRelayOutput, len(b), minUserDataRelayOutputLen)
	}
	return UserDataRelayOutput{
		SourceInterface: RelayInterface(b[1]),
		Data:            cloneTail(b, 2),
	}, nil
}
