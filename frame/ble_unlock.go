package frame

import "fmt"

// BLEUnlockPhase identifies which step of the SRP-6a handshake a
// BLE_UNLOCK/BLE_UNLOCK_RESPONSE frame belongs to. Phase 0 is reserved
// for error responses and never appears on a request frame.
type BLEUnlockPhase byte

// Recognized handshake phases.
const (
	BLEUnlockPhaseError BLEUnlockPhase = 0
	BLEUnlockPhase1     BLEUnlockPhase = 1
	BLEUnlockPhase2     BLEUnlockPhase = 2
	BLEUnlockPhase3     BLEUnlockPhase = 3
	BLEUnlockPhase4     BLEUnlockPhase = 4
)

func (p BLEUnlockPhase) String() string {
	switch p {
	case BLEUnlockPhaseError:
		return "Error"
	case BLEUnlockPhase1:
		return "Phase1"
	case BLEUnlockPhase2:
		return "Phase2"
	case BLEUnlockPhase3:
		return "Phase3"
	case BLEUnlockPhase4:
		return "Phase4"
	}
	return fmt.Sprintf("BLEUnlockPhase(%d)", byte(p))
}

// BLEUnlockErrorCode enumerates the device-signaled errors that can
// appear in a phase-0 BLE_UNLOCK_RESPONSE in place of handshake data.
type BLEUnlockErrorCode byte

// Recognized device-signaled authentication errors.
const (
	BLEUnlockErrorGeneric          BLEUnlockErrorCode = 0x00
	BLEUnlockErrorBadPassword      BLEUnlockErrorCode = 0x01
	BLEUnlockErrorAlreadyConnected BLEUnlockErrorCode = 0x02
	BLEUnlockErrorTimeout          BLEUnlockErrorCode = 0x03
)

func (e BLEUnlockErrorCode) String() string {
	switch e {
	case BLEUnlockErrorGeneric:
		return "Generic"
	case BLEUnlockErrorBadPassword:
		return "BadPassword"
	case BLEUnlockErrorAlreadyConnected:
		return "AlreadyConnected"
	case BLEUnlockErrorTimeout:
		return "Timeout"
	}
	return fmt.Sprintf("BLEUnlockErrorCode(%d)", byte(e))
}

const minBLEUnlockLen = 2

// BLEUnlock is frame type 0x2C: one leg of the SRP-6a Bluetooth
// handshake sent from host to device. Carries no frame ID of its own;
// correlation with the response is by phase, not by frame ID.
type BLEUnlock struct {
	Phase BLEUnlockPhase
	Data  []byte
}

// Type implements Frame.
func (f BLEUnlock) Type() Type { return TypeBLEUnlock }

// Encode implements Frame.
func (f BLEUnlock) Encode() []byte {
	out := make([]byte, 2, 2+len(f.Data))
	out[0] = byte(TypeBLEUnlock)
	out[1] = byte(f.Phase)
	return append(out, f.Data...)
}

func decodeBLEUnlock(b []byte) (Frame, error) {
	if len(b) < minBLEUnlockLen {
		return nil, shortPayloadErr(TypeBLEUnlock, len(b), minBLEUnlockLen)
	}
	return BLEUnlock{
		Phase: BLEUnlockPhase(b[1]),
		Data:  cloneTail(b, 2),
	}, nil
}

const minBLEUnlockResponseLen = 2

// BLEUnlockResponse is frame type 0xAC: the device's reply to a
// BLEUnlock frame. A phase-0 response carries a single error code byte
// as its Data instead of handshake data.
type BLEUnlockResponse struct {
	Phase BLEUnlockPhase
	Data  []byte
}

// Type implements Frame.
func (f BLEUnlockResponse) Type() Type { return TypeBLEUnlockResponse }

// Encode implements Frame.
func (f BLEUnlockResponse) Encode() []byte {
	out := make([]byte, 2, 2+len(f.Data))
	out[0] = byte(TypeBLEUnlockResponse)
	out[1] = byte(f.Phase)
	return append(out, f.Data...)
}

func decodeBLEUnlockResponse(b []byte) (Frame, error) {
	if len(b) < minBLEUnlockResponseLen {
		return nil, shortPayloadErr(TypeBLEUnlockResponse, len(b), minBLEUnlockResponseLen)
	}
	return BLEUnlockResponse{
		Phase: BLEUnlockPhase(b[1]),
		Data:  cloneTail(b, 2),
	}, nil
}

// IsError reports whether r is a phase-0 error response, and if so
// decodes its error code.
func (f BLEUnlockResponse) IsError() (BLEUnlockErrorCode, bool) {
	if f.Phase != BLEUnlockPhaseError || len(f.Data) == 0 {
		return 0, false
	}
	return BLEUnlockErrorCode(f.Data[0]), true
}
