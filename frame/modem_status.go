package frame

import "fmt"

// ModemStatusCode enumerates the modem events reported by a
// ModemStatus frame.
type ModemStatusCode byte

// Recognized modem status codes.
const (
	ModemStatusHardwareReset            ModemStatusCode = 0x00
	ModemStatusWatchdogReset            ModemStatusCode = 0x01
	ModemStatusJoinedNetwork             ModemStatusCode = 0x02
	ModemStatusDisassociated             ModemStatusCode = 0x03
	ModemStatusCoordinatorStarted        ModemStatusCode = 0x06
	ModemStatusNetworkSecurityKeyUpdated ModemStatusCode = 0x07
	ModemStatusNetworkWokeUp             ModemStatusCode = 0x0B
	ModemStatusNetworkWentToSleep        ModemStatusCode = 0x0C
	ModemStatusVoltageSupplyExceeded     ModemStatusCode = 0x0D
)

func (s ModemStatusCode) String() string {
	switch s {
	case ModemStatusHardwareReset:
		return "HardwareReset"
	case ModemStatusWatchdogReset:
		return "WatchdogReset"
	case ModemStatusJoinedNetwork:
		return "JoinedNetwork"
	case ModemStatusDisassociated:
		return "Disassociated"
	case ModemStatusCoordinatorStarted:
		return "CoordinatorStarted"
	case ModemStatusNetworkSecurityKeyUpdated:
		return "NetworkSecurityKeyUpdated"
	case ModemStatusNetworkWokeUp:
		return "NetworkWokeUp"
	case ModemStatusNetworkWentToSleep:
		return "NetworkWentToSleep"
	case ModemStatusVoltageSupplyExceeded:
		return "VoltageSupplyExceeded"
	}
	if s >= 0x80 {
		return "StackError"
	}
	return fmt.Sprintf("ModemStatusCode(%d)", byte(s))
}

const minModemStatusLen = 2

// ModemStatus is frame type 0x8A. Carries no frame ID.
type ModemStatus struct {
	Status ModemStatusCode
}

// Type implements Frame.
func (f ModemStatus) Type() Type { return TypeModemStatus }

// Encode implements Frame.
func (f ModemStatus) Encode() []byte {
	return []byte{byte(TypeModemStatus), byte(f.Status)}
}

func decodeModemStatus(b []byte) (Frame, error) {
	if len(b) < minModemStatusLen {
		return nil, shortPayloadErr(TypeModemStatus, len(b), minModemStatusLen)
	}
	return ModemStatus{Status: ModemStatusCode(b[1])}, nil
}
