package frame

import "fmt"

// Type is the 8-bit tag that identifies a frame's payload shape.
type Type byte

// Recognized frame types, per the closed enumeration of the XBee API
// frame catalog. Values not listed here decode to Unknown.
const (
	TypeTX64                           Type = 0x00
	TypeTX16                           Type = 0x01
	TypeATCommand                      Type = 0x08
	TypeATCommandQueue                 Type = 0x09
	TypeTransmitRequest                Type = 0x10
	TypeExplicitAddressingCommandFrame Type = 0x11
	TypeRemoteATCommandRequest         Type = 0x17
	TypeTXSMS                          Type = 0x1F
	TypeTXIPv4                         Type = 0x20
	TypeTXRequestTLSProfile            Type = 0x23
	TypeUserDataRelay                  Type = 0x2D
	TypeBLEUnlock                      Type = 0x2C

	TypeRX64                        Type = 0x80
	TypeRX16                        Type = 0x81
	TypeRXIO64                      Type = 0x82
	TypeRXIO16                      Type = 0x83
	TypeATCommandResponse           Type = 0x88
	TypeModemStatus                 Type = 0x8A
	TypeTransmitStatus              Type = 0x8B
	TypeReceivePacket               Type = 0x90
	TypeExplicitRXIndicator         Type = 0x91
	TypeIODataSampleRXIndicator     Type = 0x92
	TypeRemoteATCommandResponse     Type = 0x97
	TypeRXSMS                       Type = 0x9F
	TypeRXIPv4                      Type = 0xB0
	TypeUserDataRelayOutput         Type = 0xAD
	TypeBLEUnlockResponse           Type = 0xAC
)

// String renders a human-readable name for known types, falling back
// to a numeric representation for anything else.
func (t Type) String() string {
	switch t {
	case TypeTX64:
		return "TX64"
	case TypeTX16:
		return "TX16"
	case TypeATCommand:
		return "ATCommand"
	case TypeATCommandQueue:
		return "ATCommandQueue"
	case TypeTransmitRequest:
		return "TransmitRequest"
	case TypeExplicitAddressingCommandFrame:
		return "ExplicitAddressingCommandFrame"
	case TypeRemoteATCommandRequest:
		return "RemoteATCommandRequest"
	case TypeTXSMS:
		return "TXSMS"
	case TypeTXIPv4:
		return "TXIPv4"
	case TypeTXRequestTLSProfile:
		return "TXRequestTLSProfile"
	case TypeUserDataRelay:
		return "UserDataRelay"
	case TypeBLEUnlock:
		return "BLEUnlock"
	case TypeRX64:
		return "RX64"
	case TypeRX16:
		return "RX16"
	case TypeRXIO64:
		return "RXIO64"
	case TypeRXIO16:
		return "RXIO16"
	case TypeATCommandResponse:
		return "ATCommandResponse"
	case TypeModemStatus:
		return "ModemStatus"
	case TypeTransmitStatus:
		return "TransmitStatus"
	case TypeReceivePacket:
		return "ReceivePacket"
	case TypeExplicitRXIndicator:
		return "ExplicitRXIndicator"
	case TypeIODataSampleRXIndicator:
		return "IODataSampleRXIndicator"
	case TypeRemoteATCommandResponse:
		return "RemoteATCommandResponse"
	case TypeRXSMS:
		return "RXSMS"
	case TypeRXIPv4:
		return "RXIPv4"
	case TypeUserDataRelayOutput:
		return "UserDataRelayOutput"
	case TypeBLEUnlockResponse:
		return "BLEUnlockResponse"
	}
	return fmt.Sprintf("Type(0x%02X)", byte(t))
}

// NeedsFrameID reports whether a frame-ID byte appears immediately
// after the type byte for this frame type.
func (t Type) NeedsFrameID() bool {
	switch t {
	case TypeTX64, TypeTX16, TypeATCommand, TypeATCommandQueue,
		TypeTransmitRequest, TypeExplicitAddressingCommandFrame,
		TypeRemoteATCommandRequest, TypeTXSMS, TypeTXIPv4,
		TypeTXRequestTLSProfile, TypeATCommandResponse,
		TypeTransmitStatus, TypeRemoteATCommandResponse,
		TypeUserDataRelay:
		return true
	default:
		return false
	}
}
