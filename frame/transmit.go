package frame

// TransmitOption bit flags carried on a TransmitRequest.
type TransmitOption byte

// Recognized transmit options.
const (
	TransmitOptionDisableRetriesAndRouteRepair TransmitOption = 0x01
	TransmitOptionEnableAPSEncryption          TransmitOption = 0x20
	TransmitOptionExtendedTXTimeout            TransmitOption = 0x40
)

const minTransmitRequestLen = 14

// TransmitRequest is frame type 0x10.
type TransmitRequest struct {
	FrameID         FrameID
	Dest64          Address64
	Dest16          Address16
	BroadcastRadius byte
	Options         TransmitOption
	Data            []byte
}

// Type implements Frame.
func (f TransmitRequest) Type() Type { return TypeTransmitRequest }

// Encode implements Frame.
func (f TransmitRequest) Encode() []byte {
	out := make([]byte, 0, minTransmitRequestLen+len(f.Data))
	out = append(out, byte(TypeTransmitRequest), byte(f.FrameID))
	out = append(out, f.Dest64.Bytes()...)
	out = append(out, f.Dest16.Bytes()...)
	out = append(out, f.BroadcastRadius, byte(f.Options))
	return append(out, f.Data...)
}

func decodeTransmitRequest(b []byte) (Frame, error) {
	if len(b) < minTransmitRequestLen {
		return nil, shortPayloadErr(TypeTransmitRequest, len(b), minTransmitRequestLen)
	}
	return TransmitRequest{
		FrameID:         FrameID(b[1]),
		Dest64:          DecodeAddress64(b[2:10]),
		Dest16:          DecodeAddress16(b[10:12]),
		BroadcastRadius: b[12],
		Options:         TransmitOption(b[13]),
		Data:            cloneTail(b, 14),
	}, nil
}

// DeliveryStatus is the outcome byte of a TransmitStatus frame.
type DeliveryStatus byte

// Recognized delivery statuses (the common subset; unlisted values
// still round-trip). DeliveryStatus has no String method.
const (
	DeliveryStatusSuccess              DeliveryStatus = 0x00
	DeliveryStatusMACACKFailure        DeliveryStatus = 0x01
	DeliveryStatusCCAFailure           DeliveryStatus = 0x02
	DeliveryStatusNetworkACKFailure    DeliveryStatus = 0x21
	DeliveryStatusNotJoinedToNetwork   DeliveryStatus = 0x22
	DeliveryStatusSelfAddressed        DeliveryStatus = 0x23
	DeliveryStatusAddressNotFound      DeliveryStatus = 0x24
	DeliveryStatusRouteNotFound        DeliveryStatus = 0x25
	DeliveryStatusResourceError        DeliveryStatus = 0x2C
	DeliveryStatusDataPayloadTooLarge  DeliveryStatus = 0x74
)

// DiscoveryStatus is the discovery-overhead byte of a TransmitStatus
// frame.
type DiscoveryStatus byte

// Recognized discovery statuses.
const (
	DiscoveryStatusNone               DiscoveryStatus = 0x00
	DiscoveryStatusAddressDiscovery   DiscoveryStatus = 0x01
	DiscoveryStatusRouteDiscovery     DiscoveryStatus = 0x02
	DiscoveryStatusAddressAndRoute    DiscoveryStatus = 0x03
	DiscoveryStatusExtendedTimeout    DiscoveryStatus = 0x40
)

const minTransmitStatusLen = 7

// TransmitStatus is frame type 0x8B.
type TransmitStatus struct {
	FrameID         FrameID
	Dest16          Address16
	Retries         byte
	DeliveryStatus  DeliveryStatus
	DiscoveryStatus DiscoveryStatus
}

// Type implements Frame.
func (f TransmitStatus) Type() Type { return TypeTransmitStatus }

// Encode implements Frame.
func (f TransmitStatus) Encode() []byte {
	out := make([]byte, minTransmitStatusLen)
	out[0] = byte(TypeTransmitStatus)
	out[1] = byte(f.FrameID)
	copy(out[2:4], f.Dest16.Bytes())
	out[4] = f.Retries
	out[5] = byte(f.DeliveryStatus)
	out[6] = byte(f.DiscoveryStatus)
	return out
}

func decodeTransmitStatus(b []byte) (Frame, error) {
	if len(b) < minTransmitStatusLen {
		return nil, shortPayloadErr(TypeTransmitStatus, len(b), minTransmitStatusLen)
	}
	return TransmitStatus{
		FrameID:         FrameID(b[1]),
		Dest16:          DecodeAddress16(b[2:4]),
		Retries:         b[4],
		DeliveryStatus:  DeliveryStatus(b[5]),
		DiscoveryStatus: DiscoveryStatus(b[6]),
	}, nil
}

// ReceiveOptions bit field on inbound packets; bits 1 and 2 carry
// broadcast semantics.
type ReceiveOptions byte

// Recognized receive option bits.
const (
	ReceiveOptionsAcknowledged  ReceiveOptions = 0x01
	ReceiveOptionsBroadcast     ReceiveOptions = 0x02
	ReceiveOptionsAPSEncrypted  ReceiveOptions = 0x20
	ReceiveOptionsFromEndDevice ReceiveOptions = 0x40
)

// Broadcast reports whether the packet these options came with was a
// broadcast delivery, per bits 1 and 2 of the receive-options field.
func (o ReceiveOptions) Broadcast() bool {
	return o&(1<<1|1<<2) != 0
}

const minReceivePacketLen = 12

// ReceivePacket is frame type 0x90. It carries no frame ID.
type ReceivePacket struct {
	Src64   Address64
	Src16   Address16
	Options ReceiveOptions
	Data    []byte
}

// Type implements Frame.
func (f ReceivePacket) Type() Type { return TypeReceivePacket }

// Encode implements Frame.
func (f ReceivePacket) Encode() []byte {
	out := make([]byte, 0, minReceivePacketLen+len(f.Data))
	out = append(out, byte(TypeReceivePacket))
	out = append(out, f.Src64.Bytes()...)
	out = append(out, f.Src16.Bytes()...)
	out = append(out, byte(f.Options))
	return append(out, f.Data...)
}

func decodeReceivePacket(b []byte) (Frame, error) {
	if len(b) < minReceivePacketLen {
		return nil, shortPayloadErr(TypeReceivePacket, len(b), minReceivePacketLen)
	}
	return ReceivePacket{
		Src64:   DecodeAddress64(b[1:9]),
		Src16:   DecodeAddress16(b[9:11]),
		Options: ReceiveOptions(b[11]),
		Data:    cloneTail(b, 12),
	}, nil
}
