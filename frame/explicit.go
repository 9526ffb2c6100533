package frame

import "encoding/binary"

const minExplicitAddressingCommandFrameLen = 20

// ExplicitAddressingCommandFrame is frame type 0x11: a TransmitRequest
// variant that also carries ZigBee application-layer addressing
// (endpoints, cluster, profile).
type ExplicitAddressingCommandFrame struct {
	FrameID         FrameID
	Dest64          Address64
	Dest16          Address16
	SrcEndpoint     byte
	DstEndpoint     byte
	ClusterID       uint16
	ProfileID       uint16
	BroadcastRadius byte
	Options         TransmitOption
	Data            []byte
}

// Type implements Frame.
func (f ExplicitAddressingCommandFrame) Type() Type {
	return TypeExplicitAddressingCommandFrame
}

// Encode implements Frame.
func (f ExplicitAddressingCommandFrame) Encode() []byte {
	out := make([]byte, 0, minExplicitAddressingCommandFrameLen+len(f.Data))
	out = append(out, byte(TypeExplicitAddressingCommandFrame), byte(f.FrameID))
	out = append(out, f.Dest64.Bytes()...)
	out = append(out, f.Dest16.Bytes()...)
	out = append(out, f.SrcEndpoint, f.DstEndpoint)
	out = binary.BigEndian.AppendUint16(out, f.ClusterID)
	out = binary.BigEndian.AppendUint16(out, f.ProfileID)
	out = append(out, f.BroadcastRadius, byte(f.Options))
	return append(out, f.Data...)
}

func decodeExplicitAddressingCommandFrame(b []byte) (Frame, error) {
	if len(b) < minExplicitAddressingCommandFrameLen {
		return nil, shortPayloadErr(TypeExplicitAddressingCommandFrame, len(b), minExplicitAddressingCommandFrameLen)
	}
	return ExplicitAddressingCommandFrame{
		FrameID:         FrameID(b[1]),
		Dest64:          DecodeAddress64(b[2:10]),
		Dest16:          DecodeAddress16(b[10:12]),
		SrcEndpoint:     b[12],
		DstEndpoint:     b[13],
		ClusterID:       binary.BigEndian.Uint16(b[14:16]),
		ProfileID:       binary.BigEndian.Uint16(b[16:18]),
		BroadcastRadius: b[18],
		Options:         TransmitOption(b[19]),
		Data:            cloneTail(b, 20),
	}, nil
}

const minExplicitRXIndicatorLen = 18

// ExplicitRXIndicator is frame type 0x91. It carries no frame ID.
type ExplicitRXIndicator struct {
	Src64       Address64
	Src16       Address16
	SrcEndpoint byte
	DstEndpoint byte
	ClusterID   uint16
	ProfileID   uint16
	Options     ReceiveOptions
	Data        []byte
}

// Type implements Frame.
func (f ExplicitRXIndicator) Type() Type { return TypeExplicitRXIndicator }

// Encode implements Frame.
func (f ExplicitRXIndicator) Encode() []byte {
	out := make([]byte, 0, minExplicitRXIndicatorLen+len(f.Data))
	out = append(out, byte(TypeExplicitRXIndicator))
	out = append(out, f.Src64.Bytes()...)
	out = append(out, f.Src16.Bytes()...)
	out = append(out, f.SrcEndpoint, f.DstEndpoint)
	out = binary.BigEndian.AppendUint16(out, f.ClusterID)
	out = binary.BigEndian.AppendUint16(out, f.ProfileID)
	out = append(out, byte(f.Options))
	return append(out, f.Data...)
}

func decodeExplicitRXIndicator(b []byte) (Frame, error) {
	if len(b) < minExplicitRXIndicatorLen {
		return nil, shortPayloadErr(TypeExplicitRXIndicator, len(b), minExplicitRXIndicatorLen)
	}
	return ExplicitRXIndicator{
		Src64:       DecodeAddress64(b[1:9]),
		Src16:       DecodeAddress16(b[9:11]),
		SrcEndpoint: b[11],
		DstEndpoint: b[12],
		ClusterID:   binary.BigEndian.Uint16(b[13:15]),
		ProfileID:   binary.BigEndian.Uint16(b[15:17]),
		Options:     ReceiveOptions(b[17]),
		Data:        cloneTail(b, 18),
	}, nil
}
