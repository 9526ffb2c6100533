package frame

import (
	"encoding/binary"
	"fmt"
	"net"
)

// IPProtocol identifies the transport protocol of an IPv4 frame.
type IPProtocol byte

// Recognized IP protocols.
const (
	IPProtocolUDP IPProtocol = 0
	IPProtocolTCP IPProtocol = 1
	IPProtocolTLS IPProtocol = 4
)

func (p IPProtocol) String() string {
	switch p {
	case IPProtocolUDP:
		return "UDP"
	case IPProtocolTCP:
		return "TCP"
	case IPProtocolTLS:
		return "TLS"
	}
	return fmt.Sprintf("IPProtocol(%d)", byte(p))
}

// IPv4Addr is a 4-byte big-endian IPv4 address.
type IPv4Addr [4]byte

func (a IPv4Addr) String() string { return net.IP(a[:]).String() }

func decodeIPv4Addr(b []byte) IPv4Addr {
	var a IPv4Addr
	copy(a[:], b[:4])
	return a
}

const minTXIPv4Len = 1 + 1 + 4 + 2 + 2 + 1 + 1

// TXIPv4 is frame type 0x20.
type TXIPv4 struct {
	FrameID  FrameID
	Dest     IPv4Addr
	DestPort uint16
	SrcPort  uint16
	Protocol IPProtocol
	Options  byte
	Data     []byte
}

// Type implements Frame.
func (f TXIPv4) Type() Type { return TypeTXIPv4 }

// Encode implements Frame.
func (f TXIPv4) Encode() []byte {
	out := make([]byte, 0, minTXIPv4Len+len(f.Data))
	out = append(out, byte(TypeTXIPv4), byte(f.FrameID))
	out = append(out, f.Dest[:]...)
	out = binary.BigEndian.AppendUint16(out, f.DestPort)
	out = binary.BigEndian.AppendUint16(out, f.SrcPort)
	out = append(out, byte(f.Protocol), f.Options)
	return append(out, f.Data...)
}

func decodeTXIPv4(b []byte) (Frame, error) {
	if len(b) < minTXIPv4Len {
		return nil, shortPayloadErr(TypeTXIPv4, len(b), minTXIPv4Len)
	}
	return TXIPv4{
		FrameID:  FrameID(b[1]),
		Dest:     decodeIPv4Addr(b[2:6]),
		DestPort: binary.BigEndian.Uint16(b[6:8]),
		SrcPort:  binary.BigEndian.Uint16(b[8:10]),
		Protocol: IPProtocol(b[10]),
		Options:  b[11],
		Data:     cloneTail(b, 12),
	}, nil
}

const minTXRequestTLSProfileLen = minTXIPv4Len + 1

// TXRequestTLSProfile is frame type 0x23: TXIPv4 plus a TLS profile ID.
type TXRequestTLSProfile struct {
	FrameID   FrameID
	Dest      IPv4Addr
	DestPort  uint16
	SrcPort   uint16
	Protocol  IPProtocol
	Options   byte
	ProfileID byte
	Data      []byte
}

// Type implements Frame.
func (f TXRequestTLSProfile) Type() Type { return TypeTXRequestTLSProfile }

// Encode implements Frame.
func (f TXRequestTLSProfile) Encode() []byte {
	out := make([]byte, 0, minTXRequestTLSProfileLen+len(f.Data))
	out = append(out, byte(TypeTXRequestTLSProfile), byte(f.FrameID))
	out = append(out, f.Dest[:]...)
	out = binary.BigEndian.AppendUint16(out, f.DestPort)
	out = binary.BigEndian.AppendUint16(out, f.SrcPort)
	out = append(out, byte(f.Protocol), f.Options, f.ProfileID)
	return append(out, f.Data...)
}

func decodeTXRequestTLSProfile(b []byte) (Frame, error) {
	if len(b) < minTXRequestTLSProfileLen {
		return nil, shortPayloadErr(TypeTXRequestTLSProfile, len(b), minTXRequestTLSProfileLen)
	}
	return TXRequestTLSProfile{
		FrameID:   FrameID(b[1]),
		Dest:      decodeIPv4Addr(b[2:6]),
		DestPort:  binary.BigEndian.Uint16(b[6:8]),
		SrcPort:   binary.BigEndian.Uint16(b[8:10]),
		Protocol:  IPProtocol(b[10]),
		Options:   b[11],
		ProfileID: b[12],
		Data:      cloneTail(b, 13),
	}, nil
}

const minRXIPv4Len = 1 + 4 + 2 + 2 + 1 + 1

// RXIPv4 is frame type 0xB0. Carries no frame ID.
type RXIPv4 struct {
	Src      IPv4Addr
	DestPort uint16
	SrcPort  uint16
	Protocol IPProtocol
	Options  byte
	Data     []byte
}

// Type implements Frame.
func (f RXIPv4) Type() Type { return TypeRXIPv4 }

// Encode implements Frame.
func (f RXIPv4) Encode() []byte {
	out := make([]byte, 0, minRXIPv4Len+len(f.Data))
	out = append(out, byte(TypeRXIPv4))
	out = append(out, f.Src[:]...)
	out = binary.BigEndian.AppendUint16(out, f.DestPort)
	out = binary.BigEndian.AppendUint16(out, f.SrcPort)
	out = append(out, byte(f.Protocol), f.Options)
	return append(out, f.Data...)
}

func decodeRXIPv4(b []byte) (Frame, error) {
	if len(b) < minRXIPv4Len {
		return nil, shortPayloadErr(TypeRXIPv4, len(b), minRXIPv4Len)
	}
	return RXIPv4{
		Src:      decodeIPv4Addr(b[1:5]),
		DestPort: binary.BigEndian.Uint16(b[5:7]),
		SrcPort:  binary.BigEndian.Uint16(b[7:9]),
		Protocol: IPProtocol(b[9]),
		Options:  b[10],
		Data:     cloneTail(b, 11),
	}, nil
}
