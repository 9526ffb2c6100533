package frame

import (
	"encoding/binary"
	"fmt"
)

// Address64 is a 64-bit IEEE extended address, big-endian on the wire.
type Address64 [8]byte

// Address64Broadcast is the reserved 64-bit broadcast address.
var Address64Broadcast = Address64{0, 0, 0, 0, 0, 0, 0xFF, 0xFF}

// Address64Coordinator is the reserved all-zero coordinator address.
var Address64Coordinator = Address64{}

// DecodeAddress64 reads a 64-bit address from the first 8 bytes of b.
func DecodeAddress64(b []byte) Address64 {
	var a Address64
	copy(a[:], b[:8])
	return a
}

// Uint64 returns the address as a big-endian uint64.
func (a Address64) Uint64() uint64 {
	return binary.BigEndian.Uint64(a[:])
}

// Broadcast reports whether a is the reserved broadcast address.
func (a Address64) Broadcast() bool {
	return a == Address64Broadcast
}

// Bytes returns the 8-byte big-endian wire representation.
func (a Address64) Bytes() []byte {
	out := make([]byte, 8)
	copy(out, a[:])
	return out
}

func (a Address64) String() string {
	return fmt.Sprintf("%016X", a.Uint64())
}

// Address16 is a 16-bit network address, big-endian on the wire.
type Address16 uint16

// Address16Unknown is the reserved "no 16-bit address assigned" marker.
const Address16Unknown Address16 = 0xFFFE

// DecodeAddress16 reads a 16-bit address from the first 2 bytes of b.
func DecodeAddress16(b []byte) Address16 {
	return Address16(binary.BigEndian.Uint16(b[:2]))
}

// Unknown reports whether a is the reserved "unknown" marker value.
func (a Address16) Unknown() bool {
	return a == Address16Unknown
}

// Bytes returns the 2-byte big-endian wire representation.
func (a Address16) Bytes() []byte {
	out := make([]byte, 2)
	binary.BigEndian.PutUint16(out, uint16(a))
	return out
}

func (a Address16) String() string {
	return fmt.Sprintf("%04X", uint16(a))
}

// FrameID is the request/response correlator carried by frame types
// for which Type.NeedsFrameID is true. Valid wire values occupy the
// low byte (0-255); NoFrameID is a value outside that range reserved
// in memory for frame types that carry no ID field at all. Those
// types' Encode methods never read FrameID, so NoFrameID never
// reaches the wire through them; it is the caller's responsibility
// not to assign NoFrameID to a type for which Type.NeedsFrameID is
// true, since Byte truncates it like any other FrameID.
type FrameID uint16

// NoFrameID marks a frame that has no ID field at all (RX frames,
// status frames with no correlator). It is distinct from FrameID(0),
// which is a valid on-wire value meaning "no response wanted".
const NoFrameID FrameID = 0x100

// Byte returns the on-wire byte for id, truncating to the low 8 bits.
// Passing NoFrameID is a caller error for any type with
// Type.NeedsFrameID true; Byte has no way to signal that and simply
// truncates 0x100 to 0x00, same as any other out-of-range value.
func (id FrameID) Byte() byte {
	return byte(id)
}

// DisablesResponse reports whether id is the wire value 0, which
// suppresses any frame generated in response.
func (id FrameID) DisablesResponse() bool {
	return id == 0
}
