package frame

import "testing"

func TestAddress64Broadcast(t *testing.T) {
	if !Address64Broadcast.Broadcast() {
		t.Error("Address64Broadcast.Broadcast() = false, want true")
	}
	if Address64Coordinator.Broadcast() {
		t.Error("Address64Coordinator.Broadcast() = true, want false")
	}
	other := DecodeAddress64([]byte{0, 0x13, 0xA2, 0, 0x40, 0, 0, 1})
	if other.Broadcast() {
		t.Error("arbitrary address reported Broadcast() = true")
	}
}

func TestAddress64BytesRoundTrip(t *testing.T) {
	raw := []byte{0, 0x13, 0xA2, 0, 0x40, 0x12, 0x34, 0x56}
	a := DecodeAddress64(raw)
	if got := a.Bytes(); string(got) != string(raw) {
		t.Errorf("Bytes() = % X, want % X", got, raw)
	}
	want := uint64(0)
	for _, b := range raw {
		want = want<<8 | uint64(b)
	}
	if a.Uint64() != want {
		t.Errorf("Uint64() = %#x, want %#x", a.Uint64(), want)
	}
}

func TestAddress16Unknown(t *testing.T) {
	if !Address16Unknown.Unknown() {
		t.Error("Address16Unknown.Unknown() = false, want true")
	}
	a := DecodeAddress16([]byte{0xFF, 0xFE})
	if !a.Unknown() {
		t.Error("decoded 0xFFFE did not report Unknown()")
	}
	b := DecodeAddress16([]byte{0x12, 0x34})
	if b.Unknown() {
		t.Error("0x1234 reported Unknown() = true")
	}
}

func TestAddress16BytesRoundTrip(t *testing.T) {
	raw := []byte{0x12, 0x34}
	a := DecodeAddress16(raw)
	if got := a.Bytes(); string(got) != string(raw) {
		t.Errorf("Bytes() = % X, want % X", got, raw)
	}
}

func TestFrameIDDisablesResponse(t *testing.T) {
	if !FrameID(0).DisablesResponse() {
		t.Error("FrameID(0).DisablesResponse() = false, want true")
	}
	if FrameID(1).DisablesResponse() {
		t.Error("FrameID(1).DisablesResponse() = true, want false")
	}
	if NoFrameID.Byte() != 0 {
		t.Errorf("NoFrameID.Byte() = %d, want 0 (truncation of 0x100)", NoFrameID.Byte())
	}
	if FrameID(7).Byte() != 7 {
		t.Errorf("FrameID(7).Byte() = %d, want 7", FrameID(7).Byte())
	}
}
