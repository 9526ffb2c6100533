package framer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xbeecore/xbee/frame"
)

func writeThenRead(t *testing.T, mode Mode, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	wr, err := NewWriter(&buf, mode)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := wr.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	rd, err := NewReader(&buf, mode, WithReadTimeout(0))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, err := rd.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	return got
}

func TestWriteReadRoundTripAPI(t *testing.T) {
	payloads := [][]byte{
		{0x08, 0x01, 'N', 'I'},
		nil,
		{0x7E, 0x7D, 0x11, 0x13, 0x00, 0xFF},
		bytes.Repeat([]byte{0xAB}, 500),
	}
	for _, p := range payloads {
		got := writeThenRead(t, API, p)
		if !bytes.Equal(got, p) {
			t.Errorf("API round trip: got % X, want % X", got, p)
		}
	}
}

func TestWriteReadRoundTripAPIEscaped(t *testing.T) {
	payloads := [][]byte{
		{0x08, 0x01, 'N', 'I'},
		{0x7E, 0x7D, 0x11, 0x13, 0x00, 0xFF},
		{0x7E, 0x7E, 0x7E},
	}
	for _, p := range payloads {
		got := writeThenRead(t, APIEscaped, p)
		if !bytes.Equal(got, p) {
			t.Errorf("APIEscaped round trip: got % X, want % X", got, p)
		}
	}
}

func TestWriteFrameRejectsOversizedPayload(t *testing.T) {
	var buf bytes.Buffer
	wr, _ := NewWriter(&buf, API)
	if err := wr.WriteFrame(make([]byte, 0x10000)); err == nil {
		t.Error("WriteFrame(65536 bytes) succeeded, want error")
	}
}

func TestReadFrameDetectsChecksumCorruption(t *testing.T) {
	var buf bytes.Buffer
	wr, _ := NewWriter(&buf, API)
	payload := []byte{0x08, 0x01, 'N', 'I'}
	if err := wr.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xFF // corrupt the trailing checksum byte

	rd, _ := NewReader(bytes.NewReader(raw), API, WithReadTimeout(0))
	_, err := rd.ReadFrame()
	var cksErr *ChecksumError
	if !errors.As(err, &cksErr) {
		t.Fatalf("ReadFrame(corrupted checksum) error = %v, want *ChecksumError", err)
	}
}

func TestReadFrameResyncsPastGarbage(t *testing.T) {
	var buf bytes.Buffer
	wr, _ := NewWriter(&buf, API)
	payload := []byte{0x08, 0x01, 'N', 'I'}
	if err := wr.WriteFrame(payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	garbage := append([]byte{0x01, 0x02, 0x03}, buf.Bytes()...)
	rd, _ := NewReader(bytes.NewReader(garbage), API, WithReadTimeout(0))
	got, err := rd.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame after leading garbage: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("ReadFrame after leading garbage = % X, want % X", got, payload)
	}
}

func TestReadFrameUnescapedSpecialInEscapedMode(t *testing.T) {
	// Hand-build a frame whose length field contains a raw, un-stuffed
	// 0x11 (xon) special byte: APIEscaped mode requires every special
	// byte on the wire to be preceded by the 0x7D escape marker.
	raw := []byte{delimiterByte, 0x00, 0x11}
	rd, _ := NewReader(bytes.NewReader(raw), APIEscaped, WithReadTimeout(0))
	_, err := rd.ReadFrame()
	if err == nil {
		t.Error("ReadFrame(bare special byte) succeeded, want error")
	}
}

func TestReadFrameIncompletePacket(t *testing.T) {
	raw := []byte{delimiterByte, 0x00, 0x05, 0x08, 0x01}
	rd, _ := NewReader(bytes.NewReader(raw), API, WithReadTimeout(0))
	if _, err := rd.ReadFrame(); err == nil {
		t.Error("ReadFrame(truncated body) succeeded, want error")
	}
}

func TestWriterSerializesConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	wr, _ := NewWriter(&buf, API)

	const n = 20
	done := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(id byte) {
			done <- wr.WriteFrame([]byte{0x08, id, 'N', 'I'})
		}(byte(i))
	}
	for i := 0; i < n; i++ {
		if err := <-done; err != nil {
			t.Errorf("concurrent WriteFrame: %v", err)
		}
	}

	rd, _ := NewReader(&buf, API, WithReadTimeout(0))
	seen := make(map[byte]bool)
	for i := 0; i < n; i++ {
		got, err := rd.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame #%d: %v", i, err)
		}
		f, err := frame.Decode(got)
		if err != nil {
			t.Fatalf("Decode #%d: %v", i, err)
		}
		cmd, ok := f.(frame.ATCommand)
		if !ok {
			t.Fatalf("Decode #%d = %T, want ATCommand", i, f)
		}
		seen[byte(cmd.FrameID)] = true
	}
	if len(seen) != n {
		t.Errorf("saw %d distinct frame IDs, want %d (writes interleaved mid-frame)", len(seen), n)
	}
}
