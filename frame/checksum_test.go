package frame

import "testing"

func TestGenerateValidateRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{0x00},
		{0x7E, 0x7D, 0x11, 0x13},
		{0x08, 0x01, 'N', 'I'},
		make([]byte, 300),
	}
	for _, payload := range cases {
		sum := Generate(payload)
		if !Validate(payload, sum) {
			t.Errorf("Validate(%v, Generate(...)) = false, want true", payload)
		}
		if Validate(payload, sum^0xFF) {
			t.Errorf("Validate(%v, corrupted) = true, want false", payload)
		}
	}
}

func TestChecksumAddMatchesPackageFunctions(t *testing.T) {
	payload := []byte{0x10, 0x01, 0x02, 0x03}
	var c Checksum
	c.AddBytes(payload)
	if got, want := c.Generate(), Generate(payload); got != want {
		t.Errorf("Checksum.Generate() = 0x%02X, want 0x%02X", got, want)
	}
}

func TestIsSpecialAndEscape(t *testing.T) {
	specials := []byte{0x7E, 0x7D, 0x11, 0x13}
	for _, b := range specials {
		if !IsSpecial(b) {
			t.Errorf("IsSpecial(0x%02X) = false, want true", b)
		}
		if got := Escape(Escape(b)); got != b {
			t.Errorf("Escape(Escape(0x%02X)) = 0x%02X, want 0x%02X", b, got, b)
		}
	}
	if IsSpecial(0x00) || IsSpecial(0xFF) {
		t.Error("IsSpecial reported a non-special byte as special")
	}
}
