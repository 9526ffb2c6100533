package frame

import "testing"

func TestIOSampleRaw802RoundTrip(t *testing.T) {
	cases := []IOSample{
		{
			Variant:       IOSampleRaw802,
			DigitalMask:   0x0101,
			DigitalValues: 0x0100,
			AnalogMask:    0,
			AnalogValues:  map[byte]uint16{},
		},
		{
			Variant:      IOSampleRaw802,
			DigitalMask:  0,
			AnalogMask:   0x05,
			AnalogValues: map[byte]uint16{0: 0x0200, 2: 0x03FF},
		},
	}
	for i, want := range cases {
		f := RXIO64{Src: DecodeAddress64([]byte{0, 0x13, 0xA2, 0, 0x40, 0, 0, 1}), Sample: want}
		got, err := Decode(f.Encode())
		if err != nil {
			t.Fatalf("case %d: Decode: %v", i, err)
		}
		rx, ok := got.(RXIO64)
		if !ok {
			t.Fatalf("case %d: Decode = %T, want RXIO64", i, got)
		}
		if rx.Sample.Variant != IOSampleRaw802 {
			t.Errorf("case %d: Variant = %v, want IOSampleRaw802", i, rx.Sample.Variant)
		}
		if rx.Sample.DigitalMask != want.DigitalMask || rx.Sample.AnalogMask != want.AnalogMask {
			t.Errorf("case %d: masks = %#v, want %#v", i, rx.Sample, want)
		}
		if rx.Sample.SupplyVoltage != nil {
			t.Errorf("case %d: SupplyVoltage = %v, want nil (raw802 never carries one)", i, *rx.Sample.SupplyVoltage)
		}
		for ch, v := range want.AnalogValues {
			if rx.Sample.AnalogValues[ch] != v {
				t.Errorf("case %d: AnalogValues[%d] = %#x, want %#x", i, ch, rx.Sample.AnalogValues[ch], v)
			}
		}
	}
}

func TestIOSampleGenericRoundTripWithoutSupplyVoltage(t *testing.T) {
	want := IOSample{
		Variant:       IOSampleGeneric,
		DigitalMask:   0x4001,
		DigitalValues: 0x4000,
		AnalogMask:    0x03,
		AnalogValues:  map[byte]uint16{0: 0x0100, 1: 0x0200},
	}
	f := IODataSampleRXIndicator{
		Src64:   DecodeAddress64([]byte{0, 0x13, 0xA2, 0, 0x40, 0, 0, 1}),
		Src16:   DecodeAddress16([]byte{0xFF, 0xFE}),
		Options: 0,
		Sample:  want,
	}
	got, err := Decode(f.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	rx, ok := got.(IODataSampleRXIndicator)
	if !ok {
		t.Fatalf("Decode = %T, want IODataSampleRXIndicator", got)
	}
	if rx.Sample.SupplyVoltage != nil {
		t.Fatalf("SupplyVoltage = %v, want nil when firmware did not report one", *rx.Sample.SupplyVoltage)
	}
	if rx.Sample.DigitalMask != want.DigitalMask {
		t.Errorf("DigitalMask = %#x, want %#x", rx.Sample.DigitalMask, want.DigitalMask)
	}
	if rx.Sample.DigitalValues != want.DigitalValues {
		t.Errorf("DigitalValues = %#x, want %#x", rx.Sample.DigitalValues, want.DigitalValues)
	}
	for ch, v := range want.AnalogValues {
		if rx.Sample.AnalogValues[ch] != v {
			t.Errorf("AnalogValues[%d] = %#x, want %#x", ch, rx.Sample.AnalogValues[ch], v)
		}
	}
}

func TestIOSampleGenericRoundTripWithSupplyVoltage(t *testing.T) {
	voltage := uint16(3300)
	want := IOSample{
		Variant:       IOSampleGeneric,
		DigitalMask:   0,
		AnalogMask:    0,
		AnalogValues:  map[byte]uint16{},
		SupplyVoltage: &voltage,
	}
	f := RXIO16{Src: DecodeAddress16([]byte{0xFF, 0xFE}), Sample: want}
	got, err := Decode(f.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	rx, ok := got.(RXIO16)
	if !ok {
		t.Fatalf("Decode = %T, want RXIO16", got)
	}
	if rx.Sample.SupplyVoltage == nil {
		t.Fatal("SupplyVoltage = nil, want a decoded reading")
	}
	if *rx.Sample.SupplyVoltage != voltage {
		t.Errorf("SupplyVoltage = %d, want %d", *rx.Sample.SupplyVoltage, voltage)
	}
}

func TestDecodeIOSampleShortPayloadFails(t *testing.T) {
	if _, err := decodeIOSample([]byte{0x01}); err == nil {
		t.Error("decodeIOSample(1 byte) succeeded, want ErrShortPayload")
	}
}
