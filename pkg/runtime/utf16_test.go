package runtime

import "testing"

func TestUtf8ToUTF16RoundTrip(t *testing.T) {
	in := "héllo, 世界"
	units := Utf8ToUTF16(in)
	back := Utf16ToUTF8(units)
	if back != in {
		t.Fatalf("round trip = %q, want %q", back, in)
	}
}

func TestUtf8ToUTF16SurrogatePair(t *testing.T) {
	// U+1F600 (outside the BMP) must encode as a surrogate pair.
	units := Utf8ToUTF16("\U0001F600")
	if len(units) != 2 {
		t.Fatalf("expected a surrogate pair (2 units), got %d", len(units))
	}
	if units[0] < 0xD800 || units[0] > 0xDBFF {
		t.Fatalf("first unit %x is not a high surrogate", units[0])
	}
	if units[1] < 0xDC00 || units[1] > 0xDFFF {
		t.Fatalf("second unit %x is not a low surrogate", units[1])
	}
}

func TestUtf16ToUTF8UnpairedSurrogate(t *testing.T) {
	// An unpaired surrogate must decode without panicking.
	got := Utf16ToUTF8([]uint16{0xD800})
	if got == "" {
		t.Fatalf("unpaired surrogate should still decode to some string")
	}
}

func TestDecodeHostUTF16LittleEndianWithBOM(t *testing.T) {
	// "ab" little-endian with a BOM prefix.
	raw := []byte{0xFF, 0xFE, 'a', 0x00, 'b', 0x00}
	s, err := DecodeHostUTF16(raw, LittleEndian)
	if err != nil {
		t.Fatalf("DecodeHostUTF16 error: %v", err)
	}
	if s.String() != "ab" {
		t.Fatalf("decoded = %q, want \"ab\"", s.String())
	}
}
