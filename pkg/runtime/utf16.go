package runtime

import (
	"unicode/utf16"

	xunicode "golang.org/x/text/encoding/unicode"
)

// Utf8ToUTF16 encodes a Go UTF-8 string to UTF-16 code units, matching JS
// String's internal representation (spec.md §3).
func Utf8ToUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// Utf16ToUTF8 decodes UTF-16 code units (including unpaired surrogates) to
// a Go string. Unpaired surrogates decode to the Unicode replacement
// character, which is how utf16.Decode already behaves.
func Utf16ToUTF8(units []uint16) string {
	return string(utf16.Decode(units))
}

// DecodeHostUTF16 decodes a raw UTF-16 byte buffer supplied by a host
// embedder (e.g. a buffer handed across an FFI boundary) into this
// engine's UTF-16 code-unit String
// representation. BOM detection/stripping and endianness are delegated to
// golang.org/x/text/encoding/unicode, since hand-rolling BOM sniffing is
// exactly the kind of boundary-format detail that library exists to get
// right once.
func DecodeHostUTF16(raw []byte, order ByteOrder) (String, error) {
	bo := xunicode.LittleEndian
	if order == BigEndian {
		bo = xunicode.BigEndian
	}
	decoder := xunicode.UTF16(bo, xunicode.UseBOM).NewDecoder()
	utf8Bytes, err := decoder.Bytes(raw)
	if err != nil {
		return String{}, err
	}
	return NewString(string(utf8Bytes)), nil
}

// ByteOrder selects the endianness used by DecodeHostUTF16.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)
