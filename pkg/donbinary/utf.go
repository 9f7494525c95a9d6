package donbinary

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/gvtret/don-go/pkg/donerr"
)

// utf16BE is the UTF-16, big-endian, no-BOM codec used for the UTF16 tag.
var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

func encodeUTF16(s string) ([]byte, error) {
	enc := utf16BE.NewEncoder()
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil, donerr.Wrap(donerr.ErrUnsupportedType, "failed to encode UTF-16 string", err)
	}
	return b, nil
}

func decodeUTF16(b []byte) (string, error) {
	dec := utf16BE.NewDecoder()
	out, err := dec.Bytes(b)
	if err != nil {
		return "", donerr.Wrap(donerr.ErrBadLength, "failed to decode UTF-16 bytes", err)
	}
	return string(out), nil
}

// encodeUTF32 encodes s as big-endian UTF-32 code units, one 4-byte
// value per rune. No external library in the corpus ships a UTF-32
// transcoder (see DESIGN.md), so this walks runes directly.
func encodeUTF32(s string) []byte {
	var buf bytes.Buffer
	for _, r := range s {
		buf.WriteByte(byte(r >> 24))
		buf.WriteByte(byte(r >> 16))
		buf.WriteByte(byte(r >> 8))
		buf.WriteByte(byte(r))
	}
	return buf.Bytes()
}

func decodeUTF32(b []byte) (string, error) {
	if len(b)%4 != 0 {
		return "", donerr.Newf(donerr.ErrBadLength, "UTF-32 payload length %d is not a multiple of 4", len(b))
	}
	var buf bytes.Buffer
	runeBuf := make([]byte, utf8.UTFMax)
	for i := 0; i < len(b); i += 4 {
		r := rune(b[i])<<24 | rune(b[i+1])<<16 | rune(b[i+2])<<8 | rune(b[i+3])
		n := utf8.EncodeRune(runeBuf, r)
		buf.Write(runeBuf[:n])
	}
	return buf.String(), nil
}
