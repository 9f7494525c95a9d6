package donbinary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUTF16RoundTrip(t *testing.T) {
	for _, s := range []string{"hello", "世界", ""} {
		encoded, err := encodeUTF16(s)
		assert.NoError(t, err)
		decoded, err := decodeUTF16(encoded)
		assert.NoError(t, err)
		assert.Equal(t, s, decoded)
	}
}

func TestUTF32RoundTrip(t *testing.T) {
	for _, s := range []string{"hello", "世界", "\U0001F600", ""} {
		encoded := encodeUTF32(s)
		decoded, err := decodeUTF32(encoded)
		assert.NoError(t, err)
		assert.Equal(t, s, decoded)
	}
}

func TestUTF32EncodingIsBigEndianFourBytesPerRune(t *testing.T) {
	encoded := encodeUTF32("A")
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x41}, encoded)
}

func TestDecodeUTF32RejectsNonMultipleOfFour(t *testing.T) {
	_, err := decodeUTF32([]byte{0x00, 0x00, 0x00})
	assert.Error(t, err)
}
