package donbinary

import (
	"testing"

	"github.com/gvtret/don-go/pkg/dontag"
	"github.com/stretchr/testify/assert"
)

func TestSerializeVoidTrueFalse(t *testing.T) {
	b, err := SerializeTagged(dontag.Void)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00}, b)

	b, err = SerializeTagged(dontag.True)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x01}, b)

	b, err = SerializeTagged(dontag.False)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x02}, b)
}

func TestSerializeDefaultInt32(t *testing.T) {
	b, err := Serialize(1)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0x00, 0x00, 0x00, 0x01}, b)

	b, err = Serialize(-1)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0xFF, 0xFF, 0xFF, 0xFF}, b)

	b, err = Serialize(-2147483648)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0x80, 0x00, 0x00, 0x00}, b)
}

func TestSerializeDouble(t *testing.T) {
	b, err := SerializeTagged(dontag.NewFloat64(1.0))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x21, 0x3F, 0xF0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, b)

	b, err = SerializeTagged(dontag.NewFloat64(minSubnormal()))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x21, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}, b)
}

func TestSerializeFloat(t *testing.T) {
	b, err := SerializeTagged(dontag.NewFloat32(1.0))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x20, 0x3F, 0x80, 0x00, 0x00}, b)
}

func minSubnormal() float64 {
	// 2.0 ** -1074, the smallest positive subnormal float64.
	x := 1.0
	for i := 0; i < 1074; i++ {
		x /= 2
	}
	return x
}

func TestSerializeUTF8(t *testing.T) {
	b, err := Serialize("Hello, world")
	assert.NoError(t, err)
	assert.Equal(t, []byte{
		0x31, 0x00, 0x00, 0x00, 0x0C,
		'H', 'e', 'l', 'l', 'o', ',', ' ', 'w', 'o', 'r', 'l', 'd',
	}, b)

	b, err = Serialize("世界")
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x31, 0x00, 0x00, 0x00, 0x06, 0xE4, 0xB8, 0x96, 0xE7, 0x95, 0x8C}, b)
}

func TestSerializeEmptyList(t *testing.T) {
	b, err := SerializeTagged(dontag.NewList(nil))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, b)
}

func TestSerializeIntList(t *testing.T) {
	b, err := Serialize([]interface{}{int64(1), int64(2), int64(3)})
	assert.NoError(t, err)
	assert.Equal(t, []byte{
		0x40, 0x12,
		0x00, 0x00, 0x00, 0x0C,
		0x00, 0x00, 0x00, 0x03,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x03,
	}, b)
}

func TestSerializeEmptyDictionary(t *testing.T) {
	b, err := SerializeTagged(dontag.NewDictionary(nil))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, b)
}

func TestSerializeOrderedDictionary(t *testing.T) {
	tagged, err := dontag.Autotag([]dontag.DictPair{
		{Key: dontag.NewString(dontag.UTF8, "foo"), Value: dontag.NewInt(dontag.INT32, 42)},
		{Key: dontag.NewString(dontag.UTF8, "bar"), Value: dontag.NewString(dontag.UTF8, "baz")},
	})
	assert.NoError(t, err)

	b, err := SerializeTagged(tagged)
	assert.NoError(t, err)
	assert.Equal(t, []byte{
		0x41,
		0x00, 0x00, 0x00, 0x1D,
		0x00, 0x00, 0x00, 0x02,
		0x31, 0x00, 0x00, 0x00, 0x03, 'f', 'o', 'o',
		0x12, 0x00, 0x00, 0x00, 0x2A,
		0x31, 0x00, 0x00, 0x00, 0x03, 'b', 'a', 'r',
		0x31, 0x00, 0x00, 0x00, 0x03, 'b', 'a', 'z',
	}, b)
}

func TestSerializeMixedListRejected(t *testing.T) {
	_, err := SerializeTagged(dontag.NewList([]dontag.TaggedObject{
		dontag.NewInt(dontag.INT8, 1),
		dontag.NewInt(dontag.INT16, 2),
	}))
	assert.Error(t, err)
}

func TestSerializeInvalidDictKeyRejected(t *testing.T) {
	_, err := SerializeTagged(dontag.NewDictionary([]dontag.DictPair{
		{Key: dontag.NewInt(dontag.INT8, 1), Value: dontag.True},
	}))
	assert.Error(t, err)
}
