package dontext

import (
	"testing"

	"github.com/gvtret/don-go/pkg/dontag"
	"github.com/gvtret/don-go/pkg/donerr"
	"github.com/stretchr/testify/assert"
)

func TestDeserializeVoidTrueFalse(t *testing.T) {
	o, err := Deserialize("null")
	assert.NoError(t, err)
	assert.True(t, dontag.Void.Equal(o))

	o, err = Deserialize("true")
	assert.NoError(t, err)
	assert.True(t, dontag.True.Equal(o))

	o, err = Deserialize("false")
	assert.NoError(t, err)
	assert.True(t, dontag.False.Equal(o))
}

func TestDeserializeIntegerLiterals(t *testing.T) {
	tests := []struct {
		in   string
		tag  dontag.Tag
		want int64
	}{
		{"-1i8", dontag.INT8, -1},
		{"127i8", dontag.INT8, 127},
		{"32767i16", dontag.INT16, 32767},
		{"1i32", dontag.INT32, 1},
		{"-9223372036854775808i64", dontag.INT64, -9223372036854775808},
	}
	for _, tt := range tests {
		o, err := Deserialize(tt.in)
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.tag, o.Tag, tt.in)
		v, ok := o.Int64()
		assert.True(t, ok)
		assert.Equal(t, tt.want, v, tt.in)
	}
}

func TestDeserializeIntegerOutOfRange(t *testing.T) {
	_, err := Deserialize("200i8")
	assert.Error(t, err)
}

func TestDeserializeFloatAndDoublePreserveDeclaredTag(t *testing.T) {
	o, err := Deserialize("1.5f")
	assert.NoError(t, err)
	assert.Equal(t, dontag.FLOAT, o.Tag)
	assert.Equal(t, float32(1.5), o.Value)

	o, err = Deserialize("1.5d")
	assert.NoError(t, err)
	assert.Equal(t, dontag.DOUBLE, o.Tag)
	assert.Equal(t, 1.5, o.Value)
}

func TestDeserializeBinaryLiteral(t *testing.T) {
	o, err := Deserialize(`"deadbeef"b`)
	assert.NoError(t, err)
	b, ok := o.Bytes()
	assert.True(t, ok)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, b)
}

func TestDeserializeOddLengthHexIsBadLength(t *testing.T) {
	_, err := Deserialize(`"abc"b`)
	assert.Error(t, err)
	var e *donerr.Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, donerr.ErrBadLength, e.Code)
}

func TestDeserializeStringLiterals(t *testing.T) {
	o, err := Deserialize(`"hello"utf8`)
	assert.NoError(t, err)
	assert.Equal(t, dontag.UTF8, o.Tag)
	s, _ := o.StringValue()
	assert.Equal(t, "hello", s)

	o, err = Deserialize(`"hello"utf16`)
	assert.NoError(t, err)
	assert.Equal(t, dontag.UTF16, o.Tag)

	o, err = Deserialize(`"hello"utf32`)
	assert.NoError(t, err)
	assert.Equal(t, dontag.UTF32, o.Tag)
}

func TestDeserializeList(t *testing.T) {
	o, err := Deserialize("[1i32, 2i32, 3i32]")
	assert.NoError(t, err)
	items, ok := o.Items()
	assert.True(t, ok)
	assert.Len(t, items, 3)
	for i, item := range items {
		v, _ := item.Int64()
		assert.Equal(t, int64(i+1), v)
	}
}

func TestDeserializeEmptyListAndDict(t *testing.T) {
	o, err := Deserialize("[]")
	assert.NoError(t, err)
	items, _ := o.Items()
	assert.Empty(t, items)

	o, err = Deserialize("{}")
	assert.NoError(t, err)
	pairs, _ := o.Pairs()
	assert.Empty(t, pairs)
}

func TestDeserializeDictionary(t *testing.T) {
	o, err := Deserialize(`{ "foo"utf8: 1i32, "bar"utf8: "baz"utf8 }`)
	assert.NoError(t, err)
	pairs, ok := o.Pairs()
	assert.True(t, ok)
	assert.Len(t, pairs, 2)

	k, _ := pairs[0].Key.StringValue()
	assert.Equal(t, "foo", k)
	v, _ := pairs[0].Value.Int64()
	assert.Equal(t, int64(1), v)

	k, _ = pairs[1].Key.StringValue()
	assert.Equal(t, "bar", k)
	s, _ := pairs[1].Value.StringValue()
	assert.Equal(t, "baz", s)
}

func TestDeserializeToleratesArbitraryWhitespace(t *testing.T) {
	o, err := Deserialize(" \t\n[ \t\n1i8 \t\n, \t\n2i8 \t\n]")
	assert.NoError(t, err)
	items, ok := o.Items()
	assert.True(t, ok)
	assert.Len(t, items, 2)
	assert.Equal(t, dontag.INT8, items[0].Tag)
	v0, _ := items[0].Int64()
	v1, _ := items[1].Int64()
	assert.Equal(t, int64(1), v0)
	assert.Equal(t, int64(2), v1)
}

func TestDeserializeTrailingComma(t *testing.T) {
	_, err := Deserialize("[1i8, 2i8, ]")
	assert.Error(t, err)
	var e *donerr.Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, donerr.ErrTrailingComma, e.Code)
}

func TestDeserializeTrailingCharacters(t *testing.T) {
	_, err := Deserialize("1i8 garbage")
	assert.Error(t, err)
	var e *donerr.Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, donerr.ErrTrailingCharacters, e.Code)
}

func TestDeserializeMixedListRejected(t *testing.T) {
	_, err := Deserialize("[1i8, \"x\"utf8]")
	assert.Error(t, err)
	var e *donerr.Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, donerr.ErrMixedListTags, e.Code)
}

func TestDeserializeInvalidDictKey(t *testing.T) {
	_, err := Deserialize("{ 1i8: 2i8 }")
	assert.Error(t, err)
	var e *donerr.Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, donerr.ErrInvalidDictKey, e.Code)
}

func TestSerializeDeserializeTextRoundTrip(t *testing.T) {
	tagged, err := dontag.Autotag(map[string]interface{}{
		"count": int64(7),
		"label": "roundtrip",
	})
	assert.NoError(t, err)

	text, err := SerializeTagged(tagged)
	assert.NoError(t, err)

	decoded, err := Deserialize(text)
	assert.NoError(t, err)
	assert.True(t, tagged.Equal(decoded))
}
