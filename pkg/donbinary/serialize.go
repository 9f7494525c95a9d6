// Package donbinary implements the binary wire encoding of the
// self-describing data interchange format: a tag byte followed by a
// tag-shaped payload, as fixed bit-for-bit by spec.md §6.
package donbinary

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/gvtret/don-go/pkg/dontag"
	"github.com/gvtret/don-go/pkg/donerr"
)

// writeFunc writes one TaggedObject's payload (not its tag byte, which
// the caller has already written) to buf.
type writeFunc func(buf *bytes.Buffer, o dontag.TaggedObject) error

// payloadWriters dispatches by tag, mirroring the teacher's
// encodeDispatch map keyed by reflect.Type: here the key is the wire tag
// itself, since every TaggedObject already carries one.
var payloadWriters = map[dontag.Tag]writeFunc{
	dontag.VOID:       writeEmpty,
	dontag.TRUE:       writeEmpty,
	dontag.FALSE:      writeEmpty,
	dontag.INT8:       writeIntN(1),
	dontag.INT16:      writeIntN(2),
	dontag.INT32:      writeIntN(4),
	dontag.INT64:      writeIntN(8),
	dontag.FLOAT:      writeFloat32,
	dontag.DOUBLE:     writeFloat64,
	dontag.BINARY:     writeBinary,
	dontag.UTF8:       writeUTF8,
	dontag.UTF16:      writeUTF16,
	dontag.UTF32:      writeUTF32,
	dontag.LIST:       writeList,
	dontag.DICTIONARY: writeDictionary,
}

// Serialize auto-tags value (see dontag.Autotag) and writes it in the
// binary wire format.
func Serialize(value interface{}, opts ...dontag.AutotagOption) ([]byte, error) {
	tagged, err := dontag.Autotag(value, opts...)
	if err != nil {
		return nil, err
	}
	return SerializeTagged(tagged)
}

// SerializeTagged writes an already-tagged object in the binary wire
// format, without re-running Autotag (Autotag is the identity on
// TaggedObject input anyway, but this entry point avoids the option
// plumbing when the caller already has the tree it wants written).
func SerializeTagged(o dontag.TaggedObject) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeObject(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeObject(buf *bytes.Buffer, o dontag.TaggedObject) error {
	writer, ok := payloadWriters[o.Tag]
	if !ok {
		return donerr.Newf(donerr.ErrUnknownTag, "unknown tag 0x%02x", byte(o.Tag))
	}
	buf.WriteByte(byte(o.Tag))
	return writer(buf, o)
}

func writeEmpty(buf *bytes.Buffer, o dontag.TaggedObject) error {
	return nil
}

func writeIntN(width int) writeFunc {
	return func(buf *bytes.Buffer, o dontag.TaggedObject) error {
		v, ok := o.Int64()
		if !ok {
			return donerr.Newf(donerr.ErrUnsupportedType, "%s payload is not an integer", o.Tag)
		}
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], uint64(v))
		buf.Write(tmp[8-width:])
		return nil
	}
}

func writeFloat32(buf *bytes.Buffer, o dontag.TaggedObject) error {
	f, ok := o.Value.(float32)
	if !ok {
		return donerr.Newf(donerr.ErrUnsupportedType, "FLOAT payload is not a float32")
	}
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], math.Float32bits(f))
	buf.Write(tmp[:])
	return nil
}

func writeFloat64(buf *bytes.Buffer, o dontag.TaggedObject) error {
	f, ok := o.Value.(float64)
	if !ok {
		return donerr.Newf(donerr.ErrUnsupportedType, "DOUBLE payload is not a float64")
	}
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], math.Float64bits(f))
	buf.Write(tmp[:])
	return nil
}

func writeLengthPrefixed(buf *bytes.Buffer, data []byte) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], uint32(len(data)))
	buf.Write(tmp[:])
	buf.Write(data)
}

func writeBinary(buf *bytes.Buffer, o dontag.TaggedObject) error {
	data, ok := o.Bytes()
	if !ok {
		return donerr.Newf(donerr.ErrUnsupportedType, "BINARY payload is not []byte")
	}
	writeLengthPrefixed(buf, data)
	return nil
}

func writeUTF8(buf *bytes.Buffer, o dontag.TaggedObject) error {
	s, ok := o.StringValue()
	if !ok {
		return donerr.Newf(donerr.ErrUnsupportedType, "UTF8 payload is not a string")
	}
	writeLengthPrefixed(buf, []byte(s))
	return nil
}

func writeUTF16(buf *bytes.Buffer, o dontag.TaggedObject) error {
	s, ok := o.StringValue()
	if !ok {
		return donerr.Newf(donerr.ErrUnsupportedType, "UTF16 payload is not a string")
	}
	encoded, err := encodeUTF16(s)
	if err != nil {
		return err
	}
	writeLengthPrefixed(buf, encoded)
	return nil
}

func writeUTF32(buf *bytes.Buffer, o dontag.TaggedObject) error {
	s, ok := o.StringValue()
	if !ok {
		return donerr.Newf(donerr.ErrUnsupportedType, "UTF32 payload is not a string")
	}
	writeLengthPrefixed(buf, encodeUTF32(s))
	return nil
}

// writeList writes a LIST: item_tag · byte_length · item_count ·
// concatenated child payloads (no per-child tag byte, since the
// container already declared item_tag). An empty list writes
// item_tag=VOID, byte_length=0, item_count=0.
func writeList(buf *bytes.Buffer, o dontag.TaggedObject) error {
	items, ok := o.Items()
	if !ok {
		return donerr.Newf(donerr.ErrUnsupportedType, "LIST payload is not []TaggedObject")
	}

	itemTag := dontag.VOID
	if len(items) > 0 {
		itemTag = items[0].Tag
	}

	var payload bytes.Buffer
	for i, item := range items {
		if item.Tag != itemTag {
			return donerr.Newf(donerr.ErrMixedListTags, "list element %d has tag %s, expected %s", i, item.Tag, itemTag)
		}
		writer, ok := payloadWriters[item.Tag]
		if !ok {
			return donerr.Newf(donerr.ErrUnknownTag, "unknown tag 0x%02x", byte(item.Tag))
		}
		if err := writer(&payload, item); err != nil {
			return err
		}
	}

	buf.WriteByte(byte(itemTag))
	var lenBuf [8]byte
	binary.BigEndian.PutUint32(lenBuf[0:4], uint32(payload.Len()))
	binary.BigEndian.PutUint32(lenBuf[4:8], uint32(len(items)))
	buf.Write(lenBuf[:])
	buf.Write(payload.Bytes())
	return nil
}

// writeDictionary writes a DICTIONARY: byte_length · item_count ·
// concatenated (tagged key, tagged value) pairs. Unlike LIST, every key
// and value carries its own tag byte.
func writeDictionary(buf *bytes.Buffer, o dontag.TaggedObject) error {
	pairs, ok := o.Pairs()
	if !ok {
		return donerr.Newf(donerr.ErrUnsupportedType, "DICTIONARY payload is not []DictPair")
	}

	var payload bytes.Buffer
	for _, pair := range pairs {
		if !dontag.IsStringTag(pair.Key.Tag) {
			return donerr.Newf(donerr.ErrInvalidDictKey, "dictionary key tag %s is not a text tag", pair.Key.Tag)
		}
		if err := writeObject(&payload, pair.Key); err != nil {
			return err
		}
		if err := writeObject(&payload, pair.Value); err != nil {
			return err
		}
	}

	var lenBuf [8]byte
	binary.BigEndian.PutUint32(lenBuf[0:4], uint32(payload.Len()))
	binary.BigEndian.PutUint32(lenBuf[4:8], uint32(len(pairs)))
	buf.Write(lenBuf[:])
	buf.Write(payload.Bytes())
	return nil
}
