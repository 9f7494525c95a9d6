package donbinary

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/gvtret/don-go/pkg/dontag"
	"github.com/gvtret/don-go/pkg/donerr"
)

// readFunc reads one TaggedObject's payload (the tag byte has already
// been consumed by the caller) and returns its Value.
type readFunc func(r *bytes.Reader) (interface{}, error)

// payloadReaders dispatches by tag, mirroring payloadWriters.
var payloadReaders = map[dontag.Tag]readFunc{
	dontag.VOID:       readEmpty,
	dontag.TRUE:       readEmpty,
	dontag.FALSE:      readEmpty,
	dontag.INT8:       readIntN(1),
	dontag.INT16:      readIntN(2),
	dontag.INT32:      readIntN(4),
	dontag.INT64:      readIntN(8),
	dontag.FLOAT:      readFloat32,
	dontag.DOUBLE:     readFloat64,
	dontag.BINARY:     readBinary,
	dontag.UTF8:       readUTF8,
	dontag.UTF16:      readUTF16,
	dontag.UTF32:      readUTF32,
	dontag.LIST:       readList,
	dontag.DICTIONARY: readDictionary,
}

// Deserialize parses exactly one tagged object from data and fails if
// any trailing bytes remain. LIST payloads are fully materialized into
// []dontag.TaggedObject; for a lazy, one-pass alternative see
// DeserializeLazy.
func Deserialize(data []byte) (dontag.TaggedObject, error) {
	r := bytes.NewReader(data)
	obj, err := readObject(r)
	if err != nil {
		return dontag.TaggedObject{}, err
	}
	if r.Len() != 0 {
		return dontag.TaggedObject{}, donerr.Newf(donerr.ErrTrailingBytes, "%d trailing byte(s) after top-level object", r.Len())
	}
	return obj, nil
}

func readObject(r *bytes.Reader) (dontag.TaggedObject, error) {
	tagByte, err := r.ReadByte()
	if err != nil {
		return dontag.TaggedObject{}, donerr.Wrap(donerr.ErrTruncated, "failed to read tag byte", err)
	}
	tag := dontag.Tag(tagByte)

	reader, ok := payloadReaders[tag]
	if !ok {
		return dontag.TaggedObject{}, donerr.Newf(donerr.ErrUnknownTag, "unknown tag 0x%02x", tagByte)
	}

	value, err := reader(r)
	if err != nil {
		return dontag.TaggedObject{}, err
	}
	return dontag.TaggedObject{Tag: tag, Value: value}, nil
}

func readExact(r *bytes.Reader, n int) ([]byte, error) {
	if r.Len() < n {
		return nil, donerr.Newf(donerr.ErrTruncated, "need %d byte(s), only %d remain", n, r.Len())
	}
	buf := make([]byte, n)
	if _, err := r.Read(buf); err != nil {
		return nil, donerr.Wrap(donerr.ErrTruncated, "failed to read payload", err)
	}
	return buf, nil
}

func readEmpty(r *bytes.Reader) (interface{}, error) {
	return nil, nil
}

func readIntN(width int) readFunc {
	return func(r *bytes.Reader) (interface{}, error) {
		data, err := readExact(r, width)
		if err != nil {
			return nil, err
		}
		var tmp [8]byte
		// Sign-extend by replicating the top bit into the high bytes.
		if data[0]&0x80 != 0 {
			for i := range tmp {
				tmp[i] = 0xFF
			}
		}
		copy(tmp[8-width:], data)
		return int64(binary.BigEndian.Uint64(tmp[:])), nil
	}
}

func readFloat32(r *bytes.Reader) (interface{}, error) {
	data, err := readExact(r, 4)
	if err != nil {
		return nil, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(data)), nil
}

func readFloat64(r *bytes.Reader) (interface{}, error) {
	data, err := readExact(r, 8)
	if err != nil {
		return nil, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(data)), nil
}

// readLengthPrefixed reads a 4-byte big-endian unsigned length and that
// many following bytes.
func readLengthPrefixed(r *bytes.Reader) ([]byte, error) {
	lenBytes, err := readExact(r, 4)
	if err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(lenBytes)
	if uint64(length) > uint64(r.Len()) {
		return nil, donerr.Newf(donerr.ErrBadLength, "length %d exceeds remaining %d byte(s)", length, r.Len())
	}
	return readExact(r, int(length))
}

func readBinary(r *bytes.Reader) (interface{}, error) {
	data, err := readLengthPrefixed(r)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), data...), nil
}

func readUTF8(r *bytes.Reader) (interface{}, error) {
	data, err := readLengthPrefixed(r)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func readUTF16(r *bytes.Reader) (interface{}, error) {
	data, err := readLengthPrefixed(r)
	if err != nil {
		return nil, err
	}
	return decodeUTF16(data)
}

func readUTF32(r *bytes.Reader) (interface{}, error) {
	data, err := readLengthPrefixed(r)
	if err != nil {
		return nil, err
	}
	return decodeUTF32(data)
}

// readListHeader reads item_tag, byte_length, item_count and returns a
// reader scoped to exactly the byte_length child region, leaving r
// positioned just after that region.
func readListHeader(r *bytes.Reader) (itemTag dontag.Tag, childReader *bytes.Reader, itemCount uint32, err error) {
	tagByte, err := r.ReadByte()
	if err != nil {
		return 0, nil, 0, donerr.Wrap(donerr.ErrTruncated, "failed to read list item tag", err)
	}
	itemTag = dontag.Tag(tagByte)

	header, err := readExact(r, 8)
	if err != nil {
		return 0, nil, 0, err
	}
	byteLength := binary.BigEndian.Uint32(header[0:4])
	itemCount = binary.BigEndian.Uint32(header[4:8])

	if uint64(byteLength) > uint64(r.Len()) {
		return 0, nil, 0, donerr.Newf(donerr.ErrBadLength, "list byte_length %d exceeds remaining %d byte(s)", byteLength, r.Len())
	}
	childBytes, err := readExact(r, int(byteLength))
	if err != nil {
		return 0, nil, 0, err
	}
	return itemTag, bytes.NewReader(childBytes), itemCount, nil
}

func readList(r *bytes.Reader) (interface{}, error) {
	itemTag, child, itemCount, err := readListHeader(r)
	if err != nil {
		return nil, err
	}

	if itemTag != dontag.VOID {
		if _, ok := payloadReaders[itemTag]; !ok {
			return nil, donerr.Newf(donerr.ErrUnknownTag, "unknown list item tag 0x%02x", byte(itemTag))
		}
	}

	items := make([]dontag.TaggedObject, 0, itemCount)
	reader := payloadReaders[itemTag]
	for child.Len() > 0 {
		value, err := reader(child)
		if err != nil {
			return nil, err
		}
		items = append(items, dontag.TaggedObject{Tag: itemTag, Value: value})
	}

	if uint32(len(items)) != itemCount {
		return nil, donerr.Newf(donerr.ErrCountMismatch, "list declared %d item(s), decoded %d", itemCount, len(items))
	}
	return items, nil
}

func readDictionary(r *bytes.Reader) (interface{}, error) {
	header, err := readExact(r, 8)
	if err != nil {
		return nil, err
	}
	byteLength := binary.BigEndian.Uint32(header[0:4])
	itemCount := binary.BigEndian.Uint32(header[4:8])

	if uint64(byteLength) > uint64(r.Len()) {
		return nil, donerr.Newf(donerr.ErrBadLength, "dictionary byte_length %d exceeds remaining %d byte(s)", byteLength, r.Len())
	}
	childBytes, err := readExact(r, int(byteLength))
	if err != nil {
		return nil, err
	}
	child := bytes.NewReader(childBytes)

	pairs := make([]dontag.DictPair, 0, itemCount)
	for child.Len() > 0 {
		key, err := readObject(child)
		if err != nil {
			return nil, err
		}
		if !dontag.IsStringTag(key.Tag) {
			return nil, donerr.Newf(donerr.ErrInvalidDictKey, "dictionary key tag %s is not a text tag", key.Tag)
		}
		value, err := readObject(child)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, dontag.DictPair{Key: key, Value: value})
	}

	if uint32(len(pairs)) != itemCount {
		return nil, donerr.Newf(donerr.ErrCountMismatch, "dictionary declared %d item(s), decoded %d", itemCount, len(pairs))
	}
	return pairs, nil
}
