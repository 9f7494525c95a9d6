// Package dontext implements the human-readable text encoding of the
// self-describing data interchange format: a suffix-typed literal
// grammar that preserves every tag's width, as fixed by spec.md §4.4
// and §6.
package dontext

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/gvtret/don-go/pkg/dontag"
	"github.com/gvtret/don-go/pkg/donerr"
)

// writeFunc renders one TaggedObject's literal (without recursing
// through Autotag again; children of a LIST/DICTIONARY are already
// tagged).
type writeFunc func(o dontag.TaggedObject) (string, error)

// literalWriters dispatches by tag, in the same spirit as the teacher's
// encodeDispatch table, here keyed directly by wire tag.
var literalWriters map[dontag.Tag]writeFunc

func init() {
	literalWriters = map[dontag.Tag]writeFunc{
		dontag.VOID:       func(dontag.TaggedObject) (string, error) { return "null", nil },
		dontag.TRUE:       func(dontag.TaggedObject) (string, error) { return "true", nil },
		dontag.FALSE:      func(dontag.TaggedObject) (string, error) { return "false", nil },
		dontag.INT8:       writeInt(8),
		dontag.INT16:      writeInt(16),
		dontag.INT32:      writeInt(32),
		dontag.INT64:      writeInt(64),
		dontag.FLOAT:      writeFloat("f"),
		dontag.DOUBLE:     writeFloat("d"),
		dontag.BINARY:     writeBinary,
		dontag.UTF8:       writeString("utf8"),
		dontag.UTF16:      writeString("utf16"),
		dontag.UTF32:      writeString("utf32"),
		dontag.LIST:       writeList,
		dontag.DICTIONARY: writeDictionary,
	}
}

// Serialize auto-tags value and renders it in the text grammar.
func Serialize(value interface{}, opts ...dontag.AutotagOption) (string, error) {
	tagged, err := dontag.Autotag(value, opts...)
	if err != nil {
		return "", err
	}
	return SerializeTagged(tagged)
}

// SerializeTagged renders an already-tagged object in the text grammar.
func SerializeTagged(o dontag.TaggedObject) (string, error) {
	return writeObject(o)
}

func writeObject(o dontag.TaggedObject) (string, error) {
	writer, ok := literalWriters[o.Tag]
	if !ok {
		return "", donerr.Newf(donerr.ErrUnknownTag, "unknown tag 0x%02x", byte(o.Tag))
	}
	return writer(o)
}

func writeInt(width int) writeFunc {
	suffix := "i" + strconv.Itoa(width)
	return func(o dontag.TaggedObject) (string, error) {
		v, ok := o.Int64()
		if !ok {
			return "", donerr.Newf(donerr.ErrUnsupportedType, "%s payload is not an integer", o.Tag)
		}
		return strconv.FormatInt(v, 10) + suffix, nil
	}
}

// formatDecimal renders f with at least one fractional digit, since the
// text grammar's float/double production requires a decimal point
// (spec.md §9 "Float text grammar"). strconv's 'f' format with minimal
// digits renders whole numbers without a decimal point (2.0 becomes
// "2"), so ".0" is appended whenever the result has no '.'.
func formatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func writeFloat(suffix string) writeFunc {
	return func(o dontag.TaggedObject) (string, error) {
		switch v := o.Value.(type) {
		case float32:
			return formatDecimal(float64(v)) + suffix, nil
		case float64:
			return formatDecimal(v) + suffix, nil
		default:
			return "", donerr.Newf(donerr.ErrUnsupportedType, "%s payload is not a float", o.Tag)
		}
	}
}

func writeBinary(o dontag.TaggedObject) (string, error) {
	data, ok := o.Bytes()
	if !ok {
		return "", donerr.Newf(donerr.ErrUnsupportedType, "BINARY payload is not []byte")
	}
	return `"` + hex.EncodeToString(data) + `"b`, nil
}

func writeString(suffix string) writeFunc {
	return func(o dontag.TaggedObject) (string, error) {
		s, ok := o.StringValue()
		if !ok {
			return "", donerr.Newf(donerr.ErrUnsupportedType, "%s payload is not a string", o.Tag)
		}
		return `"` + s + `"` + suffix, nil
	}
}

func writeList(o dontag.TaggedObject) (string, error) {
	items, ok := o.Items()
	if !ok {
		return "", donerr.Newf(donerr.ErrUnsupportedType, "LIST payload is not []TaggedObject")
	}
	if err := dontag.CheckHomogeneousList(items); err != nil {
		return "", err
	}
	parts := make([]string, len(items))
	for i, item := range items {
		s, err := writeObject(item)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

func writeDictionary(o dontag.TaggedObject) (string, error) {
	pairs, ok := o.Pairs()
	if !ok {
		return "", donerr.Newf(donerr.ErrUnsupportedType, "DICTIONARY payload is not []DictPair")
	}
	if len(pairs) == 0 {
		return "{}", nil
	}
	parts := make([]string, len(pairs))
	for i, pair := range pairs {
		if !dontag.IsStringTag(pair.Key.Tag) {
			return "", donerr.Newf(donerr.ErrInvalidDictKey, "dictionary key tag %s is not a text tag", pair.Key.Tag)
		}
		key, err := writeObject(pair.Key)
		if err != nil {
			return "", err
		}
		val, err := writeObject(pair.Value)
		if err != nil {
			return "", err
		}
		parts[i] = key + ": " + val
	}
	return "{ " + strings.Join(parts, ", ") + " }", nil
}
