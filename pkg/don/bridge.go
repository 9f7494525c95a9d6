// Package don composes the binary and text codecs into the
// cross-encoding bridge: converting data from one encoding to the
// other without ever flattening it to host primitives in between, so
// that tag widths (INT8 versus INT32, FLOAT versus DOUBLE, and so on)
// survive the round trip exactly.
package don

import (
	"github.com/gvtret/don-go/pkg/donbinary"
	"github.com/gvtret/don-go/pkg/dontag"
	"github.com/gvtret/don-go/pkg/dontext"
)

// BinaryToText decodes data as the binary encoding and renders the
// resulting TaggedObject tree in the text grammar.
func BinaryToText(data []byte) (string, error) {
	obj, err := donbinary.Deserialize(data)
	if err != nil {
		return "", err
	}
	return dontext.SerializeTagged(obj)
}

// TextToBinary parses s as the text grammar and encodes the resulting
// TaggedObject tree in the binary encoding.
func TextToBinary(s string) ([]byte, error) {
	obj, err := dontext.Deserialize(s)
	if err != nil {
		return nil, err
	}
	return donbinary.SerializeTagged(obj)
}

// Convert is a low-level helper shared by BinaryToText and TextToBinary's
// callers who already hold a TaggedObject: it exists so callers that
// parse once and want both renderings don't need to import donbinary
// and dontext directly for anything but the initial decode.
func Convert(o dontag.TaggedObject) (text string, binary []byte, err error) {
	text, err = dontext.SerializeTagged(o)
	if err != nil {
		return "", nil, err
	}
	binary, err = donbinary.SerializeTagged(o)
	if err != nil {
		return "", nil, err
	}
	return text, binary, nil
}
