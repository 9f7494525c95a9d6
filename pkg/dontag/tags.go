// Package dontag defines the tag model for the self-describing data
// interchange format: the tag byte constants, their family
// classification, the TaggedObject sum value, and the auto-tagging
// policy that maps a host value to a TaggedObject.
package dontag

// Tag is a 1-byte discriminator identifying the logical type of a value
// in both the binary and text encodings. Tag values are fixed and are
// part of the wire contract; they must never be renumbered.
type Tag byte

// Tag constants, grouped by family. Each payload shape is fixed by its
// tag; decoders must not accept a TaggedObject whose payload shape
// mismatches its tag.
const (
	// VOID carries no payload. It is the tag of null/none and of the
	// empty LIST's elided item tag.
	VOID Tag = 0x00

	// TRUE carries no payload.
	TRUE Tag = 0x01

	// FALSE carries no payload.
	FALSE Tag = 0x02

	// INT8 carries 1 byte, signed, two's complement, big-endian.
	INT8 Tag = 0x10

	// INT16 carries 2 bytes, signed, two's complement, big-endian.
	INT16 Tag = 0x11

	// INT32 carries 4 bytes, signed, two's complement, big-endian. This
	// is the default integer tag chosen by Autotag.
	INT32 Tag = 0x12

	// INT64 carries 8 bytes, signed, two's complement, big-endian.
	INT64 Tag = 0x13

	// FLOAT carries 4 bytes, IEEE-754 binary32, big-endian. Reachable
	// only via an explicit pre-tagged TaggedObject; Autotag never
	// chooses FLOAT on its own.
	FLOAT Tag = 0x20

	// DOUBLE carries 8 bytes, IEEE-754 binary64, big-endian. This is the
	// default tag Autotag chooses for any Go float32/float64 value.
	DOUBLE Tag = 0x21

	// BINARY carries a 4-byte big-endian unsigned length followed by
	// that many raw bytes, not re-encoded or re-normalized.
	BINARY Tag = 0x30

	// UTF8 carries a 4-byte big-endian unsigned length (in bytes)
	// followed by that many UTF-8 code units. This is the default
	// string tag Autotag chooses.
	UTF8 Tag = 0x31

	// UTF16 carries a 4-byte big-endian unsigned length (in bytes)
	// followed by that many bytes of UTF-16 code units (2 bytes each).
	UTF16 Tag = 0x32

	// UTF32 carries a 4-byte big-endian unsigned length (in bytes)
	// followed by that many bytes of UTF-32 code units (4 bytes each).
	UTF32 Tag = 0x33

	// LIST carries a 1-byte item tag (the common child tag, or VOID if
	// empty), a 4-byte big-endian unsigned byte length, a 4-byte
	// big-endian unsigned item count, and that many bytes of
	// concatenated child payloads (no per-item tag byte).
	LIST Tag = 0x40

	// DICTIONARY carries a 4-byte big-endian unsigned byte length, a
	// 4-byte big-endian unsigned item count, and that many bytes of
	// concatenated (tagged key, tagged value) pairs — every key and
	// value carries its own tag byte.
	DICTIONARY Tag = 0x41
)

// Default tags chosen by Autotag absent an explicit preference.
const (
	DefaultIntegerTag = INT32
	DefaultDecimalTag = DOUBLE
	DefaultStringTag  = UTF8
)

// String returns the tag's symbolic name, e.g. "INT32".
func (t Tag) String() string {
	switch t {
	case VOID:
		return "VOID"
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case INT8:
		return "INT8"
	case INT16:
		return "INT16"
	case INT32:
		return "INT32"
	case INT64:
		return "INT64"
	case FLOAT:
		return "FLOAT"
	case DOUBLE:
		return "DOUBLE"
	case BINARY:
		return "BINARY"
	case UTF8:
		return "UTF8"
	case UTF16:
		return "UTF16"
	case UTF32:
		return "UTF32"
	case LIST:
		return "LIST"
	case DICTIONARY:
		return "DICTIONARY"
	default:
		return "UNKNOWN"
	}
}

// IsVoidOnlyTag reports whether t carries no payload (VOID, TRUE, FALSE).
func IsVoidOnlyTag(t Tag) bool {
	switch t {
	case VOID, TRUE, FALSE:
		return true
	default:
		return false
	}
}

// IsIntegerTag reports whether t is one of the fixed-width signed
// integer tags.
func IsIntegerTag(t Tag) bool {
	switch t {
	case INT8, INT16, INT32, INT64:
		return true
	default:
		return false
	}
}

// IsFloatingTag reports whether t is FLOAT or DOUBLE.
func IsFloatingTag(t Tag) bool {
	return t == FLOAT || t == DOUBLE
}

// IsStringTag reports whether t is one of the text tags. Dictionary keys
// must carry one of these tags; BINARY does not count, since it is a
// byte-sequence tag, not a text tag.
func IsStringTag(t Tag) bool {
	switch t {
	case UTF8, UTF16, UTF32:
		return true
	default:
		return false
	}
}

// IsLengthPrefixedTag reports whether t's payload begins with a 4-byte
// big-endian unsigned length in the binary encoding (BINARY or any
// string tag).
func IsLengthPrefixedTag(t Tag) bool {
	return t == BINARY || IsStringTag(t)
}

// IsContainerTag reports whether t is LIST or DICTIONARY.
func IsContainerTag(t Tag) bool {
	return t == LIST || t == DICTIONARY
}

// IntegerWidth returns the payload width, in bytes, of an integer tag.
// It panics if t is not an integer tag; callers must check IsIntegerTag
// first (or rely on the exhaustive tag dispatch tables, which never call
// this on a non-integer tag).
func IntegerWidth(t Tag) int {
	switch t {
	case INT8:
		return 1
	case INT16:
		return 2
	case INT32:
		return 4
	case INT64:
		return 8
	default:
		panic("dontag: IntegerWidth called on non-integer tag " + t.String())
	}
}
