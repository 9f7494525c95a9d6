package dontag

// TaggedObject is an immutable pair of a Tag and a payload whose shape is
// fixed by the tag:
//
//	VOID, TRUE, FALSE   Value is nil
//	INT8/16/32/64       Value is int64, range-checked against the tag's width
//	FLOAT               Value is float32
//	DOUBLE              Value is float64
//	BINARY              Value is []byte
//	UTF8/16/32          Value is string (host text; the payload's code-unit
//	                     encoding is a concern of the binary codec, not of
//	                     the tag model)
//	LIST                Value is []TaggedObject, all sharing Tag's value
//	                     (donbinary.DeserializeLazy instead sets a
//	                     top-level LIST's Value to a *donbinary.ListCursor)
//	DICTIONARY          Value is []DictPair, insertion-ordered
//
// Go has no native sum type, so this is a discriminator-plus-union: the
// codecs are responsible for never constructing a TaggedObject whose
// Value does not match the shape its Tag implies.
type TaggedObject struct {
	Tag   Tag
	Value interface{}
}

// DictPair is one insertion-ordered (key, value) pair of a DICTIONARY.
// Key.Tag must be one of the text tags (UTF8, UTF16, UTF32).
type DictPair struct {
	Key   TaggedObject
	Value TaggedObject
}

// Void is the canonical VOID TaggedObject.
var Void = TaggedObject{Tag: VOID}

// True is the canonical TRUE TaggedObject.
var True = TaggedObject{Tag: TRUE}

// False is the canonical FALSE TaggedObject.
var False = TaggedObject{Tag: FALSE}

// NewInt returns a TaggedObject holding v under the given integer tag.
// It does not range-check v against the tag's width; callers that build
// TaggedObjects directly (rather than through Autotag) are responsible
// for the invariant that the value fits the tag.
func NewInt(tag Tag, v int64) TaggedObject {
	return TaggedObject{Tag: tag, Value: v}
}

// NewFloat32 returns a FLOAT TaggedObject.
func NewFloat32(v float32) TaggedObject {
	return TaggedObject{Tag: FLOAT, Value: v}
}

// NewFloat64 returns a DOUBLE TaggedObject.
func NewFloat64(v float64) TaggedObject {
	return TaggedObject{Tag: DOUBLE, Value: v}
}

// NewBinary returns a BINARY TaggedObject.
func NewBinary(v []byte) TaggedObject {
	return TaggedObject{Tag: BINARY, Value: v}
}

// NewString returns a TaggedObject holding v under the given string tag.
func NewString(tag Tag, v string) TaggedObject {
	return TaggedObject{Tag: tag, Value: v}
}

// NewList returns a LIST TaggedObject over items. Callers are responsible
// for items being homogeneous in tag; the binary and text writers reject
// mixed-tag lists at serialize time (see Autotag's doc comment).
func NewList(items []TaggedObject) TaggedObject {
	return TaggedObject{Tag: LIST, Value: items}
}

// NewDictionary returns a DICTIONARY TaggedObject over pairs, preserving
// pairs' order.
func NewDictionary(pairs []DictPair) TaggedObject {
	return TaggedObject{Tag: DICTIONARY, Value: pairs}
}

// Int64 returns o's value as int64 and true if o carries an integer tag.
func (o TaggedObject) Int64() (int64, bool) {
	if !IsIntegerTag(o.Tag) {
		return 0, false
	}
	v, ok := o.Value.(int64)
	return v, ok
}

// Bool returns the boolean o represents and true if o's tag is TRUE or
// FALSE.
func (o TaggedObject) Bool() (bool, bool) {
	switch o.Tag {
	case TRUE:
		return true, true
	case FALSE:
		return false, true
	default:
		return false, false
	}
}

// StringValue returns o's text payload and true if o carries a string tag.
func (o TaggedObject) StringValue() (string, bool) {
	if !IsStringTag(o.Tag) {
		return "", false
	}
	v, ok := o.Value.(string)
	return v, ok
}

// Bytes returns o's byte payload and true if o's tag is BINARY.
func (o TaggedObject) Bytes() ([]byte, bool) {
	if o.Tag != BINARY {
		return nil, false
	}
	v, ok := o.Value.([]byte)
	return v, ok
}

// Items returns o's children and true if o's tag is LIST.
func (o TaggedObject) Items() ([]TaggedObject, bool) {
	if o.Tag != LIST {
		return nil, false
	}
	v, ok := o.Value.([]TaggedObject)
	return v, ok
}

// Pairs returns o's key/value pairs and true if o's tag is DICTIONARY.
func (o TaggedObject) Pairs() ([]DictPair, bool) {
	if o.Tag != DICTIONARY {
		return nil, false
	}
	v, ok := o.Value.([]DictPair)
	return v, ok
}

// Equal reports whether o and other are structurally equal: same tag,
// and recursively equal payloads. Equality of byte and float payloads
// uses ordinary value equality; NaN DOUBLE/FLOAT payloads are therefore
// never equal to themselves, matching IEEE-754 semantics.
func (o TaggedObject) Equal(other TaggedObject) bool {
	if o.Tag != other.Tag {
		return false
	}

	switch o.Tag {
	case VOID, TRUE, FALSE:
		return true

	case BINARY:
		a, _ := o.Bytes()
		b, _ := other.Bytes()
		return bytesEqual(a, b)

	case LIST:
		a, _ := o.Items()
		b, _ := other.Items()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true

	case DICTIONARY:
		a, _ := o.Pairs()
		b, _ := other.Pairs()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Key.Equal(b[i].Key) || !a[i].Value.Equal(b[i].Value) {
				return false
			}
		}
		return true

	default:
		return o.Value == other.Value
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
