package dontag

import (
	"math"
	"reflect"

	"github.com/gvtret/don-go/pkg/donerr"
)

// PreferredIntTag selects how Autotag chooses an integer's tag width. The
// zero value is not a valid PreferredIntTag; use Fixed or Smallest.
type PreferredIntTag struct {
	smallest bool
	fixed    Tag
}

// Fixed requests that Autotag use exactly tag, if the value fits it.
func Fixed(tag Tag) PreferredIntTag {
	return PreferredIntTag{fixed: tag}
}

// Smallest requests that Autotag use the narrowest integer tag the value
// fits in.
var Smallest = PreferredIntTag{smallest: true}

// autotagOptions holds the resolved preferences for one Autotag call.
type autotagOptions struct {
	preferredIntTag    PreferredIntTag
	preferredStringTag Tag
}

// AutotagOption configures a single Autotag call.
type AutotagOption func(*autotagOptions)

// WithPreferredIntTag overrides the default integer tag preference
// (Fixed(INT32)).
func WithPreferredIntTag(p PreferredIntTag) AutotagOption {
	return func(o *autotagOptions) { o.preferredIntTag = p }
}

// WithPreferredStringTag overrides the default string tag preference
// (UTF8). Smallest is reserved for strings and is not implemented;
// passing UTF8/UTF16/UTF32 is the only supported usage.
func WithPreferredStringTag(tag Tag) AutotagOption {
	return func(o *autotagOptions) { o.preferredStringTag = tag }
}

func resolveOptions(opts []AutotagOption) autotagOptions {
	resolved := autotagOptions{
		preferredIntTag:    Fixed(DefaultIntegerTag),
		preferredStringTag: DefaultStringTag,
	}
	for _, opt := range opts {
		opt(&resolved)
	}
	return resolved
}

// intRanges lists the signed integer tags in ascending width order,
// paired with the predicate for "value fits in this tag's two's
// complement range". Order matters: Autotag's width-selection scan
// depends on it.
var intRanges = []struct {
	tag       Tag
	fitsRange func(int64) bool
}{
	{INT8, func(v int64) bool { return v >= math.MinInt8 && v <= math.MaxInt8 }},
	{INT16, func(v int64) bool { return v >= math.MinInt16 && v <= math.MaxInt16 }},
	{INT32, func(v int64) bool { return v >= math.MinInt32 && v <= math.MaxInt32 }},
	{INT64, func(int64) bool { return true }},
}

func fitsTag(tag Tag, v int64) bool {
	for _, r := range intRanges {
		if r.tag == tag {
			return r.fitsRange(v)
		}
	}
	return false
}

// Autotag maps a host value to a TaggedObject, per the policy:
//
//  1. A value that is already a TaggedObject is returned unchanged.
//  2. nil -> VOID, true -> TRUE, false -> FALSE.
//  3. Integers: the preferred tag is used if it is not Smallest and the
//     value fits its range; otherwise the narrowest tag (INT8..INT64)
//     the value fits is used; a value outside INT64's range is a
//     TooWide error.
//  4. Floating-point Go values (float32, float64) -> DOUBLE. FLOAT is
//     reachable only by constructing a TaggedObject directly.
//  5. []byte -> BINARY.
//  6. string -> the preferred string tag (default UTF8).
//  7. A slice or array of arbitrary values -> LIST, each child
//     recursively auto-tagged with the same preferences; if the
//     resulting children disagree in tag, Autotag returns
//     ErrMixedListTags rather than silently normalizing (see
//     SPEC_FULL.md §4.2's documented, stable policy).
//  8. []DictPair -> DICTIONARY, preserving the slice's order exactly
//     (the insertion-ordering invariant of spec.md §3). A bare Go
//     map[string]interface{} is also accepted, but Go maps carry no
//     insertion order, so its pairs are emitted in whatever order the
//     runtime's map iteration yields that call — callers that need a
//     reproducible or meaningful order must build a []DictPair instead.
//     Each key and value is recursively auto-tagged; keys must resolve
//     to a string tag.
//  9. Any other shape is an UnsupportedType error.
func Autotag(value interface{}, opts ...AutotagOption) (TaggedObject, error) {
	o := resolveOptions(opts)
	return autotag(value, o)
}

func autotag(value interface{}, o autotagOptions) (TaggedObject, error) {
	if tagged, ok := value.(TaggedObject); ok {
		return tagged, nil
	}

	if value == nil {
		return Void, nil
	}

	if b, ok := value.(bool); ok {
		if b {
			return True, nil
		}
		return False, nil
	}

	switch v := value.(type) {
	case int:
		return autotagInt(int64(v), o)
	case int8:
		return autotagInt(int64(v), o)
	case int16:
		return autotagInt(int64(v), o)
	case int32:
		return autotagInt(int64(v), o)
	case int64:
		return autotagInt(v, o)

	case float32:
		return NewFloat64(float64(v)), nil
	case float64:
		return NewFloat64(v), nil

	case []byte:
		return NewBinary(v), nil

	case string:
		return NewString(o.preferredStringTag, v), nil

	case []DictPair:
		return autotagPairs(v, o)

	case map[string]interface{}:
		return autotagMap(v, o)

	case []interface{}:
		return autotagSlice(v, o)

	case []TaggedObject:
		if err := CheckHomogeneousList(v); err != nil {
			return TaggedObject{}, err
		}
		return NewList(v), nil
	}

	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		items := make([]interface{}, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return autotagSlice(items, o)
	}

	return TaggedObject{}, donerr.Newf(donerr.ErrUnsupportedType, "unsupported type %T", value)
}

func autotagInt(v int64, o autotagOptions) (TaggedObject, error) {
	if !o.preferredIntTag.smallest && fitsTag(o.preferredIntTag.fixed, v) {
		return NewInt(o.preferredIntTag.fixed, v), nil
	}

	for _, r := range intRanges {
		if r.fitsRange(v) {
			return NewInt(r.tag, v), nil
		}
	}

	return TaggedObject{}, donerr.Newf(donerr.ErrTooWide, "integer %d is too wide to be serialized", v)
}

func autotagSlice(items []interface{}, o autotagOptions) (TaggedObject, error) {
	tagged := make([]TaggedObject, len(items))
	for i, item := range items {
		t, err := autotag(item, o)
		if err != nil {
			return TaggedObject{}, err
		}
		tagged[i] = t
	}
	if err := CheckHomogeneousList(tagged); err != nil {
		return TaggedObject{}, err
	}
	return NewList(tagged), nil
}

// CheckHomogeneousList returns ErrMixedListTags if items do not all
// share the same tag. An empty slice is always homogeneous. This is the
// policy Autotag, the binary list writer, and the text list parser all
// enforce: spec.md §9's Design Note requires committing to one stable
// policy for disagreeing child tags, and this codec rejects rather than
// silently renormalizing (see SPEC_FULL.md §4.2).
func CheckHomogeneousList(items []TaggedObject) error {
	if len(items) == 0 {
		return nil
	}
	want := items[0].Tag
	for _, it := range items[1:] {
		if it.Tag != want {
			return donerr.Newf(donerr.ErrMixedListTags, "list elements have mismatched tags %s and %s", want, it.Tag)
		}
	}
	return nil
}

func autotagMap(m map[string]interface{}, o autotagOptions) (TaggedObject, error) {
	pairs := make([]DictPair, 0, len(m))
	for k, v := range m {
		key, err := autotag(k, o)
		if err != nil {
			return TaggedObject{}, err
		}
		val, err := autotag(v, o)
		if err != nil {
			return TaggedObject{}, err
		}
		pairs = append(pairs, DictPair{Key: key, Value: val})
	}
	return NewDictionary(pairs), nil
}

func autotagPairs(in []DictPair, o autotagOptions) (TaggedObject, error) {
	pairs := make([]DictPair, len(in))
	for i, p := range in {
		key, err := autotag(p.Key, o)
		if err != nil {
			return TaggedObject{}, err
		}
		if !IsStringTag(key.Tag) {
			return TaggedObject{}, donerr.Newf(donerr.ErrInvalidDictKey, "dictionary key tag %s is not a text tag", key.Tag)
		}
		val, err := autotag(p.Value, o)
		if err != nil {
			return TaggedObject{}, err
		}
		pairs[i] = DictPair{Key: key, Value: val}
	}
	return NewDictionary(pairs), nil
}
