package donbinary

import (
	"bytes"

	"github.com/gvtret/don-go/pkg/dontag"
	"github.com/gvtret/don-go/pkg/donerr"
)

// ListCursor is a lazy, one-pass, non-restartable sequence over a
// decoded LIST's children, as permitted by spec.md §5 and §9 ("Lazy list
// decode"). Exhausting the cursor (Next returning ok=false with a nil
// error) verifies that the number of items produced matches the
// encoded item_count; a short read that never reaches the end of the
// child region never raises CountMismatch, since the mismatch can only
// be detected once the region is fully consumed.
type ListCursor struct {
	itemTag dontag.Tag
	reader  readFunc
	child   *bytes.Reader
	want    uint32
	got     uint32
	err     error
}

// ItemTag returns the tag shared by every element the cursor will
// produce (VOID if the list is empty).
func (c *ListCursor) ItemTag() dontag.Tag {
	return c.itemTag
}

// Next decodes the next element. ok is false when the cursor is
// exhausted (err is nil) or when decoding failed (err is non-nil); once
// Next returns a non-nil error, every subsequent call returns the same
// error.
func (c *ListCursor) Next() (dontag.TaggedObject, bool, error) {
	if c.err != nil {
		return dontag.TaggedObject{}, false, c.err
	}

	if c.child.Len() == 0 {
		if c.got != c.want {
			c.err = donerr.Newf(donerr.ErrCountMismatch, "list declared %d item(s), decoded %d", c.want, c.got)
			return dontag.TaggedObject{}, false, c.err
		}
		return dontag.TaggedObject{}, false, nil
	}

	value, err := c.reader(c.child)
	if err != nil {
		c.err = err
		return dontag.TaggedObject{}, false, err
	}
	c.got++
	return dontag.TaggedObject{Tag: c.itemTag, Value: value}, true, nil
}

// Materialize drains the cursor into a slice, surfacing the first error
// (including a trailing CountMismatch) encountered.
func (c *ListCursor) Materialize() ([]dontag.TaggedObject, error) {
	var items []dontag.TaggedObject
	for {
		item, ok, err := c.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
	}
}

// DeserializeLazy parses exactly one tagged object from data, like
// Deserialize, except that a top-level LIST's Value is a *ListCursor
// instead of a materialized []dontag.TaggedObject. Lists nested inside
// that list or inside a DICTIONARY are materialized exactly as
// Deserialize materializes them. The list
// header (item tag, byte length, item count) is still read eagerly, so
// trailing-input detection at the top level works exactly as it does for
// Deserialize; only the per-element decoding is deferred to Next calls.
func DeserializeLazy(data []byte) (dontag.TaggedObject, error) {
	r := bytes.NewReader(data)
	obj, err := readObjectLazy(r)
	if err != nil {
		return dontag.TaggedObject{}, err
	}
	if r.Len() != 0 {
		return dontag.TaggedObject{}, donerr.Newf(donerr.ErrTrailingBytes, "%d trailing byte(s) after top-level object", r.Len())
	}
	return obj, nil
}

func readObjectLazy(r *bytes.Reader) (dontag.TaggedObject, error) {
	tagByte, err := r.ReadByte()
	if err != nil {
		return dontag.TaggedObject{}, donerr.Wrap(donerr.ErrTruncated, "failed to read tag byte", err)
	}
	tag := dontag.Tag(tagByte)

	if tag == dontag.LIST {
		itemTag, child, itemCount, err := readListHeader(r)
		if err != nil {
			return dontag.TaggedObject{}, err
		}
		if itemTag != dontag.VOID {
			if _, ok := payloadReaders[itemTag]; !ok {
				return dontag.TaggedObject{}, donerr.Newf(donerr.ErrUnknownTag, "unknown list item tag 0x%02x", byte(itemTag))
			}
		}
		cursor := &ListCursor{
			itemTag: itemTag,
			reader:  payloadReaders[itemTag],
			child:   child,
			want:    itemCount,
		}
		return dontag.TaggedObject{Tag: dontag.LIST, Value: cursor}, nil
	}

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
