package donbinary

import (
	"testing"

	"github.com/gvtret/don-go/pkg/dontag"
	"github.com/gvtret/don-go/pkg/donerr"
	"github.com/stretchr/testify/assert"
)

func TestListCursorMaterializeMatchesEagerDecode(t *testing.T) {
	encoded, err := Serialize([]interface{}{int64(1), int64(2), int64(3)})
	assert.NoError(t, err)

	eager, err := Deserialize(encoded)
	assert.NoError(t, err)

	lazy, err := DeserializeLazy(encoded)
	assert.NoError(t, err)
	cursor, ok := lazy.Value.(*ListCursor)
	assert.True(t, ok)
	assert.Equal(t, dontag.INT32, cursor.ItemTag())

	items, err := cursor.Materialize()
	assert.NoError(t, err)

	eagerItems, _ := eager.Items()
	assert.Len(t, items, len(eagerItems))
	for i := range items {
		assert.True(t, eagerItems[i].Equal(items[i]))
	}
}

func TestListCursorNextOneAtATime(t *testing.T) {
	encoded, err := Serialize([]interface{}{int64(10), int64(20)})
	assert.NoError(t, err)

	lazy, err := DeserializeLazy(encoded)
	assert.NoError(t, err)
	cursor := lazy.Value.(*ListCursor)

	item, ok, err := cursor.Next()
	assert.NoError(t, err)
	assert.True(t, ok)
	v, _ := item.Int64()
	assert.Equal(t, int64(10), v)

	item, ok, err = cursor.Next()
	assert.NoError(t, err)
	assert.True(t, ok)
	v, _ = item.Int64()
	assert.Equal(t, int64(20), v)

	_, ok, err = cursor.Next()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestListCursorEmptyList(t *testing.T) {
	lazy, err := DeserializeLazy([]byte{0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	assert.NoError(t, err)
	cursor := lazy.Value.(*ListCursor)
	assert.Equal(t, dontag.VOID, cursor.ItemTag())

	items, err := cursor.Materialize()
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestListCursorDetectsCountMismatch(t *testing.T) {
	// item_count claims 2 but only one INT32 payload follows.
	data := []byte{
		0x40, 0x12,
		0x00, 0x00, 0x00, 0x04,
		0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x01,
	}
	lazy, err := DeserializeLazy(data)
	assert.NoError(t, err)
	cursor := lazy.Value.(*ListCursor)

	_, ok, err := cursor.Next()
	assert.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = cursor.Next()
	assert.False(t, ok)
	assert.Error(t, err)
	var e *donerr.Error
	assert.ErrorAs(t, err, &e)
	assert.Equal(t, donerr.ErrCountMismatch, e.Code)
}
