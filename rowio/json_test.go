package rowio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanmoss/rowgraph/row"
)

func TestJSONParser_Basic(t *testing.T) {
	r, err := JSONParser(`{"doc_id": "d1", "count": 3, "score": 1.5, "ok": true, "note": null}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc_id", "count", "score", "ok", "note"}, r.Columns())
	assert.Equal(t, "d1", r.MustGet("doc_id"))
	assert.Equal(t, int64(3), r.MustGet("count"))
	assert.Equal(t, 1.5, r.MustGet("score"))
	assert.Equal(t, true, r.MustGet("ok"))
	assert.Nil(t, r.MustGet("note"))
}

func TestJSONParser_CoordinatePairBecomesPair(t *testing.T) {
	r, err := JSONParser(`{"start": [37.6, 55.7]}`)
	require.NoError(t, err)
	assert.Equal(t, row.Pair{37.6, 55.7}, r.MustGet("start"))
}

func TestJSONParser_NestedObjectBecomesRow(t *testing.T) {
	r, err := JSONParser(`{"meta": {"a": 1, "b": "x"}}`)
	require.NoError(t, err)
	nested, ok := r.MustGet("meta").(row.Row)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, nested.Columns())
	assert.Equal(t, int64(1), nested.MustGet("a"))
}

func TestJSONEncode_RoundTrip(t *testing.T) {
	r := row.Of("doc_id", "d1", "count", int64(3), "score", 1.5, "coord", row.Pair{1, 2})
	line, err := JSONEncode(r)
	require.NoError(t, err)

	back, err := JSONParser(line)
	require.NoError(t, err)
	assert.Equal(t, r.Columns(), back.Columns())
	assert.Equal(t, r.MustGet("doc_id"), back.MustGet("doc_id"))
	assert.Equal(t, r.MustGet("count"), back.MustGet("count"))
	assert.Equal(t, r.MustGet("score"), back.MustGet("score"))
	assert.Equal(t, r.MustGet("coord"), back.MustGet("coord"))
}
