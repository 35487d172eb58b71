package row

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_GobRoundTrip(t *testing.T) {
	nested := Of("x", 1.5, "y", "inner")
	r := Of(
		"id", int64(7),
		"name", "alice",
		"coord", Pair{12.5, -3.25},
		"active", true,
		"nested", nested,
	)

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(r))

	var out Row
	require.NoError(t, gob.NewDecoder(&buf).Decode(&out))

	assert.Equal(t, r.Columns(), out.Columns())
	assert.Equal(t, r.MustGet("id"), out.MustGet("id"))
	assert.Equal(t, r.MustGet("name"), out.MustGet("name"))
	assert.Equal(t, r.MustGet("coord"), out.MustGet("coord"))
	assert.Equal(t, r.MustGet("active"), out.MustGet("active"))

	gotNested, ok := out.MustGet("nested").(Row)
	require.True(t, ok)
	assert.Equal(t, nested.Columns(), gotNested.Columns())
	assert.Equal(t, nested.MustGet("x"), gotNested.MustGet("x"))
}
