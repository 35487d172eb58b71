package row

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_WithPreservesOrderAndReplaces(t *testing.T) {
	r := Of("a", 1, "b", 2)
	r = r.With("a", 10)
	assert.Equal(t, []string{"a", "b"}, r.Columns())
	assert.Equal(t, 10, r.MustGet("a"))

	r = r.With("c", 3)
	assert.Equal(t, []string{"a", "b", "c"}, r.Columns())
}

func TestRow_WithDoesNotMutateOriginal(t *testing.T) {
	orig := Of("a", 1)
	next := orig.With("b", 2)

	assert.False(t, orig.Has("b"))
	assert.True(t, next.Has("b"))
	assert.Equal(t, 1, orig.Len())
	assert.Equal(t, 2, next.Len())
}

func TestRow_Without(t *testing.T) {
	r := Of("a", 1, "b", 2, "c", 3)
	r = r.Without("b")
	assert.Equal(t, []string{"a", "c"}, r.Columns())
	assert.False(t, r.Has("b"))

	same := r.Without("nope")
	assert.Equal(t, r.Columns(), same.Columns())
}

func TestRow_Project(t *testing.T) {
	r := Of("a", 1, "b", 2, "c", 3)
	p := r.Project([]string{"c", "a", "missing"})
	assert.Equal(t, []string{"c", "a"}, p.Columns())
	assert.Equal(t, 3, p.MustGet("c"))
}

func TestRow_OfPanicsOnOddArgs(t *testing.T) {
	assert.Panics(t, func() { Of("a", 1, "b") })
}

func TestRow_MustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { Of().MustGet("nope") })
}

func TestRow_Merge(t *testing.T) {
	a := Of("id", 1, "name", "alice", "age", 30)
	b := Of("id", 1, "name", "wonderland", "city", "oz")

	m := Merge([]string{"id"}, a, b, "_left", "_right")

	require.Equal(t, []string{"id", "name_left", "name_right", "age", "city"}, m.Columns())
	assert.Equal(t, 1, m.MustGet("id"))
	assert.Equal(t, "alice", m.MustGet("name_left"))
	assert.Equal(t, "wonderland", m.MustGet("name_right"))
	assert.Equal(t, 30, m.MustGet("age"))
	assert.Equal(t, "oz", m.MustGet("city"))
}

func TestRow_MergeNoCollision(t *testing.T) {
	a := Of("id", 1, "x", "a")
	b := Of("id", 1, "y", "b")

	m := Merge([]string{"id"}, a, b, "_1", "_2")
	assert.Equal(t, []string{"id", "x", "y"}, m.Columns())
}
