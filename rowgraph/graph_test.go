package rowgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanmoss/rowgraph/join"
	"github.com/aidanmoss/rowgraph/reduce"
	"github.com/aidanmoss/rowgraph/row"
	"github.com/aidanmoss/rowgraph/rowmap"
	"github.com/aidanmoss/rowgraph/rowseq"
)

func drain(t *testing.T, seq rowseq.Seq) []row.Row {
	t.Helper()
	out, err := rowseq.ToSlice(seq)
	require.NoError(t, err)
	return out
}

func TestGraph_ExtendingDoesNotMutateParent(t *testing.T) {
	base := FromNamedSource("in")
	mapped := base.Map(rowmap.Identity)

	assert.Len(t, base.ops, 1)
	assert.Len(t, mapped.ops, 2)
}

func TestGraph_SameGraphRunnableMultipleTimes(t *testing.T) {
	g := FromNamedSource("in").Map(rowmap.Identity)
	inputs := NamedInputs{"in": SourceFromSlice([]row.Row{row.Of("n", 1)})}

	seq1, err := g.Run(inputs)
	require.NoError(t, err)
	out1 := drain(t, seq1)

	seq2, err := g.Run(inputs)
	require.NoError(t, err)
	out2 := drain(t, seq2)

	assert.Equal(t, out1, out2)
}

func TestRun_MalformedGraph_NoOperations(t *testing.T) {
	g := &Graph{}
	_, err := g.Run(nil)
	require.Error(t, err)
	var rgErr *Error
	require.ErrorAs(t, err, &rgErr)
	assert.Equal(t, MalformedGraph, rgErr.Kind)
}

func TestRun_MalformedGraph_SourceNotFirst(t *testing.T) {
	g := FromNamedSource("in").Map(rowmap.Identity)
	g.ops = append(g.ops, operation{kind: opReadNamed, name: "in"})

	_, err := g.Run(NamedInputs{"in": SourceFromSlice(nil)})
	require.Error(t, err)
	var rgErr *Error
	require.ErrorAs(t, err, &rgErr)
	assert.Equal(t, MalformedGraph, rgErr.Kind)
}

func TestRun_MissingInput(t *testing.T) {
	g := FromNamedSource("in")
	_, err := g.Run(NamedInputs{})
	require.Error(t, err)
	var rgErr *Error
	require.ErrorAs(t, err, &rgErr)
	assert.Equal(t, MissingInput, rgErr.Kind)
}

func TestRun_JoinSubGraphCountMismatch(t *testing.T) {
	right := FromNamedSource("right")
	g := FromNamedSource("left").Join(join.Inner(), right, []string{"k"})
	g.joinGraphs = nil

	_, err := g.Run(NamedInputs{
		"left":  SourceFromSlice(nil),
		"right": SourceFromSlice(nil),
	})
	require.Error(t, err)
	var rgErr *Error
	require.ErrorAs(t, err, &rgErr)
	assert.Equal(t, MalformedGraph, rgErr.Kind)
}

func TestRun_WordCountEndToEnd(t *testing.T) {
	rows := []row.Row{
		row.Of("text", "the quick brown fox"),
		row.Of("text", "the lazy dog"),
		row.Of("text", "the fox runs"),
	}

	g := FromNamedSource("in").
		Map(rowmap.FilterPunctuation("text")).
		Map(rowmap.LowerCase("text")).
		Map(rowmap.Split("text", "")).
		Sort([]string{"text"}).
		Reduce(reduce.Count("count"), []string{"text"}).
		Sort([]string{"count", "text"})

	seq, err := g.Run(NamedInputs{"in": SourceFromSlice(rows)})
	require.NoError(t, err)
	out := drain(t, seq)

	counts := make(map[string]int)
	for _, r := range out {
		counts[r.MustGet("text").(string)] = r.MustGet("count").(int)
	}
	assert.Equal(t, 3, counts["the"])
	assert.Equal(t, 2, counts["fox"])
	assert.Equal(t, 1, counts["quick"])
	assert.Equal(t, 1, counts["dog"])

	// Ascending by (count, text): the lowest count-word should come first.
	assert.LessOrEqual(t, out[0].MustGet("count").(int), out[len(out)-1].MustGet("count").(int))
}

func TestRun_OuterJoinWithKeyCollision(t *testing.T) {
	left := []row.Row{
		row.Of("id", 1, "name", "a"),
		row.Of("id", 2, "name", "b"),
	}
	right := []row.Row{
		row.Of("id", 2, "name", "bb"),
		row.Of("id", 3, "name", "c"),
	}

	rightGraph := FromNamedSource("right").Sort([]string{"id"})
	g := FromNamedSource("left").
		Sort([]string{"id"}).
		Join(join.Outer(), rightGraph, []string{"id"})

	seq, err := g.Run(NamedInputs{
		"left":  SourceFromSlice(left),
		"right": SourceFromSlice(right),
	})
	require.NoError(t, err)
	out := drain(t, seq)
	require.Len(t, out, 3)

	byID := make(map[int]row.Row)
	for _, r := range out {
		byID[r.MustGet("id").(int)] = r
	}

	assert.Equal(t, "a", byID[1].MustGet("name"))
	assert.Equal(t, "c", byID[3].MustGet("name"))

	merged := byID[2]
	assert.Equal(t, "b", merged.MustGet("name_1"))
	assert.Equal(t, "bb", merged.MustGet("name_2"))
}
