package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanmoss/rowgraph/row"
	"github.com/aidanmoss/rowgraph/rowseq"
)

func drain(t *testing.T, seq rowseq.Seq) []row.Row {
	t.Helper()
	out, err := rowseq.ToSlice(seq)
	require.NoError(t, err)
	return out
}

func TestApply_First(t *testing.T) {
	rows := []row.Row{
		row.Of("k", 1, "v", "a"),
		row.Of("k", 1, "v", "b"),
		row.Of("k", 2, "v", "c"),
	}
	out := drain(t, Apply(rowseq.FromSlice(rows), []string{"k"}, First()))
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].MustGet("v"))
	assert.Equal(t, "c", out[1].MustGet("v"))
}

func TestApply_NoGroupLeaksBetweenReductions(t *testing.T) {
	// Determinism (the reducer must see exactly its own group, regardless
	// of whether it consumed the previous group fully).
	rows := []row.Row{
		row.Of("k", 1, "v", "a"),
		row.Of("k", 1, "v", "b"),
		row.Of("k", 1, "v", "c"),
		row.Of("k", 2, "v", "d"),
		row.Of("k", 2, "v", "e"),
	}
	out := drain(t, Apply(rowseq.FromSlice(rows), []string{"k"}, Count("n")))
	require.Len(t, out, 2)
	assert.Equal(t, 3, out[0].MustGet("n"))
	assert.Equal(t, 2, out[1].MustGet("n"))
}

func TestCount(t *testing.T) {
	rows := []row.Row{
		row.Of("k", "x", "w", "a"),
		row.Of("k", "x", "w", "b"),
	}
	out := drain(t, Apply(rowseq.FromSlice(rows), []string{"k"}, Count("count")))
	require.Len(t, out, 1)
	assert.Equal(t, "x", out[0].MustGet("k"))
	assert.Equal(t, 2, out[0].MustGet("count"))
}

func TestSum_AllIntStaysInt(t *testing.T) {
	rows := []row.Row{
		row.Of("k", "x", "n", 1),
		row.Of("k", "x", "n", 2),
		row.Of("k", "x", "n", 3),
	}
	out := drain(t, Apply(rowseq.FromSlice(rows), []string{"k"}, Sum("n")))
	require.Len(t, out, 1)
	assert.Equal(t, int64(6), out[0].MustGet("n"))
}

func TestSum_AnyFloatMakesFloat(t *testing.T) {
	rows := []row.Row{
		row.Of("k", "x", "n", 1),
		row.Of("k", "x", "n", 2.5),
	}
	out := drain(t, Apply(rowseq.FromSlice(rows), []string{"k"}, Sum("n")))
	require.Len(t, out, 1)
	assert.Equal(t, 3.5, out[0].MustGet("n"))
}

func TestSum_MissingColumnErrors(t *testing.T) {
	rows := []row.Row{row.Of("k", "x")}
	_, err := rowseq.ToSlice(Apply(rowseq.FromSlice(rows), []string{"k"}, Sum("n")))
	require.Error(t, err)
	var colErr *row.ColumnError
	require.ErrorAs(t, err, &colErr)
}

func TestTopN(t *testing.T) {
	rows := []row.Row{
		row.Of("k", "x", "score", 1.0),
		row.Of("k", "x", "score", 5.0),
		row.Of("k", "x", "score", 3.0),
		row.Of("k", "x", "score", 4.0),
	}
	out := drain(t, Apply(rowseq.FromSlice(rows), []string{"k"}, TopN("score", 2)))
	require.Len(t, out, 2)
	assert.Equal(t, 5.0, out[0].MustGet("score"))
	assert.Equal(t, 4.0, out[1].MustGet("score"))
}

func TestTermFrequency(t *testing.T) {
	rows := []row.Row{
		row.Of("doc", "d1", "word", "a"),
		row.Of("doc", "d1", "word", "b"),
		row.Of("doc", "d1", "word", "a"),
		row.Of("doc", "d1", "word", "a"),
	}
	out := drain(t, Apply(rowseq.FromSlice(rows), []string{"doc"}, TermFrequency("word", "tf")))
	require.Len(t, out, 2)

	byWord := make(map[string]float64)
	for _, r := range out {
		byWord[r.MustGet("word").(string)] = r.MustGet("tf").(float64)
	}
	assert.InDelta(t, 0.75, byWord["a"], 1e-9)
	assert.InDelta(t, 0.25, byWord["b"], 1e-9)
}

func TestApply_EmptyKeysGroupsWholeStream(t *testing.T) {
	rows := []row.Row{row.Of("n", 1), row.Of("n", 2), row.Of("n", 3)}
	out := drain(t, Apply(rowseq.FromSlice(rows), nil, Sum("n")))
	require.Len(t, out, 1)
	assert.Equal(t, int64(6), out[0].MustGet("n"))
}
