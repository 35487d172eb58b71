package rowmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanmoss/rowgraph/row"
)

func TestFilterPunctuation(t *testing.T) {
	out, err := FilterPunctuation("text")(row.Of("text", "Hello, world!"))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Hello world", out[0].MustGet("text"))
}

func TestFilterPunctuation_PassesThroughMissingColumn(t *testing.T) {
	r := row.Of("other", 1)
	out, err := FilterPunctuation("text")(r)
	require.NoError(t, err)
	assert.Equal(t, []row.Row{r}, out)
}

func TestLowerCase(t *testing.T) {
	out, err := LowerCase("text")(row.Of("text", "HeLLo"))
	require.NoError(t, err)
	assert.Equal(t, "hello", out[0].MustGet("text"))
}

func TestSplit_SuppressesEmptyTokens(t *testing.T) {
	out, err := Split("text", "")(row.Of("text", "  a  b c  "))
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].MustGet("text"))
	assert.Equal(t, "b", out[1].MustGet("text"))
	assert.Equal(t, "c", out[2].MustGet("text"))
}

func TestSplit_CustomSeparator(t *testing.T) {
	out, err := Split("csv", ",")(row.Of("csv", "a,,b"))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].MustGet("csv"))
	assert.Equal(t, "b", out[1].MustGet("csv"))
}

func TestSplit_NonStringErrors(t *testing.T) {
	_, err := Split("text", "")(row.Of("text", 5))
	require.Error(t, err)
	var colErr *row.ColumnError
	require.ErrorAs(t, err, &colErr)
}

func TestSplit_MissingColumnYieldsNoRows(t *testing.T) {
	out, err := Split("text", "")(row.Of("other", 1))
	require.NoError(t, err)
	assert.Nil(t, out)
}
