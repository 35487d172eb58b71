package rowseq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanmoss/rowgraph/row"
)

func TestFromSlice_ToSlice(t *testing.T) {
	rows := []row.Row{row.Of("a", 1), row.Of("a", 2)}
	out, err := ToSlice(FromSlice(rows))
	require.NoError(t, err)
	assert.Equal(t, rows, out)
}

func TestEmpty(t *testing.T) {
	out, err := ToSlice(Empty())
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestErr(t *testing.T) {
	boom := errors.New("boom")
	_, err := ToSlice(Err(boom))
	assert.ErrorIs(t, err, boom)
}

func TestNew_ClosePropagatesToCloseFn(t *testing.T) {
	closed := false
	seq := New(func() (row.Row, bool, error) {
		return row.Row{}, false, nil
	}, func() error {
		closed = true
		return nil
	})
	require.NoError(t, seq.Close())
	assert.True(t, closed)
}

func TestNew_NilCloseFnIsSafe(t *testing.T) {
	seq := New(func() (row.Row, bool, error) {
		return row.Row{}, false, nil
	}, nil)
	assert.NoError(t, seq.Close())
}
