package rowmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanmoss/rowgraph/row"
)

func TestHour(t *testing.T) {
	out, err := Hour("ts", "hour")(row.Of("ts", "20170912T203000"))
	require.NoError(t, err)
	assert.Equal(t, 20, out[0].MustGet("hour"))
}

func TestHour_PassesThroughOnParseFailure(t *testing.T) {
	r := row.Of("ts", "not-a-timestamp")
	out, err := Hour("ts", "hour")(r)
	require.NoError(t, err)
	assert.Equal(t, []row.Row{r}, out)
}

func TestWeekday_MondayConvention(t *testing.T) {
	// 2017-09-11 was a Monday.
	out, err := Weekday("ts", "weekday")(row.Of("ts", "20170911T000000"))
	require.NoError(t, err)
	assert.Equal(t, 0, out[0].MustGet("weekday"))
}

func TestWeekday_Sunday(t *testing.T) {
	// 2017-09-17 was a Sunday.
	out, err := Weekday("ts", "weekday")(row.Of("ts", "20170917T000000"))
	require.NoError(t, err)
	assert.Equal(t, 6, out[0].MustGet("weekday"))
}

func TestToCalendarWeekday(t *testing.T) {
	out, err := ToCalendarWeekday("weekday")(row.Of("weekday", 0))
	require.NoError(t, err)
	assert.Equal(t, "Mon", out[0].MustGet("weekday"))
}

func TestToCalendarWeekday_OutOfRangeErrors(t *testing.T) {
	_, err := ToCalendarWeekday("weekday")(row.Of("weekday", 7))
	require.Error(t, err)
	var colErr *row.ColumnError
	require.ErrorAs(t, err, &colErr)
}

func TestTimeDifference(t *testing.T) {
	out, err := TimeDifference("start", "end", "dt")(row.Of(
		"start", "20170912T203000",
		"end", "20170912T203010",
	))
	require.NoError(t, err)
	assert.Equal(t, 10.0, out[0].MustGet("dt"))
}

func TestTimeDifference_PassesThroughOnParseFailure(t *testing.T) {
	r := row.Of("start", "bad", "end", "20170912T203010")
	out, err := TimeDifference("start", "end", "dt")(r)
	require.NoError(t, err)
	assert.Equal(t, []row.Row{r}, out)
}
