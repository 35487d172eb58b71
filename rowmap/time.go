package rowmap

import (
	"time"

	"github.com/aidanmoss/rowgraph/row"
)

const (
	timestampLayoutFrac = "20060102T150405.000000"
	timestampLayoutWhole = "20060102T150405"
)

// weekdayAbbrev maps an ISO-ish weekday index (0=Monday .. 6=Sunday) to
// its three-letter abbreviation.
var weekdayAbbrev = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// parseTimestamp parses "YYYYMMDDThhmmss[.ffffff]", trying the
// fractional-seconds form first.
func parseTimestamp(s string) (time.Time, bool) {
	if t, err := time.Parse(timestampLayoutFrac, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(timestampLayoutWhole, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// goWeekdayToMonday0 converts Go's time.Weekday (Sunday=0) to the
// Monday=0 convention spec §6.2 / §9 uses.
func goWeekdayToMonday0(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Hour extracts the hour-of-day from the timestamp at col. On parse
// failure the row passes through unchanged (no result column), per
// spec §7's tolerant-timestamp-mapper policy.
func Hour(col, out string) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		v, ok := r.Get(col)
		if !ok {
			return []row.Row{r}, nil
		}
		s, ok := v.(string)
		if !ok {
			return []row.Row{r}, nil
		}
		t, ok := parseTimestamp(s)
		if !ok {
			return []row.Row{r}, nil
		}
		return []row.Row{r.With(out, t.Hour())}, nil
	}
}

// Weekday extracts the weekday (0=Monday..6=Sunday) from the timestamp
// at col. On parse failure the row passes through unchanged.
func Weekday(col, out string) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		v, ok := r.Get(col)
		if !ok {
			return []row.Row{r}, nil
		}
		s, ok := v.(string)
		if !ok {
			return []row.Row{r}, nil
		}
		t, ok := parseTimestamp(s)
		if !ok {
			return []row.Row{r}, nil
		}
		return []row.Row{r.With(out, goWeekdayToMonday0(t.Weekday()))}, nil
	}
}

// ToCalendarWeekday replaces the integer weekday (0=Monday) at col with
// its three-letter abbreviation (Mon..Sun).
func ToCalendarWeekday(col string) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		v, ok := r.Get(col)
		if !ok {
			return []row.Row{r}, nil
		}
		n, ok := v.(int)
		if !ok {
			return []row.Row{r}, nil
		}
		if n < 0 || n > 6 {
			return nil, &row.ColumnError{Column: col, Reason: "weekday out of range"}
		}
		return []row.Row{r.With(col, weekdayAbbrev[n])}, nil
	}
}

// TimeDifference computes (end - start) in seconds. On parse failure of
// either timestamp the row passes through unchanged.
func TimeDifference(start, end, out string) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		sv, sok := r.Get(start)
		ev, eok := r.Get(end)
		if !sok || !eok {
			return []row.Row{r}, nil
		}
		ss, sok := sv.(string)
		es, eok := ev.(string)
		if !sok || !eok {
			return []row.Row{r}, nil
		}
		st, ok1 := parseTimestamp(ss)
		et, ok2 := parseTimestamp(es)
		if !ok1 || !ok2 {
			return []row.Row{r}, nil
		}
		return []row.Row{r.With(out, et.Sub(st).Seconds())}, nil
	}
}
