package reduce

import (
	"sort"

	"github.com/aidanmoss/rowgraph/row"
	"github.com/aidanmoss/rowgraph/rowseq"
)

// First emits the first row of the group unchanged and ignores the rest.
func First() Reducer {
	return func(keys []string, group GroupRows) rowseq.Seq {
		r, ok, err := group.Next()
		if err != nil {
			return rowseq.Err(err)
		}
		if !ok {
			return rowseq.Empty()
		}
		return rowseq.FromSlice([]row.Row{r})
	}
}

// Count emits one row containing the group-key columns plus column set to
// the number of rows in the group.
func Count(column string) Reducer {
	return func(keys []string, group GroupRows) rowseq.Seq {
		first, ok, err := group.Next()
		if err != nil {
			return rowseq.Err(err)
		}
		if !ok {
			return rowseq.Empty()
		}
		key, err := keyOfGroup(keys, first)
		if err != nil {
			return rowseq.Err(err)
		}

		count := 1
		for {
			_, ok, err := group.Next()
			if err != nil {
				return rowseq.Err(err)
			}
			if !ok {
				break
			}
			count++
		}

		out := keyRow(keys, key).With(column, count)
		return rowseq.FromSlice([]row.Row{out})
	}
}

// Sum emits one row containing the group-key columns plus column set to
// the sum of column across the group's rows. Values are summed as
// float64 and converted back to int64 when every addend was integral.
func Sum(column string) Reducer {
	return func(keys []string, group GroupRows) rowseq.Seq {
		first, ok, err := group.Next()
		if err != nil {
			return rowseq.Err(err)
		}
		if !ok {
			return rowseq.Empty()
		}
		key, err := keyOfGroup(keys, first)
		if err != nil {
			return rowseq.Err(err)
		}

		sum, allInt, err := addColumn(0, true, first, column)
		if err != nil {
			return rowseq.Err(err)
		}

		for {
			r, ok, err := group.Next()
			if err != nil {
				return rowseq.Err(err)
			}
			if !ok {
				break
			}
			sum, allInt, err = addColumn(sum, allInt, r, column)
			if err != nil {
				return rowseq.Err(err)
			}
		}

		var value any = sum
		if allInt {
			value = int64(sum)
		}
		out := keyRow(keys, key).With(column, value)
		return rowseq.FromSlice([]row.Row{out})
	}
}

func addColumn(sum float64, allInt bool, r row.Row, column string) (float64, bool, error) {
	v, ok := r.Get(column)
	if !ok {
		return sum, allInt, &row.ColumnError{Column: column, Reason: "missing sum column"}
	}
	switch n := v.(type) {
	case int:
		return sum + float64(n), allInt, nil
	case int64:
		return sum + float64(n), allInt, nil
	case float64:
		return sum + n, false, nil
	case float32:
		return sum + float64(n), false, nil
	default:
		return sum, allInt, &row.ColumnError{Column: column, Reason: "not a numeric value"}
	}
}

// TopN emits the n rows of the group with the largest values of column,
// in descending order, ties broken by original (insertion) order.
func TopN(column string, n int) Reducer {
	return func(keys []string, group GroupRows) rowseq.Seq {
		var rows []row.Row
		for {
			r, ok, err := group.Next()
			if err != nil {
				return rowseq.Err(err)
			}
			if !ok {
				break
			}
			rows = append(rows, r)
		}

		idx := make([]int, len(rows))
		for i := range idx {
			idx[i] = i
		}

		var sortErr error
		sort.SliceStable(idx, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			vi, _ := rows[idx[i]].Get(column)
			vj, _ := rows[idx[j]].Get(column)
			c, err := row.CompareValues(vi, vj)
			if err != nil {
				sortErr = err
				return false
			}
			return c > 0
		})
		if sortErr != nil {
			return rowseq.Err(sortErr)
		}

		if n < len(idx) {
			idx = idx[:n]
		}
		top := make([]row.Row, len(idx))
		for i, j := range idx {
			top[i] = rows[j]
		}
		return rowseq.FromSlice(top)
	}
}

// TermFrequency computes, within each group, the frequency of each
// distinct value of wordsColumn as count/totalCount (totalCount being
// the size of the group), emitting one row per distinct value containing
// the group-key columns, the word, and its frequency.
func TermFrequency(wordsColumn, resultColumn string) Reducer {
	return func(keys []string, group GroupRows) rowseq.Seq {
		var rows []row.Row
		for {
			r, ok, err := group.Next()
			if err != nil {
				return rowseq.Err(err)
			}
			if !ok {
				break
			}
			rows = append(rows, r)
		}
		if len(rows) == 0 {
			return rowseq.Empty()
		}

		key, err := keyOfGroup(keys, rows[0])
		if err != nil {
			return rowseq.Err(err)
		}

		order := make([]string, 0)
		counts := make(map[string]int)
		for _, r := range rows {
			v, ok := r.Get(wordsColumn)
			if !ok {
				return rowseq.Err(&row.ColumnError{Column: wordsColumn, Reason: "missing words column"})
			}
			w, ok := v.(string)
			if !ok {
				return rowseq.Err(&row.ColumnError{Column: wordsColumn, Reason: "words column is not a string"})
			}
			if _, seen := counts[w]; !seen {
				order = append(order, w)
			}
			counts[w]++
		}

		total := len(rows)
		out := make([]row.Row, 0, len(order))
		for _, w := range order {
			freq := float64(counts[w]) / float64(total)
			r := keyRow(keys, key).With(wordsColumn, w).With(resultColumn, freq)
			out = append(out, r)
		}
		return rowseq.FromSlice(out)
	}
}
