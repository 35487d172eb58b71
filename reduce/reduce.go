// Package reduce implements the grouped reduction protocol (C5): a
// Reducer is invoked once per contiguous keyed group of a pre-sorted
// stream and yields zero or more output rows for that group.
package reduce

import (
	"github.com/aidanmoss/rowgraph/row"
	"github.com/aidanmoss/rowgraph/rowseq"
)

// GroupRows is the bounded view over one keyed group that a Reducer
// consumes. Reading past the last row of the group yields ok=false,
// exactly as if the stream had ended — the Reducer cannot tell a group
// boundary from genuine end of input, nor does it need to.
type GroupRows interface {
	Next() (row.Row, bool, error)
}

// Reducer transforms one keyed group into an output row sequence. It may
// consume rows fully, partially, or not at all; Apply guarantees
// that rows belonging to the next group are never produced until the
// Reducer's own output Seq has been fully drained.
type Reducer func(keys []string, group GroupRows) rowseq.Seq

// Apply wraps upstream (which the caller guarantees is already sorted by
// keys) into the reduced output sequence described in spec §4.4: the
// input is partitioned into maximal contiguous groups, and reducer is
// invoked once per group.
func Apply(upstream rowseq.Seq, keys []string, reducer Reducer) rowseq.Seq {
	grouper := rowseq.NewGrouper(upstream, keys)
	var current rowseq.Seq

	next := func() (row.Row, bool, error) {
		for {
			if current != nil {
				r, ok, err := current.Next()
				if err != nil {
					return row.Row{}, false, err
				}
				if ok {
					return r, true, nil
				}
				current.Close()
				current = nil
			}

			_, group, ok, err := grouper.Next()
			if err != nil {
				return row.Row{}, false, err
			}
			if !ok {
				return row.Row{}, false, nil
			}

			current = reducer(keys, group)
		}
	}

	closeFn := func() error {
		if current != nil {
			current.Close()
		}
		return grouper.Close()
	}

	return rowseq.New(next, closeFn)
}

// keyRow builds a Row containing only the group-key columns and values,
// used by the aggregate built-in reducers (Count, Sum, TermFrequency)
// which emit one summary row per group.
func keyRow(keys []string, key row.Key) row.Row {
	r := row.New()
	for i, k := range keys {
		r = r.With(k, key[i])
	}
	return r
}

func keyOfGroup(keys []string, first row.Row) (row.Key, error) {
	return row.KeyOf(first, keys)
}
