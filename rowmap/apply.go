package rowmap

import (
	"github.com/aidanmoss/rowgraph/row"
	"github.com/aidanmoss/rowgraph/rowseq"
)

// Apply lazily applies mapper to every row of upstream (the Map operator,
// C3/4.3): mapper(r) may return zero, one, or multiple rows, which are
// all streamed before the next upstream row is pulled.
func Apply(upstream rowseq.Seq, mapper Mapper) rowseq.Seq {
	var pending []row.Row

	next := func() (row.Row, bool, error) {
		for {
			if len(pending) > 0 {
				r := pending[0]
				pending = pending[1:]
				return r, true, nil
			}

			r, ok, err := upstream.Next()
			if err != nil {
				return row.Row{}, false, err
			}
			if !ok {
				return row.Row{}, false, nil
			}

			out, err := mapper(r)
			if err != nil {
				return row.Row{}, false, err
			}
			pending = out
		}
	}

	return rowseq.New(next, upstream.Close)
}
