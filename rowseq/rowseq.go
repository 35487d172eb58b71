// Package rowseq defines the pull-based row cursor that every rowgraph
// operator consumes and produces: a single-threaded, cooperative
// generator abstraction in the spirit of the teacher library's stream
// state machines, but stripped to the one shape this engine actually
// needs — sequential, lazy, cancel-by-drop.
package rowseq

import "github.com/aidanmoss/rowgraph/row"

// Seq is a finite, lazily-consumed sequence of rows. Next returns the
// following row; ok is false once the sequence is exhausted with no
// error. Once Next returns a non-nil error the Seq is in a terminal
// error state and must not be pulled again. Close releases any resources
// held by the Seq (open files, spill files, in-memory buffers) and must
// be safe to call even if the Seq was never fully drained.
type Seq interface {
	Next() (row.Row, bool, error)
	Close() error
}

// Source is a restartable factory for a Seq: calling it again produces a
// fresh, independent cursor over the same underlying data. Join
// sub-graphs rely on this to re-read named inputs on every parent run.
type Source func() (Seq, error)

// noopCloser embeds into Seq implementations that own nothing.
type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// sliceSeq iterates a pre-materialized slice of rows.
type sliceSeq struct {
	noopCloser
	rows []row.Row
	i    int
}

// FromSlice returns a Seq over an already-materialized slice of rows.
func FromSlice(rows []row.Row) Seq {
	return &sliceSeq{rows: rows}
}

func (s *sliceSeq) Next() (row.Row, bool, error) {
	if s.i >= len(s.rows) {
		return row.Row{}, false, nil
	}
	r := s.rows[s.i]
	s.i++
	return r, true, nil
}

// Empty returns a Seq with no rows.
func Empty() Seq {
	return FromSlice(nil)
}

// Err returns a Seq whose first Next call fails with err.
func Err(err error) Seq {
	return &errSeq{err: err}
}

type errSeq struct {
	noopCloser
	err error
}

func (s *errSeq) Next() (row.Row, bool, error) {
	return row.Row{}, false, s.err
}

// ToSlice drains seq into a slice, closing it afterward regardless of
// outcome.
func ToSlice(seq Seq) ([]row.Row, error) {
	defer seq.Close()

	var out []row.Row
	for {
		r, ok, err := seq.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, r)
	}
}

// funcSeq adapts a next function and an optional close function into a Seq.
// It is the workhorse used by operators that need custom lazy logic
// (mapping, grouping, merging) without hand-writing a named struct for
// each one.
type funcSeq struct {
	next  func() (row.Row, bool, error)
	close func() error
}

func (f *funcSeq) Next() (row.Row, bool, error) { return f.next() }

func (f *funcSeq) Close() error {
	if f.close == nil {
		return nil
	}
	return f.close()
}

// New builds a Seq from a next function and an optional close function
// (nil meaning "nothing to release").
func New(next func() (row.Row, bool, error), closeFn func() error) Seq {
	return &funcSeq{next: next, close: closeFn}
}
