package rowseq

import "github.com/aidanmoss/rowgraph/row"

// Peeker adds one-row lookahead to a Seq, which both Grouper and every
// merge-style consumer (sort-merge join) need to decide whether the next
// upstream row belongs to the current group before committing to consume
// it.
type Peeker struct {
	seq     Seq
	peeked  *row.Row
	have    bool
	err     error
	errSeen bool
}

// NewPeeker wraps seq with one-row lookahead.
func NewPeeker(seq Seq) *Peeker {
	return &Peeker{seq: seq}
}

// Peek returns the next row without consuming it. Calling Peek repeatedly
// without an intervening Next returns the same row.
func (p *Peeker) Peek() (row.Row, bool, error) {
	if p.errSeen {
		return row.Row{}, false, p.err
	}
	if !p.have {
		r, ok, err := p.seq.Next()
		if err != nil {
			p.err = err
			p.errSeen = true
			return row.Row{}, false, err
		}
		p.have = true
		if ok {
			p.peeked = &r
		} else {
			p.peeked = nil
		}
	}
	if p.peeked == nil {
		return row.Row{}, false, nil
	}
	return *p.peeked, true, nil
}

// Next returns and consumes the next row.
func (p *Peeker) Next() (row.Row, bool, error) {
	r, ok, err := p.Peek()
	if err != nil || !ok {
		return r, ok, err
	}
	p.have = false
	p.peeked = nil
	return r, true, nil
}

// Close releases the underlying Seq.
func (p *Peeker) Close() error {
	return p.seq.Close()
}

// Grouper partitions an upstream Seq, which the caller guarantees is
// already sorted by keys, into the maximal contiguous runs of equal-key
// rows described in spec §3 (Keyed group). It is the shared machinery
// behind both Reduce (one group at a time) and the Join merge skeleton
// (two parallel Groupers, one per side).
type Grouper struct {
	p       *Peeker
	keys    []string
	started bool
	curKey  row.Key
}

// NewGrouper returns a Grouper over seq, grouping by keys.
func NewGrouper(seq Seq, keys []string) *Grouper {
	return &Grouper{p: NewPeeker(seq), keys: keys}
}

// Next advances to the following group, first discarding any rows left
// unconsumed in the current group (so a Reducer that stops early, such as
// First, never leaks rows into the next group). It returns ok=false once
// the upstream is exhausted.
func (g *Grouper) Next() (row.Key, *GroupReader, bool, error) {
	if err := g.drainCurrent(); err != nil {
		return nil, nil, false, err
	}

	r, ok, err := g.p.Peek()
	if err != nil {
		return nil, nil, false, err
	}
	if !ok {
		return nil, nil, false, nil
	}

	key, err := row.KeyOf(r, g.keys)
	if err != nil {
		return nil, nil, false, err
	}

	g.started = true
	g.curKey = key
	return key, &GroupReader{g: g, key: key}, true, nil
}

func (g *Grouper) drainCurrent() error {
	if !g.started {
		return nil
	}
	for {
		r, ok, err := g.p.Peek()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		key, err := row.KeyOf(r, g.keys)
		if err != nil {
			return err
		}
		if !key.Equal(g.curKey) {
			return nil
		}
		if _, _, err := g.p.Next(); err != nil {
			return err
		}
	}
}

// Close releases the underlying upstream Seq.
func (g *Grouper) Close() error {
	return g.p.Close()
}

// GroupReader yields the rows of exactly one keyed group and stops (ok
// becomes false) at the group boundary, without disturbing rows of the
// next group. It may be read fully, partially, or not at all; the
// Grouper reconciles any unread tail on the following Next call.
type GroupReader struct {
	g   *Grouper
	key row.Key
}

// Next returns the following row of this group, or ok=false at the group
// boundary (which is not necessarily the end of the whole stream).
func (gr *GroupReader) Next() (row.Row, bool, error) {
	r, ok, err := gr.g.p.Peek()
	if err != nil || !ok {
		return row.Row{}, false, err
	}
	key, err := row.KeyOf(r, gr.g.keys)
	if err != nil {
		return row.Row{}, false, err
	}
	if !key.Equal(gr.key) {
		return row.Row{}, false, nil
	}
	_, _, _ = gr.g.p.Next()
	return r, true, nil
}
