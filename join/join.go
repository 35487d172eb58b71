// Package join implements the sort-merge join algorithm (C6) over two
// key-grouped streams, and the four join strategies described in spec
// §4.6: inner, outer, left, right.
package join

import (
	"fmt"

	"github.com/aidanmoss/rowgraph/row"
	"github.com/aidanmoss/rowgraph/rowseq"
)

// GroupRows is the bounded view over one keyed group a Joiner consumes,
// identical in shape to reduce.GroupRows.
type GroupRows interface {
	Next() (row.Row, bool, error)
}

// Joiner combines two co-keyed groups (the left and right side of one
// matching key) into merged output rows. Built-in joiners additionally
// carry the suffixes row.Merge uses for colliding column names.
type Joiner interface {
	// Merge is invoked once per matched key, with both sides' groups.
	Merge(keys []string, left, right GroupRows) rowseq.Seq
	// LeftOnly is invoked once per key present only on the left; a
	// strategy that drops such groups returns an empty Seq.
	LeftOnly(left GroupRows) rowseq.Seq
	// RightOnly is invoked once per key present only on the right; a
	// strategy that drops such groups returns an empty Seq.
	RightOnly(right GroupRows) rowseq.Seq
}

// ErrUnknownJoinStrategy is raised on the first pull from a Join operator
// whose Joiner is not one of the four recognized strategies.
var ErrUnknownJoinStrategy = fmt.Errorf("join: unknown join strategy")

// Apply runs the sort-merge join skeleton of spec §4.6 over left and
// right, both of which the caller guarantees are already sorted ascending
// by keys. joiner must be one of the values returned by Inner, Outer,
// Left, or Right; any other implementation causes the returned Seq's
// first Next call to fail with ErrUnknownJoinStrategy.
func Apply(left, right rowseq.Seq, keys []string, joiner Joiner) rowseq.Seq {
	lg := rowseq.NewGrouper(left, keys)
	rg := rowseq.NewGrouper(right, keys)

	m := &merger{
		keys:   keys,
		joiner: joiner,
		lg:     lg,
		rg:     rg,
	}
	return rowseq.New(m.next, m.close)
}

// merger drives the parallel walk of both groupers described in spec
// §4.6: the left stream is advanced through groups in order; at each
// step the current left and right group keys are compared and the
// matching strategy hook is invoked.
type merger struct {
	keys   []string
	joiner Joiner

	lg, rg *rowseq.Grouper

	lKey  row.Key
	lGrp  *rowseq.GroupReader
	lOK   bool
	lInit bool

	rKey  row.Key
	rGrp  *rowseq.GroupReader
	rOK   bool
	rInit bool

	current  rowseq.Seq
	strategy bool // true once the joiner's strategy has been validated
}

func isKnownStrategy(j Joiner) bool {
	switch j.(type) {
	case *innerJoiner, *outerJoiner, *leftJoiner, *rightJoiner:
		return true
	default:
		return false
	}
}

func (m *merger) ensureLeft() error {
	if m.lInit {
		return nil
	}
	key, grp, ok, err := m.lg.Next()
	if err != nil {
		return err
	}
	m.lKey, m.lGrp, m.lOK, m.lInit = key, grp, ok, true
	return nil
}

func (m *merger) ensureRight() error {
	if m.rInit {
		return nil
	}
	key, grp, ok, err := m.rg.Next()
	if err != nil {
		return err
	}
	m.rKey, m.rGrp, m.rOK, m.rInit = key, grp, ok, true
	return nil
}

func (m *merger) advanceLeft() { m.lInit = false }
func (m *merger) advanceRight() { m.rInit = false }

func (m *merger) next() (row.Row, bool, error) {
	if !m.strategy {
		if !isKnownStrategy(m.joiner) {
			return row.Row{}, false, ErrUnknownJoinStrategy
		}
		m.strategy = true
	}

	for {
		if m.current != nil {
			r, ok, err := m.current.Next()
			if err != nil {
				return row.Row{}, false, err
			}
			if ok {
				return r, true, nil
			}
			m.current.Close()
			m.current = nil
		}

		if err := m.ensureLeft(); err != nil {
			return row.Row{}, false, err
		}
		if err := m.ensureRight(); err != nil {
			return row.Row{}, false, err
		}

		switch {
		case !m.lOK && !m.rOK:
			return row.Row{}, false, nil

		case !m.lOK:
			m.current = m.joiner.RightOnly(m.rGrp)
			m.advanceRight()

		case !m.rOK:
			m.current = m.joiner.LeftOnly(m.lGrp)
			m.advanceLeft()

		default:
			c, err := m.lKey.Compare(m.rKey)
			if err != nil {
				return row.Row{}, false, err
			}
			switch {
			case c == 0:
				m.current = m.joiner.Merge(m.keys, m.lGrp, m.rGrp)
				m.advanceLeft()
				m.advanceRight()
			case c < 0:
				m.current = m.joiner.LeftOnly(m.lGrp)
				m.advanceLeft()
			default:
				m.current = m.joiner.RightOnly(m.rGrp)
				m.advanceRight()
			}
		}
	}
}

func (m *merger) close() error {
	if m.current != nil {
		m.current.Close()
	}
	lerr := m.lg.Close()
	rerr := m.rg.Close()
	if lerr != nil {
		return lerr
	}
	return rerr
}
