package join

import (
	"github.com/aidanmoss/rowgraph/row"
	"github.com/aidanmoss/rowgraph/rowseq"
)

const (
	defaultSuffixA = "_1"
	defaultSuffixB = "_2"
)

// Option configures the suffixes a Joiner uses for colliding column
// names (row-merge semantics §4.6). Default suffixes are "_1" and "_2".
type Option func(*suffixes)

type suffixes struct {
	a, b string
}

// WithSuffixes overrides the default column-collision suffixes.
func WithSuffixes(a, b string) Option {
	return func(s *suffixes) {
		s.a, s.b = a, b
	}
}

func newSuffixes(opts []Option) suffixes {
	s := suffixes{a: defaultSuffixA, b: defaultSuffixB}
	for _, o := range opts {
		o(&s)
	}
	return s
}

type innerJoiner struct{ suffixes }
type outerJoiner struct{ suffixes }
type leftJoiner struct{ suffixes }
type rightJoiner struct{ suffixes }

// Inner drops both left-only and right-only groups, emitting only the
// Cartesian-product merge of matched keys.
func Inner(opts ...Option) Joiner { return &innerJoiner{newSuffixes(opts)} }

// Outer emits left-only rows unmerged, right-only rows unmerged, and the
// Cartesian-product merge of matched keys.
func Outer(opts ...Option) Joiner { return &outerJoiner{newSuffixes(opts)} }

// Left emits left-only rows unmerged and drops right-only groups,
// alongside the Cartesian-product merge of matched keys.
func Left(opts ...Option) Joiner { return &leftJoiner{newSuffixes(opts)} }

// Right emits right-only rows unmerged and drops left-only groups,
// alongside the Cartesian-product merge of matched keys.
func Right(opts ...Option) Joiner { return &rightJoiner{newSuffixes(opts)} }

func (j *innerJoiner) Merge(keys []string, left, right GroupRows) rowseq.Seq {
	return cartesian(keys, left, right, j.a, j.b)
}
func (j *innerJoiner) LeftOnly(GroupRows) rowseq.Seq  { return rowseq.Empty() }
func (j *innerJoiner) RightOnly(GroupRows) rowseq.Seq { return rowseq.Empty() }

func (j *outerJoiner) Merge(keys []string, left, right GroupRows) rowseq.Seq {
	return cartesian(keys, left, right, j.a, j.b)
}
func (j *outerJoiner) LeftOnly(left GroupRows) rowseq.Seq   { return passthrough(left) }
func (j *outerJoiner) RightOnly(right GroupRows) rowseq.Seq { return passthrough(right) }

func (j *leftJoiner) Merge(keys []string, left, right GroupRows) rowseq.Seq {
	return cartesian(keys, left, right, j.a, j.b)
}
func (j *leftJoiner) LeftOnly(left GroupRows) rowseq.Seq  { return passthrough(left) }
func (j *leftJoiner) RightOnly(GroupRows) rowseq.Seq      { return rowseq.Empty() }

func (j *rightJoiner) Merge(keys []string, left, right GroupRows) rowseq.Seq {
	return cartesian(keys, left, right, j.a, j.b)
}
func (j *rightJoiner) LeftOnly(GroupRows) rowseq.Seq         { return rowseq.Empty() }
func (j *rightJoiner) RightOnly(right GroupRows) rowseq.Seq  { return passthrough(right) }

// cartesian lazily emits the merge of every (left, right) row pair,
// outer loop over left, inner loop over right, materializing the
// right-hand group (per spec §5, the worst-case join memory cost).
func cartesian(keys []string, left, right GroupRows, suffixA, suffixB string) rowseq.Seq {
	rightRows, err := drainGroup(right)
	if err != nil {
		return rowseq.Err(err)
	}

	var curLeft row.Row
	haveLeft := false
	idx := 0

	next := func() (row.Row, bool, error) {
		for {
			if haveLeft {
				if idx < len(rightRows) {
					r := row.Merge(keys, curLeft, rightRows[idx], suffixA, suffixB)
					idx++
					return r, true, nil
				}
				haveLeft = false
			}

			if len(rightRows) == 0 {
				// Drain left fully even when there is nothing to pair with,
				// so the caller sees a clean end of sequence.
				for {
					_, ok, err := left.Next()
					if err != nil {
						return row.Row{}, false, err
					}
					if !ok {
						return row.Row{}, false, nil
					}
				}
			}

			r, ok, err := left.Next()
			if err != nil {
				return row.Row{}, false, err
			}
			if !ok {
				return row.Row{}, false, nil
			}
			curLeft = r
			haveLeft = true
			idx = 0
		}
	}

	return rowseq.New(next, nil)
}

func passthrough(g GroupRows) rowseq.Seq {
	rows, err := drainGroup(g)
	if err != nil {
		return rowseq.Err(err)
	}
	return rowseq.FromSlice(rows)
}

func drainGroup(g GroupRows) ([]row.Row, error) {
	var rows []row.Row
	for {
		r, ok, err := g.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return rows, nil
		}
		rows = append(rows, r)
	}
}
