package row

import (
	"fmt"
)

// Key is the tuple of values extracted from a Row at a declared ordered
// list of key columns. Two Keys are Equal when every component is equal
// under Go ==; a Key is comparable with Less for sort/join ordering.
type Key []any

// KeyOf extracts the tuple of values at cols from r. It returns a
// *ColumnError if any col is absent.
func KeyOf(r Row, cols []string) (Key, error) {
	k := make(Key, len(cols))
	for i, c := range cols {
		v, ok := r.Get(c)
		if !ok {
			return nil, &ColumnError{Column: c, Reason: "missing key column"}
		}
		k[i] = v
	}
	return k, nil
}

// Equal reports whether a and b have the same length and componentwise
// equal values, using Go equality (==) per component.
func (a Key) Equal(b Key) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Less reports whether a sorts strictly before b under natural per-column
// ordering (see CompareValues). It returns a *ColumnError if any component
// pair is not comparable.
func (a Key) Less(b Key) (bool, error) {
	c, err := a.Compare(b)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// Compare returns -1, 0 or 1 as a is less than, equal to, or greater than
// b, comparing componentwise under natural ordering and stopping at the
// first non-zero component.
func (a Key) Compare(b Key) (int, error) {
	if len(a) != len(b) {
		return 0, &ColumnError{Reason: "key arity mismatch"}
	}
	for i := range a {
		c, err := CompareValues(a[i], b[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// ColumnError reports a problem with a specific row column: a missing key
// column, or values that cannot be compared against each other.
type ColumnError struct {
	Column string
	Reason string
}

func (e *ColumnError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row: column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("row: %s", e.Reason)
}

// CompareValues compares two dynamic row values under natural ordering:
// numeric types compare numerically (ints and floats may be compared
// against each other), strings compare lexicographically, bools compare
// false < true. Values of incomparable kinds (or non-orderable kinds, such
// as Pair or Row) yield a *ColumnError.
func CompareValues(a, b any) (int, error) {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}

	as, asok := a.(string)
	bs, bsok := b.(string)
	if asok && bsok {
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		default:
			return 0, nil
		}
	}

	ab, abok := a.(bool)
	bb, bbok := b.(bool)
	if abok && bbok {
		switch {
		case ab == bb:
			return 0, nil
		case !ab && bb:
			return -1, nil
		default:
			return 1, nil
		}
	}

	return 0, &ColumnError{Reason: fmt.Sprintf("values %v (%T) and %v (%T) are not comparable", a, a, b, b)}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
