// Package row defines the universal record type that flows through every
// rowgraph operator: an ordered mapping from column name to a dynamically
// typed value.
package row

import "fmt"

// Pair is a two-element numeric tuple, used for coordinates ([lon, lat])
// and anywhere else a row needs two related numbers in one column.
type Pair [2]float64

// Row is an ordered mapping from column name to value. Column names are
// unique within a Row. The zero value is an empty Row ready to use.
//
// Row is conceptually immutable: operators that want to change a Row build
// a new one (via Clone, With, Without) rather than mutating in place.
// Unmodified columns may be shared by reference between the old and new
// Row.
type Row struct {
	cols []string
	vals map[string]any
}

// New returns an empty Row.
func New() Row {
	return Row{}
}

// Len returns the number of columns in r.
func (r Row) Len() int {
	return len(r.cols)
}

// Columns returns the column names of r, in insertion order. The returned
// slice must not be modified.
func (r Row) Columns() []string {
	return r.cols
}

// Get returns the value at col and whether col is present.
func (r Row) Get(col string) (any, bool) {
	v, ok := r.vals[col]
	return v, ok
}

// MustGet returns the value at col, panicking if col is absent. Use only
// when the caller has already checked presence, or presence is a documented
// invariant.
func (r Row) MustGet(col string) any {
	v, ok := r.vals[col]
	if !ok {
		panic(fmt.Sprintf("row: column %q not present", col))
	}
	return v
}

// Has reports whether col is present in r.
func (r Row) Has(col string) bool {
	_, ok := r.vals[col]
	return ok
}

// With returns a copy of r with col set to value. If col already exists its
// value is replaced in place (order preserved); otherwise col is appended.
func (r Row) With(col string, value any) Row {
	if col == "" {
		panic("row: column name must not be empty")
	}
	out := r.clone()
	if _, exists := out.vals[col]; !exists {
		out.cols = append(out.cols, col)
	}
	out.vals[col] = value
	return out
}

// Without returns a copy of r with col removed, if present.
func (r Row) Without(col string) Row {
	if _, ok := r.vals[col]; !ok {
		return r
	}
	out := r.clone()
	delete(out.vals, col)
	for i, c := range out.cols {
		if c == col {
			out.cols = append(out.cols[:i], out.cols[i+1:]...)
			break
		}
	}
	return out
}

// clone makes a shallow copy of r: a fresh column slice and value map, but
// the values themselves are shared by reference.
func (r Row) clone() Row {
	cols := make([]string, len(r.cols))
	copy(cols, r.cols)

	vals := make(map[string]any, len(r.vals)+1)
	for k, v := range r.vals {
		vals[k] = v
	}
	return Row{cols: cols, vals: vals}
}

// Of builds a Row from alternating column/value pairs, e.g.
// Of("id", 1, "name", "Alice"). Panics on an odd number of arguments or a
// non-string column name.
func Of(kv ...any) Row {
	if len(kv)%2 != 0 {
		panic("row.Of: odd number of arguments")
	}
	r := New()
	for i := 0; i < len(kv); i += 2 {
		col, ok := kv[i].(string)
		if !ok {
			panic("row.Of: column name must be a string")
		}
		r = r.With(col, kv[i+1])
	}
	return r
}

// Project returns a copy of r containing only the named columns that are
// present; absent names are silently ignored.
func (r Row) Project(cols []string) Row {
	out := New()
	out.vals = make(map[string]any, len(cols))
	for _, c := range cols {
		if v, ok := r.vals[c]; ok {
			out.cols = append(out.cols, c)
			out.vals[c] = v
		}
	}
	return out
}

// Merge builds the union of a and b as described by the row-merge
// semantics: for each key in keys, a's value is used; for every other
// column present in both a and b, two suffixed columns are emitted; all
// remaining columns of a and b pass through unchanged.
func Merge(keys []string, a, b Row, suffixA, suffixB string) Row {
	keySet := make(map[string]bool, len(keys))
	for _, k := range keys {
		keySet[k] = true
	}

	out := New()
	out.vals = make(map[string]any, a.Len()+b.Len())

	for _, k := range keys {
		if v, ok := a.vals[k]; ok {
			out = appendCol(out, k, v)
		}
	}

	common := make(map[string]bool)
	for _, c := range a.cols {
		if keySet[c] {
			continue
		}
		if _, ok := b.vals[c]; ok {
			common[c] = true
		}
	}

	for _, c := range a.cols {
		if common[c] {
			out = appendCol(out, c+suffixA, a.vals[c])
		}
	}
	for _, c := range b.cols {
		if common[c] {
			out = appendCol(out, c+suffixB, b.vals[c])
		}
	}

	for _, c := range a.cols {
		if keySet[c] || common[c] {
			continue
		}
		out = appendCol(out, c, a.vals[c])
	}
	for _, c := range b.cols {
		if keySet[c] || common[c] {
			continue
		}
		out = appendCol(out, c, b.vals[c])
	}

	return out
}

func appendCol(r Row, col string, v any) Row {
	if _, exists := r.vals[col]; !exists {
		r.cols = append(r.cols, col)
	}
	r.vals[col] = v
	return r
}
