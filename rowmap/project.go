package rowmap

import "github.com/aidanmoss/rowgraph/row"

// Project retains only the named columns, ignoring any that are absent.
func Project(cols []string) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		return []row.Row{r.Project(cols)}, nil
	}
}

// Rename moves the value at from to a new column to, if from is present.
// A row without from passes through unchanged.
func Rename(from, to string) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		v, ok := r.Get(from)
		if !ok {
			return []row.Row{r}, nil
		}
		return []row.Row{r.Without(from).With(to, v)}, nil
	}
}

// Filter yields the row only when pred returns true.
func Filter(pred func(row.Row) bool) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		if pred(r) {
			return []row.Row{r}, nil
		}
		return nil, nil
	}
}
