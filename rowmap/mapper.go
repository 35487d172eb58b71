// Package rowmap is the built-in mapper library (C9): small, pure
// row-level functions, each implementing the Mapper contract of spec
// §6.2 (a function from one Row to zero or more Rows).
package rowmap

import "github.com/aidanmoss/rowgraph/row"

// Mapper is a pure function from one input row to zero or more output
// rows. Zero rows implements filtering; multiple rows implements
// splitting; both are the same mechanism as spec §4.3 describes.
type Mapper func(r row.Row) ([]row.Row, error)

// Identity yields the row unchanged.
func Identity(r row.Row) ([]row.Row, error) {
	return []row.Row{r}, nil
}
