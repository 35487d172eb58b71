package rowmap

import (
	"math"

	"github.com/aidanmoss/rowgraph/row"
)

// earthRadiusKM is the Earth radius used by Haversine, matching spec §6.2.
const earthRadiusKM = 6373.0

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Division computes out = row[num] / row[den] when both are present.
func Division(num, den, out string) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		nv, nok := r.Get(num)
		dv, dok := r.Get(den)
		if !nok || !dok {
			return []row.Row{r}, nil
		}
		n, ok1 := numeric(nv)
		d, ok2 := numeric(dv)
		if !ok1 || !ok2 {
			return []row.Row{r}, nil
		}
		return []row.Row{r.With(out, n/d)}, nil
	}
}

// Logarithm computes out = ln(row[col]).
func Logarithm(col, out string) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		v, ok := r.Get(col)
		if !ok {
			return []row.Row{r}, nil
		}
		n, ok := numeric(v)
		if !ok {
			return []row.Row{r}, nil
		}
		return []row.Row{r.With(out, math.Log(n))}, nil
	}
}

// Product computes out = product of row[c] for c in cols.
func Product(cols []string, out string) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		product := 1.0
		for _, c := range cols {
			v, ok := r.Get(c)
			if !ok {
				return nil, &row.ColumnError{Column: c, Reason: "Product: missing column"}
			}
			n, ok := numeric(v)
			if !ok {
				return nil, &row.ColumnError{Column: c, Reason: "Product: non-numeric column"}
			}
			product *= n
		}
		return []row.Row{r.With(out, product)}, nil
	}
}

// Haversine computes the great-circle distance, in kilometres, between
// the two coordinate pairs ([lon, lat]) at columns a and b.
func Haversine(a, b, out string) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		av, aok := r.Get(a)
		bv, bok := r.Get(b)
		if !aok || !bok {
			return []row.Row{r}, nil
		}
		ap, ok1 := av.(row.Pair)
		bp, ok2 := bv.(row.Pair)
		if !ok1 || !ok2 {
			return []row.Row{r}, nil
		}

		aLon, aLat := ap[0], ap[1]
		bLon, bLat := bp[0], bp[1]

		aLatRad := aLat * math.Pi / 180
		aLonRad := aLon * math.Pi / 180
		bLatRad := bLat * math.Pi / 180
		bLonRad := bLon * math.Pi / 180

		deltaLat := bLatRad - aLatRad
		deltaLon := bLonRad - aLonRad

		numerator := 1 - math.Cos(deltaLat) +
			math.Cos(aLatRad)*math.Cos(bLatRad)*(1-math.Cos(deltaLon))

		dist := 2 * earthRadiusKM * math.Asin(math.Sqrt(numerator/2))
		return []row.Row{r.With(out, dist)}, nil
	}
}

// Normalize multiplies row[col] by coef in place.
func Normalize(col string, coef float64) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		v, ok := r.Get(col)
		if !ok {
			return []row.Row{r}, nil
		}
		n, ok := numeric(v)
		if !ok {
			return []row.Row{r}, nil
		}
		return []row.Row{r.With(col, n*coef)}, nil
	}
}
