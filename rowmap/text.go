package rowmap

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aidanmoss/rowgraph/row"
)

var punctuationPattern = regexp.MustCompile(`[!"#$%&'()*+,\-./:;<=>?@\[\\\]^_` + "`" + `{|}~]`)

// FilterPunctuation removes ASCII punctuation characters from the string
// value at col. A row without col, or whose value at col is not a
// string, passes through unchanged.
func FilterPunctuation(col string) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		v, ok := r.Get(col)
		if !ok {
			return []row.Row{r}, nil
		}
		s, ok := v.(string)
		if !ok {
			return []row.Row{r}, nil
		}
		return []row.Row{r.With(col, punctuationPattern.ReplaceAllString(s, ""))}, nil
	}
}

// LowerCase lowercases the string value at col.
func LowerCase(col string) Mapper {
	return func(r row.Row) ([]row.Row, error) {
		v, ok := r.Get(col)
		if !ok {
			return []row.Row{r}, nil
		}
		s, ok := v.(string)
		if !ok {
			return []row.Row{r}, nil
		}
		return []row.Row{r.With(col, strings.ToLower(s))}, nil
	}
}

// Split emits one row per non-empty token of the string value at col,
// splitting on sep (a regexp pattern); an empty sep means one-or-more
// whitespace. All other columns are duplicated onto each emitted row.
func Split(col, sep string) Mapper {
	var pattern *regexp.Regexp
	if sep == "" {
		pattern = regexp.MustCompile(`\s+`)
	} else {
		pattern = regexp.MustCompile(sep)
	}

	return func(r row.Row) ([]row.Row, error) {
		v, ok := r.Get(col)
		if !ok {
			return nil, nil
		}
		s, ok := v.(string)
		if !ok {
			return nil, &row.ColumnError{Column: col, Reason: fmt.Sprintf("Split: value is %T, not string", v)}
		}

		var out []row.Row
		locs := pattern.FindAllStringIndex(s, -1)
		start := 0
		for _, loc := range locs {
			if loc[0] > start {
				out = append(out, r.With(col, s[start:loc[0]]))
			}
			start = loc[1]
		}
		if start < len(s) {
			out = append(out, r.With(col, s[start:]))
		}
		return out, nil
	}
}
