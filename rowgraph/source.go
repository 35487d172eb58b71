package rowgraph

import (
	"bufio"
	"os"

	"github.com/pkg/errors"

	"github.com/aidanmoss/rowgraph/row"
	"github.com/aidanmoss/rowgraph/rowseq"
)

// Parser converts one raw line of a file-backed source into a Row. File
// sources are line-oriented; a pluggable Parser lets callers speak
// whatever per-line encoding they like (JSON, CSV, …) — see rowio for
// the default JSON-lines Parser.
type Parser func(line string) (row.Row, error)

// NamedInputs maps a name (as used by FromNamedSource) to a
// restartable row Source. Restartability matters because a Join's
// sub-graph may re-read the same named input on every parent run.
type NamedInputs map[string]rowseq.Source

// readFile implements the C2/C3 file reader: open path, scan lines,
// parse each into a Row, propagate the first parser or I/O failure.
func readFile(path string, parser Parser) rowseq.Seq {
	f, err := os.Open(path)
	if err != nil {
		return rowseq.Err(newError(IoErrorKind, "open %s", path).withCause(errors.Wrap(err, "os.Open")))
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	next := func() (row.Row, bool, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return row.Row{}, false, newError(IoErrorKind, "read %s", path).withCause(errors.Wrap(err, "bufio.Scanner"))
			}
			return row.Row{}, false, nil
		}
		r, err := parser(scanner.Text())
		if err != nil {
			return row.Row{}, false, newError(ParseErrorKind, "parse line of %s", path).withCause(errors.WithStack(err))
		}
		return r, true, nil
	}

	return rowseq.New(next, f.Close)
}

func (e *Error) withCause(cause error) *Error {
	e.Cause = cause
	return e
}

// SourceFromSlice returns a restartable Source over an already-in-memory
// slice of rows: each call yields a fresh cursor over the same rows,
// which is what a Join sub-graph needs when it re-reads a named input.
func SourceFromSlice(rows []row.Row) rowseq.Source {
	return func() (rowseq.Seq, error) {
		return rowseq.FromSlice(rows), nil
	}
}

