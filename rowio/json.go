// Package rowio provides the default row wire format (spec §6.1):
// JSON-lines encoding and decoding, via github.com/json-iterator/go for
// speed and encoding/json compatibility.
package rowio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/aidanmoss/rowgraph/row"
	"github.com/aidanmoss/rowgraph/rowseq"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONParser parses one line of JSON text into a Row. It is a
// rowgraph.Parser (same signature: func(string) (row.Row, error)),
// passable straight to rowgraph.FromFile. Object key order in the source
// JSON is preserved as the Row's column order. Numbers without a
// fractional part or exponent decode as int64; others decode as
// float64. A 2-element array of numbers decodes as row.Pair.
func JSONParser(line string) (row.Row, error) {
	iter := jsonAPI.BorrowIterator([]byte(line))
	defer jsonAPI.ReturnIterator(iter)

	r := row.New()
	iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		v, err := readValue(it)
		if err != nil {
			it.ReportError("rowio.JSONParser", err.Error())
			return false
		}
		r = r.With(field, v)
		return true
	})
	if iter.Error != nil && iter.Error != io.EOF {
		return row.Row{}, fmt.Errorf("rowio: parse JSON row: %w", iter.Error)
	}
	return r, nil
}

func readValue(it *jsoniter.Iterator) (any, error) {
	switch it.WhatIsNext() {
	case jsoniter.StringValue:
		return it.ReadString(), nil
	case jsoniter.BoolValue:
		return it.ReadBool(), nil
	case jsoniter.NilValue:
		it.ReadNil()
		return nil, nil
	case jsoniter.NumberValue:
		return readNumber(it)
	case jsoniter.ArrayValue:
		return readArray(it)
	case jsoniter.ObjectValue:
		return readNestedRow(it)
	default:
		return nil, fmt.Errorf("unsupported JSON value kind")
	}
}

func readNumber(it *jsoniter.Iterator) (any, error) {
	num := it.ReadNumber()
	s := string(num)
	if !strings.ContainsAny(s, ".eE") {
		if n, err := num.Int64(); err == nil {
			return n, nil
		}
	}
	return num.Float64()
}

func readArray(it *jsoniter.Iterator) (any, error) {
	var nums []float64
	var generic []any
	allNumeric := true

	it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
		v, err := readValue(it)
		if err != nil {
			it.ReportError("rowio.readArray", err.Error())
			return false
		}
		generic = append(generic, v)
		switch n := v.(type) {
		case int64:
			nums = append(nums, float64(n))
		case float64:
			nums = append(nums, n)
		default:
			allNumeric = false
		}
		return true
	})
	if it.Error != nil && it.Error != io.EOF {
		return nil, it.Error
	}

	if allNumeric && len(nums) == 2 {
		return row.Pair{nums[0], nums[1]}, nil
	}
	return generic, nil
}

func readNestedRow(it *jsoniter.Iterator) (any, error) {
	nested := row.New()
	var firstErr error
	it.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		v, err := readValue(it)
		if err != nil {
			firstErr = err
			return false
		}
		nested = nested.With(field, v)
		return true
	})
	if firstErr != nil {
		return nil, firstErr
	}
	if it.Error != nil && it.Error != io.EOF {
		return nil, it.Error
	}
	return nested, nil
}

// JSONEncode renders r as a single line of JSON, columns in Row order.
func JSONEncode(r row.Row) (string, error) {
	var sb strings.Builder
	stream := jsonAPI.BorrowStream(nil)
	defer jsonAPI.ReturnStream(stream)

	if err := writeRow(stream, r); err != nil {
		return "", err
	}
	if stream.Error != nil {
		return "", stream.Error
	}
	sb.Write(stream.Buffer())
	return sb.String(), nil
}

func writeRow(stream *jsoniter.Stream, r row.Row) error {
	stream.WriteObjectStart()
	for i, col := range r.Columns() {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(col)
		v, _ := r.Get(col)
		if err := writeValue(stream, v); err != nil {
			return err
		}
	}
	stream.WriteObjectEnd()
	return nil
}

func writeValue(stream *jsoniter.Stream, v any) error {
	switch x := v.(type) {
	case nil:
		stream.WriteNil()
	case string:
		stream.WriteString(x)
	case bool:
		stream.WriteBool(x)
	case int:
		stream.WriteInt(x)
	case int64:
		stream.WriteInt64(x)
	case float64:
		stream.WriteFloat64(x)
	case float32:
		stream.WriteFloat32(x)
	case row.Pair:
		stream.WriteArrayStart()
		stream.WriteFloat64(x[0])
		stream.WriteMore()
		stream.WriteFloat64(x[1])
		stream.WriteArrayEnd()
	case row.Row:
		return writeRow(stream, x)
	case []any:
		stream.WriteArrayStart()
		for i, e := range x {
			if i > 0 {
				stream.WriteMore()
			}
			if err := writeValue(stream, e); err != nil {
				return err
			}
		}
		stream.WriteArrayEnd()
	default:
		return fmt.Errorf("rowio: unsupported value type %T", v)
	}
	return nil
}

// SourceFromFile returns a restartable rowgraph.NamedInputs source that
// re-opens path and parses it as JSON-lines on every call, which is
// what a Join sub-graph needs when it re-reads the same named input on
// every run.
func SourceFromFile(path string) rowseq.Source {
	return func() (rowseq.Seq, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("rowio: open %s: %w", path, err)
		}
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

		next := func() (row.Row, bool, error) {
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return row.Row{}, false, fmt.Errorf("rowio: read %s: %w", path, err)
				}
				return row.Row{}, false, nil
			}
			r, err := JSONParser(scanner.Text())
			if err != nil {
				return row.Row{}, false, fmt.Errorf("rowio: parse %s: %w", path, err)
			}
			return r, true, nil
		}

		return rowseq.New(next, f.Close), nil
	}
}

// WriteLines writes every row of seq as one JSON line each to w,
// draining and closing seq. Returns the first error encountered from
// either the Seq or the writer.
func WriteLines(w io.Writer, seq rowseq.Seq) error {
	defer seq.Close()
	for {
		r, ok, err := seq.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		line, err := JSONEncode(r)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
}
