package row

import (
	"bytes"
	"encoding/gob"
)

func init() {
	gob.Register(Pair{})
	gob.Register(Row{})
	gob.Register(int(0))
	gob.Register(int64(0))
	gob.Register(float64(0))
	gob.Register(bool(false))
	gob.Register(string(""))
}

// gobRow mirrors Row with exported fields so it can ride through
// encoding/gob, which cannot see Row's own unexported cols/vals.
type gobRow struct {
	Cols []string
	Vals map[string]any
}

// GobEncode lets Row (and values nested inside other rows) round-trip
// through gob, which the external sort's spill files rely on.
func (r Row) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	g := gobRow{Cols: r.cols, Vals: r.vals}
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode is the inverse of GobEncode.
func (r *Row) GobDecode(data []byte) error {
	var g gobRow
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return err
	}
	r.cols = g.Cols
	r.vals = g.Vals
	return nil
}
