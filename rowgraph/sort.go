package rowgraph

import (
	"github.com/aidanmoss/rowgraph/extsort"
	"github.com/aidanmoss/rowgraph/rowseq"
)

// extsortApply wires a graph's Sort operator to the external-sort
// package (C4), threading through the run's resource bounds and logger.
func extsortApply(data rowseq.Seq, keys []string, ro RunOptions) rowseq.Seq {
	return extsort.Sort(data, keys, extsort.Options{
		BufferRows: ro.SortBufferRows,
		Dir:        ro.SpillDir,
		Log:        ro.Log,
	})
}
