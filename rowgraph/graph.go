// Package rowgraph is the façade and execution engine (C7/C8): an
// immutable, composable graph description of Read/Map/Reduce/Sort/Join
// operators, and the single-threaded pull-based executor that drives it
// against a set of named row inputs.
package rowgraph

import (
	"github.com/sirupsen/logrus"

	"github.com/aidanmoss/rowgraph/join"
	"github.com/aidanmoss/rowgraph/reduce"
	"github.com/aidanmoss/rowgraph/rowmap"
	"github.com/aidanmoss/rowgraph/rowseq"
)

type opKind int

const (
	opRead opKind = iota
	opReadNamed
	opMap
	opReduce
	opSort
	opJoin
)

type operation struct {
	kind opKind

	// opRead
	path   string
	parser Parser

	// opReadNamed
	name string

	// opMap
	mapper rowmap.Mapper

	// opReduce
	reducer reduce.Reducer

	// opSort / opReduce / opJoin
	keys []string

	// opJoin
	joiner join.Joiner
}

// Graph is an immutable DAG description (C7): an ordered operator list,
// plus one embedded sub-graph per Join operator, in declaration order.
// Every chaining method returns a new Graph; the receiver is never
// mutated, so a Graph may be run repeatedly, and may be shared as the
// right input of more than one Join.
type Graph struct {
	ops        []operation
	joinGraphs []*Graph
}

// FromNamedSource returns a new Graph whose single operation reads rows
// from the NamedInputs entry called name, resolved when Run is called.
func FromNamedSource(name string) *Graph {
	return &Graph{ops: []operation{{kind: opReadNamed, name: name}}}
}

// FromFile returns a new Graph whose single operation reads rows from
// path, one per line, using parser to convert each line to a Row.
func FromFile(path string, parser Parser) *Graph {
	return &Graph{ops: []operation{{kind: opRead, path: path, parser: parser}}}
}

// Map returns a new Graph extending g with a Map operator.
func (g *Graph) Map(mapper rowmap.Mapper) *Graph {
	return g.extend(operation{kind: opMap, mapper: mapper})
}

// Reduce returns a new Graph extending g with a Reduce operator. The
// caller contracts that g's output is already sorted ascending by keys.
func (g *Graph) Reduce(reducer reduce.Reducer, keys []string) *Graph {
	return g.extend(operation{kind: opReduce, reducer: reducer, keys: cloneKeys(keys)})
}

// Sort returns a new Graph extending g with an external-sort operator
// ordering ascending by keys.
func (g *Graph) Sort(keys []string) *Graph {
	return g.extend(operation{kind: opSort, keys: cloneKeys(keys)})
}

// Join returns a new Graph extending g with a Join operator whose right
// input is rightGraph. The caller contracts that both g and rightGraph
// are sorted ascending by keys at this point in the pipeline.
func (g *Graph) Join(joiner join.Joiner, rightGraph *Graph, keys []string) *Graph {
	ng := g.extend(operation{kind: opJoin, joiner: joiner, keys: cloneKeys(keys)})
	ng.joinGraphs = append(append([]*Graph(nil), g.joinGraphs...), rightGraph)
	return ng
}

func (g *Graph) extend(op operation) *Graph {
	return &Graph{
		ops:        append(append([]operation(nil), g.ops...), op),
		joinGraphs: append([]*Graph(nil), g.joinGraphs...),
	}
}

func cloneKeys(keys []string) []string {
	return append([]string(nil), keys...)
}

// RunOptions configures one Run invocation: diagnostics and the external
// sort's resource bounds.
type RunOptions struct {
	Log            *logrus.Entry
	SortBufferRows int
	SpillDir       string
}

// RunOption mutates a RunOptions; see WithLog, WithSortBuffer, WithSpillDir.
type RunOption func(*RunOptions)

// WithLog attaches a structured logger the executor and external sort
// use for diagnostics (graph-run start and construction, spill-file
// creation). A nil
// Log (the default) means silent.
func WithLog(log *logrus.Entry) RunOption {
	return func(o *RunOptions) { o.Log = log }
}

// WithSortBuffer overrides the external sort's in-memory row buffer size.
func WithSortBuffer(rows int) RunOption {
	return func(o *RunOptions) { o.SortBufferRows = rows }
}

// WithSpillDir overrides the directory external sort spill files are
// created in (default os.TempDir()).
func WithSpillDir(dir string) RunOption {
	return func(o *RunOptions) { o.SpillDir = dir }
}

// Run executes the graph (C8) against inputs and returns the lazy output
// row sequence. Run validates graph shape and opens the graph's sources
// but reads no rows; all row work happens as the returned Seq is pulled.
func (g *Graph) Run(inputs NamedInputs, opts ...RunOption) (rowseq.Seq, error) {
	var ro RunOptions
	for _, o := range opts {
		o(&ro)
	}
	return g.run(inputs, ro)
}

func (g *Graph) run(inputs NamedInputs, ro RunOptions) (rowseq.Seq, error) {
	if len(g.ops) == 0 {
		return nil, newError(MalformedGraph, "graph has no operations")
	}
	switch g.ops[0].kind {
	case opRead, opReadNamed:
	default:
		return nil, newError(MalformedGraph, "first operation must be a source (Read or ReadNamed)")
	}

	joinCount := 0
	for _, op := range g.ops[1:] {
		switch op.kind {
		case opRead, opReadNamed:
			return nil, newError(MalformedGraph, "a source operation may only appear first")
		case opJoin:
			joinCount++
		}
	}
	if joinCount != len(g.joinGraphs) {
		return nil, newError(MalformedGraph, "join operator count (%d) does not match attached sub-graphs (%d)", joinCount, len(g.joinGraphs))
	}

	if ro.Log != nil {
		ro.Log.WithField("operations", len(g.ops)).Debug("rowgraph: run start")
	}

	var data rowseq.Seq
	joinIdx := 0
	for _, op := range g.ops {
		switch op.kind {
		case opRead:
			data = readFile(op.path, op.parser)

		case opReadNamed:
			src, ok := inputs[op.name]
			if !ok {
				return nil, newError(MissingInput, "no input supplied for named source %q", op.name)
			}
			seq, err := src()
			if err != nil {
				return nil, newError(IoErrorKind, "open named input %q", op.name).withCause(err)
			}
			data = seq

		case opMap:
			data = rowmap.Apply(data, op.mapper)

		case opReduce:
			data = reduce.Apply(data, op.keys, op.reducer)

		case opSort:
			data = extsortApply(data, op.keys, ro)

		case opJoin:
			rightGraph := g.joinGraphs[joinIdx]
			joinIdx++
			rightSeq, err := rightGraph.run(inputs, ro)
			if err != nil {
				if data != nil {
					data.Close()
				}
				return nil, err
			}
			data = join.Apply(data, rightSeq, op.keys, op.joiner)
		}
	}

	if ro.Log != nil {
		ro.Log.Debug("rowgraph: run constructed")
	}
	return data, nil
}
