// Package extsort implements the Sort(keys) operator (C4): it
// materializes the input in bounded-size runs, spilling sorted runs to
// disk once the in-memory buffer fills, then performs a lazy k-way merge
// over the runs plus any in-memory residue.
package extsort

import (
	"encoding/gob"
	"io"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/aidanmoss/rowgraph/row"
	"github.com/aidanmoss/rowgraph/rowseq"
)

// DefaultBufferRows bounds the number of rows accumulated in memory
// before a run is sorted and spilled to a temporary file.
const DefaultBufferRows = 100_000

// Options configures one Sort invocation.
type Options struct {
	// BufferRows bounds the in-memory buffer size. Zero means
	// DefaultBufferRows.
	BufferRows int
	// Dir is the directory spill files are created in. Empty means
	// os.TempDir().
	Dir string
	// Log receives diagnostics (spill creation). Nil is silent.
	Log *logrus.Entry
}

func (o Options) bufferRows() int {
	if o.BufferRows > 0 {
		return o.BufferRows
	}
	return DefaultBufferRows
}

// Sort returns a Seq over upstream's rows ordered ascending by keys
// (natural per-column ordering, see row.CompareValues). Rows that compare
// equal on keys keep their input order: buffers are sorted stably and the
// merge takes the earlier run on ties. Temporary spill files
// are removed when the merge completes or when the returned Seq is
// Closed early; on error, cleanup is best-effort.
func Sort(upstream rowseq.Seq, keys []string, opts Options) rowseq.Seq {
	s := &sorter{upstream: upstream, keys: keys, opts: opts}
	return rowseq.New(s.next, s.close)
}

type run struct {
	path string
	dec  *gob.Decoder
	f    *os.File
	next row.Row
	ok   bool
}


type sorter struct {
	upstream rowseq.Seq
	keys     []string
	opts     Options

	started bool
	merged  rowseq.Seq
	runs    []*run
	err     error
}

func (s *sorter) next() (row.Row, bool, error) {
	if s.err != nil {
		return row.Row{}, false, s.err
	}
	if !s.started {
		if err := s.build(); err != nil {
			s.err = err
			s.cleanupRuns()
			return row.Row{}, false, err
		}
		s.started = true
	}
	r, ok, err := s.merged.Next()
	if err != nil {
		s.err = err
		s.cleanupRuns()
	}
	return r, ok, err
}

// build drains upstream into bounded in-memory buffers, spilling each
// full buffer as a sorted run file, then sets up the k-way merge (or a
// direct in-memory sort if everything fit in one buffer).
func (s *sorter) build() error {
	defer s.upstream.Close()

	bufSize := s.opts.bufferRows()
	var buf []row.Row
	var runs []*run

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := s.sortBuffer(buf); err != nil {
			return err
		}
		r, err := s.spill(buf)
		if err != nil {
			return err
		}
		runs = append(runs, r)
		buf = nil
		return nil
	}

	for {
		r, ok, err := s.upstream.Next()
		if err != nil {
			s.cleanupRunList(runs)
			return err
		}
		if !ok {
			break
		}
		buf = append(buf, r)
		if len(buf) >= bufSize {
			if err := flush(); err != nil {
				s.cleanupRunList(runs)
				return err
			}
		}
	}

	if len(runs) == 0 {
		// Everything fit in memory: sort in place, no spill files at all.
		if err := s.sortBuffer(buf); err != nil {
			return err
		}
		s.merged = rowseq.FromSlice(buf)
		return nil
	}

	if len(buf) > 0 {
		if err := flush(); err != nil {
			s.cleanupRunList(runs)
			return err
		}
	}

	s.runs = runs
	for _, r := range runs {
		if err := r.advance(); err != nil {
			s.cleanupRunList(runs)
			return err
		}
	}

	s.merged = rowseq.New(s.mergeNext, nil)
	return nil
}

func (s *sorter) sortBuffer(buf []row.Row) error {
	var sortErr error
	sort.SliceStable(buf, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		ki, err := row.KeyOf(buf[i], s.keys)
		if err != nil {
			sortErr = err
			return false
		}
		kj, err := row.KeyOf(buf[j], s.keys)
		if err != nil {
			sortErr = err
			return false
		}
		less, err := ki.Less(kj)
		if err != nil {
			sortErr = err
			return false
		}
		return less
	})
	return sortErr
}

func (s *sorter) spill(buf []row.Row) (*run, error) {
	dir := s.opts.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	path := dir + string(os.PathSeparator) + "rowgraph-sort-" + uuid.NewString() + ".run"

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "extsort: create spill file %s", path)
	}
	enc := gob.NewEncoder(f)
	for i := range buf {
		if err := enc.Encode(buf[i]); err != nil {
			f.Close()
			os.Remove(path)
			return nil, errors.Wrapf(err, "extsort: write spill file %s", path)
		}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, errors.Wrapf(err, "extsort: close spill file %s", path)
	}

	if s.opts.Log != nil {
		s.opts.Log.WithField("path", path).WithField("rows", len(buf)).Debug("extsort: spilled run")
	}

	rf, err := os.Open(path)
	if err != nil {
		os.Remove(path)
		return nil, errors.Wrapf(err, "extsort: reopen spill file %s", path)
	}
	return &run{path: path, f: rf, dec: gob.NewDecoder(rf)}, nil
}

func (r *run) advance() error {
	var next row.Row
	if err := r.dec.Decode(&next); err != nil {
		r.ok = false
		if err == io.EOF {
			return nil // io.EOF just means this run is exhausted
		}
		return errors.Wrapf(err, "extsort: read spill file %s", r.path)
	}
	r.next = next
	r.ok = true
	return nil
}

func (r *run) close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	os.Remove(r.path)
	r.f = nil
	return err
}

// mergeNext performs one step of the k-way merge: find the run whose
// head row sorts lowest, emit it, and advance that run.
func (s *sorter) mergeNext() (row.Row, bool, error) {
	minIdx := -1
	var minKey row.Key

	for i, r := range s.runs {
		if !r.ok {
			continue
		}
		k, err := row.KeyOf(r.next, s.keys)
		if err != nil {
			return row.Row{}, false, err
		}
		if minIdx == -1 {
			minIdx = i
			minKey = k
			continue
		}
		less, err := k.Less(minKey)
		if err != nil {
			return row.Row{}, false, err
		}
		if less {
			minIdx = i
			minKey = k
		}
	}

	if minIdx == -1 {
		s.cleanupRuns()
		return row.Row{}, false, nil
	}

	out := s.runs[minIdx].next
	if err := s.runs[minIdx].advance(); err != nil {
		return row.Row{}, false, err
	}
	return out, true, nil
}

func (s *sorter) cleanupRuns() {
	s.cleanupRunList(s.runs)
	s.runs = nil
}

func (s *sorter) cleanupRunList(runs []*run) {
	for _, r := range runs {
		r.close()
	}
}

func (s *sorter) close() error {
	if !s.started {
		return s.upstream.Close()
	}
	s.cleanupRuns()
	if s.merged != nil {
		return s.merged.Close()
	}
	return nil
}
