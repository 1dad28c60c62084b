package table

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// Source yields a table as a finite, single-pass sequence of batches.
// Each call to Batches starts a new pass.
type Source interface {
	Batches() iter.Seq2[*Table, error]
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() iter.Seq2[*Table, error]

// Batches implements Source.
func (f SourceFunc) Batches() iter.Seq2[*Table, error] { return f() }

// FromTable yields t as a single batch.
func FromTable(t *Table) Source {
	return SourceFunc(func() iter.Seq2[*Table, error] {
		return func(yield func(*Table, error) bool) {
			yield(t, nil)
		}
	})
}

// Chunked yields t in consecutive batches of at most size rows.
// A size of zero or less yields t whole. An empty table yields one empty batch
// so consumers still see its columns.
func Chunked(t *Table, size int) Source {
	if size <= 0 {
		return FromTable(t)
	}
	return SourceFunc(func() iter.Seq2[*Table, error] {
		return func(yield func(*Table, error) bool) {
			if t.Len() == 0 {
				yield(t, nil)
				return
			}
			for from := 0; from < t.Len(); from += size {
				if !yield(t.Slice(from, from+size), nil) {
					return
				}
			}
		}
	})
}

// CSVSource streams a delimited table in batches of at most size records,
// opening a fresh reader for every pass. Column kinds are inferred per batch.
// A size of zero or less reads the whole table as one batch.
func CSVSource(open func() (io.ReadCloser, error), size int) Source {
	return SourceFunc(func() iter.Seq2[*Table, error] {
		return func(yield func(*Table, error) bool) {
			rc, err := open()
			if err != nil {
				yield(nil, err)
				return
			}
			defer rc.Close()

			if size <= 0 {
				t, err := ReadCSV(rc)
				yield(t, err)
				return
			}

			cr := newCSVReader(rc)
			header, err := cr.Read()
			if errors.Is(err, io.EOF) {
				yield(New(), nil)
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("read header: %w", err))
				return
			}

			emitted := false
			batch := make([][]string, 0, size)
			for {
				rec, err := cr.Read()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					yield(nil, fmt.Errorf("read records: %w", err))
					return
				}
				batch = append(batch, rec)
				if len(batch) < size {
					continue
				}
				t, err := FromRecords(header, batch)
				if !yield(t, err) || err != nil {
					return
				}
				emitted = true
				batch = make([][]string, 0, size)
			}
			if len(batch) > 0 || !emitted {
				t, err := FromRecords(header, batch)
				yield(t, err)
			}
		}
	})
}
