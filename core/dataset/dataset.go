package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"licensee-matcher/core/table"
)

// countBatch is the number of records held in memory while counting.
const countBatch = 10000

// Load reads the named dataset into a table.
func Load(ctx context.Context, store Store, name string) (*table.Table, error) {
	rc, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	t, err := table.ReadCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return t, nil
}

// Batches streams the named dataset in batches of at most size records.
func Batches(ctx context.Context, store Store, name string, size int) table.Source {
	return table.CSVSource(func() (io.ReadCloser, error) {
		return store.Open(ctx, name)
	}, size)
}

// Save encodes t and stores it under name.
func Save(ctx context.Context, store Store, name string, t *table.Table) error {
	var buf bytes.Buffer
	if err := table.WriteCSV(&buf, t); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return store.Put(ctx, name, &buf, int64(buf.Len()))
}

// Count returns the number of records in the named dataset, header excluded.
func Count(ctx context.Context, store Store, name string) (int, error) {
	n := 0
	for batch, err := range Batches(ctx, store, name, countBatch).Batches() {
		if err != nil {
			return 0, fmt.Errorf("count %s: %w", name, err)
		}
		n += batch.Len()
	}
	return n, nil
}
