package reconcile

import (
	"fmt"

	"licensee-matcher/core/table"
)

// Suffixes tag non-key columns present on both sides of a join.
const (
	SuffixSource = "_fairtrade"
	SuffixReport = "_reinsw"
)

// Join performs an inner equi-join of left and right on keys.
//
// The result holds every left column, then every right column except the
// keys. A non-key column present on both sides is suffixed with SuffixSource
// on the left and SuffixReport on the right. Rows are ordered by left row,
// then by right row. Key cells compare by value, nulls equal to each other;
// the left key value is kept. An output name produced twice, such as a
// suffixed name that already exists, fails with a DuplicateColumnError.
func Join(left, right *table.Table, keys []string) (*table.Table, error) {
	if missing := left.Missing(keys); len(missing) > 0 {
		return nil, &table.MissingColumnsError{Missing: missing}
	}
	rightIndex, err := right.IndexBy(keys)
	if err != nil {
		return nil, err
	}
	leftKeys, err := left.KeyColumns(keys)
	if err != nil {
		return nil, err
	}

	isKey := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		isKey[k] = struct{}{}
	}

	var cols []table.Column
	for _, c := range left.Columns() {
		if _, key := isKey[c.Name]; !key && right.Has(c.Name) {
			c.Name += SuffixSource
		}
		cols = append(cols, c)
	}
	var rightCols []int
	for j, c := range right.Columns() {
		if _, key := isKey[c.Name]; key {
			continue
		}
		if left.Has(c.Name) {
			c.Name += SuffixReport
		}
		cols = append(cols, c)
		rightCols = append(rightCols, j)
	}

	names := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, dup := names[c.Name]; dup {
			return nil, &DuplicateColumnError{Column: c.Name}
		}
		names[c.Name] = struct{}{}
	}

	out := table.New(cols...)
	row := make([]table.Value, 0, len(cols))
	for i := 0; i < left.Len(); i++ {
		for _, r := range rightIndex.Lookup(left, i, leftKeys) {
			row = append(row[:0], left.Row(i)...)
			rr := right.Row(r)
			for _, j := range rightCols {
				row = append(row, rr[j])
			}
			out.AppendRow(row...)
		}
	}
	return out, nil
}

// MatchTier runs a single tier: an inner join of the licensing dataset with
// every batch of the report on the tier's keys, batch results concatenated in
// order. Address tiers deduplicate and drop null keys on both sides before the
// join, and again on the joined rows across all batches, so a key tuple
// repeated in a later batch is not emitted twice.
//
// Batching bounds memory only: the result equals the single-pass result up to
// row order.
func MatchTier(tier Tier, left *table.Table, right table.Source) (*table.Table, error) {
	if missing := left.Missing(tier.Keys); len(missing) > 0 {
		return nil, &TierKeyMissingError{Tier: tier.Name, Side: SideSource, Missing: missing}
	}

	var err error
	if tier.DedupAddress {
		if left, err = dedupNonNull(left, tier.Keys); err != nil {
			return nil, fmt.Errorf("tier %s: %w", tier.Name, err)
		}
	}

	var parts []*table.Table
	emitted := make(table.KeySet)
	for batch, err := range right.Batches() {
		if err != nil {
			return nil, fmt.Errorf("tier %s: read report batch: %w", tier.Name, err)
		}
		if missing := batch.Missing(tier.Keys); len(missing) > 0 {
			return nil, &TierKeyMissingError{Tier: tier.Name, Side: SideReport, Missing: missing}
		}

		if tier.DedupAddress {
			if batch, err = dedupNonNull(batch, tier.Keys); err != nil {
				return nil, fmt.Errorf("tier %s: %w", tier.Name, err)
			}
		}
		joined, err := Join(left, batch, tier.Keys)
		if err != nil {
			return nil, fmt.Errorf("tier %s: %w", tier.Name, err)
		}
		if tier.DedupAddress {
			if joined, err = joined.DropNull(tier.Keys); err != nil {
				return nil, fmt.Errorf("tier %s: %w", tier.Name, err)
			}
			if joined, err = joined.DedupSeen(tier.Keys, emitted); err != nil {
				return nil, fmt.Errorf("tier %s: %w", tier.Name, err)
			}
		}
		parts = append(parts, joined)
	}

	if len(parts) == 0 {
		return Join(left, table.New(left.Columns()...).Select(tier.Keys...), tier.Keys)
	}
	return table.Concat(parts...), nil
}

// dedupNonNull keeps the first row of every key tuple and drops rows with a null key.
func dedupNonNull(t *table.Table, keys []string) (*table.Table, error) {
	t, err := t.Dedup(keys)
	if err != nil {
		return nil, err
	}
	return t.DropNull(keys)
}
