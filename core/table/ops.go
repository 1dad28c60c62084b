package table

import (
	"fmt"
	"strconv"
	"strings"
)

// MissingColumnsError is returned by key operations when the table lacks key columns.
type MissingColumnsError struct {
	Missing []string
}

// Error implements the error interface.
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Missing, ", "))
}

// Missing returns the names in keys that are not columns of the table, in order.
func (t *Table) Missing(keys []string) []string {
	var missing []string
	for _, k := range keys {
		if !t.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

func (t *Table) keyIndex(keys []string) ([]int, error) {
	if missing := t.Missing(keys); len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}
	idx := make([]int, len(keys))
	for i, k := range keys {
		idx[i] = t.index[k]
	}
	return idx, nil
}

// rowKey encodes the key tuple of row i. Nulls encode equal to each other and
// distinct from every non-null value; numbers and text compare by their
// formatted form. Each cell is length-prefixed so no two tuples share a key.
func (t *Table) rowKey(i int, idx []int) string {
	var b strings.Builder
	for _, j := range idx {
		v := t.rows[i][j]
		if !v.Valid {
			b.WriteByte('-')
			continue
		}
		s := t.cols[j].Format(v)
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}
	return b.String()
}

// Dedup returns a copy keeping only the first row for each key tuple.
// With no keys every column is part of the tuple.
func (t *Table) Dedup(keys []string) (*Table, error) {
	return t.DedupSeen(keys, make(KeySet, len(t.rows)))
}

// KeySet records key tuples already kept by DedupSeen.
type KeySet map[string]struct{}

// DedupSeen is Dedup for a table read in batches: rows whose key tuple is in
// seen are dropped as well, and every kept tuple is added to seen.
func (t *Table) DedupSeen(keys []string, seen KeySet) (*Table, error) {
	if len(keys) == 0 {
		keys = t.Names()
	}
	idx, err := t.keyIndex(keys)
	if err != nil {
		return nil, err
	}
	out := New(t.cols...)
	for i := range t.rows {
		k := t.rowKey(i, idx)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out.AppendRow(t.rows[i]...)
	}
	return out, nil
}

// DropNull returns a copy without rows that have a null in any of the key columns.
func (t *Table) DropNull(keys []string) (*Table, error) {
	idx, err := t.keyIndex(keys)
	if err != nil {
		return nil, err
	}
	out := New(t.cols...)
rows:
	for _, row := range t.rows {
		for _, j := range idx {
			if !row[j].Valid {
				continue rows
			}
		}
		out.AppendRow(row...)
	}
	return out, nil
}

// Index groups row numbers by key tuple.
type Index struct {
	t    *Table
	idx  []int
	rows map[string][]int
}

// IndexBy builds an Index over keys.
func (t *Table) IndexBy(keys []string) (*Index, error) {
	idx, err := t.keyIndex(keys)
	if err != nil {
		return nil, err
	}
	ix := &Index{t: t, idx: idx, rows: make(map[string][]int, len(t.rows))}
	for i := range t.rows {
		k := t.rowKey(i, idx)
		ix.rows[k] = append(ix.rows[k], i)
	}
	return ix, nil
}

// Lookup returns the row numbers of the indexed table whose key tuple equals
// the key tuple of row i of other, where otherKeys resolves the same key names in other.
func (ix *Index) Lookup(other *Table, i int, otherKeys []int) []int {
	return ix.rows[other.rowKey(i, otherKeys)]
}

// KeyColumns resolves keys to column positions.
func (t *Table) KeyColumns(keys []string) ([]int, error) {
	return t.keyIndex(keys)
}

// Concat stacks tables vertically. The result has the union of columns in
// first-seen order; cells of columns a table lacks are null. A column that is
// Text in one table and Number in another becomes Text.
func Concat(tables ...*Table) *Table {
	var cols []Column
	pos := make(map[string]int)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.cols {
			j, ok := pos[c.Name]
			if !ok {
				pos[c.Name] = len(cols)
				cols = append(cols, c)
				continue
			}
			if cols[j].Kind != c.Kind {
				cols[j].Kind = Text
			}
		}
	}

	out := New(cols...)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, row := range t.rows {
			r := make([]Value, len(cols))
			for j, c := range t.cols {
				k := pos[c.Name]
				v := row[j]
				if v.Valid && c.Kind == Number && cols[k].Kind == Text {
					v = Str(c.Format(v))
				}
				r[k] = v
			}
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Reorder returns a copy whose columns start with the preferred names that
// exist in the table, followed by the remaining columns in their current order.
func (t *Table) Reorder(preferred []string) *Table {
	names := make([]string, 0, len(t.cols))
	used := make(map[string]struct{}, len(t.cols))
	for _, n := range preferred {
		if _, dup := used[n]; dup || !t.Has(n) {
			continue
		}
		used[n] = struct{}{}
		names = append(names, n)
	}
	for _, c := range t.cols {
		if _, ok := used[c.Name]; !ok {
			names = append(names, c.Name)
		}
	}
	return t.Select(names...)
}
