package table

import (
	"fmt"
	"strconv"
)

// Kind is the storage type of a column.
type Kind int

const (
	// Text columns hold strings.
	Text Kind = iota
	// Number columns hold float64 values.
	Number
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Column describes a single column of a Table.
type Column struct {
	Name string
	Kind Kind
}

// Value is a nullable cell. Only the field matching the column kind is meaningful.
type Value struct {
	Str   string
	Num   float64
	Valid bool
}

// Null returns a null value.
func Null() Value { return Value{} }

// Str returns a non-null text value.
func Str(s string) Value { return Value{Str: s, Valid: true} }

// Num returns a non-null numeric value.
func Num(n float64) Value { return Value{Num: n, Valid: true} }

// Format renders v as it appears in a delimited file. Nulls render as "".
func (c Column) Format(v Value) string {
	if !v.Valid {
		return ""
	}
	if c.Kind == Number {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return v.Str
}

// Table is an ordered set of typed columns and their rows.
// Operations never modify their receiver; they return a new Table.
type Table struct {
	cols  []Column
	index map[string]int
	rows  [][]Value
}

// New creates an empty table with the given columns.
// Duplicate column names keep the first definition.
func New(cols ...Column) *Table {
	t := &Table{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		if _, ok := t.index[c.Name]; ok {
			continue
		}
		t.index[c.Name] = len(t.cols)
		t.cols = append(t.cols, c)
	}
	return t
}

// TextColumns is a shorthand for New with every column of kind Text.
func TextColumns(names ...string) *Table {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Kind: Text}
	}
	return New(cols...)
}

// Columns returns a copy of the column definitions in order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the column definition for name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.cols) }

// Row returns row i. The slice must not be modified.
func (t *Table) Row(i int) []Value { return t.rows[i] }

// Get returns the value of column name in row i, or null if the column does not exist.
func (t *Table) Get(i int, name string) Value {
	j, ok := t.index[name]
	if !ok {
		return Null()
	}
	return t.rows[i][j]
}

// Values returns a copy of every value of column name, or nil if it does not exist.
func (t *Table) Values(name string) []Value {
	j, ok := t.index[name]
	if !ok {
		return nil
	}
	out := make([]Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[j]
	}
	return out
}

// AppendRow adds a row. It panics if the row width does not match the table.
func (t *Table) AppendRow(row ...Value) {
	if len(row) != len(t.cols) {
		panic(fmt.Sprintf("table: row has %d values, table has %d columns", len(row), len(t.cols)))
	}
	r := make([]Value, len(row))
	copy(r, row)
	t.rows = append(t.rows, r)
}

// AppendText adds a row of text values, treating "" as null.
// Number columns parse their cell; unparsable cells become null.
func (t *Table) AppendText(cells ...string) {
	row := make([]Value, len(cells))
	for i, s := range cells {
		if i < len(t.cols) {
			row[i] = parseCell(s, t.cols[i].Kind)
		}
	}
	t.AppendRow(row...)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := New(t.cols...)
	out.rows = make([][]Value, len(t.rows))
	for i, row := range t.rows {
		r := make([]Value, len(row))
		copy(r, row)
		out.rows[i] = r
	}
	return out
}

// WithColumn returns a copy of the table where column col holds values.
// An existing column of the same name is replaced in place; otherwise the
// column is appended.
func (t *Table) WithColumn(col Column, values []Value) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %q has %d values, table has %d rows", col.Name, len(values), len(t.rows))
	}
	out := t.Clone()
	j, ok := out.index[col.Name]
	if ok {
		out.cols[j] = col
		for i := range out.rows {
			out.rows[i][j] = values[i]
		}
		return out, nil
	}
	out.index[col.Name] = len(out.cols)
	out.cols = append(out.cols, col)
	for i := range out.rows {
		out.rows[i] = append(out.rows[i], values[i])
	}
	return out, nil
}

// Drop returns a copy of the table without the named columns. Unknown names are ignored.
func (t *Table) Drop(names ...string) *Table {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	keep := make([]string, 0, len(t.cols))
	for _, c := range t.cols {
		if _, ok := drop[c.Name]; !ok {
			keep = append(keep, c.Name)
		}
	}
	return t.Select(keep...)
}

// Select returns a copy of the table with only the named columns, in the given order.
// Unknown names are ignored.
func (t *Table) Select(names ...string) *Table {
	idx := make([]int, 0, len(names))
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		j, ok := t.index[n]
		if !ok {
			continue
		}
		idx = append(idx, j)
		cols = append(cols, t.cols[j])
	}
	out := New(cols...)
	out.rows = make([][]Value, len(t.rows))
	for i, row := range t.rows {
		r := make([]Value, len(idx))
		for k, j := range idx {
			r[k] = row[j]
		}
		out.rows[i] = r
	}
	return out
}

// Rename returns a copy of the table with columns renamed by mapping.
// Columns not in mapping keep their name. A rename whose target already
// exists in the table is skipped so no column is lost.
func (t *Table) Rename(mapping map[string]string) *Table {
	out := t.Clone()
	for j, c := range out.cols {
		to, ok := mapping[c.Name]
		if !ok || to == c.Name {
			continue
		}
		if _, exists := out.index[to]; exists {
			continue
		}
		delete(out.index, c.Name)
		out.index[to] = j
		out.cols[j].Name = to
	}
	return out
}

// Slice returns a copy of rows [from, to).
func (t *Table) Slice(from, to int) *Table {
	if from < 0 {
		from = 0
	}
	if to > len(t.rows) {
		to = len(t.rows)
	}
	out := New(t.cols...)
	for i := from; i < to; i++ {
		out.AppendRow(t.rows[i]...)
	}
	return out
}
