package reconcile

import (
	"strings"

	"licensee-matcher/core/normalize"
	"licensee-matcher/core/table"
)

// Merge names a canonical column and the source-suffixed variants it is rebuilt from.
type Merge struct {
	Column   string
	Variants []string
}

// MergeOf returns the Merge of column from its two source-suffixed variants.
func MergeOf(column string) Merge {
	return Merge{Column: column, Variants: []string{column + SuffixSource, column + SuffixReport}}
}

// DefaultMerges are applied to every tier result.
var DefaultMerges = []Merge{
	MergeOf(normalize.FieldLastName),
	MergeOf(normalize.FieldFirstName),
	MergeOf(normalize.FieldSuburb),
	MergeOf(normalize.FieldState),
	MergeOf(normalize.FieldPostCode),
	MergeOf(normalize.FieldLicensee),
}

// Consolidate collapses source-suffixed variant columns back into their
// canonical column.
//
// For each merge, the variants present in t must all be text or all be
// numbers. Text variants are concatenated row by row, nulls counting as "";
// two non-empty values therefore concatenate ("Doe" + "Smith" = "DoeSmith").
// Numeric variants are summed, nulls skipped. A row where every variant is
// null stays null. The canonical column is written, and the variants dropped,
// only when at least one row has a non-empty, non-zero value; otherwise the
// variants are left untouched.
//
// Variants mixing text and numbers are left untouched and reported as a
// *ConsolidationError in the returned slice. Such errors are not fatal.
func Consolidate(t *table.Table, merges []Merge) (*table.Table, []error) {
	var warnings []error
	out := t
	for _, m := range merges {
		var present []table.Column
		for _, v := range m.Variants {
			if c, ok := out.Column(v); ok {
				present = append(present, c)
			}
		}
		if len(present) == 0 {
			continue
		}

		kind := present[0].Kind
		mixed := false
		for _, c := range present[1:] {
			if c.Kind != kind {
				mixed = true
			}
		}
		if mixed {
			err := &ConsolidationError{Column: m.Column}
			for _, c := range present {
				err.Variants = append(err.Variants, c.Name)
				err.Kinds = append(err.Kinds, c.Kind)
			}
			warnings = append(warnings, err)
			continue
		}

		values, truthy := combine(out, present, kind)
		if !truthy {
			continue
		}
		next, err := out.WithColumn(table.Column{Name: m.Column, Kind: kind}, values)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		names := make([]string, len(present))
		for i, c := range present {
			names[i] = c.Name
		}
		out = next.Drop(names...)
	}
	if out == t {
		out = t.Clone()
	}
	return out, warnings
}

// combine merges the variant columns row by row and reports whether any
// merged value is truthy.
func combine(t *table.Table, variants []table.Column, kind table.Kind) ([]table.Value, bool) {
	columns := make([][]table.Value, len(variants))
	for i, c := range variants {
		columns[i] = t.Values(c.Name)
	}

	values := make([]table.Value, t.Len())
	truthy := false
	for row := range values {
		var (
			b     strings.Builder
			sum   float64
			valid bool
		)
		for _, col := range columns {
			v := col[row]
			if !v.Valid {
				continue
			}
			valid = true
			if kind == table.Number {
				sum += v.Num
			} else {
				b.WriteString(v.Str)
			}
		}
		if !valid {
			continue
		}
		if kind == table.Number {
			values[row] = table.Num(sum)
			truthy = truthy || sum != 0
		} else {
			values[row] = table.Str(b.String())
			truthy = truthy || b.Len() > 0
		}
	}
	return values, truthy
}
