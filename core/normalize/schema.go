package normalize

import (
	"strconv"
	"strings"

	"licensee-matcher/core/table"
)

// ColumnMapping maps native labels onto the canonical schema.
var ColumnMapping = map[string]string{
	LabelLicenseNumber: FieldLicenseNumber,
	LabelLicensee:      FieldLicensee,
	LabelFirstName:     FieldFirstName,
	LabelLastName:      FieldLastName,
	LabelPostCode:      FieldPostCode,
	LabelSuburb:        FieldSuburb,
	LabelState:         FieldState,
}

// MapSchema renames native labels to canonical names. Unmapped columns pass through.
func MapSchema(t *table.Table) *table.Table {
	return t.Rename(ColumnMapping)
}

// Preprocess derives the structured name and address fields of a licensing
// dataset from its Licensee and Address columns, maps it onto the canonical
// schema and guarantees every derived field exists.
//
// A structured field that is already present is kept; only its null cells are
// filled from the free text. Preprocess is therefore idempotent.
func Preprocess(t *table.Table) *table.Table {
	out := t.Clone()

	licensee := firstColumn(out, FieldLicensee, LabelLicensee)
	first := make([]table.Value, out.Len())
	last := make([]table.Value, out.Len())
	for i, v := range textValues(out, licensee) {
		first[i], last[i] = SplitName(v)
	}
	out = fill(out, FieldFirstName, LabelFirstName, first)
	out = fill(out, FieldLastName, LabelLastName, last)

	address := firstColumn(out, "address", LabelAddress)
	parsed := ParseAddresses(textValues(out, address))
	suburb := make([]table.Value, len(parsed))
	state := make([]table.Value, len(parsed))
	postCode := make([]table.Value, len(parsed))
	for i, a := range parsed {
		suburb[i], state[i], postCode[i] = a.Suburb, a.State, a.PostCode
	}
	out = fill(out, FieldSuburb, LabelSuburb, suburb)
	out = fill(out, FieldState, LabelState, state)
	out = fill(out, FieldPostCode, LabelPostCode, postCode)

	return EnsureFields(MapSchema(out))
}

// firstColumn returns the first of names present in t, or "".
func firstColumn(t *table.Table, names ...string) string {
	for _, n := range names {
		if t.Has(n) {
			return n
		}
	}
	return ""
}

// textValues returns the values of a text column. Missing or non-text
// columns yield nulls.
func textValues(t *table.Table, name string) []table.Value {
	col, ok := t.Column(name)
	if !ok || col.Kind != table.Text {
		return make([]table.Value, t.Len())
	}
	return t.Values(name)
}

// fill writes derived values into the canonical column if present, else into
// the native label column, keeping existing non-null cells.
func fill(t *table.Table, canonical, label string, derived []table.Value) *table.Table {
	name := firstColumn(t, canonical, label)
	if name == "" {
		name = label
	}

	col, ok := t.Column(name)
	if !ok {
		return set(t, table.Column{Name: name, Kind: table.Text}, derived)
	}

	values := t.Values(name)
	for i, v := range values {
		if v.Valid || !derived[i].Valid {
			continue
		}
		if col.Kind == table.Number {
			// Keep the column numeric; text that does not parse stays null.
			if n, err := strconv.ParseFloat(strings.TrimSpace(derived[i].Str), 64); err == nil {
				values[i] = table.Num(n)
			}
			continue
		}
		values[i] = derived[i]
	}
	return set(t, col, values)
}

// set replaces or appends a column whose values were derived row for row from t.
func set(t *table.Table, col table.Column, values []table.Value) *table.Table {
	out, err := t.WithColumn(col, values)
	if err != nil {
		panic("normalize: " + err.Error())
	}
	return out
}
