package normalize

import (
	"strings"
	"testing"

	"licensee-matcher/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		licensee  table.Value
		wantFirst table.Value
		wantLast  table.Value
	}{
		{"TwoTokens", table.Str("Nannan Cheng"), table.Str("Nannan"), table.Str("Cheng")},
		{"SingleToken", table.Str("Prince"), table.Str("Prince"), table.Null()},
		{"Null", table.Null(), table.Null(), table.Null()},
		{"Empty", table.Str(""), table.Null(), table.Null()},
		{"Blank", table.Str("   "), table.Null(), table.Null()},
		{"RemainderKeepsInnerSpaces", table.Str("Mary Anne  Smith"), table.Str("Mary"), table.Str("Anne  Smith")},
		{"WhitespaceRun", table.Str("  Jane \t Doe"), table.Str("Jane"), table.Str("Doe")},
		{"TrailingSpace", table.Str("Prince "), table.Str("Prince"), table.Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitName(tt.licensee)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		address table.Value
		want    Address
	}{
		{
			name:    "WellFormed",
			address: table.Str("10 OXFORD ST, EPPING, NSW 2121"),
			want:    Address{Suburb: table.Str("EPPING"), State: table.Str("NSW"), PostCode: table.Str("2121")},
		},
		{
			name:    "SuburbAndState",
			address: table.Str("EPPING, NSW 2121"),
			want:    Address{Suburb: table.Str("EPPING"), State: table.Str("NSW"), PostCode: table.Str("2121")},
		},
		{
			name:    "NoComma",
			address: table.Str("NSW 2121"),
			want:    Address{State: table.Str("NSW"), PostCode: table.Str("2121")},
		},
		{
			name:    "StateOnly",
			address: table.Str("1 MAIN RD, PARRAMATTA, NSW"),
			want:    Address{Suburb: table.Str("PARRAMATTA"), State: table.Str("NSW")},
		},
		{
			name:    "DoubleSpaceBeforePostcode",
			address: table.Str("A, B, NSW  2000"),
			want:    Address{Suburb: table.Str("B"), State: table.Str("NSW"), PostCode: table.Str("2000")},
		},
		{
			name:    "TabBeforePostcode",
			address: table.Str("EPPING, NSW\t2121"),
			want:    Address{Suburb: table.Str("EPPING"), State: table.Str("NSW"), PostCode: table.Str("2121")},
		},
		{
			name:    "EmptyLastSegment",
			address: table.Str("1 MAIN RD, PARRAMATTA, "),
			want:    Address{Suburb: table.Str("PARRAMATTA"), State: table.Str("")},
		},
		{
			name:    "Null",
			address: table.Null(),
			want:    Address{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAddress(tt.address))
		})
	}
}

// TestParseAddress_RoundTrip tests that a parsed well-formed address re-joins to its tail.
func TestParseAddress_RoundTrip(t *testing.T) {
	for _, in := range []string{"10 OXFORD ST, EPPING, NSW 2121", "2/4 KING ST, NEWTOWN, NSW 2042"} {
		a := ParseAddress(table.Str(in))
		rejoined := a.Suburb.Str + ", " + a.State.Str + " " + a.PostCode.Str
		assert.True(t, strings.HasSuffix(in, rejoined), in)
	}
}

func TestParseAddresses_Positional(t *testing.T) {
	out := ParseAddresses([]table.Value{table.Null(), table.Str("X, Y, VIC 3000")})
	require.Len(t, out, 2)
	assert.Equal(t, Address{}, out[0])
	assert.Equal(t, table.Str("VIC"), out[1].State)
}

func certificates() *table.Table {
	t := table.TextColumns("Licensee", "Address", "Licence Number", "Status")
	t.AppendText("Jane Doe", "10 OXFORD ST, EPPING, NSW 2121", "L1", "current")
	t.AppendText("Prince", "", "L2", "")
	return t
}

func TestPreprocess(t *testing.T) {
	out := Preprocess(certificates())

	for _, f := range []string{FieldLicensee, FieldLicenseNumber, FieldFirstName, FieldLastName, FieldSuburb, FieldState, FieldPostCode} {
		assert.True(t, out.Has(f), f)
	}
	assert.True(t, out.Has("Address"), "unmapped columns pass through")
	assert.True(t, out.Has("Status"))
	assert.False(t, out.Has(LabelLicensee))

	assert.Equal(t, table.Str("Jane"), out.Get(0, FieldFirstName))
	assert.Equal(t, table.Str("Doe"), out.Get(0, FieldLastName))
	assert.Equal(t, table.Str("EPPING"), out.Get(0, FieldSuburb))
	assert.Equal(t, table.Str("NSW"), out.Get(0, FieldState))
	assert.Equal(t, table.Str("2121"), out.Get(0, FieldPostCode))

	assert.Equal(t, table.Str("Prince"), out.Get(1, FieldFirstName))
	assert.Equal(t, table.Null(), out.Get(1, FieldLastName))
	assert.Equal(t, table.Null(), out.Get(1, FieldSuburb))
	assert.Equal(t, table.Null(), out.Get(1, FieldState))

	t.Run("Idempotent", func(t *testing.T) {
		assert.Equal(t, out, Preprocess(out))
	})

	t.Run("KeepsExistingStructuredFields", func(t *testing.T) {
		in := table.TextColumns("Licensee", "First Name")
		in.AppendText("Jane Doe", "Janet")
		in.AppendText("John Roe", "")
		out := Preprocess(in)
		assert.Equal(t, table.Str("Janet"), out.Get(0, FieldFirstName))
		assert.Equal(t, table.Str("John"), out.Get(1, FieldFirstName))
	})

	t.Run("NonTextLicensee", func(t *testing.T) {
		in := table.New(table.Column{Name: "Licensee", Kind: table.Number})
		in.AppendRow(table.Num(42))
		out := Preprocess(in)
		assert.Equal(t, table.Null(), out.Get(0, FieldFirstName))
		assert.Equal(t, table.Null(), out.Get(0, FieldSuburb))
	})
}

func TestEnsureFields(t *testing.T) {
	report := table.TextColumns(FieldLicenseNumber, FieldLicensee, FieldFirstName)
	report.AppendText("L1", "Jane Doe", "Jane")

	out := EnsureFields(report)
	assert.Equal(t, []string{FieldLicenseNumber, FieldLicensee, FieldFirstName, FieldLastName, FieldSuburb, FieldState, FieldPostCode}, out.Names())
	assert.Equal(t, table.Null(), out.Get(0, FieldSuburb))
	assert.False(t, report.Has(FieldSuburb))
}

func TestMapSchema(t *testing.T) {
	in := table.TextColumns("Licence Number", "Postcode", "Other")
	assert.Equal(t, []string{FieldLicenseNumber, FieldPostCode, "Other"}, MapSchema(in).Names())
}
