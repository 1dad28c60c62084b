package reconcile

import (
	"errors"
	"testing"

	"licensee-matcher/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolidate_Text(t *testing.T) {
	tests := []struct {
		name   string
		source string
		report string
		want   table.Value
	}{
		{"EmptyIsIdentity", "Doe", "", table.Str("Doe")},
		{"NullIsIdentity", "", "Smith", table.Str("Smith")},
		{"BothNonEmptyConcatenate", "Doe", "Smith", table.Str("DoeSmith")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := table.TextColumns("id", "last_name_fairtrade", "last_name_reinsw")
			in.AppendRow(table.Str("1"), table.Str(tt.source), cell(tt.report))

			out, warnings := Consolidate(in, []Merge{MergeOf("last_name")})
			assert.Empty(t, warnings)
			assert.Equal(t, []string{"id", "last_name"}, out.Names())
			assert.Equal(t, tt.want, out.Get(0, "last_name"))
		})
	}
}

// cell treats "" as null, like a decoded empty cell.
func cell(s string) table.Value {
	if s == "" {
		return table.Null()
	}
	return table.Str(s)
}

func TestConsolidate_Numbers(t *testing.T) {
	in := table.New(
		table.Column{Name: "post_code_fairtrade", Kind: table.Number},
		table.Column{Name: "post_code_reinsw", Kind: table.Number},
	)
	in.AppendRow(table.Num(2121), table.Null())
	in.AppendRow(table.Num(1), table.Num(2))
	in.AppendRow(table.Null(), table.Null())

	out, warnings := Consolidate(in, DefaultMerges)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"post_code"}, out.Names())
	assert.Equal(t, table.Num(2121), out.Get(0, "post_code"))
	assert.Equal(t, table.Num(3), out.Get(1, "post_code"))
	assert.Equal(t, table.Null(), out.Get(2, "post_code"))
}

func TestConsolidate_MixedKindsAreKept(t *testing.T) {
	in := table.New(
		table.Column{Name: "post_code_fairtrade", Kind: table.Text},
		table.Column{Name: "post_code_reinsw", Kind: table.Number},
		table.Column{Name: "state_fairtrade", Kind: table.Text},
	)
	in.AppendRow(table.Str("2121"), table.Num(2121), table.Str("NSW"))

	out, warnings := Consolidate(in, DefaultMerges)
	require.Len(t, warnings, 1)
	assert.True(t, errors.Is(warnings[0], ErrMixedKinds))

	var cerr *ConsolidationError
	require.ErrorAs(t, warnings[0], &cerr)
	assert.Equal(t, "post_code", cerr.Column)
	assert.Equal(t, []string{"post_code_fairtrade", "post_code_reinsw"}, cerr.Variants)

	assert.Equal(t, []string{"post_code_fairtrade", "post_code_reinsw", "state"}, out.Names(), "a single present variant still consolidates")
}

func TestConsolidate_NothingTruthyKeepsVariants(t *testing.T) {
	in := table.TextColumns("suburb_fairtrade", "suburb_reinsw")
	in.AppendRow(table.Null(), table.Null())
	in.AppendRow(table.Str(""), table.Null())

	out, warnings := Consolidate(in, DefaultMerges)
	assert.Empty(t, warnings)
	assert.Equal(t, []string{"suburb_fairtrade", "suburb_reinsw"}, out.Names())
}

func TestConsolidate_DoesNotModifyInput(t *testing.T) {
	in := table.TextColumns("first_name_fairtrade", "first_name_reinsw")
	in.AppendText("Jane", "")

	_, _ = Consolidate(in, DefaultMerges)
	assert.Equal(t, []string{"first_name_fairtrade", "first_name_reinsw"}, in.Names())
}
