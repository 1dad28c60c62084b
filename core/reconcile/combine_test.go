package reconcile

import (
	"errors"
	"testing"

	"licensee-matcher/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombinedTrack(t *testing.T) {
	track := CombinedTrack("result-individual-and-certificates")
	require.Len(t, track.Tiers, 7)
	assert.Equal(t, "1_result_on_lic_num", ResultKey(0, track.Tiers[0]))
	assert.Equal(t, "4_result_on_full_condition", ResultKey(3, track.Tiers[3]))
	assert.Equal(t, "7_result_on_lic_lname_fname_address", ResultKey(6, track.Tiers[6]))
	assert.Equal(t, "result-individual-and-certificates/7_result_on_lic_lname_fname_address.csv",
		Object(track.Prefix, ResultKey(6, track.Tiers[6])))
}

func TestCombine(t *testing.T) {
	track := CombinedTrack("")
	individual := make([]*table.Table, 7)
	certificate := make([]*table.Table, 7)
	for i := range individual {
		individual[i] = table.TextColumns("licensee", "individual_id")
		individual[i].AppendText("Jane Doe", "i1")
		certificate[i] = table.TextColumns("licensee", "certificate_id")
		certificate[i].AppendText("John Roe", "c1")
		certificate[i].AppendText("Ann Lee", "c2")
	}

	res, err := Combine(track, individual, certificate)
	require.NoError(t, err)
	require.Len(t, res.Keys, 7)

	out := res.Tables[res.Keys[0]]
	assert.Equal(t, []string{"licensee", "individual_id", "certificate_id"}, out.Names())
	require.Equal(t, 3, out.Len())
	assert.Equal(t, table.Str("Jane Doe"), out.Get(0, "licensee"), "individual rows first")
	assert.Equal(t, table.Null(), out.Get(0, "certificate_id"))
	assert.Equal(t, table.Str("c2"), out.Get(2, "certificate_id"))
}

func TestCombine_MissingResult(t *testing.T) {
	track := CombinedTrack("")
	individual := make([]*table.Table, 7)
	certificate := make([]*table.Table, 7)
	for i := range individual {
		individual[i] = table.TextColumns("licensee")
		certificate[i] = table.TextColumns("licensee")
	}
	certificate[3] = nil

	res, err := Combine(track, individual, certificate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResultMissing))
	assert.Len(t, res.Keys, 6)
	assert.NotContains(t, res.Tables, "4_result_on_full_condition")
}

func TestCombine_WrongLength(t *testing.T) {
	_, err := Combine(CombinedTrack(""), nil, nil)
	assert.Error(t, err)
}
