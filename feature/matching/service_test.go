package matching_test

import (
	"context"
	"strings"
	"testing"

	"licensee-matcher/core/dataset"
	"licensee-matcher/core/table"
	"licensee-matcher/feature/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	certificateCSV = `Licence Number,Licensee,Address,Class
L1,Jane Doe,"1 Main St, EPPING, NSW 2121",A
L2,John Roe,"2 High St, NEWTOWN, NSW 2042",B
`
	individualCSV = `Licence Number,Licensee,Address
L3,Ann Lee,"3 Long Rd, RYDE, NSW 2112"
`
	reportCSV = `license_number,licensee,first_name,last_name,suburb,state,post_code,licence_status
L1,Jane Doe,Jane,Doe,EPPING,NSW,2121,current
L2,John Roe,John,Roe,ASHFIELD,NSW,2131,current
L3,Ann Lee,Ann,Lee,RYDE,NSW,2112,expired
`
)

func testConfig() matching.Config {
	return matching.Config{
		Backend:           matching.BackendLocal,
		CertificateName:   "certificate.csv",
		IndividualName:    "individual.csv",
		ReportName:        "reinsw_report.csv",
		CertificatePrefix: "result_cer_reinsw",
		IndividualPrefix:  "result_inv_reinsw",
		CombinedPrefix:    "result-individual-and-certificates",
		Workers:           2,
	}
}

func seed(t *testing.T, files map[string]string) *dataset.LocalStore {
	t.Helper()
	store := dataset.NewLocalStore(t.TempDir())
	for name, body := range files {
		require.NoError(t, store.Put(context.Background(), name, strings.NewReader(body), int64(len(body))))
	}
	return store
}

func allInputs() map[string]string {
	return map[string]string{
		"certificate.csv":   certificateCSV,
		"individual.csv":    individualCSV,
		"reinsw_report.csv": reportCSV,
	}
}

func outputRows(report *matching.Report) map[string]int {
	rows := make(map[string]int, len(report.Outputs))
	for _, o := range report.Outputs {
		rows[o.Object] = o.Rows
	}
	return rows
}

func TestService_Match(t *testing.T) {
	ctx := context.Background()
	store := seed(t, allInputs())
	svc := matching.NewService(store, testConfig(), zap.NewNop(), nil)

	report, err := svc.Match(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.Empty(t, report.Failures)
	require.Len(t, report.Outputs, 14)

	rows := outputRows(report)
	assert.Equal(t, 2, rows["result_cer_reinsw/1_match_cert_and_imis_with_license_number.csv"])
	assert.Equal(t, 1, rows["result_cer_reinsw/4_match_cert_and_imis_with_licence_number_licencee_fname_lname_address.csv"])
	assert.Equal(t, 1, rows["result_cer_reinsw/7_match_cert_and_imis_licencee_fname_lname_address.csv"])
	assert.Equal(t, 1, rows["result_inv_reinsw/1_match_inv_and_imis_with_license_number.csv"])
	assert.Equal(t, 1, rows["result_inv_reinsw/4_match_inv_and_imis_licence_number_licencee_fname_lname_address.csv"])

	assert.Equal(t, "cert", report.Outputs[0].Track)
	assert.Equal(t, 1, report.Outputs[0].Tier)

	written, err := dataset.Load(ctx, store, "result_cer_reinsw/4_match_cert_and_imis_with_licence_number_licencee_fname_lname_address.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"licensee", "state", "suburb", "license_number", "first_name", "last_name", "post_code"}, written.Names()[:7])
	assert.Equal(t, table.Str("EPPING"), written.Get(0, "suburb"))
	assert.Equal(t, table.Str("current"), written.Get(0, "licence_status"))
	assert.True(t, written.Has("Class"))
}

func TestService_MatchChunked(t *testing.T) {
	ctx := context.Background()
	whole, err := matching.NewService(seed(t, allInputs()), testConfig(), nil, nil).Match(ctx)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.ChunkSize = 1
	chunked, err := matching.NewService(seed(t, allInputs()), cfg, nil, nil).Match(ctx)
	require.NoError(t, err)

	assert.Equal(t, outputRows(whole), outputRows(chunked))
}

func TestService_MatchPartialInputs(t *testing.T) {
	ctx := context.Background()

	t.Run("OneDatasetMissing", func(t *testing.T) {
		files := allInputs()
		delete(files, "individual.csv")
		svc := matching.NewService(seed(t, files), testConfig(), nil, nil)

		report, err := svc.Match(ctx)
		require.NoError(t, err)
		assert.Len(t, report.Outputs, 7)
		assert.Contains(t, report.Failures, "inv")
	})

	t.Run("BothDatasetsMissing", func(t *testing.T) {
		svc := matching.NewService(seed(t, map[string]string{"reinsw_report.csv": reportCSV}), testConfig(), nil, nil)

		_, err := svc.Match(ctx)
		assert.ErrorIs(t, err, dataset.ErrNotFound)
	})

	t.Run("ReportMissing", func(t *testing.T) {
		files := allInputs()
		delete(files, "reinsw_report.csv")
		svc := matching.NewService(seed(t, files), testConfig(), nil, nil)

		_, err := svc.Match(ctx)
		assert.ErrorIs(t, err, dataset.ErrNotFound)
		assert.ErrorContains(t, err, "reinsw_report.csv")
	})
}

func TestService_RefreshReport(t *testing.T) {
	ctx := context.Background()
	store := seed(t, allInputs())
	cfg := testConfig()
	cfg.ReportCacheSeconds = 3600
	svc := matching.NewService(store, cfg, nil, nil)
	invTier1 := "result_inv_reinsw/1_match_inv_and_imis_with_license_number.csv"

	_, err := svc.Match(ctx)
	require.NoError(t, err)

	withoutL3 := strings.Join(strings.Split(reportCSV, "\n")[:3], "\n") + "\n"
	require.NoError(t, store.Put(ctx, "reinsw_report.csv", strings.NewReader(withoutL3), int64(len(withoutL3))))

	report, err := svc.Match(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, outputRows(report)[invTier1], "cached report is reused")

	svc.RefreshReport()
	report, err = svc.Match(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, outputRows(report)[invTier1])
}

func TestService_Combine(t *testing.T) {
	ctx := context.Background()
	store := seed(t, allInputs())
	svc := matching.NewService(store, testConfig(), nil, nil)

	_, err := svc.Match(ctx)
	require.NoError(t, err)

	report, err := svc.Combine(ctx)
	require.NoError(t, err)
	assert.Empty(t, report.Failures)
	require.Len(t, report.Outputs, 7)

	rows := outputRows(report)
	assert.Equal(t, 3, rows["result-individual-and-certificates/1_result_on_lic_num.csv"])
	assert.Equal(t, 2, rows["result-individual-and-certificates/4_result_on_full_condition.csv"])

	combined, err := dataset.Load(ctx, store, "result-individual-and-certificates/1_result_on_lic_num.csv")
	require.NoError(t, err)
	assert.Equal(t, table.Str("L3"), combined.Get(0, "license_number"), "individual rows first")
}

func TestService_CombineMissingResults(t *testing.T) {
	ctx := context.Background()
	svc := matching.NewService(seed(t, allInputs()), testConfig(), nil, nil)

	_, err := svc.Combine(ctx)
	assert.ErrorIs(t, err, dataset.ErrNotFound)
}

func TestService_Count(t *testing.T) {
	ctx := context.Background()
	files := allInputs()
	files["notes.txt"] = "not a dataset"
	svc := matching.NewService(seed(t, files), testConfig(), nil, nil)

	report, err := svc.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []matching.DatasetCount{
		{Name: "certificate.csv", Records: 2},
		{Name: "individual.csv", Records: 1},
		{Name: "reinsw_report.csv", Records: 3},
	}, report.Datasets)
	assert.Empty(t, report.Failures)
}

func TestService_RunsWithoutHistory(t *testing.T) {
	svc := matching.NewService(seed(t, nil), testConfig(), nil, nil)
	_, err := svc.Runs(context.Background(), 10)
	assert.ErrorIs(t, err, matching.ErrHistoryDisabled)
}
