package matching

// Backend values for Config.Backend.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Config holds the dataset names, output prefixes and tuning of a match run.
type Config struct {
	// Backend selects where datasets live: "s3" (the storage bucket) or "local" (DataDir).
	Backend string `mapstructure:"backend" default:"s3"`
	// DataDir is the root directory of the local backend.
	DataDir string `mapstructure:"data_dir" default:"data"`
	// CertificateName is the certificate licensing dataset.
	CertificateName string `mapstructure:"certificate_name" default:"certificate.csv"`
	// IndividualName is the individual licensing dataset.
	IndividualName string `mapstructure:"individual_name" default:"individual.csv"`
	// ReportName is the authority report both datasets are matched against.
	ReportName string `mapstructure:"report_name" default:"reinsw_report.csv"`
	// CertificatePrefix namespaces the certificate track results.
	CertificatePrefix string `mapstructure:"certificate_prefix" default:"result_cer_reinsw"`
	// IndividualPrefix namespaces the individual track results.
	IndividualPrefix string `mapstructure:"individual_prefix" default:"result_inv_reinsw"`
	// CombinedPrefix namespaces the combined results.
	CombinedPrefix string `mapstructure:"combined_prefix" default:"result-individual-and-certificates"`
	// ChunkSize is the number of report rows joined at a time by address
	// tiers. Zero joins the whole report in one pass.
	ChunkSize int `mapstructure:"chunk_size" default:"0"`
	// Workers bounds concurrent dataset reads and writes.
	Workers int `mapstructure:"workers" default:"4"`
	// ReportCacheSeconds keeps the loaded report between runs of a long-lived
	// server. Zero reloads it every run.
	ReportCacheSeconds int `mapstructure:"report_cache_seconds" default:"0"`
}
