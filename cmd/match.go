package cmd

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"licensee-matcher/feature/matching"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jsonFlag bool

// matchCmd runs both matching tracks.
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match the licensing datasets against the authority report",
	Long: `Loads the certificate and individual datasets and the authority report,
runs the seven matching tiers for each dataset and writes every tier result.

Examples:
  # Match datasets in the configured bucket
  licensee-matcher match

  # Match files under ./data, joining the report 50000 rows at a time
  licensee-matcher match --backend local --data-dir ./data --chunk-size 50000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		start := time.Now()
		a.logger.Info("Starting match run", zap.String("backend", a.cfg.Match.Backend))
		report, err := a.service.Match(cmd.Context())
		if err != nil {
			return err
		}

		printReport(a.logger, report, time.Since(start))
		if jsonFlag {
			return writeJSON(report)
		}
		return nil
	},
}

func init() {
	addDatasetFlags(matchCmd)
	matchCmd.Flags().IntVar(&chunkSizeFlag, "chunk-size", 0, "Report rows joined at a time by address tiers (overrides MATCH_CHUNK_SIZE)")
	matchCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the run report as JSON")
	RootCmd.AddCommand(matchCmd)
}

// printReport logs one line per written result and per failure.
func printReport(l *zap.Logger, report *matching.Report, took time.Duration) {
	for _, o := range report.Outputs {
		l.Info("Result",
			zap.String("track", o.Track),
			zap.Int("tier", o.Tier),
			zap.String("key", o.Object),
			zap.Int("rows", o.Rows),
		)
	}

	keys := make([]string, 0, len(report.Failures))
	for k := range report.Failures {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		l.Warn("Failure", zap.String("key", k), zap.String("reason", report.Failures[k]))
	}

	l.Info("Run complete",
		zap.String("run_id", report.RunID),
		zap.Int("outputs", len(report.Outputs)),
		zap.Int("failures", len(report.Failures)),
		zap.Duration("took", took),
	)
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
