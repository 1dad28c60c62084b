package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// countCmd reports record counts of stored datasets.
var countCmd = &cobra.Command{
	Use:   "count [prefix]",
	Short: "Count the records of every CSV dataset under a prefix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}

		report, err := a.service.Count(cmd.Context(), prefix)
		if err != nil {
			return err
		}
		if jsonFlag {
			return writeJSON(report)
		}

		total := 0
		for _, d := range report.Datasets {
			a.logger.Info("Dataset", zap.String("name", d.Name), zap.Int("records", d.Records))
			total += d.Records
		}
		for name, reason := range report.Failures {
			a.logger.Warn("Dataset unreadable", zap.String("name", name), zap.String("reason", reason))
		}
		a.logger.Info("Count complete", zap.Int("datasets", len(report.Datasets)), zap.Int("records", total))
		return nil
	},
}

func init() {
	addDatasetFlags(countCmd)
	countCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the counts as JSON")
	RootCmd.AddCommand(countCmd)
}
