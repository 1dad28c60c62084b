package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

// combineCmd combines the individual and certificate results per tier.
var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine individual and certificate results tier by tier",
	Long: `Reads the stored results of both tracks and writes, for every tier, one
dataset holding the individual rows followed by the certificate rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		start := time.Now()
		report, err := a.service.Combine(cmd.Context())
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
	addDatasetFlags(combineCmd)
	combineCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the run report as JSON")
	RootCmd.AddCommand(combineCmd)
}
