package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"licensee-matcher/core/loader"
	"licensee-matcher/core/server"
	"licensee-matcher/feature/matching"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Long:  `Starts the HTTP server exposing match runs, combining, counts and run history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.logger.Sync()
		zap.ReplaceGlobals(a.logger)

		app := server.New(a.cfg.Server, a.logger)

		mgr := loader.NewManager()
		mgr.Register(matching.NewFeature(a.service))
		names, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		a.logger.Info("Features loaded", zap.Strings("features", names))

		go func() {
			a.logger.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(a.cfg.Server.Addr()); err != nil {
				a.logger.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		a.logger.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	addDatasetFlags(startCmd)
	RootCmd.AddCommand(startCmd)
}
