package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rcsuperstore/partspro/internal/transport/cli"
	"github.com/rcsuperstore/partspro/pkg/log"
	"github.com/rcsuperstore/partspro/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the PartsPro assistant",
	Long:  `Initializes storage, providers and the retrieval engine, then opens an interactive chat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting partspro")

		app := newApplication(ctx)
		services := app.services

		srv.StartServices(ctx, services)

		if app.appCfg.EnableCLI {
			rl, err := cli.NewReadLine(app.appCfg, app.retrievalCfg, app.deps)
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to initialize chat")
			}
			services = append(services, rl)

			go func() {
				defer stop()
				if err := rl.Start(ctx); err != nil && ctx.Err() == nil {
					logger.Error().Err(err).Msg("chat loop failed")
				}
			}()
		}

		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("partspro has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
