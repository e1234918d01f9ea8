package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rcsuperstore/partspro/internal/transport/mcpsrv"
	"github.com/rcsuperstore/partspro/pkg/log"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the retrieval tools over MCP stdio",
	Long:  `Exposes catalog_search (and get_order when enabled) to external agent hosts over the Model Context Protocol.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		app := newApplication(ctx)
		defer app.close(ctx)

		log.FromCtx(ctx).Info().Msg("serving tools over MCP stdio")

		server := mcpsrv.NewServer(app.registry, app.appCfg.EnableOrderLookup)
		return server.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
