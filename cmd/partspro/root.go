package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcsuperstore/partspro/internal/config"
	"github.com/rcsuperstore/partspro/pkg/log"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "partspro",
	Short: "PartsPro, the catalog assistant for the RC superstore",
	Long:  `PartsPro answers customer questions about RC vehicles, parts and orders by combining SQL and semantic search over the product catalog.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	isDebug := debug || config.IsDebug()
	return log.NewContextWithLogger(ctx, isDebug)
}
