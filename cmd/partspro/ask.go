package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcsuperstore/partspro/internal/service/session"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		app := newApplication(ctx)
		defer app.close(ctx)

		s := session.New(app.appCfg, app.retrievalCfg, app.deps.AI, app.deps.Registry, app.deps.Repo, "cli-local")

		question := strings.Join(args, " ")
		_, err := s.Ask(ctx, question, func(chunk string) {
			fmt.Print(chunk)
		})
		fmt.Println()
		return err
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
