// cmd/onboard/tui.go
//
// tui – the signup form in the terminal.  Logs go to the file sink only.
package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/yanizio/onboard/internal/config"
	"github.com/yanizio/onboard/internal/form"
	"github.com/yanizio/onboard/internal/logger"
	"github.com/yanizio/onboard/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Fill in the signup form in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Paths.Root, cfg.Log.Level, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	v, sub, err := buildForm(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	users := &form.MemoryUsers{}
	return tui.Run(logger.WithContext(ctx, log), form.New(v, sub, users), users)
}
