package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sonnes/logboard/tui"
	"github.com/sonnes/logboard/viewer"
	"github.com/urfave/cli/v3"
)

func viewCmd() *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "Watch the logs in an interactive terminal viewer",
		Description: `Polls --url (or the log directory) every --interval and shows every
log with error.log first. A failed refresh keeps the last good content
on screen; details go to --debug-log.`,
		Flags: pollFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			r, source, err := pollReader(cmd, cfg)
			if err != nil {
				return err
			}
			diag, closeDiag, err := diagLogger(cmd)
			if err != nil {
				return err
			}
			defer closeDiag()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return tui.Run(ctx, tui.Config{
				Reader:   r,
				Viewer:   viewer.New(diag),
				Interval: cfg.Interval.Std(),
				Source:   source,
			})
		},
	}
}
