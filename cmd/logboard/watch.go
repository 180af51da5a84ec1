package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/render/terminal"
	"github.com/sonnes/logboard/viewer"
	"github.com/urfave/cli/v3"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Print the logs every time they change",
		Flags: append(pollFlags(),
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "Show only the last line of each log",
			},
		),
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

			rnd := terminal.New()
			rnd.Summary = cmd.Bool("summary")
			out := cmd.Root().Writer

			p := &viewer.Poller{
				Viewer:   viewer.New(diag),
				Reader:   r,
				Interval: cfg.Interval.Std(),
				OnChange: func(s *core.Snapshot) {
					if err := rnd.Render(out, s); err != nil {
						log.Error("render", "err", err)
					}
				},
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("watching", "source", source, "interval", cfg.Interval)
			p.Run(ctx)
			return nil
		},
	}
}
