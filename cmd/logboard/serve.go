package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/sonnes/logboard/server"
	"github.com/urfave/cli/v3"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the log directory as JSON and a live web viewer",
		Description: `Serves GET /api/logs, a flat JSON object mapping every log file name
to its content, and a viewer page at / that refreshes on an interval.
With streaming on, viewers also receive changes over a websocket.`,
		Flags: append(configFlags(),
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address (default from config, :8080)",
			},
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Viewer refresh period (default from config, 5s)",
			},
			&cli.BoolFlag{
				Name:  "no-stream",
				Usage: "Disable the websocket change stream",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "Title shown on the viewer page",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			r, err := dirReader(cfg)
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				Reader:   r,
				Interval: cfg.Interval.Std(),
				Stream:   cfg.Stream,
				Title:    cmd.String("title"),
				Notes:    cfg.Notes,
				Logger:   log.Default(),
			})
			defer srv.Close()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("watching", "dir", cfg.Dir, "pattern", cfg.Pattern, "interval", cfg.Interval)
			return srv.ListenAndServe(ctx, cfg.Addr)
		},
	}
}
