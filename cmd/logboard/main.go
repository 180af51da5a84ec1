package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/sonnes/logboard/config"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := rootCmd().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:  "logboard",
		Usage: "Collect the log files of a directory and watch them live",
		Description: `
  _             _                      _
 | |___  __ _  | |__  ___  __ _ _ _ __| |
 | / _ \/ _' | | '_ \/ _ \/ _' | '_/ _' |
 |_\___/\__, | |_.__/\___/\__,_|_| \__,_|
        |___/

 Every *.log in one place, error.log first.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the config file",
				Value:   config.DefaultPath,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCmd(),
			snapshotCmd(),
			viewCmd(),
			watchCmd(),
			initCmd(),
		},
	}
}
