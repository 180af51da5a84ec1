package main

import (
	"context"
	"fmt"

	"github.com/sonnes/logboard/setup"
	"github.com/urfave/cli/v3"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create the log directory and a default config",
		Description: `Creates the log directory, writes logboard.yaml unless one exists, and
adds the log directory to .gitignore. Safe to run more than once.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Log directory to record in a new config",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := setup.Config{
				ConfigPath: cmd.String("config"),
				LogDir:     cmd.String("dir"),
			}
			if err := setup.Run(cfg); err != nil {
				return err
			}

			w := cmd.Root().Writer
			fmt.Fprintln(w, "Initialized.")
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  Config:  %s\n", cfg.ConfigPath)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Drop *.log files into the log directory and run 'logboard serve'.")
			return nil
		},
	}
}
