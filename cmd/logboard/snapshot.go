package main

import (
	"context"
	"fmt"

	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/export"
	"github.com/sonnes/logboard/reader/remote"
	"github.com/urfave/cli/v3"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Take one snapshot and render it",
		Flags: append(configFlags(),
			&cli.StringFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "Fetch from a running logboard server",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "Render a snapshot previously saved with -o json",
			},
			&cli.StringFlag{
				Name:  "o",
				Usage: "Output format: json, html, terminal",
				Value: "terminal",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Write to this file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "indent",
				Usage: "Indent JSON output",
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "Show only the last line of each log (terminal output)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Request timeout for --url",
				Value: remote.DefaultTimeout,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rnd, err := rendererFor(cmd)
			if err != nil {
				return err
			}

			snap, err := takeSnapshot(ctx, cmd)
			if err != nil {
				return err
			}

			if out := cmd.String("out"); out != "" {
				if err := export.Render(out, rnd, snap); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				return nil
			}
			if err := rnd.Render(cmd.Root().Writer, snap); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
}

// takeSnapshot reads from whichever of --dir, --url or --file is set. With
// none of them the configured directory is read.
func takeSnapshot(ctx context.Context, cmd *cli.Command) (*core.Snapshot, error) {
	n := 0
	for _, name := range []string{"dir", "url", "file"} {
		if cmd.IsSet(name) {
			n++
		}
	}
	if n > 1 {
		return nil, fmt.Errorf("only one of --dir, --url, or --file may be specified")
	}

	switch {
	case cmd.IsSet("url"):
		return remote.New(cmd.String("url"), cmd.Duration("timeout")).Snapshot(ctx)
	case cmd.IsSet("file"):
		return export.ReadFile(cmd.String("file"))
	default:
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		r, err := dirReader(cfg)
		if err != nil {
			return nil, err
		}
		return r.Snapshot(ctx)
	}
}
