package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnes/logboard/compact"
	"github.com/sonnes/logboard/config"
	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/reader"
	"github.com/sonnes/logboard/reader/dir"
	"github.com/sonnes/logboard/reader/remote"
	"github.com/sonnes/logboard/redact"
	"github.com/sonnes/logboard/render"
	htmlrender "github.com/sonnes/logboard/render/html"
	jsonrender "github.com/sonnes/logboard/render/json"
	"github.com/sonnes/logboard/render/terminal"
	"github.com/urfave/cli/v3"
)

// renderers maps -o values to renderer constructors.
var renderers = map[string]func(cmd *cli.Command) render.Renderer{
	"json": func(cmd *cli.Command) render.Renderer {
		return jsonrender.New(cmd.Bool("indent"))
	},
	"html": func(cmd *cli.Command) render.Renderer {
		return htmlrender.New()
	},
	"terminal": func(cmd *cli.Command) render.Renderer {
		r := terminal.New()
		r.Summary = cmd.Bool("summary")
		return r
	},
}

func rendererFor(cmd *cli.Command) (render.Renderer, error) {
	name := cmd.String("o")
	fn, ok := renderers[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return fn(cmd), nil
}

// configFlags are the flags that override config file values.
func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "Directory holding the *.log files",
		},
		&cli.StringFlag{
			Name:  "pattern",
			Usage: "Glob selecting log files by name",
		},
		&cli.StringSliceFlag{
			Name:  "redact",
			Usage: "Redaction rules to apply. Example: --redact=secrets,pii",
		},
		&cli.IntFlag{
			Name:  "tail",
			Usage: "Keep only the last N lines of each log (0 keeps all)",
		},
	}
}

// loadConfig reads the config file named by --config and applies any flags
// set on the command line over it.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("dir") {
		cfg.Dir = cmd.String("dir")
	}
	if cmd.IsSet("addr") {
		cfg.Addr = cmd.String("addr")
	}
	if cmd.IsSet("interval") {
		cfg.Interval = config.Duration(cmd.Duration("interval"))
	}
	if cmd.IsSet("pattern") {
		cfg.Pattern = cmd.String("pattern")
	}
	if cmd.IsSet("redact") {
		cfg.Redact = cmd.StringSlice("redact")
	}
	if cmd.IsSet("tail") {
		cfg.Tail = cmd.Int("tail")
	}
	if cmd.IsSet("no-stream") {
		cfg.Stream = !cmd.Bool("no-stream")
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// transformers builds the snapshot pipeline configured in cfg.
func transformers(cfg *config.Config) ([]core.Transformer, error) {
	var ts []core.Transformer

	rc, err := redact.ParseKinds(cfg.Redact)
	if err != nil {
		return nil, err
	}
	if rc.Enabled() {
		ts = append(ts, redact.New(rc))
	}
	if cfg.Tail > 0 {
		ts = append(ts, compact.New(compact.Config{TailLines: cfg.Tail}))
	}
	return ts, nil
}

// dirReader reads the configured directory through the configured
// transformers.
func dirReader(cfg *config.Config) (reader.Reader, error) {
	ts, err := transformers(cfg)
	if err != nil {
		return nil, err
	}
	r := &dir.Reader{Dir: cfg.Dir, Pattern: cfg.Pattern, Logger: log.Default()}
	return reader.Transformed(r, ts...), nil
}

// pollReader picks the source for the polling commands: a running server
// when --url is set, the log directory otherwise.
func pollReader(cmd *cli.Command, cfg *config.Config) (reader.Reader, string, error) {
	if url := cmd.String("url"); url != "" {
		rr := remote.New(url, cmd.Duration("timeout"))
		return rr, rr.URL(), nil
	}
	r, err := dirReader(cfg)
	if err != nil {
		return nil, "", err
	}
	return r, cfg.Dir, nil
}

// pollFlags are shared by view and watch.
func pollFlags() []cli.Flag {
	return append(configFlags(),
		&cli.StringFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "Poll a running logboard server instead of reading --dir",
		},
		&cli.DurationFlag{
			Name:    "interval",
			Aliases: []string{"i"},
			Usage:   "Refresh period (default from config, 5s)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Request timeout when polling --url",
			Value: remote.DefaultTimeout,
		},
		&cli.StringFlag{
			Name:  "debug-log",
			Usage: "Write refresh diagnostics to this file",
		},
	)
}

// diagLogger opens the diagnostic log named by --debug-log. Without one,
// diagnostics are discarded.
func diagLogger(cmd *cli.Command) (*log.Logger, func(), error) {
	path := cmd.String("debug-log")
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           log.DebugLevel,
		Prefix:          "viewer",
	})
	return logger, func() { f.Close() }, nil
}
