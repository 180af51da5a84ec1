package config

import (
	"fmt"
	"net"
	"path/filepath"
	"time"
)

// ValidationError is one problem found in a config, with the offending key.
type ValidationError struct {
	Path    string
	Message string
	Hint    string
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s; %s", e.Path, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// minInterval keeps viewers from hammering the server.
const minInterval = 100 * time.Millisecond

// Validate reports every problem in cfg at once.
func Validate(cfg *Config) []error {
	var errs []error

	if cfg.Dir == "" {
		errs = append(errs, ValidationError{Path: "dir", Message: "must not be empty"})
	}

	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		errs = append(errs, ValidationError{
			Path:    "addr",
			Message: fmt.Sprintf("invalid listen address %q", cfg.Addr),
			Hint:    "expected host:port, e.g. :8080",
		})
	}

	if cfg.Interval.Std() < minInterval {
		errs = append(errs, ValidationError{
			Path:    "interval",
			Message: fmt.Sprintf("must be at least %s, got %s", minInterval, cfg.Interval),
		})
	}

	if cfg.Pattern == "" {
		errs = append(errs, ValidationError{Path: "pattern", Message: "must not be empty"})
	} else if _, err := filepath.Match(cfg.Pattern, ""); err != nil {
		errs = append(errs, ValidationError{Path: "pattern", Message: err.Error()})
	}

	for i, kind := range cfg.Redact {
		if kind != "secrets" && kind != "pii" {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("redact[%d]", i),
				Message: fmt.Sprintf("unknown rule kind %q", kind),
				Hint:    "expected secrets or pii",
			})
		}
	}

	if cfg.Tail < 0 {
		errs = append(errs, ValidationError{Path: "tail", Message: "must not be negative"})
	}

	return errs
}
