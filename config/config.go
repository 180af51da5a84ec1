// Package config loads logboard.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "logboard.yaml"

// Config is the logboard configuration. Zero-valued fields in a file keep
// their defaults.
type Config struct {
	// Dir is the directory holding the log files.
	Dir string `yaml:"dir"`
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// Interval is the viewer refresh and watcher poll period.
	Interval Duration `yaml:"interval"`
	// Pattern is the glob selecting log files by name.
	Pattern string `yaml:"pattern"`
	// Redact lists the redaction rule kinds applied to served snapshots.
	Redact []string `yaml:"redact"`
	// Tail keeps only the last Tail lines of each log. Zero keeps all.
	Tail int `yaml:"tail"`
	// Stream enables the websocket change stream.
	Stream bool `yaml:"stream"`
	// Notes is markdown shown under the viewer page header.
	Notes string `yaml:"notes,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Dir:      "logs",
		Addr:     ":8080",
		Interval: Duration(5 * time.Second),
		Pattern:  "*.log",
		Redact:   []string{},
		Stream:   true,
	}
}

// Load reads the config at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and rejects unknown keys.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := decodeStrict(bytes.NewReader(data), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeStrict decodes YAML from a reader and rejects any unknown fields.
func decodeStrict(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Duration is a time.Duration written as a Go duration string ("5s").
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

// UnmarshalYAML accepts a duration string.
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML writes the duration string.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}
