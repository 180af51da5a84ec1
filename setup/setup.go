// Package setup prepares a project directory for logboard: the log
// directory, a default logboard.yaml and a .gitignore entry so collected
// logs stay out of version control.
package setup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sonnes/logboard/config"
	"github.com/sonnes/logboard/export"
)

// Config holds the settings for the init command.
type Config struct {
	Root       string // project root, defaults to the working directory
	ConfigPath string // config file relative to Root, defaults to config.DefaultPath
	LogDir     string // log directory written into a new config, defaults to config.Default().Dir
}

// Run executes the full setup sequence. Every step is a no-op when its
// result already exists, so Run can be repeated safely.
func Run(cfg Config) error {
	if cfg.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg.Root = wd
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = config.DefaultPath
	}

	configPath := cfg.ConfigPath
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(cfg.Root, configPath)
	}

	conf, err := loadOrDefault(configPath, cfg.LogDir)
	if err != nil {
		return err
	}

	logDir := conf.Dir
	if !filepath.IsAbs(logDir) {
		logDir = filepath.Join(cfg.Root, logDir)
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"create log directory", func() error { return os.MkdirAll(logDir, 0o755) }},
		{"write " + filepath.Base(configPath), func() error { return writeConfig(configPath, conf) }},
		{"update .gitignore", func() error { return ensureGitignore(cfg.Root, gitignoreEntry(cfg.Root, logDir)) }},
	}

	for _, s := range steps {
		if err := s.fn(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}

	return nil
}

// loadOrDefault returns the existing config at path, or the defaults with
// logDir applied when there is none.
func loadOrDefault(path, logDir string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	conf := config.Default()
	if logDir != "" {
		conf.Dir = logDir
	}
	return conf, nil
}

// writeConfig writes conf to path unless a file is already there.
func writeConfig(path string, conf *config.Config) error {
	if _, err := os.Stat(path); err == nil {
		return nil // keep the user's file
	}
	data, err := config.Marshal(conf)
	if err != nil {
		return err
	}
	return export.WriteFile(path, data)
}

// gitignoreEntry returns the .gitignore line for logDir, or "" when the
// directory lives outside root.
func gitignoreEntry(root, logDir string) string {
	rel, err := filepath.Rel(root, logDir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel) + "/"
}

// ensureGitignore adds entry to root/.gitignore if not already present.
func ensureGitignore(root, entry string) error {
	if entry == "" {
		return nil
	}
	path := filepath.Join(root, ".gitignore")

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == entry || line == strings.TrimSuffix(entry, "/") || line == "/"+entry {
			return nil // already present
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	// Add newline before entry if file doesn't end with one
	if len(data) > 0 && data[len(data)-1] != '\n' {
		if _, err := f.WriteString("\n"); err != nil {
			return err
		}
	}
	_, err = f.WriteString(entry + "\n")
	return err
}
