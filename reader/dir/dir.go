// Package dir reads a snapshot of the log files kept in one directory.
package dir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/reader"
)

// DefaultPattern selects which files in the directory are log sources.
const DefaultPattern = "*.log"

// Reader snapshots every regular file in Dir whose name matches Pattern.
// It only reads; files are never rotated, truncated or removed. A Reader
// holds no state between calls and is safe for concurrent use.
type Reader struct {
	// Dir is the log directory.
	Dir string
	// Pattern is a filepath.Match glob applied to file names. Empty means
	// DefaultPattern.
	Pattern string
	// Logger receives warnings about unreadable files. Nil means log.Default().
	Logger *log.Logger
}

// Snapshot lists Dir and reads each recognized file in full.
//
// A missing directory yields an empty snapshot. Any other failure to list the
// directory returns a *reader.DirectoryError. Files that cannot be read are
// left out and recorded in the snapshot's Skipped list; files that vanish
// between listing and reading are left out silently.
func (r *Reader) Snapshot(ctx context.Context) (*core.Snapshot, error) {
	pattern := r.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("log file pattern %q: %w", pattern, err)
	}

	takenAt := time.Now()
	entries, err := os.ReadDir(r.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return core.NewSnapshot(takenAt, nil), nil
	}
	if err != nil {
		return nil, &reader.DirectoryError{Dir: r.Dir, Err: err}
	}

	var (
		sources []core.Source
		skipped []string
	)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ok, _ := filepath.Match(pattern, e.Name()); !ok {
			continue
		}

		path := filepath.Join(r.Dir, e.Name())
		regular, err := isRegular(e, path)
		if errors.Is(err, fs.ErrNotExist) {
			r.logger().Debug("log file vanished", "name", e.Name())
			continue
		}
		if err != nil {
			r.logger().Warn("skip unreadable log", "name", e.Name(), "err", err)
			skipped = append(skipped, e.Name())
			continue
		}
		if !regular {
			continue
		}

		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			r.logger().Debug("log file vanished", "name", e.Name())
			continue
		}
		if err != nil {
			r.logger().Warn("skip unreadable log", "name", e.Name(), "err", err)
			skipped = append(skipped, e.Name())
			continue
		}
		sources = append(sources, core.Source{Name: e.Name(), Path: path, Content: string(data)})
	}

	snap := core.NewSnapshot(takenAt, sources)
	if len(skipped) > 0 {
		snap = snap.WithSkipped(skipped...)
	}
	return snap, nil
}

func (r *Reader) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

// isRegular reports whether the entry is a regular file, following symlinks.
func isRegular(e fs.DirEntry, path string) (bool, error) {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.Type().IsRegular(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

var _ reader.Reader = (*Reader)(nil)
