// Package export saves rendered snapshots to disk and loads saved snapshot
// JSON back for offline rendering.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/render"
)

// ReadFile loads a snapshot previously saved as JSON. The snapshot's poll
// time is the file's modification time.
func ReadFile(path string) (*core.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var snap core.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return core.NewSnapshot(info.ModTime(), snap.Sources()), nil
}

// Render renders s with r and writes the result to path atomically.
func Render(path string, r render.Renderer, s *core.Snapshot) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, s); err != nil {
		return err
	}
	return WriteFile(path, buf.Bytes())
}

// WriteFile writes data to disk atomically using a temporary file and
// rename, which is safe against concurrent writers and readers. Parent
// directories are created as needed.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".logboard-*"+filepath.Ext(path))
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}
