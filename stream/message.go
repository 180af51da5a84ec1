package stream

import (
	"bytes"
	"encoding/json"

	"github.com/sonnes/logboard/core"
)

// Message is the payload pushed to stream clients.
type Message struct {
	Logs    *core.Snapshot `json:"logs"`
	Skipped []string       `json:"skipped"`
}

// Encode builds the stream payload for snap. HTML characters are not escaped
// and skipped is always an array.
func Encode(snap *core.Snapshot) ([]byte, error) {
	msg := Message{Logs: snap, Skipped: snap.Skipped()}
	if msg.Skipped == nil {
		msg.Skipped = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(msg); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
