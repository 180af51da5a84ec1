// Package remote reads snapshots from a running logboard server.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sonnes/logboard/core"
	"github.com/sonnes/logboard/reader"
)

// DefaultTimeout bounds a single snapshot request.
const DefaultTimeout = 10 * time.Second

// SnapshotPath is the API route serving the snapshot JSON.
const SnapshotPath = "/api/logs"

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 512

// Reader fetches snapshots with GET {BaseURL}/api/logs.
type Reader struct {
	BaseURL string
	Client  *http.Client
}

// New returns a Reader for baseURL using an HTTP client with the given
// timeout. A zero timeout means DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Reader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Reader{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// URL returns the full snapshot endpoint.
func (r *Reader) URL() string {
	return strings.TrimRight(r.BaseURL, "/") + SnapshotPath
}

// Snapshot performs one request. Network failures and timeouts come back as
// *reader.TransportError, non-2xx responses as *reader.StatusError.
func (r *Reader) Snapshot(ctx context.Context) (*core.Snapshot, error) {
	url := r.URL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client().Do(req)
	if err != nil {
		return nil, &reader.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &reader.StatusError{URL: url, Code: resp.StatusCode, Body: errorMessage(body)}
	}

	var snap core.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, &reader.TransportError{URL: url, Err: fmt.Errorf("decode snapshot: %w", err)}
	}
	if skipped := reader.DecodeSkipped(resp.Header.Get(reader.SkippedHeader)); len(skipped) > 0 {
		return snap.WithSkipped(skipped...), nil
	}
	return &snap, nil
}

func (r *Reader) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return http.DefaultClient
}

// errorMessage extracts the "error" field of a JSON error body, falling back
// to the trimmed raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}

var _ reader.Reader = (*Reader)(nil)
