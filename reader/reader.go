// Package reader defines how snapshots of a log directory are obtained, either
// straight from disk or from a running logboard server.
package reader

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sonnes/logboard/core"
)

// Response headers carrying snapshot metadata that is not part of the JSON body.
const (
	SkippedHeader = "X-Logboard-Skipped"
	SourcesHeader = "X-Logboard-Sources"
)

// EncodeSkipped formats skipped names for SkippedHeader. Each name is
// percent-encoded so commas and non-ASCII bytes survive the header.
func EncodeSkipped(names []string) string {
	escaped := make([]string, len(names))
	for i, name := range names {
		escaped[i] = url.PathEscape(name)
	}
	return strings.Join(escaped, ",")
}

// DecodeSkipped parses a SkippedHeader value. Malformed escapes are kept as
// sent.
func DecodeSkipped(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	for i, part := range parts {
		if name, err := url.PathUnescape(part); err == nil {
			parts[i] = name
		}
	}
	return parts
}

// Reader produces a fresh snapshot on every call.
type Reader interface {
	// Snapshot reads the current content of every log source.
	Snapshot(ctx context.Context) (*core.Snapshot, error)
}

// Func adapts a plain function to the Reader interface.
type Func func(ctx context.Context) (*core.Snapshot, error)

// Snapshot calls f.
func (f Func) Snapshot(ctx context.Context) (*core.Snapshot, error) { return f(ctx) }

// DirectoryError reports that the log directory itself could not be listed.
// The whole snapshot fails when this happens.
type DirectoryError struct {
	Dir string
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("read log directory %s: %v", e.Dir, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// TransportError reports that a remote snapshot request did not complete.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a non-success HTTP status from a remote server.
type StatusError struct {
	URL  string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("fetch %s: status %d: %s", e.URL, e.Code, e.Body)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Code)
}

// IsTransient reports whether err is a failure that the next poll may not
// hit again: a transport failure or a server-side status.
func IsTransient(err error) bool {
	var te *TransportError
	var se *StatusError
	return errors.As(err, &te) || errors.As(err, &se)
}

// Transformed wraps r so that every snapshot passes through the given
// transformers before it is returned.
func Transformed(r Reader, transformers ...core.Transformer) Reader {
	if len(transformers) == 0 {
		return r
	}
	return Func(func(ctx context.Context) (*core.Snapshot, error) {
		s, err := r.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return core.Chain(s, transformers...)
	})
}
