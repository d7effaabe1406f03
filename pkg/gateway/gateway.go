// Package gateway defines the submission boundary the wizard talks to. The
// engine validates and assembles records; a Gateway persists them. This is
// the only asynchronous edge in the engine.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-profileforms/pkg/record"
)

// ErrNotFound reports a missing record. Callers treat it as "all sections
// empty", not as a failure.
var ErrNotFound = errors.New("gateway: record not found")

// Gateway accepts validated patches and serves current records. An empty
// recordID on Submit signals creation; a non-empty id signals a partial
// update with PATCH semantics (sending a full section's fields is fine).
type Gateway interface {
	Submit(ctx context.Context, recordID string, patch record.Record) (record.Record, error)
	Fetch(ctx context.Context, recordID string) (record.Record, error)
}

// SubmissionError carries a server-side rejection: a top-level message plus
// optional field-level errors keyed by the server's own field paths. Use
// NormalizeFieldErrors to translate those paths into schema field names.
type SubmissionError struct {
	Message     string
	Status      int
	FieldErrors map[string][]string
}

func (e *SubmissionError) Error() string {
	if e == nil {
		return "gateway: submission failed"
	}
	if e.Message != "" {
		return fmt.Sprintf("gateway: %s", e.Message)
	}
	return fmt.Sprintf("gateway: submission rejected (status %d)", e.Status)
}

// AsSubmissionError unwraps err into a *SubmissionError when possible.
func AsSubmissionError(err error) (*SubmissionError, bool) {
	var sub *SubmissionError
	if errors.As(err, &sub) {
		return sub, true
	}
	return nil, false
}
