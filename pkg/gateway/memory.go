package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-profileforms/pkg/record"
)

// Memory is an in-process Gateway for tests and offline use. Submit merges
// patches with PATCH semantics, so a round trip through Submit then Fetch
// reflects exactly the submitted fields merged over the prior record.
type Memory struct {
	mu      sync.Mutex
	records map[string]record.Record

	// SubmitErr, when set, is returned by the next Submit call and then
	// cleared. Tests use it to script gateway rejections.
	SubmitErr error
	// Delay, when set, is a hook invoked before Submit resolves; tests use
	// it to hold a request open.
	Delay func()
}

var _ Gateway = (*Memory)(nil)

// NewMemory constructs a memory gateway seeded with the given records.
func NewMemory(seed map[string]record.Record) *Memory {
	records := make(map[string]record.Record, len(seed))
	for id, rec := range seed {
		records[id] = rec.Clone()
	}
	return &Memory{records: records}
}

// Submit merges the patch over the stored record, creating a new id when
// recordID is empty. The merged record is returned with its id under "id".
func (m *Memory) Submit(ctx context.Context, recordID string, patch record.Record) (record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	delay := m.Delay
	if err := m.SubmitErr; err != nil {
		m.SubmitErr = nil
		m.mu.Unlock()
		return nil, err
	}
	m.mu.Unlock()

	if delay != nil {
		delay()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if recordID == "" {
		recordID = uuid.NewString()
	}
	merged := m.records[recordID].Merge(patch)
	merged["id"] = recordID
	m.records[recordID] = merged
	return merged.Clone(), nil
}

// Fetch returns a copy of the stored record or ErrNotFound.
func (m *Memory) Fetch(ctx context.Context, recordID string) (record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[recordID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, recordID)
	}
	return rec.Clone(), nil
}

// Len reports how many records the gateway holds.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
