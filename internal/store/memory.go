package store

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-process backend. It is used by tests and by
// --backend=memory, where nothing outlives the process.
type Memory struct {
	mu      sync.Mutex
	records map[string][]byte
	entries []JournalEntry
	nextSeq int64
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte), nextSeq: 1}
}

func (m *Memory) KV() KV               { return m }
func (m *Memory) Journal() JournalRepo { return m }
func (m *Memory) Close() error         { return nil }

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.records[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(blob), nil
}

func (m *Memory) Save(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = slices.Clone(blob)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func (m *Memory) Append(_ context.Context, entry JournalEntry) (JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry = stamp(entry, m.nextSeq)
	m.nextSeq++
	m.entries = append(m.entries, entry)
	return entry, nil
}

func (m *Memory) Query(_ context.Context, opts QueryOpts) ([]JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return filterNewestFirst(m.entries, opts), nil
}

// filterNewestFirst applies opts to entries stored in append order.
func filterNewestFirst(entries []JournalEntry, opts QueryOpts) []JournalEntry {
	var out []JournalEntry
	for i := len(entries) - 1; i >= 0; i-- {
		if !opts.match(entries[i]) {
			continue
		}
		out = append(out, entries[i])
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out
}
