package persistence

import (
	"context"
	"sync"
)

// MemoryBlobStore is an in-process BlobStore for tests and single-node
// development setups.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBlobStore creates an empty in-memory blob store
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

// Get returns a copy of the stored payload
func (s *MemoryBlobStore) Get(_ context.Context, key Key) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[key.String()]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, true, nil
}

// Set stores a copy of the payload
func (s *MemoryBlobStore) Set(_ context.Context, key Key, payload []byte) error {
	b := make([]byte, len(payload))
	copy(b, payload)
	s.mu.Lock()
	s.blobs[key.String()] = b
	s.mu.Unlock()
	return nil
}

// Delete removes the payload; deleting a missing key is a no-op
func (s *MemoryBlobStore) Delete(_ context.Context, key Key) error {
	s.mu.Lock()
	delete(s.blobs, key.String())
	s.mu.Unlock()
	return nil
}

var _ BlobStore = (*MemoryBlobStore)(nil)
