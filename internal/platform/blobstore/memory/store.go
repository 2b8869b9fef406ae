package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/platform/blobstore"
)

var _ blobstore.Backend = (*Store)(nil)

// Store is an in-memory snapshot backend for development and tests.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]snapshot
}

type snapshot struct {
	revision int64
	payload  []byte
}

func NewStore() *Store {
	return &Store{snapshots: map[string]snapshot{}}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[key]
	if !ok {
		return nil, blobstore.ErrNotFound
	}
	return append([]byte(nil), snap.payload...), nil
}

func (s *Store) Put(_ context.Context, key string, revision int64, payload []byte) error {
	if err := blobstore.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.snapshots[key]; ok && current.revision > revision {
		return nil
	}
	s.snapshots[key] = snapshot{revision: revision, payload: append([]byte(nil), payload...)}
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, key)
	return nil
}
