package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/xDonalx/BuildStore/internal/domain"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemoryStore returns an in-process Store. It is used in tests and
// as a fallback when no Redis address is configured; sessions do not
// survive a restart and never expire.
func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string][]byte)}
}

func (s *memoryStore) Get(_ context.Context, sid string) (*Data, error) {
	s.mu.RLock()
	raw, ok := s.sessions[sid]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *memoryStore) Save(_ context.Context, sid string, data *Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[sid] = raw
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
	return nil
}
