package storage

import (
	"context"
	"fmt"
	"sync"
)

// SessionStore remembers the last category page each browser session viewed
type SessionStore interface {
	LastPage(ctx context.Context, token string) (int, bool, error)
	SetLastPage(ctx context.Context, token string, page int) error
	Close() error
}

// MemoryStore keeps sessions for the lifetime of the process
type MemoryStore struct {
	pages map[string]int
	mu    sync.RWMutex
}

func New() *MemoryStore {
	return &MemoryStore{
		pages: make(map[string]int),
	}
}

func (s *MemoryStore) LastPage(_ context.Context, token string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, exists := s.pages[token]
	return page, exists, nil
}

func (s *MemoryStore) SetLastPage(_ context.Context, token string, page int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[token] = page
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// OpenSessionStore picks a backend by name: "memory" or "sqlite"
func OpenSessionStore(kind, dataDir string) (SessionStore, error) {
	switch kind {
	case "", "memory":
		return New(), nil
	case "sqlite":
		return OpenSQLiteStore(dataDir)
	default:
		return nil, fmt.Errorf("unsupported session store: %s (supported: memory, sqlite)", kind)
	}
}
