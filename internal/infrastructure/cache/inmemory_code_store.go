package cache

import (
	"context"
	"sync"
	"time"

	"github.com/zona2/backend/internal/domain/identity"
)

// codeEntry represents a stored verification code with expiration
type codeEntry struct {
	code      string
	expiresAt time.Time
}

// InMemoryCodeStore implements identity.VerificationCodeStore using an
// in-memory map. Suitable for single-instance deployments and testing.
type InMemoryCodeStore struct {
	mu        sync.RWMutex
	entries   map[string]codeEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCodeStore creates a new in-memory verification code store
// It starts a background goroutine to clean up expired entries
func NewInMemoryCodeStore() *InMemoryCodeStore {
	store := &InMemoryCodeStore{
		entries:  make(map[string]codeEntry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Put stores the code for the phone number, replacing any previous one
func (s *InMemoryCodeStore) Put(_ context.Context, phone, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[phone] = codeEntry{
		code:      code,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Consume atomically checks and removes the stored code
func (s *InMemoryCodeStore) Consume(_ context.Context, phone, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[phone]
	if !exists {
		return false, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, phone)
		return false, nil
	}
	if e.code != code {
		return false, nil
	}

	delete(s.entries, phone)
	return true, nil
}

// Close stops the cleanup goroutine and releases resources
// Safe to call multiple times
func (s *InMemoryCodeStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (s *InMemoryCodeStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

// cleanup removes expired entries from the store
func (s *InMemoryCodeStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for phone, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, phone)
		}
	}
}

// Size returns the number of entries in the store (for testing/monitoring)
func (s *InMemoryCodeStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure InMemoryCodeStore implements VerificationCodeStore
var _ identity.VerificationCodeStore = (*InMemoryCodeStore)(nil)
