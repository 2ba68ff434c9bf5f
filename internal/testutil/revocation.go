package testutil

import (
	"context"
	"sync"
	"time"
)

// MemoryRevocationList is an in-process revocation list. Err, when set, is
// returned by every call.
type MemoryRevocationList struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	Err     error
}

func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{revoked: make(map[string]time.Time)}
}

func (l *MemoryRevocationList) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	if jti == "" || ttl <= 0 {
		return nil
	}
	l.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (l *MemoryRevocationList) IsRevoked(_ context.Context, jti string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return false, l.Err
	}
	expiry, ok := l.revoked[jti]
	return ok && time.Now().Before(expiry), nil
}
