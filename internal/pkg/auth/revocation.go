package auth

import (
	"sync"
	"time"
)

// RevocationList remembers signed-out tokens until they would have expired anyway.
type RevocationList struct {
	mu      sync.Mutex
	ttl     time.Duration
	revoked map[string]time.Time
	now     func() time.Time
}

// NewRevocationList creates an empty list. Entries are kept for ttl.
func NewRevocationList(opts Options) *RevocationList {
	return &RevocationList{ttl: opts.ttl(), revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke marks token as no longer valid.
func (l *RevocationList) Revoke(token string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.revoked[token] = now.Add(l.ttl)
	for t, until := range l.revoked {
		if until.Before(now) {
			delete(l.revoked, t)
		}
	}
}

// Revoked reports whether token was revoked and the entry is still live.
func (l *RevocationList) Revoked(token string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	until, ok := l.revoked[token]
	if !ok {
		return false
	}
	if until.Before(l.now()) {
		delete(l.revoked, token)
		return false
	}
	return true
}
