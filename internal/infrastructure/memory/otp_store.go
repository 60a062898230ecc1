package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wcontent-api/internal/pkg/clock"
)

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// OTPStore keeps pending codes in process memory. Entries do not survive a
// restart and are not shared between instances.
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry
	clock   clock.Clocker
}

func NewOTPStore(c clock.Clocker) *OTPStore {
	if c == nil {
		c = clock.New()
	}
	return &OTPStore{entries: make(map[string]otpEntry), clock: c}
}

// Put replaces any pending code for identity.
func (s *OTPStore) Put(_ context.Context, identity, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[identity] = otpEntry{code: code, expiresAt: s.clock.Now().Add(ttl)}
	return nil
}

// Validate consumes the entry when code matches and has not expired.
// Expired entries are dropped on sight; a mismatch leaves the entry untouched.
func (s *OTPStore) Validate(_ context.Context, identity, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[identity]
	if !ok {
		return false, nil
	}
	if !s.clock.Now().Before(e.expiresAt) {
		delete(s.entries, identity)
		return false, nil
	}
	if e.code != code {
		return false, nil
	}
	delete(s.entries, identity)
	return true, nil
}

// Sweep removes every expired entry and returns how many were dropped.
func (s *OTPStore) Sweep() int {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
			n++
		}
	}
	return n
}

// Run sweeps expired entries every interval until ctx is done.
func (s *OTPStore) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}

// Len reports the number of stored entries, expired or not.
func (s *OTPStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
