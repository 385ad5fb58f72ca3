package push

import "sync"

// TokenRegistry is the set of registered push notification targets.
// Registration and unregistration happen from concurrent API calls, and
// dispatch-to-all iterates a snapshot taken under the lock.
type TokenRegistry struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{
		tokens: make(map[string]struct{}),
	}
}

func (r *TokenRegistry) Add(token string) {
	if token == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = struct{}{}
}

func (r *TokenRegistry) Remove(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
}

// Snapshot returns a copy of the registered tokens, safe to iterate
// while registrations continue.
func (r *TokenRegistry) Snapshot() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens := make([]string, 0, len(r.tokens))
	for t := range r.tokens {
		tokens = append(tokens, t)
	}
	return tokens
}

func (r *TokenRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}
