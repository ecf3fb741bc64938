package main

import "sync"

// clientRegistry maps nicks to the outbound queue of the session owning
// them. A nick is present exactly while a registered session holds it.
//
// Nicks compare byte-exact: "Alice" and "alice" are different users.
type clientRegistry struct {
	mu      sync.Mutex
	clients map[string]*queue
}

func newClientRegistry() *clientRegistry {
	return &clientRegistry{clients: make(map[string]*queue)}
}

// tryClaim inserts the nick if it is free and reports whether the claim
// succeeded. A session calls this exactly once, when it completes login.
func (r *clientRegistry) tryClaim(nick string, q *queue) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[nick]; exists {
		return false
	}

	r.clients[nick] = q
	return true
}

// release removes the nick. Releasing an absent nick is a no-op.
func (r *clientRegistry) release(nick string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.clients, nick)
}

// lookup returns the queue registered for the nick, if any.
func (r *clientRegistry) lookup(nick string) (*queue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, exists := r.clients[nick]
	return q, exists
}

// taken reports whether the nick is currently claimed.
func (r *clientRegistry) taken(nick string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.clients[nick]
	return exists
}
