package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientRegistry(t *testing.T) {
	r := newClientRegistry()
	q1 := newQueue()
	q2 := newQueue()

	require.True(t, r.tryClaim("alice", q1))
	require.False(t, r.tryClaim("alice", q2))

	// Nicks are case sensitive. Alice is somebody else.
	require.True(t, r.tryClaim("Alice", q2))

	got, exists := r.lookup("alice")
	require.True(t, exists)
	require.Same(t, q1, got)

	_, exists = r.lookup("bob")
	require.False(t, exists)

	require.True(t, r.taken("alice"))

	r.release("alice")
	require.False(t, r.taken("alice"))

	// Releasing an absent nick is a no-op.
	r.release("alice")

	// And the nick is claimable again.
	require.True(t, r.tryClaim("alice", q2))
}
