package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChannelJoinPart(t *testing.T) {
	r := newChannelRegistry()
	qa := newQueue()
	qb := newQueue()

	// First join creates the channel. The snapshot includes the joiner.
	members := r.join("#x", "alice", qa)
	require.Len(t, members, 1)
	require.True(t, r.exists("#x"))

	members = r.join("#x", "bob", qb)
	require.Len(t, members, 2)

	// Rejoining replaces the stored queue without duplicating membership.
	members = r.join("#x", "bob", qb)
	require.Len(t, members, 2)
	require.Equal(t, 2, r.size("#x"))

	// members() excludes the asking nick.
	recipients, exists := r.members("#x", "alice")
	require.True(t, exists)
	require.Len(t, recipients, 1)
	require.Same(t, qb, recipients[0])

	_, exists = r.members("#nope", "alice")
	require.False(t, exists)

	remaining, wasMember := r.part("#x", "alice")
	require.True(t, wasMember)
	require.Len(t, remaining, 1)
	require.True(t, r.exists("#x"))

	// Not a member anymore.
	_, wasMember = r.part("#x", "alice")
	require.False(t, wasMember)

	// Unknown channel.
	_, wasMember = r.part("#nope", "bob")
	require.False(t, wasMember)

	// Last member out deletes the channel.
	remaining, wasMember = r.part("#x", "bob")
	require.True(t, wasMember)
	require.Empty(t, remaining)
	require.False(t, r.exists("#x"))
}

func TestChannelRemoveAll(t *testing.T) {
	r := newChannelRegistry()
	qa := newQueue()
	qb := newQueue()

	r.join("#a", "alice", qa)
	r.join("#a", "bob", qb)
	r.join("#b", "alice", qa)
	r.join("#c", "bob", qb)

	cuts := r.removeAll("alice")
	require.Len(t, cuts, 2)

	byName := make(map[string]channelCut)
	for _, cut := range cuts {
		byName[cut.name] = cut
	}

	// #a keeps bob.
	require.Contains(t, byName, "#a")
	require.Len(t, byName["#a"].remaining, 1)
	require.True(t, r.exists("#a"))
	require.Equal(t, 1, r.size("#a"))

	// #b emptied and deleted.
	require.Contains(t, byName, "#b")
	require.Empty(t, byName["#b"].remaining)
	require.False(t, r.exists("#b"))

	// #c untouched.
	require.True(t, r.exists("#c"))
	require.Equal(t, 1, r.size("#c"))

	// Nothing left referencing alice.
	require.Empty(t, r.removeAll("alice"))
}
