package main

import "sync"

// channelRegistry holds every channel on the server. A channel exists
// exactly as long as it has members: the first JOIN creates it, and
// removing the last member deletes it.
//
// Channel names compare byte-exact, like nicks.
//
// Every operation is atomic under one mutex and hands back snapshots of
// member queues. Fan-out happens on those snapshots after the lock is
// released, so a slow or dead peer never blocks registry progress.
type channelRegistry struct {
	mu sync.Mutex

	// Channel name to member nick to that member's outbound queue.
	channels map[string]map[string]*queue
}

func newChannelRegistry() *channelRegistry {
	return &channelRegistry{channels: make(map[string]map[string]*queue)}
}

// join adds the nick to the channel, creating the channel if needed, and
// returns the queues of every member after the insert, the joiner included.
// Joining a channel we are already in just replaces the stored queue.
func (r *channelRegistry) join(name, nick string, q *queue) []*queue {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, exists := r.channels[name]
	if !exists {
		members = make(map[string]*queue)
		r.channels[name] = members
	}
	members[nick] = q

	return memberSnapshot(members, "")
}

// members returns the queues of every member except the given nick, and
// whether the channel exists at all.
func (r *channelRegistry) members(name, except string) ([]*queue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, exists := r.channels[name]
	if !exists {
		return nil, false
	}

	return memberSnapshot(members, except), true
}

// part removes the nick from the channel and returns the queues of the
// remaining members. The second result reports whether the nick was
// actually a member. An emptied channel is deleted.
func (r *channelRegistry) part(name, nick string) ([]*queue, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, exists := r.channels[name]
	if !exists {
		return nil, false
	}

	if _, exists := members[nick]; !exists {
		return nil, false
	}
	delete(members, nick)

	if len(members) == 0 {
		delete(r.channels, name)
		return nil, true
	}

	return memberSnapshot(members, ""), true
}

// channelCut describes one channel a quitting member was removed from.
type channelCut struct {
	name string

	// Queues of the members left behind. Empty means the channel was
	// deleted.
	remaining []*queue
}

// removeAll removes the nick from every channel it is in, deleting channels
// it leaves empty. It returns one entry per affected channel.
func (r *channelRegistry) removeAll(nick string) []channelCut {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cuts []channelCut
	for name, members := range r.channels {
		if _, exists := members[nick]; !exists {
			continue
		}
		delete(members, nick)

		if len(members) == 0 {
			delete(r.channels, name)
			cuts = append(cuts, channelCut{name: name})
			continue
		}

		cuts = append(cuts, channelCut{
			name:      name,
			remaining: memberSnapshot(members, ""),
		})
	}

	return cuts
}

// exists reports whether the channel currently exists.
func (r *channelRegistry) exists(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.channels[name]
	return exists
}

// size returns the channel's member count, or 0 if it does not exist.
func (r *channelRegistry) size(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.channels[name])
}

// memberSnapshot copies member queues out so fan-out can happen without
// holding the registry lock.
func memberSnapshot(members map[string]*queue, except string) []*queue {
	queues := make([]*queue, 0, len(members))
	for nick, q := range members {
		if nick == except {
			continue
		}
		queues = append(queues, q)
	}
	return queues
}
