package main

import "sync"

// queueEvent is one entry in a session's outbound queue: either a line to
// write to the client or an instruction to the writer goroutine to exit.
type queueEvent struct {
	line      string
	terminate bool
}

// queue is a session's outbound FIFO. Any goroutine may enqueue: the owning
// session replying to its client, or a peer session fanning a message out.
// Exactly one writer goroutine drains it.
//
// Enqueueing never blocks and never fails. The writer may already have gone
// away (dead connection); events then pile up harmlessly until the session's
// teardown removes the queue from the registries.
type queue struct {
	mu     sync.Mutex
	wake   *sync.Cond
	events []queueEvent
}

func newQueue() *queue {
	q := &queue{}
	q.wake = sync.NewCond(&q.mu)
	return q
}

// send enqueues a line for the writer.
func (q *queue) send(line string) {
	q.mu.Lock()
	q.events = append(q.events, queueEvent{line: line})
	q.mu.Unlock()

	q.wake.Signal()
}

// terminate tells the writer to exit once it has drained everything queued
// before this call.
func (q *queue) terminate() {
	q.mu.Lock()
	q.events = append(q.events, queueEvent{terminate: true})
	q.mu.Unlock()

	q.wake.Signal()
}

// next blocks until an event is available and dequeues it.
func (q *queue) next() queueEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.events) == 0 {
		q.wake.Wait()
	}

	evt := q.events[0]
	q.events = q.events[1:]

	return evt
}
