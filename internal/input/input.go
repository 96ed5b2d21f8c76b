// Package input provides the event sources polled by the game loop.
// Platform backends push events into a Queue from their own goroutines; the
// loop drains it once per iteration without blocking.
package input

import (
	"sync"

	"github.com/vovakirdan/stacker/internal/core"
)

// Source yields the input events that arrived since the previous poll.
// Poll never blocks; an empty batch means nothing happened.
type Source interface {
	Poll() []core.Event
}

// Queue is a thread-safe FIFO of events. Backends call Push from their
// event goroutine; the loop calls Poll.
type Queue struct {
	mu     sync.Mutex
	events []core.Event
	closed bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends events in arrival order.
// Events pushed after Close are dropped.
func (q *Queue) Push(events ...core.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.events = append(q.events, events...)
}

// Poll returns and removes every pending event.
func (q *Queue) Poll() []core.Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil
	}
	batch := q.events
	q.events = nil
	return batch
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Close appends a final quit event so the loop terminates on its next poll,
// then stops accepting events. Used when the backing terminal or connection
// goes away. Safe to call multiple times.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.events = append(q.events, core.QuitEvent())
	q.closed = true
}

// Script replays a fixed list of batches, one per poll, then returns empty
// batches (or a quit event if QuitWhenDone is set). It drives headless runs
// and tests.
type Script struct {
	Batches      [][]core.Event
	QuitWhenDone bool

	polls int
}

// NewScript creates a script from the given batches.
func NewScript(batches ...[]core.Event) *Script {
	return &Script{Batches: batches}
}

// Poll returns the next batch.
func (s *Script) Poll() []core.Event {
	i := s.polls
	s.polls++

	if i < len(s.Batches) {
		return s.Batches[i]
	}
	if s.QuitWhenDone {
		return []core.Event{core.QuitEvent()}
	}
	return nil
}

// Polls returns how many times Poll was called.
func (s *Script) Polls() int {
	return s.polls
}
