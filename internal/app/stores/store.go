// Package stores holds the screen state layer: per-operation stores that
// reduce result channels into observable snapshots, and the home combinator
// joining three of them into the landing view's all-or-nothing state.
package stores

import (
	"context"
	"sync"

	"github.com/lumenshop/storefront/pkg/result"
)

// Snapshot is the immutable reduced state exposed to the presentation layer
// for one operation. At any time exactly one of these holds: IsLoading is
// true, ErrorMessage is set, or the payload is current.
type Snapshot[T any] struct {
	IsLoading    bool
	Payload      T
	ErrorMessage string
}

type subscription[T any] struct {
	ch   chan Snapshot[T]
	done chan struct{}
}

// Store reduces one result channel at a time into the latest Snapshot and
// publishes every reduction step to observers in order. Reductions are
// serialized by a single mutex writer; when two consumes overlap on the
// same store the last event processed wins.
type Store[T any] struct {
	// pubMu serializes commit+publish so observers see snapshots in
	// commit order; mu alone guards the state and is safe to take from
	// Observe cancels while a publish is in flight.
	pubMu   sync.Mutex
	mu      sync.Mutex
	snap    Snapshot[T]
	subs    map[int]*subscription[T]
	nextSub int
}

// New creates a store. Operations that auto-start pass loading=true;
// user-gated operations start idle.
func New[T any](loading bool) *Store[T] {
	return &Store[T]{
		snap: Snapshot[T]{IsLoading: loading},
		subs: make(map[int]*subscription[T]),
	}
}

// Snapshot returns the latest snapshot.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Observe subscribes to snapshot updates. The returned cancel must be
// called when the observer goes away; afterwards no more sends occur.
func (s *Store[T]) Observe() (<-chan Snapshot[T], func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &subscription[T]{
		ch:   make(chan Snapshot[T], 8),
		done: make(chan struct{}),
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(sub.done)
		})
	}
	return sub.ch, cancel
}

// Apply reduces one envelope into the snapshot. Loading keeps the previous
// payload and error so a refresh overlays stale content instead of blanking
// it; Error keeps the payload; Success replaces the payload and clears the
// error.
func (s *Store[T]) Apply(env result.Envelope[T]) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	next := s.snap
	switch env.Kind {
	case result.KindLoading:
		next.IsLoading = true
	case result.KindSuccess:
		next.IsLoading = false
		next.Payload = env.Value
		next.ErrorMessage = ""
	case result.KindError:
		next.IsLoading = false
		next.ErrorMessage = env.Message
	}
	s.snap = next
	subs := s.snapshotSubs()
	s.mu.Unlock()

	publish(subs, next)
}

// Replace sets the snapshot wholesale. Used by the combinator and by
// actions that reset state without a collaborator call.
func (s *Store[T]) Replace(snap Snapshot[T]) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	s.snap = snap
	subs := s.snapshotSubs()
	s.mu.Unlock()

	publish(subs, snap)
}

// Reset returns the store to a terminal idle state with the given payload,
// e.g. clearing search results on an empty query.
func (s *Store[T]) Reset(payload T) {
	s.Replace(Snapshot[T]{Payload: payload})
}

// Consume reduces the channel's envelopes until it closes or ctx is
// cancelled. After cancellation no further snapshot writes occur, even if
// the underlying collaborator call later completes.
func (s *Store[T]) Consume(ctx context.Context, ch *result.Channel[T]) {
	for {
		select {
		case <-ctx.Done():
			return
		case env, ok := <-ch.Events():
			if !ok {
				return
			}
			// The receive can win the select against a closed
			// ctx.Done when the envelope was already buffered;
			// re-check so a cancelled scope never reduces.
			if ctx.Err() != nil {
				return
			}
			s.Apply(env)
		}
	}
}

// snapshotSubs copies the subscriber set. Caller holds the lock; sends
// happen outside it so a slow observer cannot block cancellation.
func (s *Store[T]) snapshotSubs() []*subscription[T] {
	subs := make([]*subscription[T], 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	return subs
}

func publish[T any](subs []*subscription[T], snap Snapshot[T]) {
	for _, sub := range subs {
		select {
		case sub.ch <- snap:
		case <-sub.done:
		}
	}
}
