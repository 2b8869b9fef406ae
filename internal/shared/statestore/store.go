// Package statestore holds an immutable aggregate behind an atomic pointer and
// publishes every transition to registered listeners.
package statestore

import (
	"sync"
	"sync/atomic"
)

// Listener observes a committed state together with its version.
// Listeners run synchronously inside Update and must not call Update themselves.
type Listener[S any] func(state S, version uint64)

// Transition computes the next state from the current one. Returning an error
// aborts the transition and leaves the store untouched.
type Transition[S any] func(current S) (S, error)

type snapshot[S any] struct {
	state   S
	version uint64
}

// Store is a snapshot container for a single aggregate.
type Store[S any] struct {
	mu      sync.Mutex
	current atomic.Pointer[snapshot[S]]

	listenersMu sync.RWMutex
	listeners   []registration[S]
	nextID      uint64
}

type registration[S any] struct {
	id uint64
	fn Listener[S]
}

// New builds a store seeded with initial at version zero.
func New[S any](initial S) *Store[S] {
	s := &Store[S]{}
	s.current.Store(&snapshot[S]{state: initial})
	return s
}

// State returns the latest committed state. It never blocks on a running transition.
func (s *Store[S]) State() S {
	return s.current.Load().state
}

// Version returns the number of committed transitions.
func (s *Store[S]) Version() uint64 {
	return s.current.Load().version
}

// Update applies fn atomically and notifies listeners with the new snapshot.
func (s *Store[S]) Update(fn Transition[S]) (S, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	next, err := fn(prev.state)
	if err != nil {
		return prev.state, err
	}
	snap := &snapshot[S]{state: next, version: prev.version + 1}
	s.current.Store(snap)

	s.listenersMu.RLock()
	listeners := make([]registration[S], len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.RUnlock()
	for _, l := range listeners {
		l.fn(snap.state, snap.version)
	}
	return snap.state, nil
}

// Subscribe registers fn and returns a function removing it again.
func (s *Store[S]) Subscribe(fn Listener[S]) func() {
	if fn == nil {
		return func() {}
	}
	s.listenersMu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, registration[S]{id: id, fn: fn})
	s.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.listenersMu.Lock()
			defer s.listenersMu.Unlock()
			for i, l := range s.listeners {
				if l.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}
