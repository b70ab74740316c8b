// Package session holds the CLI's signed-in state. A Session is created
// once per process and handed to whoever needs it; there is no package
// level instance.
//
// Lifecycle: Init restores the persisted state, Subscribe registers change
// listeners, Set and Clear update the state (and storage), Close drops all
// listeners.
package session

import (
	"context"
	"sync"
	"time"
)

// State is what the client remembers between invocations.
type State struct {
	Email           string
	AccessToken     string
	AccessExpiresAt time.Time
	RefreshToken    string
}

// SignedIn reports whether the state carries tokens.
func (s State) SignedIn() bool {
	return s.AccessToken != "" || s.RefreshToken != ""
}

type Session struct {
	mu     sync.RWMutex
	store  Store
	state  State
	subs   map[int]func(State)
	nextID int
	closed bool
}

func New(store Store) *Session {
	return &Session{store: store, subs: make(map[int]func(State))}
}

// Init loads the persisted state. Listeners are not notified.
func (s *Session) Init(ctx context.Context) error {
	st, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	return nil
}

// Current returns a copy of the state.
func (s *Session) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn for future changes. The returned func removes it.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Set persists st and notifies listeners.
func (s *Session) Set(ctx context.Context, st State) error {
	if err := s.store.Save(ctx, st); err != nil {
		return err
	}
	s.publish(st)
	return nil
}

// Clear forgets the signed-in user.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.publish(State{})
	return nil
}

func (s *Session) publish(st State) {
	s.mu.Lock()
	s.state = st
	listeners := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	// called outside the lock so listeners may read Current
	for _, fn := range listeners {
		fn(st)
	}
}

// Close drops every subscription. The state stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = make(map[int]func(State))
	s.closed = true
}
