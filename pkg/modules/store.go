// Package modules holds the observable list of modules shared by the
// components of a session.
package modules

import (
	"sync"

	"github.com/ignitionstack/wasmboard/pkg/api"
	"go.uber.org/zap"
)

// Observer receives the module list every time it changes. The slice is a
// private copy and may be kept or modified freely.
type Observer func(modules []api.Module)

// Store owns the current module list and notifies observers of every change.
//
// Notifications are delivered synchronously, in subscription order, by the
// goroutine that applied the change. Changes applied while a notification
// round is running (for example from inside an observer) are queued and
// delivered once the running round completes, so every observer sees every
// value in order and observers never run concurrently.
//
// The same applies to Subscribe called from inside an observer, and to
// Subscribe and Set called while another goroutine is delivering a round: the
// initial value, or the new value, is queued behind that round and may reach
// observers after the call has returned. A panicking
// observer aborts the running round and drops every queued notification; the
// store stays usable.
type Store struct {
	mu          sync.Mutex
	value       []api.Module
	subscribers []*subscription
	queue       []delivery
	draining    bool
	logger      *zap.Logger
}

type subscription struct {
	observer Observer
	active   bool
}

type delivery struct {
	sub   *subscription
	value []api.Module
}

// Option configures a Store.
type Option func(*Store)

// WithModules sets the initial module list.
func WithModules(modules []api.Module) Option {
	return func(s *Store) {
		s.value = normalize(modules)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a store. Without options it starts with an empty list.
func New(opts ...Option) *Store {
	s := &Store{
		value:  []api.Module{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers observer, invokes it with the current value and then on
// every change. The returned function removes the observer; calling it more
// than once is a no-op.
func (s *Store) Subscribe(observer Observer) (unsubscribe func()) {
	sub := &subscription{observer: observer, active: true}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, sub)
	s.queue = append(s.queue, delivery{sub: sub, value: s.value})
	s.drainLocked()

	return func() {
		s.unsubscribe(sub)
	}
}

// Set replaces the module list and notifies all subscribers.
func (s *Store) Set(modules []api.Module) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(normalize(modules))
	s.drainLocked()
}

// Update replaces the module list with fn applied to the current one. fn runs
// under the store lock on a private copy and must not call back into the store.
func (s *Store) Update(fn func(current []api.Module) []api.Module) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(normalize(fn(api.CloneModules(s.value))))
	s.drainLocked()
}

// Get returns a copy of the current module list.
func (s *Store) Get() []api.Module {
	s.mu.Lock()
	defer s.mu.Unlock()
	return api.CloneModules(s.value)
}

// Len returns the number of modules currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.value)
}

func (s *Store) setLocked(value []api.Module) {
	s.value = value
	for _, sub := range s.subscribers {
		s.queue = append(s.queue, delivery{sub: sub, value: value})
	}
	s.logger.Debug("module store updated",
		zap.Int("modules", len(value)),
		zap.Int("subscribers", len(s.subscribers)))
}

// drainLocked delivers queued notifications unless another call is already
// doing so. It is entered and left with s.mu held, also when an observer
// panics.
func (s *Store) drainLocked() {
	if s.draining {
		return
	}
	s.draining = true
	defer func() {
		s.queue = nil
		s.draining = false
	}()

	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue[0] = delivery{}
		s.queue = s.queue[1:]
		if !next.sub.active {
			continue
		}
		s.deliverLocked(next)
	}
}

func (s *Store) deliverLocked(d delivery) {
	s.mu.Unlock()
	defer s.mu.Lock()
	d.sub.observer(api.CloneModules(d.value))
}

func (s *Store) unsubscribe(sub *subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !sub.active {
		return
	}
	sub.active = false
	for i, candidate := range s.subscribers {
		if candidate == sub {
			s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
			break
		}
	}
}

func normalize(modules []api.Module) []api.Module {
	if modules == nil {
		return []api.Module{}
	}
	return api.CloneModules(modules)
}
