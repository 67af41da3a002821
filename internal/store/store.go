package store

import (
	"context"
	"sync"
	"sync/atomic"
)

// Reducer folds an event into a state. It must be pure: under contention it
// may run more than once for the same event.
type Reducer[S, E any] func(state S, event E) S

// Observer receives store activity
type Observer interface {
	Applied(event string)
	Conflict()
	Dropped()
}

type snapshot[S any] struct {
	version uint64
	state   S
}

type watcher[S any] struct {
	ch      chan S
	version uint64
}

// Store is the observable state container of one screen
type Store[S, E, N any] struct {
	reduce   Reducer[S, E]
	current  atomic.Pointer[snapshot[S]]
	observer Observer
	name     func(E) string

	pubMu    sync.Mutex
	watchers map[*watcher[S]]struct{}
	closed   bool
	done     chan struct{} // closed by Close

	notifier *Notifier[N]
}

type Option func(*options)

type options struct {
	observer  Observer
	bufferCap int
	eventName func(any) string
}

// WithObserver reports applications, CAS conflicts and dropped notifications
func WithObserver(o Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// WithNotificationBuffer sets the per-listener notification buffer capacity
func WithNotificationBuffer(n int) Option {
	return func(opts *options) { opts.bufferCap = n }
}

// WithEventNames labels events for the observer
func WithEventNames(fn func(event any) string) Option {
	return func(opts *options) { opts.eventName = fn }
}

// New creates a store seeded with initial
func New[S, E, N any](initial S, reduce Reducer[S, E], opts ...Option) *Store[S, E, N] {
	o := options{observer: nopObserver{}, bufferCap: DefaultNotificationBuffer, eventName: defaultEventName}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Store[S, E, N]{
		reduce:   reduce,
		observer: o.observer,
		name:     func(e E) string { return o.eventName(e) },
		watchers: make(map[*watcher[S]]struct{}),
		done:     make(chan struct{}),
		notifier: NewNotifier[N](o.bufferCap, o.observer),
	}
	s.current.Store(&snapshot[S]{state: initial})
	return s
}

// State returns the current snapshot
func (s *Store[S, E, N]) State() S {
	return s.current.Load().state
}

// Version returns the number of events applied so far
func (s *Store[S, E, N]) Version() uint64 {
	return s.current.Load().version
}

// Apply folds event into the state and returns the resulting snapshot
func (s *Store[S, E, N]) Apply(event E) S {
	for {
		old := s.current.Load()
		next := &snapshot[S]{version: old.version + 1, state: s.reduce(old.state, event)}
		if s.current.CompareAndSwap(old, next) {
			s.observer.Applied(s.name(event))
			s.publish(next)
			return next.state
		}
		s.observer.Conflict()
	}
}

// Watch returns a channel that yields the current snapshot immediately and
// every newer one afterwards. Slow readers only see the latest snapshot. The
// channel is closed when ctx is done or the store is closed.
func (s *Store[S, E, N]) Watch(ctx context.Context) <-chan S {
	w := &watcher[S]{ch: make(chan S, 1)}

	s.pubMu.Lock()
	if s.closed {
		s.pubMu.Unlock()
		close(w.ch)
		return w.ch
	}
	snap := s.current.Load()
	w.version = snap.version
	w.ch <- snap.state
	s.watchers[w] = struct{}{}
	s.pubMu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		}
		s.pubMu.Lock()
		defer s.pubMu.Unlock()
		if _, ok := s.watchers[w]; ok {
			delete(s.watchers, w)
			close(w.ch)
		}
	}()

	return w.ch
}

// Emit delivers a one-shot notification to the currently attached listeners
func (s *Store[S, E, N]) Emit(n N) {
	s.notifier.Emit(n)
}

// Notifications attaches a listener until ctx is done or the store is closed
func (s *Store[S, E, N]) Notifications(ctx context.Context) <-chan N {
	return s.notifier.Listen(ctx)
}

// Close detaches all watchers and listeners. State stays readable.
func (s *Store[S, E, N]) Close() {
	s.pubMu.Lock()
	if !s.closed {
		s.closed = true
		close(s.done)
		for w := range s.watchers {
			delete(s.watchers, w)
			close(w.ch)
		}
	}
	s.pubMu.Unlock()

	s.notifier.Close()
}

func (s *Store[S, E, N]) publish(snap *snapshot[S]) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	for w := range s.watchers {
		// A concurrent Apply may already have delivered a newer version.
		if snap.version <= w.version {
			continue
		}
		select {
		case <-w.ch:
		default:
		}
		w.ch <- snap.state
		w.version = snap.version
	}
}

type nopObserver struct{}

func (nopObserver) Applied(string) {}
func (nopObserver) Conflict()      {}
func (nopObserver) Dropped()       {}
