package store

import (
	"context"
	"fmt"
	"sync"
)

// DefaultNotificationBuffer holds one pending item beyond the one being consumed
const DefaultNotificationBuffer = 2

// Notifier fans one-shot notifications out to attached listeners.
// Each listener has its own bounded buffer; when it is full the oldest item is
// dropped. Emission order is preserved per listener.
type Notifier[N any] struct {
	mu        sync.Mutex
	listeners map[chan N]struct{}
	capacity  int
	observer  Observer
	closed    bool
	done      chan struct{} // closed by Close
}

// NewNotifier creates a notifier; capacity below 1 is raised to 1
func NewNotifier[N any](capacity int, observer Observer) *Notifier[N] {
	if capacity < 1 {
		capacity = 1
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Notifier[N]{
		listeners: make(map[chan N]struct{}),
		capacity:  capacity,
		observer:  observer,
		done:      make(chan struct{}),
	}
}

// Listen attaches a listener. Only notifications emitted after this call are received.
func (n *Notifier[N]) Listen(ctx context.Context) <-chan N {
	ch := make(chan N, n.capacity)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		close(ch)
		return ch
	}
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-n.done:
		}
		n.mu.Lock()
		defer n.mu.Unlock()
		if _, ok := n.listeners[ch]; ok {
			delete(n.listeners, ch)
			close(ch)
		}
	}()

	return ch
}

// Emit never blocks
func (n *Notifier[N]) Emit(item N) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.listeners {
		for {
			select {
			case ch <- item:
			default:
				select {
				case <-ch:
					n.observer.Dropped()
				default:
				}
				continue
			}
			break
		}
	}
}

// Listeners returns the number of attached listeners
func (n *Notifier[N]) Listeners() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// Close detaches every listener
func (n *Notifier[N]) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true
	close(n.done)
	for ch := range n.listeners {
		delete(n.listeners, ch)
		close(ch)
	}
}

func defaultEventName(event any) string {
	if s, ok := event.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", event)
}
