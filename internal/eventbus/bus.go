// Package eventbus provides a small typed publish/subscribe bus.
package eventbus

import "sync"

// Bus delivers events of type E to its subscribers. Publish is synchronous:
// handlers run on the publishing goroutine, in subscription order, and must
// not block. Handlers may subscribe or unsubscribe while an event is being
// delivered; the change applies from the next Publish.
type Bus[E any] struct {
	mu   sync.RWMutex
	next uint64
	subs []subscriber[E]
}

type subscriber[E any] struct {
	id uint64
	fn func(E)
}

// New creates an empty bus.
func New[E any]() *Bus[E] {
	return &Bus[E]{}
}

// Subscribe registers fn and returns a function that removes it. Calling
// the returned function more than once is a no-op.
func (b *Bus[E]) Subscribe(fn func(E)) (unsubscribe func()) {
	b.mu.Lock()
	b.next++
	id := b.next
	b.subs = append(b.subs, subscriber[E]{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus[E]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers e to every current subscriber.
func (b *Bus[E]) Publish(e E) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(e)
	}
}

// Len returns the number of subscribers.
func (b *Bus[E]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Channel subscribes a buffered channel of size buf. Events that arrive
// while the channel is full are dropped and counted; the returned function
// unsubscribes. The channel is never closed, so readers select on their own
// done signal.
func (b *Bus[E]) Channel(buf int) (<-chan E, *Dropped, func()) {
	ch := make(chan E, buf)
	dropped := &Dropped{}
	unsubscribe := b.Subscribe(func(e E) {
		select {
		case ch <- e:
		default:
			dropped.add()
		}
	})
	return ch, dropped, unsubscribe
}

// Dropped counts events a channel subscriber could not accept.
type Dropped struct {
	mu sync.Mutex
	n  int
}

func (d *Dropped) add() {
	d.mu.Lock()
	d.n++
	d.mu.Unlock()
}

// Count returns the number of dropped events.
func (d *Dropped) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.n
}
