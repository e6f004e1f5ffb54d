package subscription

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/royalty-registry/common/errs"
)

// Broker fans out published values to every active subscription.
// A subscriber that can't keep up with the buffer is dropped and receives an error.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[*Subscription[T]]struct{}
	closed bool
}

func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{
		subs: make(map[*Subscription[T]]struct{}),
	}
}

// Subscribe registers a new subscription forwarding published values to ch.
func (b *Broker[T]) Subscribe(ch chan<- T) (*ClientSubscription[T], error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, errors.Wrap(errs.Closed, "broker is closed")
	}

	sub := NewSubscription(ch)
	sub.onClose = func() { b.remove(sub) }
	b.subs[sub] = struct{}{}
	return sub.Client(), nil
}

// Publish offers the value to all subscriptions without blocking on slow subscribers.
// A subscription whose buffer is full is removed and closed with an error.
func (b *Broker[T]) Publish(value T) {
	b.mu.RLock()
	var dropped []*Subscription[T]
	for sub := range b.subs {
		if !sub.offer(value) {
			dropped = append(dropped, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range dropped {
		b.remove(sub)
		sub.fail(errors.Wrap(errs.SomethingWentWrong, "subscriber is too slow"))
	}
}

// Len returns the number of active subscriptions.
func (b *Broker[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close unsubscribes all subscriptions. Subscribe fails after Close.
func (b *Broker[T]) Close(ctx context.Context) error {
	b.mu.Lock()
	b.closed = true
	subs := b.subs
	b.subs = make(map[*Subscription[T]]struct{})
	b.mu.Unlock()

	var errList []error
	for sub := range subs {
		if err := sub.UnsubscribeWithContext(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.WithStack(errors.Join(errList...))
}

func (b *Broker[T]) remove(sub *Subscription[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, sub)
}
