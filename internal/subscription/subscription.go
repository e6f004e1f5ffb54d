package subscription

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
)

// SubscriptionBufferSize is the number of published values a subscription holds before the broker drops it.
var SubscriptionBufferSize = 8

// Subscription forwards values offered by the broker to the subscriber channel.
type Subscription[T any] struct {
	// The channel which the subscription sends values.
	channel chan<- T

	// in buffers values offered by the broker.
	in  chan T
	err chan error

	// Closing is requested by sending on quit. The forwarding loop closes quitDone
	// once it has stopped sending to channel.
	quitOnce sync.Once
	quit     chan struct{}
	quitDone chan struct{}

	// onClose is called once after the forwarding loop stopped. Set before the subscription is shared.
	onClose func()
}

func NewSubscription[T any](channel chan<- T) *Subscription[T] {
	subscription := &Subscription[T]{
		channel:  channel,
		in:       make(chan T, SubscriptionBufferSize),
		err:      make(chan error, 1),
		quit:     make(chan struct{}),
		quitDone: make(chan struct{}),
	}
	go subscription.run()
	return subscription
}

func (s *Subscription[T]) Unsubscribe() {
	_ = s.UnsubscribeWithContext(context.Background())
}

func (s *Subscription[T]) UnsubscribeWithContext(ctx context.Context) (err error) {
	s.quitOnce.Do(func() {
		select {
		case s.quit <- struct{}{}:
			<-s.quitDone
		case <-s.quitDone:
		case <-ctx.Done():
			err = ctx.Err()
			return
		}
		if s.onClose != nil {
			s.onClose()
		}
	})
	return errors.WithStack(err)
}

// Client returns the subscriber side of the subscription.
func (s *Subscription[T]) Client() *ClientSubscription[T] {
	return &ClientSubscription[T]{
		subscription: s,
	}
}

func (s *Subscription[T]) Err() <-chan error {
	return s.err
}

func (s *Subscription[T]) Done() <-chan struct{} {
	return s.quitDone
}

func (s *Subscription[T]) IsClosed() bool {
	select {
	case <-s.quitDone:
		return true
	default:
		return false
	}
}

// offer buffers the value without blocking. It returns false if the buffer is full or the subscription is closed.
func (s *Subscription[T]) offer(value T) bool {
	if s.IsClosed() {
		return false
	}
	select {
	case s.in <- value:
		return true
	default:
		return false
	}
}

// fail reports err to the subscriber and closes the subscription.
func (s *Subscription[T]) fail(err error) {
	select {
	case s.err <- err:
	default:
	}
	s.Unsubscribe()
}

// run forwards buffered values to the subscriber channel until quit.
func (s *Subscription[T]) run() {
	defer close(s.quitDone)

	for {
		select {
		case <-s.quit:
			return
		case value := <-s.in:
			select {
			case s.channel <- value:
			case <-s.quit:
				return
			}
		}
	}
}

// ClientSubscription is the subscriber side of a subscription. It can only be observed and unsubscribed.
type ClientSubscription[T any] struct {
	subscription *Subscription[T]
}

func (c *ClientSubscription[T]) Unsubscribe() {
	c.subscription.Unsubscribe()
}

func (c *ClientSubscription[T]) UnsubscribeWithContext(ctx context.Context) error {
	return c.subscription.UnsubscribeWithContext(ctx)
}

// Err returns the channel receiving the error that closed the subscription, e.g. a too slow subscriber.
func (c *ClientSubscription[T]) Err() <-chan error {
	return c.subscription.Err()
}

// Done is closed once the subscription stops forwarding values.
func (c *ClientSubscription[T]) Done() <-chan struct{} {
	return c.subscription.Done()
}

func (c *ClientSubscription[T]) IsClosed() bool {
	return c.subscription.IsClosed()
}
