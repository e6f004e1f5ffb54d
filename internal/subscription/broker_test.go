package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/gaze-network/royalty-registry/common/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker(t *testing.T) {
	t.Run("fan out", func(t *testing.T) {
		broker := NewBroker[int]()
		ch1, ch2 := make(chan int, 4), make(chan int, 4)
		sub1, err := broker.Subscribe(ch1)
		require.NoError(t, err)
		sub2, err := broker.Subscribe(ch2)
		require.NoError(t, err)
		defer sub1.Unsubscribe()
		defer sub2.Unsubscribe()
		assert.Equal(t, 2, broker.Len())

		broker.Publish(1)
		broker.Publish(2)

		for _, ch := range []chan int{ch1, ch2} {
			assert.Equal(t, 1, <-ch)
			assert.Equal(t, 2, <-ch)
		}
	})
	t.Run("unsubscribed client is removed", func(t *testing.T) {
		broker := NewBroker[int]()
		sub, err := broker.Subscribe(make(chan int, 1))
		require.NoError(t, err)

		sub.Unsubscribe()
		assert.True(t, sub.IsClosed())

		broker.Publish(1)
		assert.Equal(t, 0, broker.Len())
	})
	t.Run("unsubscribe removes without publish", func(t *testing.T) {
		broker := NewBroker[int]()
		for i := 0; i < 100; i++ {
			sub, err := broker.Subscribe(make(chan int, 1))
			require.NoError(t, err)
			sub.Unsubscribe()
		}
		assert.Equal(t, 0, broker.Len())
	})
	t.Run("slow subscriber is dropped", func(t *testing.T) {
		broker := NewBroker[int]()
		sub, err := broker.Subscribe(make(chan int)) // nobody reads
		require.NoError(t, err)

		for i := 0; i < SubscriptionBufferSize+10; i++ {
			broker.Publish(i)
		}

		assert.Equal(t, 0, broker.Len())
		select {
		case err := <-sub.Err():
			assert.ErrorIs(t, err, errs.SomethingWentWrong)
		case <-time.After(time.Second):
			t.Fatal("expected slow subscriber error")
		}
		assert.True(t, sub.IsClosed())
	})
	t.Run("close", func(t *testing.T) {
		broker := NewBroker[int]()
		sub, err := broker.Subscribe(make(chan int, 1))
		require.NoError(t, err)

		require.NoError(t, broker.Close(context.Background()))
		assert.True(t, sub.IsClosed())

		_, err = broker.Subscribe(make(chan int, 1))
		assert.ErrorIs(t, err, errs.Closed)
	})
}
