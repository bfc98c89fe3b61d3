package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSerialQueue(t *testing.T) {
	q := newSerialQueue()
	ctx := context.Background()

	t.Run("same key runs in order", func(t *testing.T) {
		var lock sync.Mutex
		order := make([]int, 0)
		started := make(chan struct{})
		release := make(chan struct{})

		go func() {
			_ = q.run(ctx, "wallet", func(context.Context) error {
				close(started)
				<-release
				lock.Lock()
				order = append(order, 1)
				lock.Unlock()
				return nil
			})
		}()
		<-started

		done := make(chan struct{})
		go func() {
			_ = q.run(ctx, "wallet", func(context.Context) error {
				lock.Lock()
				order = append(order, 2)
				lock.Unlock()
				return nil
			})
			close(done)
		}()

		time.Sleep(10 * time.Millisecond)
		close(release)
		<-done
		require.Equal(t, []int{1, 2}, order)
	})

	t.Run("different keys do not wait", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		go func() {
			_ = q.run(ctx, "wallet-a", func(context.Context) error {
				close(started)
				<-release
				return nil
			})
		}()
		<-started

		err := q.run(ctx, "wallet-b", func(context.Context) error { return nil })
		require.NoError(t, err)
		close(release)
	})

	t.Run("running operations ignore cancellation", func(t *testing.T) {
		runCtx, cancel := context.WithCancel(ctx)
		err := q.run(runCtx, "wallet", func(ctx context.Context) error {
			cancel()
			return ctx.Err()
		})
		require.NoError(t, err)
	})
}
