package application

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// serialQueue runs the operations sharing the same key one at a time, in
// the order they acquire the key's slot.
type serialQueue struct {
	lock  *sync.Mutex
	slots map[string]*semaphore.Weighted
}

func newSerialQueue() *serialQueue {
	return &serialQueue{
		lock:  &sync.Mutex{},
		slots: make(map[string]*semaphore.Weighted),
	}
}

func (q *serialQueue) slot(key string) *semaphore.Weighted {
	q.lock.Lock()
	defer q.lock.Unlock()

	if _, ok := q.slots[key]; !ok {
		q.slots[key] = semaphore.NewWeighted(1)
	}
	return q.slots[key]
}

// run waits for the slot of key and runs fn. ctx is honored only while
// waiting: fn gets a context that is never canceled so that, once started,
// it always runs to completion.
func (q *serialQueue) run(
	ctx context.Context, key string, fn func(ctx context.Context) error,
) error {
	slot := q.slot(key)
	if err := slot.Acquire(ctx, 1); err != nil {
		return err
	}
	defer slot.Release(1)

	return fn(context.WithoutCancel(ctx))
}
