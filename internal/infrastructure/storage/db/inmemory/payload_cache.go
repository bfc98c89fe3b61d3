package inmemory

import (
	"context"
	"sync"

	"github.com/tdex-network/walletsync/internal/core/ports"
)

// PayloadCacheImpl represents an in memory storage of wallet payloads
type PayloadCacheImpl struct {
	payloads map[string]ports.CachedPayload

	lock *sync.RWMutex
}

// NewPayloadCacheImpl returns a new empty PayloadCacheImpl
func NewPayloadCacheImpl() *PayloadCacheImpl {
	return &PayloadCacheImpl{
		payloads: map[string]ports.CachedPayload{},
		lock:     &sync.RWMutex{},
	}
}

// SavePayload inserts or replaces the payload of a wallet
func (r *PayloadCacheImpl) SavePayload(
	_ context.Context, payload ports.CachedPayload,
) error {
	if len(payload.GUID) <= 0 {
		return ErrPayloadNullGUID
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	payload.InnerPayload = append([]byte{}, payload.InnerPayload...)
	r.payloads[payload.GUID] = payload
	return nil
}

// GetPayload returns a copy of the cached payload of a wallet
func (r *PayloadCacheImpl) GetPayload(
	_ context.Context, guid string,
) (*ports.CachedPayload, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	payload, ok := r.payloads[guid]
	if !ok {
		return nil, ports.ErrPayloadNotFound
	}
	payload.InnerPayload = append([]byte{}, payload.InnerPayload...)
	return &payload, nil
}

// DeletePayload ...
func (r *PayloadCacheImpl) DeletePayload(_ context.Context, guid string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.payloads, guid)
	return nil
}

func (r *PayloadCacheImpl) Close() {}
