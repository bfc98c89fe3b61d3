package inmemory

import (
	"context"
	"sync"

	"github.com/tdex-network/walletsync/internal/core/ports"
)

// CredentialsCacheImpl keeps wallet passwords in memory only, they are lost
// once the process exits.
type CredentialsCacheImpl struct {
	passwords map[string]string

	lock *sync.RWMutex
}

// NewCredentialsCacheImpl returns a new empty CredentialsCacheImpl
func NewCredentialsCacheImpl() *CredentialsCacheImpl {
	return &CredentialsCacheImpl{
		passwords: map[string]string{},
		lock:      &sync.RWMutex{},
	}
}

func (r *CredentialsCacheImpl) SetPassword(
	_ context.Context, guid, password string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.passwords[guid] = password
	return nil
}

func (r *CredentialsCacheImpl) GetPassword(
	_ context.Context, guid string,
) (string, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	password, ok := r.passwords[guid]
	if !ok {
		return "", ports.ErrPasswordNotFound
	}
	return password, nil
}

func (r *CredentialsCacheImpl) DeletePassword(
	_ context.Context, guid string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.passwords, guid)
	return nil
}
