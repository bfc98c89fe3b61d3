package application

import (
	"sync/atomic"

	"github.com/tdex-network/walletsync/internal/core/domain"
	"github.com/tdex-network/walletsync/pkg/metadata"
)

// WalletStatus tells how much of a wallet is loaded into the state holder
type WalletStatus int

const (
	WalletStatusEmpty WalletStatus = iota
	WalletStatusPartiallyLoaded
	WalletStatusFullyLoaded
)

func (s WalletStatus) String() string {
	switch s {
	case WalletStatusPartiallyLoaded:
		return "partially loaded"
	case WalletStatusFullyLoaded:
		return "fully loaded"
	default:
		return "empty"
	}
}

// WalletMetadata are the metadata entries loaded alongside the wallet
type WalletMetadata struct {
	Entries map[metadata.EntryType]metadata.Entry
}

// WalletState is an immutable snapshot of the loaded wallet. Holders never
// modify a published snapshot, they replace it.
type WalletState struct {
	Wrapper  *domain.Wrapper
	Metadata *WalletMetadata
}

// Status ...
func (s *WalletState) Status() WalletStatus {
	if s == nil || s.Wrapper == nil {
		return WalletStatusEmpty
	}
	if s.Metadata == nil {
		return WalletStatusPartiallyLoaded
	}
	return WalletStatusFullyLoaded
}

// WalletStateHolder is the shared cell holding the latest known wallet
// state. It is safe for concurrent use.
type WalletStateHolder struct {
	state atomic.Pointer[WalletState]
}

// NewWalletStateHolder returns an empty holder
func NewWalletStateHolder() *WalletStateHolder {
	h := &WalletStateHolder{}
	h.state.Store(&WalletState{})
	return h
}

// Get returns the current snapshot
func (h *WalletStateHolder) Get() *WalletState {
	return h.state.Load()
}

// PublishWrapper merges the given wrapper into the current snapshot, keeping
// any metadata already loaded for the same wallet.
func (h *WalletStateHolder) PublishWrapper(wrapper domain.Wrapper) *WalletState {
	wrapper = wrapper.WithWallet(wrapper.Wallet)
	for {
		current := h.state.Load()
		next := &WalletState{Wrapper: &wrapper}
		if current.Wrapper != nil && current.Wrapper.GUID() == wrapper.GUID() {
			next.Metadata = current.Metadata
		}
		if h.state.CompareAndSwap(current, next) {
			return next
		}
	}
}

// SetMetadata attaches metadata to the current snapshot. It is a no-op if
// no wallet is loaded. Its caller is the metadata loader embedding this
// module, which fetches and decodes the pkg/metadata entries of the wallet;
// the module itself only publishes wrappers.
func (h *WalletStateHolder) SetMetadata(m WalletMetadata) *WalletState {
	for {
		current := h.state.Load()
		if current.Wrapper == nil {
			return current
		}
		next := &WalletState{Wrapper: current.Wrapper, Metadata: &m}
		if h.state.CompareAndSwap(current, next) {
			return next
		}
	}
}

// CompareAndSwap replaces old with next only if old is still the current
// snapshot.
func (h *WalletStateHolder) CompareAndSwap(old, next *WalletState) bool {
	if next == nil {
		next = &WalletState{}
	}
	return h.state.CompareAndSwap(old, next)
}

// Reset empties the holder
func (h *WalletStateHolder) Reset() {
	h.state.Store(&WalletState{})
}
