package ports

import (
	"context"

	"github.com/tdex-network/walletsync/internal/core/domain"
)

// RemoteStore is the server-side wallet store. SaveWallet must reject the
// payload when payload.OldChecksum does not match the stored checksum.
type RemoteStore interface {
	SaveWallet(
		ctx context.Context, payload domain.WalletPayload, addresses []string,
	) error
	FetchWallet(ctx context.Context, guid string) (*domain.WalletPayload, error)
}
