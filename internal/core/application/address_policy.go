package application

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/walletsync/internal/core/domain"
	"github.com/tdex-network/walletsync/pkg/wallet"
)

// AddressPolicy selects the addresses sent along with a remote save
type AddressPolicy string

const (
	// AddressPolicyNone sends no address
	AddressPolicyNone AddressPolicy = "none"
	// AddressPolicyImported sends the non-archived imported addresses
	AddressPolicyImported AddressPolicy = "imported"
	// AddressPolicyAll sends the imported addresses and the first receive
	// address of every non-archived HD account
	AddressPolicyAll AddressPolicy = "all"
)

// ParseAddressPolicy ...
func ParseAddressPolicy(str string) (AddressPolicy, error) {
	switch p := AddressPolicy(strings.ToLower(strings.TrimSpace(str))); p {
	case "":
		return AddressPolicyNone, nil
	case AddressPolicyNone, AddressPolicyImported, AddressPolicyAll:
		return p, nil
	default:
		return "", fmt.Errorf("unknown address policy %q", str)
	}
}

// Addresses returns the list of addresses of the wallet selected by the
// policy. HD addresses that can't be derived are skipped.
func (p AddressPolicy) Addresses(w domain.Wallet) []string {
	switch p {
	case AddressPolicyImported:
		return w.ActiveAddresses()
	case AddressPolicyAll:
		addresses := w.ActiveAddresses()
		for _, hd := range w.HDWallets {
			for _, account := range hd.Accounts {
				if account.Archived {
					continue
				}
				derivation, ok := account.DefaultDerivationKeys()
				if !ok {
					continue
				}
				addr, err := wallet.DeriveAddress(wallet.DeriveAddressOpts{
					Xpub:   derivation.Xpub,
					Chain:  wallet.ExternalChain,
					Index:  0,
					Segwit: derivation.Type.IsSegwit(),
				})
				if err != nil {
					log.WithError(err).WithField("account", account.Index).Warn(
						"failed to derive first receive address, skipping",
					)
					continue
				}
				addresses = append(addresses, addr)
			}
		}
		return addresses
	default:
		return nil
	}
}
