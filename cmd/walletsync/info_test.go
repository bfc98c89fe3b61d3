package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/walletsync/internal/core/application"
	"github.com/tdex-network/walletsync/internal/core/domain"
)

func TestNewWalletInfo(t *testing.T) {
	wrapper := domain.Wrapper{
		PBKDF2Iterations: 5000,
		Version:          domain.Version4,
		PayloadChecksum:  "checksum",
		Language:         "en",
		Wallet: domain.Wallet{
			GUID:      "guid",
			SharedKey: "key",
			Addresses: []domain.LegacyAddress{{Addr: "1LegacyAddr"}},
			HDWallets: []domain.HDWallet{{
				SeedHex: "00",
				Accounts: []domain.Account{{
					Index:             0,
					Label:             domain.DefaultAccountLabel,
					DefaultDerivation: domain.DerivationTypeSegwit,
					Derivations: []domain.Derivation{
						{Type: domain.DerivationTypeLegacy, Purpose: domain.PurposeLegacy, Xpriv: "xprv"},
						{Type: domain.DerivationTypeSegwit, Purpose: domain.PurposeSegwit, Xpriv: "xprv"},
					},
				}},
			}},
		},
	}

	info := newWalletInfo(application.WalletStatusPartiallyLoaded, wrapper)
	require.Equal(t, "guid", info.GUID)
	require.Equal(t, "4", info.Version)
	require.Equal(t, "checksum", info.Checksum)
	require.Equal(t, 1, info.ImportedAddrs)
	require.Len(t, info.Accounts, 1)
	require.Equal(t, string(domain.DerivationTypeSegwit), info.Accounts[0].DefaultDerivation)
	require.Equal(t, []derivationInfo{
		{Type: string(domain.DerivationTypeLegacy), Path: "m/44'/0'/0'"},
		{Type: string(domain.DerivationTypeSegwit), Path: "m/84'/0'/0'"},
	}, info.Accounts[0].Derivations)

	wrapper.Version = domain.Version2
	wrapper.Wallet.HDWallets = nil
	info = newWalletInfo(application.WalletStatusPartiallyLoaded, wrapper)
	require.Equal(t, "2", info.Version)
	require.Empty(t, info.Accounts)
}
