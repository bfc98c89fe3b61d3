package application_test

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/walletsync/internal/core/domain"
	"github.com/tdex-network/walletsync/pkg/wallet"
)

const (
	testPassword   = "correct-password"
	testIterations = 10
	testGUID       = "5f2a3b8e-7c1d-4e9a-b6f0-123456789abc"
)

var (
	ctx         = context.Background()
	testEntropy = []byte{
		0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
		0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
	}
	testSeedHex = hex.EncodeToString(testEntropy)
)

// zeroReader makes the payload cypher deterministic
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func newTestLegacyWallet() domain.Wallet {
	return domain.Wallet{
		GUID:      testGUID,
		SharedKey: "a1b2c3d4-e5f6-4a5b-8c9d-0e1f2a3b4c5d",
		Options: domain.Options{
			PBKDF2Iterations: testIterations,
			FeePerKB:         10000,
			LogoutTime:       600000,
		},
		Addresses: []domain.LegacyAddress{
			{Addr: "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2", Label: "paper"},
			{Addr: "1Archived", Tag: domain.LegacyAddressArchivedTag},
		},
		TxNotes: map[string]string{"txid": "coffee"},
	}
}

func newTestLegacyWrapper(t *testing.T) domain.Wrapper {
	wrapper, err := domain.NewWrapper(
		newTestLegacyWallet(), domain.Version2, "en", testIterations,
	)
	require.NoError(t, err)
	return *wrapper
}

// newTestV3Wrapper returns a version 3 wrapper whose HD wallet has the given
// number of accounts, each with a legacy derivation of testSeedHex.
func newTestV3Wrapper(t *testing.T, numOfAccounts int) domain.Wrapper {
	masterKey, err := wallet.NewMasterKey(wallet.NewMasterKeyOpts{
		SeedHex: testSeedHex,
	})
	require.NoError(t, err)

	accounts := make([]domain.Account, 0, numOfAccounts)
	for i := 0; i < numOfAccounts; i++ {
		keys, err := wallet.DeriveAccountKeys(wallet.DeriveAccountKeysOpts{
			MasterKey: masterKey,
			Purpose:   domain.PurposeLegacy,
			Account:   uint32(i),
		})
		require.NoError(t, err)

		accounts = append(accounts, domain.Account{
			Index:             i,
			Label:             "Account",
			DefaultDerivation: domain.DerivationTypeLegacy,
			Derivations: []domain.Derivation{{
				Type:          domain.DerivationTypeLegacy,
				Purpose:       domain.PurposeLegacy,
				Xpriv:         keys.Xpriv,
				Xpub:          keys.Xpub,
				AddressLabels: []domain.AddressLabel{{Index: i, Label: "label"}},
				Cache: domain.AddressCache{
					ReceiveAccount: keys.ReceiveXpub,
					ChangeAccount:  keys.ChangeXpub,
				},
			}},
		})
	}

	wlt := newTestLegacyWallet()
	wlt.HDWallets = []domain.HDWallet{{
		SeedHex:  testSeedHex,
		Accounts: accounts,
	}}
	wrapper, err := domain.NewWrapper(wlt, domain.Version3, "en", testIterations)
	require.NoError(t, err)
	return *wrapper
}

func deriveTestAccountKeys(
	t *testing.T, purpose uint32, account uint32,
) *wallet.AccountKeys {
	masterKey, err := wallet.NewMasterKey(wallet.NewMasterKeyOpts{
		SeedHex: testSeedHex,
	})
	require.NoError(t, err)
	keys, err := wallet.DeriveAccountKeys(wallet.DeriveAccountKeysOpts{
		MasterKey: masterKey,
		Purpose:   purpose,
		Account:   account,
	})
	require.NoError(t, err)
	return keys
}

func walletDeriveFirstAddress(xpub string, segwit bool) (string, error) {
	return wallet.DeriveAddress(wallet.DeriveAddressOpts{
		Xpub:   xpub,
		Chain:  wallet.ExternalChain,
		Index:  0,
		Segwit: segwit,
	})
}
