package application

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/tdex-network/walletsync/internal/core/domain"
	"github.com/tdex-network/walletsync/internal/core/ports"
	"github.com/tdex-network/walletsync/pkg/wallet"
)

// SeedEntropySize is the number of random bytes a new HD wallet seed is
// made of (12 word mnemonic).
const SeedEntropySize = 16

// DefaultWorkflows returns the upgrade chain up to the latest version
func DefaultWorkflows(entropySource ports.EntropySource) []Workflow {
	return []Workflow{
		NewVersion2Workflow(wallet.DefaultIterations),
		NewVersion3Workflow(entropySource),
		NewVersion4Workflow(),
	}
}

// NewVersion2Workflow stores the pbkdf2 iterations into the wallet options,
// defaulting to the given value if the wrapper has none.
func NewVersion2Workflow(defaultIterations uint32) Workflow {
	return Workflow{
		SupportedVersion: domain.Version2,
		ShouldPerformUpgrade: func(w domain.Wrapper) bool {
			return w.Version < domain.Version2
		},
		Upgrade: func(
			_ context.Context, w domain.Wrapper,
		) (*domain.Wrapper, error) {
			iterations := w.PBKDF2Iterations
			if iterations == 0 {
				iterations = defaultIterations
			}

			wlt := w.Wallet.Clone()
			if wlt.Options.PBKDF2Iterations == 0 {
				wlt.Options.PBKDF2Iterations = iterations
			}
			next, err := w.WithWallet(wlt).WithVersion(domain.Version2)
			if err != nil {
				return nil, err
			}
			next.PBKDF2Iterations = iterations
			return &next, nil
		},
	}
}

// NewVersion3Workflow adds an HD wallet, made of a single account with a
// legacy derivation, to wallets that have none.
func NewVersion3Workflow(entropySource ports.EntropySource) Workflow {
	return Workflow{
		SupportedVersion: domain.Version3,
		ShouldPerformUpgrade: func(w domain.Wrapper) bool {
			return !w.Wallet.HasHDWallet()
		},
		Upgrade: func(
			ctx context.Context, w domain.Wrapper,
		) (*domain.Wrapper, error) {
			entropy, err := entropySource.GenerateEntropy(ctx, SeedEntropySize)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrMnemonicFailure, err)
			}
			mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{
				Entropy: entropy,
			})
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrMnemonicFailure, err)
			}
			if !wallet.IsMnemonicValid(mnemonic) {
				return nil, fmt.Errorf("%w: %s", ErrMnemonicFailure, wallet.ErrInvalidMnemonic)
			}

			hd := domain.HDWallet{SeedHex: hex.EncodeToString(entropy)}
			masterKey, err := wallet.NewMasterKey(wallet.NewMasterKeyOpts{
				SeedHex: hd.SeedHex,
			})
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrWalletCreateFailure, err)
			}
			legacy, err := newDerivation(masterKey, domain.DerivationTypeLegacy, 0, nil)
			if err != nil {
				return nil, err
			}
			hd.Accounts = []domain.Account{{
				Index:             0,
				Label:             domain.DefaultAccountLabel,
				DefaultDerivation: domain.DerivationTypeLegacy,
				Derivations:       []domain.Derivation{*legacy},
			}}
			if err := hd.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrWalletCreateFailure, err)
			}

			wlt := w.Wallet.Clone()
			wlt.HDWallets = []domain.HDWallet{hd}
			next, err := w.WithWallet(wlt).WithVersion(domain.Version3)
			if err != nil {
				return nil, err
			}
			return &next, nil
		},
	}
}

// NewVersion4Workflow re-derives, for every account of the HD wallet, the
// legacy and the segwit derivations and makes segwit the default one.
// Address labels are carried over to the derivation of the same type.
func NewVersion4Workflow() Workflow {
	return Workflow{
		SupportedVersion: domain.Version4,
		ShouldPerformUpgrade: func(w domain.Wrapper) bool {
			return !w.IsLatest()
		},
		Upgrade: func(
			_ context.Context, w domain.Wrapper,
		) (*domain.Wrapper, error) {
			hd, err := w.Wallet.DefaultHDWallet()
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrUpgradeFailed, err)
			}
			if len(hd.SeedHex) <= 0 {
				return nil, ErrUnableToRetrieveSeedHex
			}
			masterKey, err := wallet.NewMasterKey(wallet.NewMasterKeyOpts{
				SeedHex:    hd.SeedHex,
				Passphrase: hd.Passphrase,
			})
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrUnableToRetrieveSeedHex, err)
			}

			upgraded := hd.Clone()
			for i, account := range upgraded.Accounts {
				derivations := make([]domain.Derivation, 0, len(domain.DerivationTypes))
				for _, t := range domain.DerivationTypes {
					var labels []domain.AddressLabel
					if prev, ok := account.Derivation(t); ok {
						labels = prev.AddressLabels
					}
					derivation, err := newDerivation(masterKey, t, account.Index, labels)
					if err != nil {
						return nil, err
					}
					derivations = append(derivations, *derivation)
				}
				upgraded.Accounts[i].Derivations = derivations
				upgraded.Accounts[i].DefaultDerivation = domain.DerivationTypeSegwit
			}
			if err := upgraded.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrWalletCreateFailure, err)
			}

			wlt := w.Wallet.Clone()
			wlt.HDWallets[0] = upgraded
			next, err := w.WithWallet(wlt).WithVersion(domain.Version4)
			if err != nil {
				return nil, err
			}
			return &next, nil
		},
	}
}

func newDerivation(
	masterKey *hdkeychain.ExtendedKey, derivationType domain.DerivationType,
	account int, labels []domain.AddressLabel,
) (*domain.Derivation, error) {
	purpose, ok := derivationType.Purpose()
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s", ErrWalletCreateFailure, domain.ErrDerivationUnknownType,
		)
	}
	if account < 0 {
		return nil, fmt.Errorf(
			"%w: %s", ErrWalletCreateFailure, domain.ErrAccountInvalidIndex,
		)
	}

	keys, err := wallet.DeriveAccountKeys(wallet.DeriveAccountKeysOpts{
		MasterKey: masterKey,
		Purpose:   purpose,
		Account:   uint32(account),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWalletCreateFailure, err)
	}

	var addressLabels []domain.AddressLabel
	if labels != nil {
		addressLabels = append([]domain.AddressLabel{}, labels...)
	}
	return &domain.Derivation{
		Type:          derivationType,
		Purpose:       purpose,
		Xpriv:         keys.Xpriv,
		Xpub:          keys.Xpub,
		AddressLabels: addressLabels,
		Cache: domain.AddressCache{
			ReceiveAccount: keys.ReceiveXpub,
			ChangeAccount:  keys.ChangeXpub,
		},
	}, nil
}
