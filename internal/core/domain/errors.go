package domain

import "errors"

var (
	// ErrUnsupportedVersion is returned when a wrapper or payload declares a
	// version outside the known set.
	ErrUnsupportedVersion = errors.New("wallet version is not supported")
	// ErrVersionDowngrade is returned when attempting to decrease a wrapper's
	// version
	ErrVersionDowngrade = errors.New("wallet version must never decrease")
	// ErrUnrepresentableWallet is returned when a wallet holds data that the
	// document schema of the requested version can't represent.
	ErrUnrepresentableWallet = errors.New(
		"wallet can't be represented with the requested version schema",
	)
	// ErrMalformedDocument ...
	ErrMalformedDocument = errors.New("wallet document is malformed")

	// ErrWalletNullGUID ...
	ErrWalletNullGUID = errors.New("wallet guid must not be null")
	// ErrWalletNullSharedKey ...
	ErrWalletNullSharedKey = errors.New("wallet shared key must not be null")
	// ErrHDWalletNotFound is returned when the wallet has no HD structure yet
	ErrHDWalletNotFound = errors.New("wallet has no hd wallet")
	// ErrHDWalletNullSeed ...
	ErrHDWalletNullSeed = errors.New("hd wallet seed must not be null")
	// ErrHDWalletNoAccounts ...
	ErrHDWalletNoAccounts = errors.New("hd wallet must have at least one account")
	// ErrHDWalletInvalidDefaultAccount ...
	ErrHDWalletInvalidDefaultAccount = errors.New(
		"hd wallet default account index is out of range",
	)
	// ErrHDWalletTooMany is returned if a wallet holds more than one hd wallet
	ErrHDWalletTooMany = errors.New("wallet must hold at most one hd wallet")
	// ErrAccountInvalidIndex ...
	ErrAccountInvalidIndex = errors.New(
		"account index must match its position in the hd wallet",
	)
	// ErrAccountNoDerivations ...
	ErrAccountNoDerivations = errors.New("account must have at least one derivation")
	// ErrAccountDuplicatedDerivation ...
	ErrAccountDuplicatedDerivation = errors.New(
		"account derivation types must be unique",
	)
	// ErrAccountInvalidDefaultDerivation ...
	ErrAccountInvalidDefaultDerivation = errors.New(
		"account default derivation must match one of its derivations",
	)
	// ErrDerivationUnknownType ...
	ErrDerivationUnknownType = errors.New("derivation type is unknown")
	// ErrDerivationInvalidPurpose ...
	ErrDerivationInvalidPurpose = errors.New(
		"derivation purpose doesn't match its type",
	)
)
