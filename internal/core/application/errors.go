package application

import (
	"errors"
	"fmt"
)

var (
	// ErrVerificationFailure is returned when decrypting a freshly encrypted
	// wallet does not give back the original document.
	ErrVerificationFailure = errors.New("wallet payload verification failed")
	// ErrEncoding is returned when the wallet payload or its checksum can't be
	// computed.
	ErrEncoding = errors.New("failed to encode wallet payload")
	// ErrNetworkFailure wraps any error returned by the remote store
	ErrNetworkFailure = errors.New("failed to save wallet to remote store")
	// ErrWalletCreate ...
	ErrWalletCreate = errors.New("failed to create hd wallet")
	// ErrWalletUpgrade is matched by every error of the upgrade chain
	ErrWalletUpgrade = errors.New("failed to upgrade wallet")

	// ErrMnemonicFailure ...
	ErrMnemonicFailure = fmt.Errorf("%w: mnemonic generation failed", ErrWalletUpgrade)
	// ErrWalletCreateFailure ...
	ErrWalletCreateFailure = fmt.Errorf("%w: %w", ErrWalletUpgrade, ErrWalletCreate)
	// ErrUnableToRetrieveSeedHex ...
	ErrUnableToRetrieveSeedHex = fmt.Errorf("%w: unable to retrieve seed hex", ErrWalletUpgrade)
	// ErrUpgradeFailed ...
	ErrUpgradeFailed = fmt.Errorf("%w: upgrade step failed", ErrWalletUpgrade)

	// ErrInvalidWorkflows is returned when the upgrade workflows are not
	// sorted by ascending contiguous versions up to the latest one.
	ErrInvalidWorkflows = errors.New("upgrade workflows must cover every version in ascending order")
	// ErrWalletNotLoaded ...
	ErrWalletNotLoaded = errors.New("no wallet loaded")
	// ErrChecksumMismatch is returned when a fetched payload does not match its
	// checksum.
	ErrChecksumMismatch = errors.New("wallet payload checksum mismatch")
	// ErrNullPassword ...
	ErrNullPassword = errors.New("password must not be null")
)
