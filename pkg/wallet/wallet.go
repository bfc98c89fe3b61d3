package wallet

import (
	"errors"
	"fmt"
)

var (
	// ErrNullPassphrase ...
	ErrNullPassphrase = errors.New("passphrase must not be null")
	// ErrNullPlainText ...
	ErrNullPlainText = errors.New("text to encrypt must not be null")
	// ErrNullCypherText ...
	ErrNullCypherText = errors.New("cypher to decrypt must not be null")
	// ErrNullSeed ...
	ErrNullSeed = errors.New("seed must not be null")
	// ErrNullMasterKey ...
	ErrNullMasterKey = errors.New("master key must not be null")
	// ErrNullExtendedKey ...
	ErrNullExtendedKey = errors.New("extended key must not be null")
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic must not be null")

	// ErrInvalidCypherText ...
	ErrInvalidCypherText = errors.New("cypher must be in base64 format")
	// ErrMalformedCypherText is returned when the cypher is valid base64 but
	// its content can't be an encrypted payload.
	ErrMalformedCypherText = errors.New("cypher is malformed or corrupted")
	// ErrInvalidPassphrase is returned when the cypher can't be opened with
	// the given passphrase.
	ErrInvalidPassphrase = errors.New("passphrase is not valid")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 4 bytes in the range [16,32]",
	)
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidSeedHex ...
	ErrInvalidSeedHex = errors.New("seed must be in hex format")
	// ErrInvalidChain ...
	ErrInvalidChain = errors.New("chain must be either external (0) or internal (1)")
	// ErrOutOfRangeDerivationPathAccount ...
	ErrOutOfRangeDerivationPathAccount = fmt.Errorf(
		"account index must be in range [0, %d]", MaxHardenedValue,
	)
	// ErrOutOfRangePurpose ...
	ErrOutOfRangePurpose = fmt.Errorf(
		"purpose must be in range [0, %d]", MaxHardenedValue,
	)
)
