package wallet

import (
	"encoding/hex"

	"github.com/vulpemventures/go-bip39"
)

// NewMnemonicOpts is the struct given to the NewMnemonic method
type NewMnemonicOpts struct {
	Entropy []byte
}

func (o NewMnemonicOpts) validate() error {
	return validateEntropy(o.Entropy)
}

// NewMnemonic returns the bip39 mnemonic encoding the given entropy
func NewMnemonic(opts NewMnemonicOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	return bip39.NewMnemonic(opts.Entropy)
}

// NewMnemonicFromSeedHex returns the mnemonic encoding the entropy stored
// in hex format as the seed of an HD wallet.
func NewMnemonicFromSeedHex(seedHex string) (string, error) {
	if len(seedHex) <= 0 {
		return "", ErrNullSeed
	}
	entropy, err := hex.DecodeString(seedHex)
	if err != nil {
		return "", ErrInvalidSeedHex
	}
	return NewMnemonic(NewMnemonicOpts{Entropy: entropy})
}

// NewSeedFromMnemonic returns the bip39 seed of the given mnemonic and
// optional passphrase.
func NewSeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	if len(mnemonic) <= 0 {
		return nil, ErrNullMnemonic
	}
	if !IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	return bip39.NewSeed(mnemonic, passphrase), nil
}

// IsMnemonicValid returns whether the given mnemonic is a valid bip39 one
func IsMnemonicValid(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

func validateEntropy(entropy []byte) error {
	size := len(entropy)
	if size < 16 || size > 32 || size%4 != 0 {
		return ErrInvalidEntropySize
	}
	return nil
}
