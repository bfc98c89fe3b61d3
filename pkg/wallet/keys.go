package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

const (
	// ExternalChain is the branch of receiving addresses
	ExternalChain uint32 = 0
	// InternalChain is the branch of change addresses
	InternalChain uint32 = 1
)

// NetParams are the network parameters used to serialize extended keys and
// addresses.
var NetParams = &chaincfg.MainNetParams

// NewMasterKeyOpts is the struct given to the NewMasterKey method
type NewMasterKeyOpts struct {
	// SeedHex is the entropy of the HD wallet in hex format.
	SeedHex    string
	Passphrase string
}

func (o NewMasterKeyOpts) validate() error {
	if len(o.SeedHex) <= 0 {
		return ErrNullSeed
	}
	return nil
}

// NewMasterKey recovers the master node of an HD wallet from its seed. The
// seed is turned into its mnemonic and the bip39 seed of the mnemonic and the
// passphrase is used as root key material.
func NewMasterKey(opts NewMasterKeyOpts) (*hdkeychain.ExtendedKey, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	mnemonic, err := NewMnemonicFromSeedHex(opts.SeedHex)
	if err != nil {
		return nil, err
	}
	seed, err := NewSeedFromMnemonic(mnemonic, opts.Passphrase)
	if err != nil {
		return nil, err
	}
	return hdkeychain.NewMaster(seed, NetParams)
}

// AccountKeys holds the extended keys of a derived account
type AccountKeys struct {
	Path DerivationPath
	// Xpriv and Xpub are the account extended keys in base58 format.
	Xpriv string
	Xpub  string
	// ReceiveXpub and ChangeXpub are the extended public keys of the
	// external and internal chains of the account.
	ReceiveXpub string
	ChangeXpub  string
}

// DeriveAccountKeysOpts is the struct given to DeriveAccountKeys method
type DeriveAccountKeysOpts struct {
	MasterKey *hdkeychain.ExtendedKey
	Purpose   uint32
	Account   uint32
}

func (o DeriveAccountKeysOpts) validate() error {
	if o.MasterKey == nil {
		return ErrNullMasterKey
	}
	if !o.MasterKey.IsPrivate() {
		return ErrNullMasterKey
	}
	if o.Purpose > MaxHardenedValue {
		return ErrOutOfRangePurpose
	}
	if o.Account > MaxHardenedValue {
		return ErrOutOfRangeDerivationPathAccount
	}
	return nil
}

// DeriveAccountKeys derives the keys of the account at path
// m/purpose'/0'/account' from the given master key
func DeriveAccountKeys(opts DeriveAccountKeysOpts) (*AccountKeys, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	path := NewAccountDerivationPath(opts.Purpose, opts.Account)
	accountNode, err := deriveChild(opts.MasterKey, path)
	if err != nil {
		return nil, err
	}

	xpub, err := accountNode.Neuter()
	if err != nil {
		return nil, err
	}
	receiveXpub, err := neuteredChild(accountNode, ExternalChain)
	if err != nil {
		return nil, err
	}
	changeXpub, err := neuteredChild(accountNode, InternalChain)
	if err != nil {
		return nil, err
	}

	return &AccountKeys{
		Path:        path,
		Xpriv:       accountNode.String(),
		Xpub:        xpub.String(),
		ReceiveXpub: receiveXpub,
		ChangeXpub:  changeXpub,
	}, nil
}

// DeriveAddressOpts is the struct given to DeriveAddress method
type DeriveAddressOpts struct {
	// Xpub is an account extended public key.
	Xpub   string
	Chain  uint32
	Index  uint32
	Segwit bool
}

func (o DeriveAddressOpts) validate() error {
	if len(o.Xpub) <= 0 {
		return ErrNullExtendedKey
	}
	if o.Chain != ExternalChain && o.Chain != InternalChain {
		return ErrInvalidChain
	}
	return nil
}

// DeriveAddress derives the address at xpub/chain/index. It returns a P2WPKH
// address for segwit accounts and a P2PKH address otherwise.
func DeriveAddress(opts DeriveAddressOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	accountNode, err := hdkeychain.NewKeyFromString(opts.Xpub)
	if err != nil {
		return "", err
	}
	node, err := deriveChild(accountNode, DerivationPath{opts.Chain, opts.Index})
	if err != nil {
		return "", err
	}

	var pubkey *btcec.PublicKey
	if pubkey, err = node.ECPubKey(); err != nil {
		return "", err
	}
	pubkeyHash := btcutil.Hash160(pubkey.SerializeCompressed())

	var addr btcutil.Address
	if opts.Segwit {
		addr, err = btcutil.NewAddressWitnessPubKeyHash(pubkeyHash, NetParams)
	} else {
		addr, err = btcutil.NewAddressPubKeyHash(pubkeyHash, NetParams)
	}
	if err != nil {
		return "", err
	}
	return addr.EncodeAddress(), nil
}

func deriveChild(
	key *hdkeychain.ExtendedKey, path DerivationPath,
) (*hdkeychain.ExtendedKey, error) {
	node := key
	for _, step := range path {
		var err error
		if node, err = node.Derive(step); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func neuteredChild(key *hdkeychain.ExtendedKey, index uint32) (string, error) {
	child, err := key.Derive(index)
	if err != nil {
		return "", err
	}
	xpub, err := child.Neuter()
	if err != nil {
		return "", err
	}
	return xpub.String(), nil
}
