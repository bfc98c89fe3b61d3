package domain

// DerivationType identifies the script type produced by a derivation
type DerivationType string

const (
	// DerivationTypeLegacy derives P2PKH addresses at m/44'/0'/n'
	DerivationTypeLegacy DerivationType = "legacy"
	// DerivationTypeSegwit derives native segwit addresses at m/84'/0'/n'
	DerivationTypeSegwit DerivationType = "bech32"
)

// DerivationTypes lists the known derivation types in the order they are
// stored into an account.
var DerivationTypes = []DerivationType{
	DerivationTypeLegacy, DerivationTypeSegwit,
}

// Purpose returns the bip43 purpose of the derivation type, or false if the
// type is unknown.
func (t DerivationType) Purpose() (uint32, bool) {
	switch t {
	case DerivationTypeLegacy:
		return PurposeLegacy, true
	case DerivationTypeSegwit:
		return PurposeSegwit, true
	default:
		return 0, false
	}
}

// IsSegwit ...
func (t DerivationType) IsSegwit() bool {
	return t == DerivationTypeSegwit
}

// HDWallet is the hierarchical deterministic key structure derived from one
// seed.
type HDWallet struct {
	// SeedHex is the entropy the mnemonic encodes, in hex format.
	SeedHex             string
	Passphrase          string
	MnemonicVerified    bool
	DefaultAccountIndex int
	Accounts            []Account
}

// Account is one bip44 account of an HD wallet. Its Index always matches its
// position in the HD wallet's account list.
type Account struct {
	Index             int
	Label             string
	Archived          bool
	DefaultDerivation DerivationType
	Derivations       []Derivation
}

// Derivation holds the keys of an account for one derivation type. It is
// always derived from the HD wallet seed, the account index and the purpose.
type Derivation struct {
	Type          DerivationType
	Purpose       uint32
	Xpriv         string
	Xpub          string
	AddressLabels []AddressLabel
	Cache         AddressCache
}

// AddressLabel is a user label attached to the receive address at Index
type AddressLabel struct {
	Index int
	Label string
}

// AddressCache holds the extended public keys of the external and internal
// chains of a derivation.
type AddressCache struct {
	ReceiveAccount string
	ChangeAccount  string
}

// Validate checks the invariants of the HD wallet and all its accounts
func (h HDWallet) Validate() error {
	if len(h.SeedHex) <= 0 {
		return ErrHDWalletNullSeed
	}
	if len(h.Accounts) <= 0 {
		return ErrHDWalletNoAccounts
	}
	if h.DefaultAccountIndex < 0 || h.DefaultAccountIndex >= len(h.Accounts) {
		return ErrHDWalletInvalidDefaultAccount
	}
	for i, account := range h.Accounts {
		if account.Index != i {
			return ErrAccountInvalidIndex
		}
		if err := account.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DefaultAccount returns the account at DefaultAccountIndex
func (h HDWallet) DefaultAccount() (*Account, error) {
	if h.DefaultAccountIndex < 0 || h.DefaultAccountIndex >= len(h.Accounts) {
		return nil, ErrHDWalletInvalidDefaultAccount
	}
	account := h.Accounts[h.DefaultAccountIndex]
	return &account, nil
}

// Clone returns a deep copy of the HD wallet
func (h HDWallet) Clone() HDWallet {
	accounts := make([]Account, 0, len(h.Accounts))
	for _, a := range h.Accounts {
		accounts = append(accounts, a.Clone())
	}
	h.Accounts = accounts
	return h
}

// Validate checks that derivation types are known and unique, and that the
// default derivation matches exactly one of them.
func (a Account) Validate() error {
	if a.Index < 0 {
		return ErrAccountInvalidIndex
	}
	if len(a.Derivations) <= 0 {
		return ErrAccountNoDerivations
	}

	seen := make(map[DerivationType]bool)
	for _, d := range a.Derivations {
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.Type] {
			return ErrAccountDuplicatedDerivation
		}
		seen[d.Type] = true
	}
	if !seen[a.DefaultDerivation] {
		return ErrAccountInvalidDefaultDerivation
	}
	return nil
}

// Derivation returns the account's derivation of the given type
func (a Account) Derivation(t DerivationType) (*Derivation, bool) {
	for _, d := range a.Derivations {
		if d.Type == t {
			d := d
			return &d, true
		}
	}
	return nil, false
}

// DefaultDerivationKeys returns the derivation matching DefaultDerivation
func (a Account) DefaultDerivationKeys() (*Derivation, bool) {
	return a.Derivation(a.DefaultDerivation)
}

// Clone returns a deep copy of the account
func (a Account) Clone() Account {
	derivations := make([]Derivation, 0, len(a.Derivations))
	for _, d := range a.Derivations {
		derivations = append(derivations, d.Clone())
	}
	a.Derivations = derivations
	return a
}

// Validate checks the derivation type and that the purpose matches it
func (d Derivation) Validate() error {
	purpose, ok := d.Type.Purpose()
	if !ok {
		return ErrDerivationUnknownType
	}
	if purpose != d.Purpose {
		return ErrDerivationInvalidPurpose
	}
	return nil
}

// Clone returns a deep copy of the derivation
func (d Derivation) Clone() Derivation {
	if d.AddressLabels != nil {
		d.AddressLabels = append([]AddressLabel{}, d.AddressLabels...)
	}
	return d
}
