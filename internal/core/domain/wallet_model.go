package domain

import "fmt"

// Wallet is the document stored, encrypted, inside a Wrapper
type Wallet struct {
	GUID               string
	SharedKey          string
	DoubleEncrypted    bool
	DoublePasswordHash string
	MetadataHDNode     string
	Options            Options
	// HDWallets is empty for pre-HD documents and holds exactly one element
	// since version 3.
	HDWallets   []HDWallet
	Addresses   []LegacyAddress
	TxNotes     map[string]string
	AddressBook []AddressBookEntry
}

// Options are the wallet-wide user settings
type Options struct {
	PBKDF2Iterations uint32
	FeePerKB         int64
	HTMLEntities     bool
	LogoutTime       int64
}

// LegacyAddress is an imported (non-HD) address
type LegacyAddress struct {
	Addr                 string
	Priv                 string
	Label                string
	Tag                  int
	CreatedTime          int64
	CreatedDeviceName    string
	CreatedDeviceVersion string
}

// AddressBookEntry ...
type AddressBookEntry struct {
	Addr  string
	Label string
}

// IsArchived ...
func (a LegacyAddress) IsArchived() bool {
	return a.Tag == LegacyAddressArchivedTag
}

// HasHDWallet returns whether the wallet already has an HD structure
func (w Wallet) HasHDWallet() bool {
	return len(w.HDWallets) > 0
}

// DefaultHDWallet returns the (only) HD wallet of the document
func (w Wallet) DefaultHDWallet() (*HDWallet, error) {
	if !w.HasHDWallet() {
		return nil, ErrHDWalletNotFound
	}
	hd := w.HDWallets[0]
	return &hd, nil
}

// ActiveAddresses returns the imported addresses that are not archived
func (w Wallet) ActiveAddresses() []string {
	addresses := make([]string, 0, len(w.Addresses))
	for _, a := range w.Addresses {
		if !a.IsArchived() {
			addresses = append(addresses, a.Addr)
		}
	}
	return addresses
}

// Validate checks the wallet invariants
func (w Wallet) Validate() error {
	if len(w.GUID) <= 0 {
		return ErrWalletNullGUID
	}
	if len(w.SharedKey) <= 0 {
		return ErrWalletNullSharedKey
	}
	if len(w.HDWallets) > 1 {
		return ErrHDWalletTooMany
	}
	for _, hd := range w.HDWallets {
		if err := hd.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateForVersion checks the wallet invariants and that the wallet fits
// the document schema of version. HD schemas hold exactly one hd wallet.
func (w Wallet) ValidateForVersion(version Version) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if version.IsHD() && !w.HasHDWallet() {
		return fmt.Errorf(
			"%w: version %s requires one", ErrHDWalletNotFound, version,
		)
	}
	return nil
}

// Clone returns a deep copy of the wallet
func (w Wallet) Clone() Wallet {
	if w.HDWallets != nil {
		hdWallets := make([]HDWallet, 0, len(w.HDWallets))
		for _, hd := range w.HDWallets {
			hdWallets = append(hdWallets, hd.Clone())
		}
		w.HDWallets = hdWallets
	}
	if w.Addresses != nil {
		w.Addresses = append([]LegacyAddress{}, w.Addresses...)
	}
	if w.AddressBook != nil {
		w.AddressBook = append([]AddressBookEntry{}, w.AddressBook...)
	}
	if w.TxNotes != nil {
		notes := make(map[string]string, len(w.TxNotes))
		for k, v := range w.TxNotes {
			notes[k] = v
		}
		w.TxNotes = notes
	}
	return w
}
