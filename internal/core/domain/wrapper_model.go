package domain

// Wrapper is the versioned, checksummed envelope around a wallet document.
// Wrappers are treated as values: every change produces a new Wrapper.
type Wrapper struct {
	PBKDF2Iterations uint32
	Version          Version
	// PayloadChecksum is the checksum of the last encoded payload of Wallet.
	PayloadChecksum string
	Language        string
	SyncPubKeys     bool
	Wallet          Wallet
}

// NewWrapper returns a wrapper for the given wallet at the given version
func NewWrapper(
	wallet Wallet, version Version, language string, iterations uint32,
) (*Wrapper, error) {
	if !version.IsSupported() {
		return nil, ErrUnsupportedVersion
	}
	if err := wallet.ValidateForVersion(version); err != nil {
		return nil, err
	}
	return &Wrapper{
		PBKDF2Iterations: iterations,
		Version:          version,
		Language:         language,
		Wallet:           wallet,
	}, nil
}

// GUID is a shortcut for the wallet guid
func (w Wrapper) GUID() string {
	return w.Wallet.GUID
}

// IsLatest returns whether the wrapper is at the latest supported version
func (w Wrapper) IsLatest() bool {
	return w.Version >= LatestVersion
}

// WithChecksum returns a copy of the wrapper with the given checksum
func (w Wrapper) WithChecksum(checksum string) Wrapper {
	w.Wallet = w.Wallet.Clone()
	w.PayloadChecksum = checksum
	return w
}

// WithWallet returns a copy of the wrapper holding the given wallet
func (w Wrapper) WithWallet(wallet Wallet) Wrapper {
	w.Wallet = wallet.Clone()
	return w
}

// WithVersion returns a copy of the wrapper at the given version. The version
// of a wrapper never decreases.
func (w Wrapper) WithVersion(version Version) (Wrapper, error) {
	if !version.IsSupported() {
		return Wrapper{}, ErrUnsupportedVersion
	}
	if version < w.Version {
		return Wrapper{}, ErrVersionDowngrade
	}
	w.Wallet = w.Wallet.Clone()
	w.Version = version
	return w, nil
}
