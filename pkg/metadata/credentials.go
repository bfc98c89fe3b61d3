package metadata

// UserCredentialsEntry holds the credentials of the wallet user on the
// exchange backend.
type UserCredentialsEntry struct {
	UserID        string `json:"user_id"`
	LifetimeToken string `json:"lifetime_token"`
}

func (UserCredentialsEntry) Type() EntryType {
	return EntryTypeUserCredentials
}

// IsValid returns whether all the credentials are set
func (e UserCredentialsEntry) IsValid() bool {
	return len(e.UserID) > 0 && len(e.LifetimeToken) > 0
}

// WalletCredentialsEntry holds what is needed to log into the wallet from
// another device.
type WalletCredentialsEntry struct {
	GUID      string `json:"guid"`
	Password  string `json:"password"`
	SharedKey string `json:"sharedKey"`
}

func (WalletCredentialsEntry) Type() EntryType {
	return EntryTypeWalletCredentials
}

// IsValid returns whether all the credentials are set
func (e WalletCredentialsEntry) IsValid() bool {
	return len(e.GUID) > 0 && len(e.Password) > 0 && len(e.SharedKey) > 0
}

// AccountCredentialsEntry holds the user id and lifetime token pairs of the
// external services linked to the wallet.
type AccountCredentialsEntry struct {
	NabuUserID            string `json:"nabu_user_id,omitempty"`
	NabuLifetimeToken     string `json:"nabu_lifetime_token,omitempty"`
	ExchangeUserID        string `json:"exchange_user_id,omitempty"`
	ExchangeLifetimeToken string `json:"exchange_lifetime_token,omitempty"`
}

func (AccountCredentialsEntry) Type() EntryType {
	return EntryTypeAccountCredentials
}
