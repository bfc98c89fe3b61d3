package metadata

// EthereumEntry ...
type EthereumEntry struct {
	Ethereum EthereumWallet `json:"ethereum"`
}

func (EthereumEntry) Type() EntryType {
	return EntryTypeEthereum
}

// EthereumWallet ...
type EthereumWallet struct {
	Accounts          []EthereumAccount `json:"accounts"`
	DefaultAccountIdx int               `json:"default_account_idx"`
	// Erc20 maps a token symbol to its contract metadata.
	Erc20           map[string]Erc20Token `json:"erc20,omitempty"`
	HasSeen         bool                  `json:"has_seen"`
	LastTx          string                `json:"last_tx,omitempty"`
	LastTxTimestamp int64                 `json:"last_tx_timestamp,omitempty"`
	TxNotes         map[string]string     `json:"tx_notes,omitempty"`
}

// EthereumAccount ...
type EthereumAccount struct {
	Addr     string `json:"addr"`
	Label    string `json:"label"`
	Correct  bool   `json:"correct"`
	Archived bool   `json:"archived"`
}

// Erc20Token ...
type Erc20Token struct {
	Contract string            `json:"contract"`
	Label    string            `json:"label"`
	HasSeen  bool              `json:"has_seen"`
	TxNotes  map[string]string `json:"tx_notes,omitempty"`
}

// BitcoinCashEntry ...
type BitcoinCashEntry struct {
	DefaultAccountIdx int                  `json:"default_account_idx"`
	Accounts          []BitcoinCashAccount `json:"accounts"`
	HasSeen           bool                 `json:"has_seen"`
	TxNotes           map[string]string    `json:"tx_notes,omitempty"`
}

func (BitcoinCashEntry) Type() EntryType {
	return EntryTypeBitcoinCash
}

// BitcoinCashAccount ...
type BitcoinCashAccount struct {
	Label    string `json:"label"`
	Archived bool   `json:"archived"`
}

// StellarEntry ...
type StellarEntry struct {
	DefaultAccountIdx int               `json:"default_account_idx"`
	Accounts          []StellarAccount  `json:"accounts"`
	TxNotes           map[string]string `json:"tx_notes,omitempty"`
}

func (StellarEntry) Type() EntryType {
	return EntryTypeStellar
}

// StellarAccount ...
type StellarAccount struct {
	PublicKey string `json:"publicKey"`
	Label     string `json:"label"`
	Archived  bool   `json:"archived"`
}

// WalletConnectEntry holds the serialized WalletConnect sessions
type WalletConnectEntry struct {
	Sessions string `json:"sessions"`
}

func (WalletConnectEntry) Type() EntryType {
	return EntryTypeWalletConnect
}
