package domain

const (
	// PurposeLegacy is the bip44 purpose of legacy (P2PKH) derivations
	PurposeLegacy uint32 = 44
	// PurposeSegwit is the bip84 purpose of native segwit (P2WPKH) derivations
	PurposeSegwit uint32 = 84

	// DefaultAccountLabel is the label given to the first account of a new
	// HD wallet.
	DefaultAccountLabel = "Private Key Wallet"

	// LegacyAddressArchivedTag marks an imported address as archived
	LegacyAddressArchivedTag = 2
)
