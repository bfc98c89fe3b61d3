package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// CoinTypeBitcoin is the bip44 coin type of every derived account
const CoinTypeBitcoin uint32 = 0

// DerivationPath is the internal representation of a hierarchical
// deterministic wallet account
type DerivationPath []uint32

// NewAccountDerivationPath returns the path m/purpose'/0'/account'
func NewAccountDerivationPath(purpose, account uint32) DerivationPath {
	return DerivationPath{
		hdkeychain.HardenedKeyStart + purpose,
		hdkeychain.HardenedKeyStart + CoinTypeBitcoin,
		hdkeychain.HardenedKeyStart + account,
	}
}

// String returns the path in the m/44'/0'/0' notation
func (path DerivationPath) String() string {
	if len(path) <= 0 {
		return ""
	}

	result := "m"
	for _, component := range path {
		var hardened bool
		if component >= hdkeychain.HardenedKeyStart {
			component -= hdkeychain.HardenedKeyStart
			hardened = true
		}
		result = fmt.Sprintf("%s/%d", result, component)
		if hardened {
			result += "'"
		}
	}
	return result
}
