package metadata

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnknownEntryType ...
	ErrUnknownEntryType = errors.New("unknown metadata entry type")
	// ErrMalformedEntry ...
	ErrMalformedEntry = errors.New("malformed metadata entry")
)

// EntryType is the discriminator of a metadata entry. The values are the
// indexes of the metadata nodes the entries are stored at.
type EntryType int

const (
	EntryTypeEthereum           EntryType = 5
	EntryTypeBitcoinCash        EntryType = 7
	EntryTypeUserCredentials    EntryType = 10
	EntryTypeStellar            EntryType = 11
	EntryTypeWalletCredentials  EntryType = 12
	EntryTypeWalletConnect      EntryType = 13
	EntryTypeAccountCredentials EntryType = 14
)

// EntryTypes lists every known entry type
var EntryTypes = []EntryType{
	EntryTypeEthereum,
	EntryTypeBitcoinCash,
	EntryTypeUserCredentials,
	EntryTypeStellar,
	EntryTypeWalletCredentials,
	EntryTypeWalletConnect,
	EntryTypeAccountCredentials,
}

func (t EntryType) String() string {
	switch t {
	case EntryTypeEthereum:
		return "ethereum"
	case EntryTypeBitcoinCash:
		return "bitcoin_cash"
	case EntryTypeUserCredentials:
		return "user_credentials"
	case EntryTypeStellar:
		return "stellar"
	case EntryTypeWalletCredentials:
		return "wallet_credentials"
	case EntryTypeWalletConnect:
		return "wallet_connect"
	case EntryTypeAccountCredentials:
		return "account_credentials"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Entry is a typed record stored in a metadata node
type Entry interface {
	Type() EntryType
}

// Marshal serializes the entry into its JSON form
func Marshal(entry Entry) ([]byte, error) {
	if entry == nil {
		return nil, ErrMalformedEntry
	}
	return json.Marshal(entry)
}

// Unmarshal parses the JSON form of an entry of the given type
func Unmarshal(entryType EntryType, data []byte) (Entry, error) {
	switch entryType {
	case EntryTypeEthereum:
		return unmarshal[EthereumEntry](data)
	case EntryTypeBitcoinCash:
		return unmarshal[BitcoinCashEntry](data)
	case EntryTypeUserCredentials:
		return unmarshal[UserCredentialsEntry](data)
	case EntryTypeStellar:
		return unmarshal[StellarEntry](data)
	case EntryTypeWalletCredentials:
		return unmarshal[WalletCredentialsEntry](data)
	case EntryTypeWalletConnect:
		return unmarshal[WalletConnectEntry](data)
	case EntryTypeAccountCredentials:
		return unmarshal[AccountCredentialsEntry](data)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownEntryType, int(entryType))
	}
}

func unmarshal[E Entry](data []byte) (Entry, error) {
	var entry E
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedEntry, err)
	}
	return entry, nil
}
