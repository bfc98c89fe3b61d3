package domain

import (
	"encoding/json"
	"fmt"
)

// Each schema version has its own document variant. The in-memory Wallet
// always has the latest shape and is converted from/to the variant of the
// wrapper's version only here.

type walletDocumentV2 struct {
	GUID             string                  `json:"guid"`
	SharedKey        string                  `json:"sharedKey"`
	DoubleEncryption bool                    `json:"double_encryption"`
	DPasswordHash    string                  `json:"dpasswordhash,omitempty"`
	MetadataHDNode   string                  `json:"metadataHDNode,omitempty"`
	Options          optionsDocument         `json:"options"`
	Keys             []legacyAddressDocument `json:"keys"`
	TxNotes          map[string]string       `json:"tx_notes,omitempty"`
	AddressBook      []addressBookDocument   `json:"address_book,omitempty"`
}

type walletDocument[A any] struct {
	walletDocumentV2
	HDWallets []hdWalletDocument[A] `json:"hd_wallets"`
}

type walletDocumentV3 = walletDocument[accountDocumentV3]

type walletDocumentV4 = walletDocument[accountDocumentV4]

type optionsDocument struct {
	PBKDF2Iterations uint32 `json:"pbkdf2_iterations"`
	FeePerKB         int64  `json:"fee_per_kb"`
	HTMLEntities     bool   `json:"html5_notifications"`
	LogoutTime       int64  `json:"logout_time"`
}

type legacyAddressDocument struct {
	Addr                 string `json:"addr"`
	Priv                 string `json:"priv,omitempty"`
	Label                string `json:"label,omitempty"`
	Tag                  int    `json:"tag"`
	CreatedTime          int64  `json:"created_time"`
	CreatedDeviceName    string `json:"created_device_name,omitempty"`
	CreatedDeviceVersion string `json:"created_device_version,omitempty"`
}

type addressBookDocument struct {
	Addr  string `json:"addr"`
	Label string `json:"label"`
}

type hdWalletDocument[A any] struct {
	SeedHex           string `json:"seed_hex"`
	Passphrase        string `json:"passphrase"`
	MnemonicVerified  bool   `json:"mnemonic_verified"`
	DefaultAccountIdx int    `json:"default_account_idx"`
	Accounts          []A    `json:"accounts"`
}

type accountDocumentV3 struct {
	Label         string                 `json:"label"`
	Archived      bool                   `json:"archived"`
	Xpriv         string                 `json:"xpriv"`
	Xpub          string                 `json:"xpub"`
	AddressLabels []addressLabelDocument `json:"address_labels,omitempty"`
	Cache         cacheDocument          `json:"cache"`
}

type accountDocumentV4 struct {
	Label             string               `json:"label"`
	Archived          bool                 `json:"archived"`
	DefaultDerivation string               `json:"default_derivation"`
	Derivations       []derivationDocument `json:"derivations"`
}

type derivationDocument struct {
	Type          string                 `json:"type"`
	Purpose       uint32                 `json:"purpose"`
	Xpriv         string                 `json:"xpriv"`
	Xpub          string                 `json:"xpub"`
	AddressLabels []addressLabelDocument `json:"address_labels,omitempty"`
	Cache         cacheDocument          `json:"cache"`
}

type addressLabelDocument struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

type cacheDocument struct {
	ReceiveAccount string `json:"receiveAccount"`
	ChangeAccount  string `json:"changeAccount"`
}

// EncodeWalletDocument serializes the wallet into the canonical JSON
// document of the given version.
func EncodeWalletDocument(version Version, wallet Wallet) ([]byte, error) {
	if !version.IsSupported() {
		return nil, ErrUnsupportedVersion
	}
	if err := wallet.ValidateForVersion(version); err != nil {
		return nil, err
	}

	base := toWalletDocumentV2(wallet)
	switch version {
	case Version3:
		hdWallets, err := toHDWalletDocumentsV3(wallet.HDWallets)
		if err != nil {
			return nil, err
		}
		return json.Marshal(walletDocumentV3{base, hdWallets})
	case Version4:
		return json.Marshal(walletDocumentV4{base, toHDWalletDocumentsV4(wallet.HDWallets)})
	default:
		if wallet.HasHDWallet() {
			return nil, fmt.Errorf(
				"%w: version %s has no hd wallets", ErrUnrepresentableWallet, version,
			)
		}
		return json.Marshal(base)
	}
}

// DecodeWalletDocument parses a JSON document of the given version into a
// Wallet.
func DecodeWalletDocument(version Version, data []byte) (*Wallet, error) {
	if !version.IsSupported() {
		return nil, ErrUnsupportedVersion
	}

	var wallet Wallet
	switch version {
	case Version3:
		var doc walletDocumentV3
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedDocument, err)
		}
		wallet = fromWalletDocumentV2(doc.walletDocumentV2)
		wallet.HDWallets = fromHDWalletDocumentsV3(doc.HDWallets)
	case Version4:
		var doc walletDocumentV4
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedDocument, err)
		}
		wallet = fromWalletDocumentV2(doc.walletDocumentV2)
		wallet.HDWallets = fromHDWalletDocumentsV4(doc.HDWallets)
	default:
		var doc walletDocumentV2
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedDocument, err)
		}
		wallet = fromWalletDocumentV2(doc)
	}

	if err := wallet.ValidateForVersion(version); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return &wallet, nil
}

func toWalletDocumentV2(w Wallet) walletDocumentV2 {
	keys := make([]legacyAddressDocument, 0, len(w.Addresses))
	for _, a := range w.Addresses {
		keys = append(keys, legacyAddressDocument(a))
	}
	var addressBook []addressBookDocument
	for _, e := range w.AddressBook {
		addressBook = append(addressBook, addressBookDocument(e))
	}
	return walletDocumentV2{
		GUID:             w.GUID,
		SharedKey:        w.SharedKey,
		DoubleEncryption: w.DoubleEncrypted,
		DPasswordHash:    w.DoublePasswordHash,
		MetadataHDNode:   w.MetadataHDNode,
		Options:          optionsDocument(w.Options),
		Keys:             keys,
		TxNotes:          w.TxNotes,
		AddressBook:      addressBook,
	}
}

func fromWalletDocumentV2(doc walletDocumentV2) Wallet {
	var addresses []LegacyAddress
	for _, k := range doc.Keys {
		addresses = append(addresses, LegacyAddress(k))
	}
	var addressBook []AddressBookEntry
	for _, e := range doc.AddressBook {
		addressBook = append(addressBook, AddressBookEntry(e))
	}
	return Wallet{
		GUID:               doc.GUID,
		SharedKey:          doc.SharedKey,
		DoubleEncrypted:    doc.DoubleEncryption,
		DoublePasswordHash: doc.DPasswordHash,
		MetadataHDNode:     doc.MetadataHDNode,
		Options:            Options(doc.Options),
		Addresses:          addresses,
		TxNotes:            doc.TxNotes,
		AddressBook:        addressBook,
	}
}

func toHDWalletDocumentsV3(
	hdWallets []HDWallet,
) ([]hdWalletDocument[accountDocumentV3], error) {
	docs := make([]hdWalletDocument[accountDocumentV3], 0, len(hdWallets))
	for _, hd := range hdWallets {
		accounts := make([]accountDocumentV3, 0, len(hd.Accounts))
		for _, a := range hd.Accounts {
			// A v3 account can only express a single legacy derivation.
			legacy, ok := a.Derivation(DerivationTypeLegacy)
			if !ok || len(a.Derivations) != 1 {
				return nil, fmt.Errorf(
					"%w: account %d must hold only a legacy derivation",
					ErrUnrepresentableWallet, a.Index,
				)
			}
			accounts = append(accounts, accountDocumentV3{
				Label:         a.Label,
				Archived:      a.Archived,
				Xpriv:         legacy.Xpriv,
				Xpub:          legacy.Xpub,
				AddressLabels: toAddressLabelDocuments(legacy.AddressLabels),
				Cache:         cacheDocument(legacy.Cache),
			})
		}
		docs = append(docs, hdWalletDocument[accountDocumentV3]{
			SeedHex:           hd.SeedHex,
			Passphrase:        hd.Passphrase,
			MnemonicVerified:  hd.MnemonicVerified,
			DefaultAccountIdx: hd.DefaultAccountIndex,
			Accounts:          accounts,
		})
	}
	return docs, nil
}

func fromHDWalletDocumentsV3(
	docs []hdWalletDocument[accountDocumentV3],
) []HDWallet {
	var hdWallets []HDWallet
	for _, doc := range docs {
		accounts := make([]Account, 0, len(doc.Accounts))
		for i, a := range doc.Accounts {
			accounts = append(accounts, Account{
				Index:             i,
				Label:             a.Label,
				Archived:          a.Archived,
				DefaultDerivation: DerivationTypeLegacy,
				Derivations: []Derivation{{
					Type:          DerivationTypeLegacy,
					Purpose:       PurposeLegacy,
					Xpriv:         a.Xpriv,
					Xpub:          a.Xpub,
					AddressLabels: fromAddressLabelDocuments(a.AddressLabels),
					Cache:         AddressCache(a.Cache),
				}},
			})
		}
		hdWallets = append(hdWallets, HDWallet{
			SeedHex:             doc.SeedHex,
			Passphrase:          doc.Passphrase,
			MnemonicVerified:    doc.MnemonicVerified,
			DefaultAccountIndex: doc.DefaultAccountIdx,
			Accounts:            accounts,
		})
	}
	return hdWallets
}

func toHDWalletDocumentsV4(
	hdWallets []HDWallet,
) []hdWalletDocument[accountDocumentV4] {
	docs := make([]hdWalletDocument[accountDocumentV4], 0, len(hdWallets))
	for _, hd := range hdWallets {
		accounts := make([]accountDocumentV4, 0, len(hd.Accounts))
		for _, a := range hd.Accounts {
			derivations := make([]derivationDocument, 0, len(a.Derivations))
			for _, d := range a.Derivations {
				derivations = append(derivations, derivationDocument{
					Type:          string(d.Type),
					Purpose:       d.Purpose,
					Xpriv:         d.Xpriv,
					Xpub:          d.Xpub,
					AddressLabels: toAddressLabelDocuments(d.AddressLabels),
					Cache:         cacheDocument(d.Cache),
				})
			}
			accounts = append(accounts, accountDocumentV4{
				Label:             a.Label,
				Archived:          a.Archived,
				DefaultDerivation: string(a.DefaultDerivation),
				Derivations:       derivations,
			})
		}
		docs = append(docs, hdWalletDocument[accountDocumentV4]{
			SeedHex:           hd.SeedHex,
			Passphrase:        hd.Passphrase,
			MnemonicVerified:  hd.MnemonicVerified,
			DefaultAccountIdx: hd.DefaultAccountIndex,
			Accounts:          accounts,
		})
	}
	return docs
}

func fromHDWalletDocumentsV4(
	docs []hdWalletDocument[accountDocumentV4],
) []HDWallet {
	var hdWallets []HDWallet
	for _, doc := range docs {
		accounts := make([]Account, 0, len(doc.Accounts))
		for i, a := range doc.Accounts {
			derivations := make([]Derivation, 0, len(a.Derivations))
			for _, d := range a.Derivations {
				derivations = append(derivations, Derivation{
					Type:          DerivationType(d.Type),
					Purpose:       d.Purpose,
					Xpriv:         d.Xpriv,
					Xpub:          d.Xpub,
					AddressLabels: fromAddressLabelDocuments(d.AddressLabels),
					Cache:         AddressCache(d.Cache),
				})
			}
			accounts = append(accounts, Account{
				Index:             i,
				Label:             a.Label,
				Archived:          a.Archived,
				DefaultDerivation: DerivationType(a.DefaultDerivation),
				Derivations:       derivations,
			})
		}
		hdWallets = append(hdWallets, HDWallet{
			SeedHex:             doc.SeedHex,
			Passphrase:          doc.Passphrase,
			MnemonicVerified:    doc.MnemonicVerified,
			DefaultAccountIndex: doc.DefaultAccountIdx,
			Accounts:            accounts,
		})
	}
	return hdWallets
}

func toAddressLabelDocuments(labels []AddressLabel) []addressLabelDocument {
	var docs []addressLabelDocument
	for _, l := range labels {
		docs = append(docs, addressLabelDocument(l))
	}
	return docs
}

func fromAddressLabelDocuments(docs []addressLabelDocument) []AddressLabel {
	var labels []AddressLabel
	for _, d := range docs {
		labels = append(labels, AddressLabel(d))
	}
	return labels
}
