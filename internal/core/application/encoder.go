package application

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/tdex-network/walletsync/internal/core/domain"
	"github.com/tdex-network/walletsync/pkg/wallet"
)

// ChecksumFunc computes the content hash of an encoded payload
type ChecksumFunc func(data []byte) string

// DefaultChecksum is the hex encoded sha256 of data
func DefaultChecksum(data []byte) string {
	return hex.EncodeToString(chainhash.HashB(data))
}

// EncryptedWallet is a wrapper whose wallet document has been encrypted
type EncryptedWallet struct {
	Wrapper domain.Wrapper
	// Document is the plaintext document that has been encrypted.
	Document   []byte
	CypherText string
}

// WalletCreationPayload is the output of the encoding of a wallet, ready to
// be sent to the remote store.
type WalletCreationPayload struct {
	GUID     string
	Language string
	Checksum string
	// InnerPayload is the serialized domain.InnerPayload the checksum is
	// computed over.
	InnerPayload     []byte
	Version          domain.Version
	Iterations       uint32
	EncryptedPayload string
}

// WalletPayload returns the wire payload of the remote save. oldChecksum is
// the checksum the remote is expected to hold.
func (p WalletCreationPayload) WalletPayload(oldChecksum string) domain.WalletPayload {
	return domain.WalletPayload{
		GUID:             p.GUID,
		Language:         p.Language,
		Payload:          string(p.InnerPayload),
		PayloadChecksum:  p.Checksum,
		Version:          p.Version,
		PBKDF2Iterations: p.Iterations,
		OldChecksum:      oldChecksum,
	}
}

// EncryptWalletOpts is the struct given to EncryptWallet
type EncryptWalletOpts struct {
	Wrapper  domain.Wrapper
	Password string
	// Random is the source of salt and nonce, crypto/rand if nil.
	Random io.Reader
}

func (o EncryptWalletOpts) validate() error {
	if len(o.Password) <= 0 {
		return ErrNullPassword
	}
	if !o.Wrapper.Version.IsSupported() {
		return domain.ErrUnsupportedVersion
	}
	return nil
}

// EncryptWallet serializes the wallet document for the wrapper version and
// encrypts it with the given password.
func EncryptWallet(opts EncryptWalletOpts) (*EncryptedWallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	document, err := domain.EncodeWalletDocument(
		opts.Wrapper.Version, opts.Wrapper.Wallet,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	cypherText, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  string(document),
		Passphrase: opts.Password,
		Iterations: opts.Wrapper.PBKDF2Iterations,
		Random:     opts.Random,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailure, err)
	}

	return &EncryptedWallet{
		Wrapper:    opts.Wrapper,
		Document:   document,
		CypherText: cypherText,
	}, nil
}

// VerifyWallet decrypts the encrypted wallet and makes sure the result
// matches the original document.
func VerifyWallet(encrypted EncryptedWallet, password string) error {
	plainText, err := wallet.Decrypt(wallet.DecryptOpts{
		CypherText: encrypted.CypherText,
		Passphrase: password,
	})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrVerificationFailure, err)
	}
	if plainText != string(encrypted.Document) {
		return ErrVerificationFailure
	}
	return nil
}

// EncodeEncryptedWallet builds the canonical inner payload of the encrypted
// wallet and its checksum. DefaultChecksum is used if checksumFn is nil.
func EncodeEncryptedWallet(
	encrypted EncryptedWallet, checksumFn ChecksumFunc,
) (*WalletCreationPayload, error) {
	if checksumFn == nil {
		checksumFn = DefaultChecksum
	}

	inner := domain.InnerPayload{
		PBKDF2Iterations: encrypted.Wrapper.PBKDF2Iterations,
		Version:          encrypted.Wrapper.Version,
		Payload:          encrypted.CypherText,
	}
	innerPayload, err := inner.Serialize()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEncoding, err)
	}
	checksum := checksumFn(innerPayload)
	if len(checksum) <= 0 {
		return nil, fmt.Errorf("%w: empty checksum", ErrEncoding)
	}

	return &WalletCreationPayload{
		GUID:             encrypted.Wrapper.GUID(),
		Language:         encrypted.Wrapper.Language,
		Checksum:         checksum,
		InnerPayload:     innerPayload,
		Version:          encrypted.Wrapper.Version,
		Iterations:       encrypted.Wrapper.PBKDF2Iterations,
		EncryptedPayload: encrypted.CypherText,
	}, nil
}

// EncodeWalletOpts is the struct given to EncodeWallet
type EncodeWalletOpts struct {
	Wallet     domain.Wallet
	Version    domain.Version
	Language   string
	Password   string
	Iterations uint32
	Checksum   ChecksumFunc
	Random     io.Reader
}

// EncodeWallet encrypts, verifies and encodes the given wallet in one go
func EncodeWallet(opts EncodeWalletOpts) (*WalletCreationPayload, error) {
	wrapper, err := domain.NewWrapper(
		opts.Wallet, opts.Version, opts.Language, opts.Iterations,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEncoding, err)
	}

	encrypted, err := EncryptWallet(EncryptWalletOpts{
		Wrapper:  *wrapper,
		Password: opts.Password,
		Random:   opts.Random,
	})
	if err != nil {
		return nil, err
	}
	if err := VerifyWallet(*encrypted, opts.Password); err != nil {
		return nil, err
	}
	return EncodeEncryptedWallet(*encrypted, opts.Checksum)
}

// DecryptWallet is the inverse of EncryptWallet for the native cypher
func DecryptWallet(
	inner domain.InnerPayload, password string,
) (*domain.Wallet, error) {
	document, _, err := decryptDocument(inner, password)
	if err != nil {
		return nil, err
	}
	return domain.DecodeWalletDocument(inner.Version, document)
}

// decryptDocument opens the native cypher of the inner payload and returns
// the plain document with the PBKDF2 rounds packed in the cypher. An
// envelope declaring rounds must agree with the cypher.
func decryptDocument(
	inner domain.InnerPayload, password string,
) ([]byte, uint32, error) {
	plainText, err := wallet.Decrypt(wallet.DecryptOpts{
		CypherText: inner.Payload,
		Passphrase: password,
	})
	if err != nil {
		return nil, 0, err
	}
	iterations, err := wallet.CypherIterations(inner.Payload)
	if err != nil {
		return nil, 0, err
	}
	if inner.PBKDF2Iterations != 0 && inner.PBKDF2Iterations != iterations {
		return nil, 0, fmt.Errorf(
			"%w: payload declares %d pbkdf2 iterations, cypher uses %d",
			domain.ErrMalformedDocument, inner.PBKDF2Iterations, iterations,
		)
	}
	return []byte(plainText), iterations, nil
}
