package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the number of PBKDF2 rounds used when none is
	// specified.
	DefaultIterations = 5000

	cypherVersion = 1
	saltSize      = 16
	keySize       = 32
	// version || iterations || salt
	headerSize = 1 + 4 + saltSize
)

// EncryptOpts is the struct given to Encrypt method
type EncryptOpts struct {
	PlainText  string
	Passphrase string
	Iterations uint32
	// Random is the source for salt and nonce, crypto/rand if nil.
	Random io.Reader
}

func (o EncryptOpts) validate() error {
	if len(o.PlainText) <= 0 {
		return ErrNullPlainText
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	return nil
}

func (o EncryptOpts) iterations() uint32 {
	if o.Iterations == 0 {
		return DefaultIterations
	}
	return o.Iterations
}

func (o EncryptOpts) random() io.Reader {
	if o.Random == nil {
		return rand.Reader
	}
	return o.Random
}

// Encrypt encrypts (with AES-256-GCM) a plaintext with a key derived from the
// provided passphrase. The returned base64 blob packs the blob version, the
// PBKDF2 iterations, the salt, the nonce and the sealed text, so that
// Decrypt needs nothing but the passphrase.
func Encrypt(opts EncryptOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	iterations := opts.iterations()
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(opts.random(), salt); err != nil {
		return "", err
	}

	key := DeriveKey([]byte(opts.Passphrase), salt, iterations)
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(opts.random(), nonce); err != nil {
		return "", err
	}

	header := make([]byte, headerSize, headerSize+len(nonce)+len(opts.PlainText)+gcm.Overhead())
	header[0] = cypherVersion
	binary.BigEndian.PutUint32(header[1:5], iterations)
	copy(header[5:], salt)

	blob := append(header, nonce...)
	blob = gcm.Seal(blob, nonce, []byte(opts.PlainText), header)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptOpts is the struct given to Decrypt method
type DecryptOpts struct {
	CypherText string
	Passphrase string
}

func (o DecryptOpts) validate() error {
	if len(o.CypherText) <= 0 {
		return ErrNullCypherText
	}
	if _, err := base64.StdEncoding.DecodeString(o.CypherText); err != nil {
		return ErrInvalidCypherText
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	return nil
}

// Decrypt decrypts a blob produced by Encrypt. It returns
// ErrMalformedCypherText if the blob is structurally broken and
// ErrInvalidPassphrase if it can't be opened with the given passphrase.
func Decrypt(opts DecryptOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	data, _ := base64.StdEncoding.DecodeString(opts.CypherText)
	if len(data) < headerSize {
		return "", ErrMalformedCypherText
	}
	header, data := data[:headerSize], data[headerSize:]
	if header[0] != cypherVersion {
		return "", ErrMalformedCypherText
	}
	iterations := binary.BigEndian.Uint32(header[1:5])
	if iterations == 0 {
		return "", ErrMalformedCypherText
	}
	salt := header[5:]

	key := DeriveKey([]byte(opts.Passphrase), salt, iterations)
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}
	if len(data) < gcm.NonceSize()+gcm.Overhead() {
		return "", ErrMalformedCypherText
	}

	nonce, text := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, text, header)
	if err != nil {
		return "", ErrInvalidPassphrase
	}
	return string(plaintext), nil
}

// CypherIterations returns the number of PBKDF2 rounds packed into the given
// blob.
func CypherIterations(cypherText string) (uint32, error) {
	data, err := base64.StdEncoding.DecodeString(cypherText)
	if err != nil {
		return 0, ErrInvalidCypherText
	}
	if len(data) < headerSize || data[0] != cypherVersion {
		return 0, ErrMalformedCypherText
	}
	return binary.BigEndian.Uint32(data[1:5]), nil
}

// DeriveKey derives a 32 byte key from a passphrase with PBKDF2-HMAC-SHA256
func DeriveKey(passphrase, salt []byte, iterations uint32) []byte {
	return pbkdf2.Key(passphrase, salt, int(iterations), keySize, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(blockCipher)
}
