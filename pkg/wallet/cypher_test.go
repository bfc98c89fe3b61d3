package wallet

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhpk/randstr"
)

const testIterations = 10

func TestEncryptDecrypt(t *testing.T) {
	plaintext := "super secret message"
	passphrase := "supersecurekey"

	encOpts := EncryptOpts{
		PlainText:  plaintext,
		Passphrase: passphrase,
		Iterations: testIterations,
	}
	cyphertext, err := Encrypt(encOpts)
	require.NoError(t, err)

	iterations, err := CypherIterations(cyphertext)
	require.NoError(t, err)
	assert.Equal(t, uint32(testIterations), iterations)

	decOpts := DecryptOpts{
		CypherText: cyphertext,
		Passphrase: passphrase,
	}
	revealedtext, err := Decrypt(decOpts)
	require.NoError(t, err)
	assert.Equal(t, plaintext, revealedtext)
}

func TestEncryptDecryptRandomInputs(t *testing.T) {
	for i := 0; i < 20; i++ {
		plaintext := randstr.String(1 + i*37)
		passphrase := randstr.String(1 + i)
		if i%2 == 0 {
			passphrase = "päss wörd ✓ " + passphrase
			plaintext = randstr.Hex(32) + "\x00é世" + plaintext
		}

		cyphertext, err := Encrypt(EncryptOpts{
			PlainText:  plaintext,
			Passphrase: passphrase,
			Iterations: testIterations,
		})
		require.NoError(t, err)

		revealedtext, err := Decrypt(DecryptOpts{
			CypherText: cyphertext,
			Passphrase: passphrase,
		})
		require.NoError(t, err)
		require.Equal(t, plaintext, revealedtext)
	}
}

func TestEncryptWithDeterministicRandom(t *testing.T) {
	seed := bytes.Repeat([]byte{0x2a}, 64)
	encrypt := func() string {
		cyphertext, err := Encrypt(EncryptOpts{
			PlainText:  "same content",
			Passphrase: "password",
			Iterations: testIterations,
			Random:     bytes.NewReader(seed),
		})
		require.NoError(t, err)
		return cyphertext
	}

	assert.Equal(t, encrypt(), encrypt())
}

func TestFailingEncrypt(t *testing.T) {
	tests := []struct {
		opts EncryptOpts
		err  error
	}{
		{
			opts: EncryptOpts{
				PlainText:  "",
				Passphrase: "supersecurekey",
			},
			err: ErrNullPlainText,
		},
		{
			opts: EncryptOpts{
				PlainText:  "super secret message",
				Passphrase: "",
			},
			err: ErrNullPassphrase,
		},
	}
	for _, tt := range tests {
		_, err := Encrypt(tt.opts)
		assert.Equal(t, tt.err, err)
	}
}

func TestFailingDecrypt(t *testing.T) {
	cyphertext, err := Encrypt(EncryptOpts{
		PlainText:  "super secret message",
		Passphrase: "supersecurekey",
		Iterations: testIterations,
	})
	require.NoError(t, err)
	raw, _ := base64.StdEncoding.DecodeString(cyphertext)

	withVersion := append([]byte{}, raw...)
	withVersion[0] = 0xff
	withoutIterations := append([]byte{}, raw...)
	copy(withoutIterations[1:5], []byte{0, 0, 0, 0})
	tampered := append([]byte{}, raw...)
	tampered[len(tampered)-1] ^= 0x01

	tests := []struct {
		name string
		opts DecryptOpts
		err  error
	}{
		{
			name: "empty cypher",
			opts: DecryptOpts{
				CypherText: "",
				Passphrase: "supersecurekey",
			},
			err: ErrNullCypherText,
		},
		{
			name: "not base64",
			opts: DecryptOpts{
				CypherText: "supersecretmessage!",
				Passphrase: "supersecurekey",
			},
			err: ErrInvalidCypherText,
		},
		{
			name: "empty passphrase",
			opts: DecryptOpts{
				CypherText: cyphertext,
				Passphrase: "",
			},
			err: ErrNullPassphrase,
		},
		{
			name: "too short",
			opts: DecryptOpts{
				CypherText: base64.StdEncoding.EncodeToString(raw[:10]),
				Passphrase: "supersecurekey",
			},
			err: ErrMalformedCypherText,
		},
		{
			name: "missing sealed text",
			opts: DecryptOpts{
				CypherText: base64.StdEncoding.EncodeToString(raw[:headerSize+4]),
				Passphrase: "supersecurekey",
			},
			err: ErrMalformedCypherText,
		},
		{
			name: "unknown version",
			opts: DecryptOpts{
				CypherText: base64.StdEncoding.EncodeToString(withVersion),
				Passphrase: "supersecurekey",
			},
			err: ErrMalformedCypherText,
		},
		{
			name: "zero iterations",
			opts: DecryptOpts{
				CypherText: base64.StdEncoding.EncodeToString(withoutIterations),
				Passphrase: "supersecurekey",
			},
			err: ErrMalformedCypherText,
		},
		{
			name: "wrong passphrase",
			opts: DecryptOpts{
				CypherText: cyphertext,
				Passphrase: "wrongkey",
			},
			err: ErrInvalidPassphrase,
		},
		{
			name: "tampered",
			opts: DecryptOpts{
				CypherText: base64.StdEncoding.EncodeToString(tampered),
				Passphrase: "supersecurekey",
			},
			err: ErrInvalidPassphrase,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.opts)
			assert.Equal(t, tt.err, err)
		})
	}
}
