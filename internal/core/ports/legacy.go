package ports

import "context"

// LegacyDecrypter decrypts payloads of the pre-HD wallet versions, whose
// cypher is only implemented by the legacy interpreter.
type LegacyDecrypter interface {
	Decrypt(ctx context.Context, cypherText, password string) ([]byte, error)
}
