package ports

import "context"

// EntropySource returns cryptographically secure random bytes
type EntropySource interface {
	GenerateEntropy(ctx context.Context, byteCount int) ([]byte, error)
}
