package entropy

import (
	"context"
	"fmt"

	"github.com/tdex-network/walletsync/internal/core/ports"
	"github.com/vulpemventures/go-bip39"
)

type service struct{}

// NewService returns a ports.EntropySource backed by the bip39 entropy
// generator, hence by crypto/rand.
func NewService() ports.EntropySource {
	return service{}
}

func (service) GenerateEntropy(ctx context.Context, byteCount int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entropy, err := bip39.NewEntropy(byteCount * 8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %d bytes of entropy: %w", byteCount, err)
	}
	return entropy, nil
}
