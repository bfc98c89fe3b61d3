package application_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/walletsync/internal/core/domain"
	"github.com/tdex-network/walletsync/internal/core/ports"
)

// **** Remote store ****

type mockRemoteStore struct {
	mock.Mock
}

func (m *mockRemoteStore) SaveWallet(
	ctx context.Context, payload domain.WalletPayload, addresses []string,
) error {
	args := m.Called(ctx, payload, addresses)
	return args.Error(0)
}

func (m *mockRemoteStore) FetchWallet(
	ctx context.Context, guid string,
) (*domain.WalletPayload, error) {
	args := m.Called(ctx, guid)

	var res *domain.WalletPayload
	if a := args.Get(0); a != nil {
		res = a.(*domain.WalletPayload)
	}
	return res, args.Error(1)
}

// **** Credentials cache ****

type mockCredentialsCache struct {
	mock.Mock
}

func (m *mockCredentialsCache) SetPassword(
	ctx context.Context, guid, password string,
) error {
	args := m.Called(ctx, guid, password)
	return args.Error(0)
}

func (m *mockCredentialsCache) GetPassword(
	ctx context.Context, guid string,
) (string, error) {
	args := m.Called(ctx, guid)
	return args.String(0), args.Error(1)
}

func (m *mockCredentialsCache) DeletePassword(
	ctx context.Context, guid string,
) error {
	args := m.Called(ctx, guid)
	return args.Error(0)
}

// **** Payload cache ****

type mockPayloadCache struct {
	mock.Mock
}

func (m *mockPayloadCache) SavePayload(
	ctx context.Context, payload ports.CachedPayload,
) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *mockPayloadCache) GetPayload(
	ctx context.Context, guid string,
) (*ports.CachedPayload, error) {
	args := m.Called(ctx, guid)

	var res *ports.CachedPayload
	if a := args.Get(0); a != nil {
		res = a.(*ports.CachedPayload)
	}
	return res, args.Error(1)
}

func (m *mockPayloadCache) DeletePayload(
	ctx context.Context, guid string,
) error {
	args := m.Called(ctx, guid)
	return args.Error(0)
}

func (m *mockPayloadCache) Close() {}

// **** Entropy source ****

type mockEntropySource struct {
	mock.Mock
}

func (m *mockEntropySource) GenerateEntropy(
	ctx context.Context, byteCount int,
) ([]byte, error) {
	args := m.Called(ctx, byteCount)

	var res []byte
	if a := args.Get(0); a != nil {
		res = a.([]byte)
	}
	return res, args.Error(1)
}

// **** Legacy decrypter ****

type mockLegacyDecrypter struct {
	mock.Mock
}

func (m *mockLegacyDecrypter) Decrypt(
	ctx context.Context, cypherText, password string,
) ([]byte, error) {
	args := m.Called(ctx, cypherText, password)

	var res []byte
	if a := args.Get(0); a != nil {
		res = a.([]byte)
	}
	return res, args.Error(1)
}
