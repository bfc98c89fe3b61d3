package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/walletsync/internal/core/domain"
)

func TestParseVersion(t *testing.T) {
	for _, str := range []string{"1", "2", "3", "4"} {
		v, err := domain.ParseVersion(str)
		require.NoError(t, err)
		require.Equal(t, str, v.String())
	}

	for _, str := range []string{"", "0", "5", "v4", "-1"} {
		_, err := domain.ParseVersion(str)
		require.ErrorIs(t, err, domain.ErrUnsupportedVersion)
	}

	require.False(t, domain.Version2.IsHD())
	require.True(t, domain.Version3.IsHD())
}

func TestNewWrapper(t *testing.T) {
	wrapper, err := domain.NewWrapper(newTestLegacyWallet(), domain.Version2, "en", 5000)
	require.NoError(t, err)
	require.Equal(t, newTestLegacyWallet().GUID, wrapper.GUID())
	require.False(t, wrapper.IsLatest())
	require.Empty(t, wrapper.PayloadChecksum)

	_, err = domain.NewWrapper(newTestLegacyWallet(), domain.VersionUnknown, "en", 5000)
	require.ErrorIs(t, err, domain.ErrUnsupportedVersion)

	_, err = domain.NewWrapper(domain.Wallet{}, domain.Version2, "en", 5000)
	require.ErrorIs(t, err, domain.ErrWalletNullGUID)

	_, err = domain.NewWrapper(newTestLegacyWallet(), domain.Version4, "en", 5000)
	require.ErrorIs(t, err, domain.ErrHDWalletNotFound)
}

func TestWrapperWithVersion(t *testing.T) {
	wrapper, err := domain.NewWrapper(newTestHDWallet(false), domain.Version3, "en", 5000)
	require.NoError(t, err)

	upgraded, err := wrapper.WithVersion(domain.Version4)
	require.NoError(t, err)
	require.True(t, upgraded.IsLatest())
	require.Equal(t, domain.Version3, wrapper.Version)

	same, err := upgraded.WithVersion(domain.Version4)
	require.NoError(t, err)
	require.Equal(t, upgraded, same)

	_, err = upgraded.WithVersion(domain.Version3)
	require.ErrorIs(t, err, domain.ErrVersionDowngrade)

	_, err = upgraded.WithVersion(domain.Version(7))
	require.ErrorIs(t, err, domain.ErrUnsupportedVersion)
}

func TestWrapperIsValue(t *testing.T) {
	wrapper, err := domain.NewWrapper(newTestHDWallet(true), domain.Version4, "en", 5000)
	require.NoError(t, err)

	withChecksum := wrapper.WithChecksum("abcd")
	withChecksum.Wallet.HDWallets[0].Accounts[0].Label = "changed"

	require.Empty(t, wrapper.PayloadChecksum)
	require.Equal(t, "abcd", withChecksum.PayloadChecksum)
	require.Equal(t, "Private Key Wallet", wrapper.Wallet.HDWallets[0].Accounts[0].Label)
}

func TestInnerPayload(t *testing.T) {
	inner := domain.InnerPayload{
		PBKDF2Iterations: 5000,
		Version:          domain.Version4,
		Payload:          "c2VjcmV0",
	}

	data, err := inner.Serialize()
	require.NoError(t, err)
	require.JSONEq(
		t, `{"pbkdf2_iterations":5000,"version":"4","payload":"c2VjcmV0"}`,
		string(data),
	)

	parsed, err := domain.DeserializeInnerPayload(data)
	require.NoError(t, err)
	require.Equal(t, inner, *parsed)

	_, err = domain.InnerPayload{Version: domain.Version4}.Serialize()
	require.ErrorIs(t, err, domain.ErrMalformedDocument)

	numeric, err := domain.DeserializeInnerPayload(
		[]byte(`{"pbkdf2_iterations":5000,"version":4,"payload":"c2VjcmV0"}`),
	)
	require.NoError(t, err)
	require.Equal(t, inner, *numeric)

	for _, data := range []string{
		"not json",
		`{"pbkdf2_iterations":5000,"version":9,"payload":"c2VjcmV0"}`,
		`{"pbkdf2_iterations":5000,"version":3.5,"payload":"c2VjcmV0"}`,
		`{"pbkdf2_iterations":5000,"version":"9","payload":"c2VjcmV0"}`,
		`{"pbkdf2_iterations":5000,"version":"4"}`,
	} {
		_, err := domain.DeserializeInnerPayload([]byte(data))
		require.Error(t, err)
	}
}

func TestWalletPayloadJSON(t *testing.T) {
	payload := domain.WalletPayload{
		GUID:             "guid",
		Language:         "en",
		Payload:          "{}",
		PayloadChecksum:  "abcd",
		Version:          domain.Version3,
		PBKDF2Iterations: 5000,
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NotContains(t, string(data), "old_checksum")
	require.Contains(t, string(data), `"version":"3"`)

	var parsed domain.WalletPayload
	require.NoError(t, json.Unmarshal(
		[]byte(`{"guid":"guid","payload":"{}","version":2}`), &parsed,
	))
	require.Equal(t, domain.Version2, parsed.Version)
}
