package application_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/walletsync/internal/core/application"
	"github.com/tdex-network/walletsync/internal/core/domain"
	"github.com/tdex-network/walletsync/internal/core/ports"
	"github.com/tdex-network/walletsync/pkg/wallet"
)

type walletFixture struct {
	*syncFixture
	entropy *mockEntropySource
	legacy  *mockLegacyDecrypter
	svc     application.WalletService
}

func newWalletFixture(t *testing.T, withLegacy bool) *walletFixture {
	f := &walletFixture{
		syncFixture: newSyncFixture(t, application.AddressPolicyNone),
		entropy:     &mockEntropySource{},
		legacy:      &mockLegacyDecrypter{},
	}
	opts := application.WalletServiceOpts{
		RemoteStore:      f.remote,
		CredentialsCache: f.credentials,
		PayloadCache:     f.payloads,
		EntropySource:    f.entropy,
		StateHolder:      f.holder,
		SyncService:      f.syncFixture.svc,
		Iterations:       testIterations,
	}
	if withLegacy {
		opts.LegacyDecrypter = f.legacy
	}
	svc, err := application.NewWalletService(opts)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func TestCreateAndLoadWallet(t *testing.T) {
	f := newWalletFixture(t, false)
	f.entropy.On("GenerateEntropy", mock.Anything, application.SeedEntropySize).
		Return(testEntropy, nil)

	var saved domain.WalletPayload
	f.remote.On("SaveWallet", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.WalletPayload)
		}).Return(nil)
	f.credentials.On("SetPassword", mock.Anything, mock.Anything, testPassword).Return(nil)
	f.payloads.On("SavePayload", mock.Anything, mock.Anything).Return(nil)

	created, err := f.svc.CreateWallet(ctx, application.CreateWalletOpts{
		Password: testPassword,
	})
	require.NoError(t, err)
	require.Equal(t, domain.LatestVersion, created.Version)
	require.Equal(t, "en", created.Language)
	require.Empty(t, saved.OldChecksum)
	require.Equal(t, created.PayloadChecksum, saved.PayloadChecksum)

	hd, err := created.Wallet.DefaultHDWallet()
	require.NoError(t, err)
	require.Equal(t, testSeedHex, hd.SeedHex)
	require.Len(t, hd.Accounts, 1)
	require.Equal(t, domain.DerivationTypeSegwit, hd.Accounts[0].DefaultDerivation)
	segwit, ok := hd.Accounts[0].Derivation(domain.DerivationTypeSegwit)
	require.True(t, ok)
	require.Equal(t, deriveTestAccountKeys(t, domain.PurposeSegwit, 0).Xpub, segwit.Xpub)

	f.credentials.On("DeletePassword", mock.Anything, created.GUID()).Return(nil)
	require.NoError(t, f.svc.Logout(ctx))
	require.Equal(t, application.WalletStatusEmpty, f.holder.Get().Status())

	f.remote.On("FetchWallet", mock.Anything, created.GUID()).Return(&saved, nil)
	loaded, err := f.svc.LoadWallet(ctx, created.GUID(), testPassword)
	require.NoError(t, err)
	require.Equal(t, *created, *loaded)
	require.Equal(t, *created, *f.holder.Get().Wrapper)
}

func newTestWirePayload(
	t *testing.T, version domain.Version, cypherText string,
) *domain.WalletPayload {
	inner, err := domain.InnerPayload{
		PBKDF2Iterations: testIterations,
		Version:          version,
		Payload:          cypherText,
	}.Serialize()
	require.NoError(t, err)

	return &domain.WalletPayload{
		GUID:             testGUID,
		Language:         "en",
		Payload:          string(inner),
		PayloadChecksum:  application.DefaultChecksum(inner),
		Version:          version,
		PBKDF2Iterations: testIterations,
	}
}

func TestLoadLegacyWallet(t *testing.T) {
	f := newWalletFixture(t, true)
	document, err := domain.EncodeWalletDocument(domain.Version2, newTestLegacyWallet())
	require.NoError(t, err)

	payload := newTestWirePayload(t, domain.Version2, "legacy-cypher-text")
	f.remote.On("FetchWallet", mock.Anything, testGUID).Return(payload, nil)
	f.legacy.On("Decrypt", mock.Anything, "legacy-cypher-text", testPassword).
		Return(document, nil)
	f.credentials.On("SetPassword", mock.Anything, testGUID, testPassword).Return(nil)
	f.payloads.On("SavePayload", mock.Anything, mock.Anything).Return(nil)

	loaded, err := f.svc.LoadWallet(ctx, testGUID, testPassword)
	require.NoError(t, err)
	require.Equal(t, domain.Version2, loaded.Version)
	require.Equal(t, payload.PayloadChecksum, loaded.PayloadChecksum)
	require.Equal(t, newTestLegacyWallet(), loaded.Wallet)
	require.Equal(t, application.WalletStatusPartiallyLoaded, f.holder.Get().Status())
	f.legacy.AssertExpectations(t)
}

func TestLoadVersion1Wallet(t *testing.T) {
	f := newWalletFixture(t, true)
	document, err := domain.EncodeWalletDocument(domain.Version1, newTestLegacyWallet())
	require.NoError(t, err)

	payload := &domain.WalletPayload{
		GUID:             testGUID,
		Payload:          "bare-legacy-cypher-text",
		Version:          domain.Version1,
		PBKDF2Iterations: testIterations,
	}
	f.remote.On("FetchWallet", mock.Anything, testGUID).Return(payload, nil)
	f.legacy.On("Decrypt", mock.Anything, "bare-legacy-cypher-text", testPassword).
		Return(document, nil)
	f.credentials.On("SetPassword", mock.Anything, testGUID, testPassword).Return(nil)
	f.payloads.On("SavePayload", mock.Anything, mock.Anything).Return(nil)

	loaded, err := f.svc.LoadWallet(ctx, testGUID, testPassword)
	require.NoError(t, err)
	require.Equal(t, domain.Version1, loaded.Version)
	require.Equal(t, application.DefaultChecksum([]byte(payload.Payload)), loaded.PayloadChecksum)
}

func TestLoadWalletCypherIterations(t *testing.T) {
	document, err := domain.EncodeWalletDocument(domain.Version2, newTestLegacyWallet())
	require.NoError(t, err)
	cypherText, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  string(document),
		Passphrase: testPassword,
		Iterations: testIterations,
	})
	require.NoError(t, err)

	newPayload := func(iterations uint32) *domain.WalletPayload {
		inner, err := domain.InnerPayload{
			PBKDF2Iterations: iterations,
			Version:          domain.Version2,
			Payload:          cypherText,
		}.Serialize()
		require.NoError(t, err)
		return &domain.WalletPayload{
			GUID:            testGUID,
			Payload:         string(inner),
			PayloadChecksum: application.DefaultChecksum(inner),
			Version:         domain.Version2,
		}
	}

	t.Run("undeclared", func(t *testing.T) {
		f := newWalletFixture(t, false)
		f.remote.On("FetchWallet", mock.Anything, testGUID).Return(newPayload(0), nil)
		f.credentials.On("SetPassword", mock.Anything, testGUID, testPassword).Return(nil)
		f.payloads.On("SavePayload", mock.Anything, mock.Anything).Return(nil)

		loaded, err := f.svc.LoadWallet(ctx, testGUID, testPassword)
		require.NoError(t, err)
		require.Equal(t, uint32(testIterations), loaded.PBKDF2Iterations)
	})

	t.Run("mismatch", func(t *testing.T) {
		f := newWalletFixture(t, false)
		f.remote.On("FetchWallet", mock.Anything, testGUID).
			Return(newPayload(testIterations+1), nil)

		_, err := f.svc.LoadWallet(ctx, testGUID, testPassword)
		require.ErrorIs(t, err, domain.ErrMalformedDocument)
		require.Equal(t, application.WalletStatusEmpty, f.holder.Get().Status())
	})
}

func TestFailingLoadWallet(t *testing.T) {
	encoded, err := application.EncodeWallet(application.EncodeWalletOpts{
		Wallet:     newTestLegacyWallet(),
		Version:    domain.Version2,
		Language:   "en",
		Password:   testPassword,
		Iterations: testIterations,
	})
	require.NoError(t, err)
	good := encoded.WalletPayload("")

	corrupted := good
	corrupted.PayloadChecksum = "deadbeef"

	otherWallet := newTestLegacyWallet()
	otherWallet.GUID = "another-guid"
	other, err := application.EncodeWallet(application.EncodeWalletOpts{
		Wallet:     otherWallet,
		Version:    domain.Version2,
		Password:   testPassword,
		Iterations: testIterations,
	})
	require.NoError(t, err)
	otherPayload := other.WalletPayload("")

	tests := []struct {
		name     string
		payload  *domain.WalletPayload
		fetchErr error
		password string
		err      error
	}{
		{"missing password", &good, nil, "", application.ErrNullPassword},
		{"fetch failure", nil, ports.ErrWalletNotFound, testPassword, ports.ErrWalletNotFound},
		{"wrong password", &good, nil, "wrong", wallet.ErrInvalidPassphrase},
		{"checksum mismatch", &corrupted, nil, testPassword, application.ErrChecksumMismatch},
		{"guid mismatch", &otherPayload, nil, testPassword, domain.ErrMalformedDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWalletFixture(t, false)
			f.remote.On("FetchWallet", mock.Anything, testGUID).Return(tt.payload, tt.fetchErr)

			_, err := f.svc.LoadWallet(ctx, testGUID, tt.password)
			require.ErrorIs(t, err, tt.err)
			require.Equal(t, application.WalletStatusEmpty, f.holder.Get().Status())
		})
	}
}

func TestLoadWalletWaitsForSync(t *testing.T) {
	f := newWalletFixture(t, false)
	encoded, err := application.EncodeWallet(application.EncodeWalletOpts{
		Wallet:     newTestLegacyWallet(),
		Version:    domain.Version2,
		Language:   "en",
		Password:   testPassword,
		Iterations: testIterations,
	})
	require.NoError(t, err)
	stale := encoded.WalletPayload("")

	fetching := make(chan struct{})
	release := make(chan struct{})
	f.remote.On("FetchWallet", mock.Anything, testGUID).
		Run(func(mock.Arguments) {
			close(fetching)
			<-release
		}).Return(&stale, nil)
	saving := make(chan struct{}, 1)
	f.remote.On("SaveWallet", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { saving <- struct{}{} }).Return(nil)
	f.credentials.On("SetPassword", mock.Anything, testGUID, testPassword).Return(nil)
	f.payloads.On("SavePayload", mock.Anything, mock.Anything).Return(nil)

	loadDone := make(chan error, 1)
	go func() {
		_, err := f.svc.LoadWallet(ctx, testGUID, testPassword)
		loadDone <- err
	}()
	<-fetching

	wrapper := newTestLegacyWrapper(t)
	syncDone := make(chan *domain.Wrapper, 1)
	go func() {
		synced, err := f.syncFixture.svc.Sync(ctx, wrapper, testPassword)
		assert.NoError(t, err)
		syncDone <- synced
	}()

	select {
	case <-saving:
		t.Fatal("wallet saved while being loaded")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-loadDone)
	synced := <-syncDone
	require.NotNil(t, synced)
	require.NotEqual(t, stale.PayloadChecksum, synced.PayloadChecksum)
	require.Equal(t, synced.PayloadChecksum, f.holder.Get().Wrapper.PayloadChecksum)
}

func TestFailingCreateWallet(t *testing.T) {
	f := newWalletFixture(t, false)

	_, err := f.svc.CreateWallet(ctx, application.CreateWalletOpts{})
	require.ErrorIs(t, err, application.ErrNullPassword)

	f.entropy.On("GenerateEntropy", mock.Anything, application.SeedEntropySize).
		Return(nil, errors.New("no entropy"))
	_, err = f.svc.CreateWallet(ctx, application.CreateWalletOpts{Password: testPassword})
	require.ErrorIs(t, err, application.ErrWalletCreate)
	f.remote.AssertNotCalled(t, "SaveWallet", mock.Anything, mock.Anything, mock.Anything)
}

func TestResync(t *testing.T) {
	f := newWalletFixture(t, false)

	_, err := f.svc.Resync(ctx)
	require.ErrorIs(t, err, application.ErrWalletNotLoaded)

	wrapper := newTestLegacyWrapper(t).WithChecksum("loaded")
	f.holder.PublishWrapper(wrapper)
	f.credentials.On("GetPassword", mock.Anything, testGUID).Return(testPassword, nil)
	f.credentials.On("SetPassword", mock.Anything, testGUID, testPassword).Return(nil)
	f.payloads.On("SavePayload", mock.Anything, mock.Anything).Return(nil)
	f.remote.On("SaveWallet", mock.Anything, mock.MatchedBy(
		func(p domain.WalletPayload) bool { return p.OldChecksum == "loaded" },
	), mock.Anything).Return(nil)

	synced, err := f.svc.Resync(ctx)
	require.NoError(t, err)
	require.NotEqual(t, "loaded", synced.PayloadChecksum)
	require.Equal(t, synced.PayloadChecksum, f.holder.Get().Wrapper.PayloadChecksum)
	f.remote.AssertExpectations(t)
}

func TestResyncWaitsForSync(t *testing.T) {
	f := newWalletFixture(t, false)
	wrapper := newTestLegacyWrapper(t).WithChecksum("loaded")
	f.holder.PublishWrapper(wrapper)

	started := make(chan struct{})
	release := make(chan struct{})
	saved := make(chan domain.WalletPayload, 2)
	f.remote.On("SaveWallet", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
			saved <- args.Get(1).(domain.WalletPayload)
		}).Return(nil).Once()
	f.remote.On("SaveWallet", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved <- args.Get(1).(domain.WalletPayload)
		}).Return(nil)
	f.credentials.On("GetPassword", mock.Anything, testGUID).Return(testPassword, nil)
	f.credentials.On("SetPassword", mock.Anything, testGUID, testPassword).Return(nil)
	f.payloads.On("SavePayload", mock.Anything, mock.Anything).Return(nil)

	syncDone := make(chan *domain.Wrapper, 1)
	go func() {
		synced, err := f.syncFixture.svc.Sync(ctx, wrapper, testPassword)
		assert.NoError(t, err)
		syncDone <- synced
	}()
	<-started

	resyncDone := make(chan *domain.Wrapper, 1)
	go func() {
		resynced, err := f.svc.Resync(ctx)
		assert.NoError(t, err)
		resyncDone <- resynced
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)

	synced := <-syncDone
	resynced := <-resyncDone
	require.NotNil(t, synced)
	require.NotNil(t, resynced)

	first, second := <-saved, <-saved
	require.Equal(t, "loaded", first.OldChecksum)
	require.Equal(t, synced.PayloadChecksum, second.OldChecksum)
	require.Equal(t, resynced.PayloadChecksum, f.holder.Get().Wrapper.PayloadChecksum)
}
