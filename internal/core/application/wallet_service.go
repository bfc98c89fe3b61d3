package application

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/walletsync/internal/core/domain"
	"github.com/tdex-network/walletsync/internal/core/ports"
	"github.com/tdex-network/walletsync/pkg/wallet"
)

const defaultLogoutTime = 600000

// WalletService manages the lifecycle of the wallet loaded in the state
// holder.
type WalletService interface {
	CreateWallet(
		ctx context.Context, opts CreateWalletOpts,
	) (*domain.Wrapper, error)
	LoadWallet(
		ctx context.Context, guid, password string,
	) (*domain.Wrapper, error)
	// Resync syncs again the loaded wallet with the cached password.
	Resync(ctx context.Context) (*domain.Wrapper, error)
	Logout(ctx context.Context) error
}

// CreateWalletOpts is the struct given to CreateWallet
type CreateWalletOpts struct {
	Password string
	Language string
	// Iterations defaults to the ones of the service.
	Iterations uint32
}

func (o CreateWalletOpts) validate() error {
	if len(o.Password) <= 0 {
		return ErrNullPassword
	}
	return nil
}

// WalletServiceOpts is the struct given to NewWalletService
type WalletServiceOpts struct {
	RemoteStore      ports.RemoteStore
	CredentialsCache ports.CredentialsCache
	PayloadCache     ports.PayloadCache
	EntropySource    ports.EntropySource
	// LegacyDecrypter is used for payloads older than version 3. If nil,
	// they're decrypted like any other payload.
	LegacyDecrypter ports.LegacyDecrypter
	StateHolder     *WalletStateHolder
	SyncService     SyncService
	Language        string
	Iterations      uint32
	Checksum        ChecksumFunc
}

func (o WalletServiceOpts) validate() error {
	if o.RemoteStore == nil {
		return fmt.Errorf("missing remote store")
	}
	if o.EntropySource == nil {
		return fmt.Errorf("missing entropy source")
	}
	if o.StateHolder == nil {
		return fmt.Errorf("missing wallet state holder")
	}
	if o.SyncService == nil {
		return fmt.Errorf("missing sync service")
	}
	return nil
}

type walletService struct {
	remoteStore      ports.RemoteStore
	credentialsCache ports.CredentialsCache
	payloadCache     ports.PayloadCache
	entropySource    ports.EntropySource
	legacyDecrypter  ports.LegacyDecrypter
	stateHolder      *WalletStateHolder
	syncService      SyncService
	language         string
	iterations       uint32
	checksum         ChecksumFunc
}

// NewWalletService ...
func NewWalletService(opts WalletServiceOpts) (WalletService, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	language := opts.Language
	if len(language) <= 0 {
		language = "en"
	}
	iterations := opts.Iterations
	if iterations == 0 {
		iterations = wallet.DefaultIterations
	}
	checksum := opts.Checksum
	if checksum == nil {
		checksum = DefaultChecksum
	}

	return &walletService{
		remoteStore:      opts.RemoteStore,
		credentialsCache: opts.CredentialsCache,
		payloadCache:     opts.PayloadCache,
		entropySource:    opts.EntropySource,
		legacyDecrypter:  opts.LegacyDecrypter,
		stateHolder:      opts.StateHolder,
		syncService:      opts.SyncService,
		language:         language,
		iterations:       iterations,
		checksum:         checksum,
	}, nil
}

func (s *walletService) CreateWallet(
	ctx context.Context, opts CreateWalletOpts,
) (*domain.Wrapper, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	language := opts.Language
	if len(language) <= 0 {
		language = s.language
	}
	iterations := opts.Iterations
	if iterations == 0 {
		iterations = s.iterations
	}

	hd, err := s.newHDWallet(ctx)
	if err != nil {
		return nil, err
	}
	wlt := domain.Wallet{
		GUID:      uuid.New().String(),
		SharedKey: uuid.New().String(),
		Options: domain.Options{
			PBKDF2Iterations: iterations,
			LogoutTime:       defaultLogoutTime,
		},
		HDWallets: []domain.HDWallet{*hd},
	}
	wrapper, err := domain.NewWrapper(
		wlt, domain.LatestVersion, language, iterations,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWalletCreate, err)
	}

	log.WithField("guid", wlt.GUID).Info("creating new wallet")
	return s.syncService.Sync(ctx, *wrapper, opts.Password)
}

func (s *walletService) LoadWallet(
	ctx context.Context, guid, password string,
) (*domain.Wrapper, error) {
	if len(password) <= 0 {
		return nil, ErrNullPassword
	}

	var loaded *domain.Wrapper
	// The fetch honors the caller's context, a canceled load publishes
	// nothing.
	if err := s.syncService.RunExclusive(
		ctx, guid, func(slotCtx context.Context) error {
			wrapper, inner, err := s.fetchWallet(ctx, guid, password)
			if err != nil {
				return err
			}
			s.cacheLoadedWallet(slotCtx, *wrapper, *inner, password)
			s.stateHolder.PublishWrapper(*wrapper)
			loaded = wrapper
			return nil
		},
	); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"guid":    guid,
		"version": loaded.Version.String(),
	}).Info("wallet loaded")
	return loaded, nil
}

func (s *walletService) Resync(ctx context.Context) (*domain.Wrapper, error) {
	state := s.stateHolder.Get()
	if state.Status() == WalletStatusEmpty {
		return nil, ErrWalletNotLoaded
	}
	if s.credentialsCache == nil {
		return nil, ports.ErrPasswordNotFound
	}
	guid := state.Wrapper.GUID()
	password, err := s.credentialsCache.GetPassword(ctx, guid)
	if err != nil {
		return nil, err
	}

	return s.syncService.SyncWith(
		ctx, guid, password, func(context.Context) (*domain.Wrapper, error) {
			// Re-read inside the slot, a sync or load may have published a
			// newer snapshot in the meantime.
			current := s.stateHolder.Get()
			if current.Status() == WalletStatusEmpty ||
				current.Wrapper.GUID() != guid {
				return nil, ErrWalletNotLoaded
			}
			wrapper := *current.Wrapper
			return &wrapper, nil
		},
	)
}

func (s *walletService) Logout(ctx context.Context) error {
	state := s.stateHolder.Get()
	if state.Status() == WalletStatusEmpty {
		return nil
	}

	guid := state.Wrapper.GUID()
	if s.credentialsCache != nil {
		if err := s.credentialsCache.DeletePassword(ctx, guid); err != nil {
			return err
		}
	}
	// Swap only the observed snapshot, a wallet loaded in the meantime
	// must not be wiped.
	s.stateHolder.CompareAndSwap(state, nil)
	log.WithField("guid", guid).Info("wallet logged out")
	return nil
}

// fetchWallet fetches, verifies and decrypts the remote payload of the
// wallet.
func (s *walletService) fetchWallet(
	ctx context.Context, guid, password string,
) (*domain.Wrapper, *domain.InnerPayload, error) {
	payload, err := s.remoteStore.FetchWallet(ctx, guid)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	}
	checksum := s.checksum([]byte(payload.Payload))
	if len(payload.PayloadChecksum) > 0 && checksum != payload.PayloadChecksum {
		return nil, nil, ErrChecksumMismatch
	}

	inner, err := innerPayloadOf(*payload)
	if err != nil {
		return nil, nil, err
	}
	document, iterations, err := s.decrypt(ctx, *inner, password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decrypt wallet: %w", err)
	}
	wlt, err := domain.DecodeWalletDocument(inner.Version, document)
	if err != nil {
		return nil, nil, err
	}
	if wlt.GUID != guid {
		return nil, nil, fmt.Errorf(
			"%w: payload belongs to wallet %s", domain.ErrMalformedDocument, wlt.GUID,
		)
	}

	return &domain.Wrapper{
		PBKDF2Iterations: iterations,
		Version:          inner.Version,
		PayloadChecksum:  checksum,
		Language:         payload.Language,
		Wallet:           *wlt,
	}, inner, nil
}

func (s *walletService) cacheLoadedWallet(
	ctx context.Context, wrapper domain.Wrapper, inner domain.InnerPayload,
	password string,
) {
	logger := log.WithField("guid", wrapper.GUID())
	if s.credentialsCache != nil {
		if err := s.credentialsCache.SetPassword(
			ctx, wrapper.GUID(), password,
		); err != nil {
			logger.WithError(err).Warn("failed to cache wallet password")
		}
	}
	if s.payloadCache != nil {
		innerPayload, _ := inner.Serialize()
		if err := s.payloadCache.SavePayload(ctx, ports.CachedPayload{
			GUID:         wrapper.GUID(),
			Checksum:     wrapper.PayloadChecksum,
			Timestamp:    time.Now(),
			InnerPayload: innerPayload,
		}); err != nil {
			logger.WithError(err).Warn("failed to cache wallet payload")
		}
	}
}

func (s *walletService) newHDWallet(ctx context.Context) (*domain.HDWallet, error) {
	entropy, err := s.entropySource.GenerateEntropy(ctx, SeedEntropySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWalletCreate, err)
	}
	seedHex := hex.EncodeToString(entropy)
	masterKey, err := wallet.NewMasterKey(wallet.NewMasterKeyOpts{SeedHex: seedHex})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWalletCreate, err)
	}

	derivations := make([]domain.Derivation, 0, len(domain.DerivationTypes))
	for _, t := range domain.DerivationTypes {
		derivation, err := newDerivation(masterKey, t, 0, nil)
		if err != nil {
			return nil, err
		}
		derivations = append(derivations, *derivation)
	}
	return &domain.HDWallet{
		SeedHex: seedHex,
		Accounts: []domain.Account{{
			Index:             0,
			Label:             domain.DefaultAccountLabel,
			DefaultDerivation: domain.DerivationTypeSegwit,
			Derivations:       derivations,
		}},
	}, nil
}

// decrypt returns the plain wallet document and the PBKDF2 rounds of its
// cypher.
func (s *walletService) decrypt(
	ctx context.Context, inner domain.InnerPayload, password string,
) ([]byte, uint32, error) {
	if !inner.Version.IsHD() && s.legacyDecrypter != nil {
		document, err := s.legacyDecrypter.Decrypt(ctx, inner.Payload, password)
		if err != nil {
			return nil, 0, err
		}
		return document, inner.PBKDF2Iterations, nil
	}
	return decryptDocument(inner, password)
}

// innerPayloadOf extracts the inner payload of a wire payload. Version 1
// payloads carry the bare cypher text instead of the inner envelope.
func innerPayloadOf(payload domain.WalletPayload) (*domain.InnerPayload, error) {
	inner, err := domain.DeserializeInnerPayload([]byte(payload.Payload))
	if err == nil {
		return inner, nil
	}
	if payload.Version != domain.Version1 || len(payload.Payload) <= 0 {
		return nil, err
	}
	return &domain.InnerPayload{
		PBKDF2Iterations: payload.PBKDF2Iterations,
		Version:          payload.Version,
		Payload:          payload.Payload,
	}, nil
}
