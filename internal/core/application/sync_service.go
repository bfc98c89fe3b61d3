package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/walletsync/internal/core/domain"
	"github.com/tdex-network/walletsync/internal/core/ports"
	"github.com/tdex-network/walletsync/pkg/stats"
)

// UpdateFunc produces the wrapper to sync. It runs in the serial slot of the
// wallet, right before the sync pipeline.
type UpdateFunc func(ctx context.Context) (*domain.Wrapper, error)

// SyncService persists a wallet to the remote store and mirrors the result
// in the local caches and in the wallet state holder.
type SyncService interface {
	// Sync runs the encrypt, verify, encode, save, cache and publish pipeline.
	// If any of encrypt, verify, encode or save fails nothing is cached or
	// published.
	Sync(
		ctx context.Context, wrapper domain.Wrapper, password string,
	) (*domain.Wrapper, error)
	// SyncWith runs update and syncs its result without releasing the serial
	// slot of the wallet in between.
	SyncWith(
		ctx context.Context, guid, password string, update UpdateFunc,
	) (*domain.Wrapper, error)
	// RunExclusive runs fn in the serial slot of the wallet. Anything else
	// publishing the wallet to the state holder must go through it.
	RunExclusive(
		ctx context.Context, guid string, fn func(ctx context.Context) error,
	) error
}

// SyncServiceOpts is the struct given to NewSyncService
type SyncServiceOpts struct {
	RemoteStore ports.RemoteStore
	// CredentialsCache and PayloadCache are optional.
	CredentialsCache ports.CredentialsCache
	PayloadCache     ports.PayloadCache
	StateHolder      *WalletStateHolder
	AddressPolicy    AddressPolicy
	// Checksum defaults to DefaultChecksum.
	Checksum ChecksumFunc
	// Random is the source of salt and nonce of the payload cypher,
	// crypto/rand if nil.
	Random io.Reader
}

func (o SyncServiceOpts) validate() error {
	if o.RemoteStore == nil {
		return fmt.Errorf("missing remote store")
	}
	if o.StateHolder == nil {
		return fmt.Errorf("missing wallet state holder")
	}
	if _, err := ParseAddressPolicy(string(o.AddressPolicy)); err != nil {
		return err
	}
	return nil
}

type syncService struct {
	remoteStore      ports.RemoteStore
	credentialsCache ports.CredentialsCache
	payloadCache     ports.PayloadCache
	stateHolder      *WalletStateHolder
	addressPolicy    AddressPolicy
	checksum         ChecksumFunc
	random           io.Reader
	queue            *serialQueue
	now              func() time.Time
}

// NewSyncService returns a SyncService with its own serial queue
func NewSyncService(opts SyncServiceOpts) (SyncService, error) {
	return newSyncService(opts)
}

func newSyncService(opts SyncServiceOpts) (*syncService, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	policy, _ := ParseAddressPolicy(string(opts.AddressPolicy))
	checksum := opts.Checksum
	if checksum == nil {
		checksum = DefaultChecksum
	}

	return &syncService{
		remoteStore:      opts.RemoteStore,
		credentialsCache: opts.CredentialsCache,
		payloadCache:     opts.PayloadCache,
		stateHolder:      opts.StateHolder,
		addressPolicy:    policy,
		checksum:         checksum,
		random:           opts.Random,
		queue:            newSerialQueue(),
		now:              time.Now,
	}, nil
}

func (s *syncService) Sync(
	ctx context.Context, wrapper domain.Wrapper, password string,
) (*domain.Wrapper, error) {
	var synced *domain.Wrapper
	err := s.queue.run(ctx, wrapper.GUID(), func(ctx context.Context) error {
		var err error
		synced, err = s.sync(ctx, wrapper, password)
		return err
	})
	if err != nil {
		return nil, err
	}
	return synced, nil
}

func (s *syncService) SyncWith(
	ctx context.Context, guid, password string, update UpdateFunc,
) (*domain.Wrapper, error) {
	var synced *domain.Wrapper
	err := s.queue.run(ctx, guid, func(ctx context.Context) error {
		wrapper, err := update(ctx)
		if err != nil {
			return err
		}
		if wrapper.GUID() != guid {
			return fmt.Errorf(
				"updated wallet %s does not match wallet %s", wrapper.GUID(), guid,
			)
		}
		synced, err = s.sync(ctx, *wrapper, password)
		return err
	})
	if err != nil {
		return nil, err
	}
	return synced, nil
}

func (s *syncService) RunExclusive(
	ctx context.Context, guid string, fn func(ctx context.Context) error,
) error {
	return s.queue.run(ctx, guid, fn)
}

func (s *syncService) sync(
	ctx context.Context, wrapper domain.Wrapper, password string,
) (*domain.Wrapper, error) {
	synced, err := s.runPipeline(ctx, wrapper, password)
	stats.ObserveSync(syncResult(err))
	return synced, err
}

func (s *syncService) runPipeline(
	ctx context.Context, wrapper domain.Wrapper, password string,
) (*domain.Wrapper, error) {
	logger := log.WithFields(log.Fields{
		"guid":    wrapper.GUID(),
		"version": wrapper.Version.String(),
	})

	encrypted, err := EncryptWallet(EncryptWalletOpts{
		Wrapper:  wrapper,
		Password: password,
		Random:   s.random,
	})
	if err != nil {
		return nil, err
	}
	if err := VerifyWallet(*encrypted, password); err != nil {
		return nil, err
	}

	payload, err := EncodeEncryptedWallet(*encrypted, s.checksum)
	if err != nil {
		return nil, err
	}

	addresses := s.addressPolicy.Addresses(wrapper.Wallet)
	if err := s.remoteStore.SaveWallet(
		ctx, payload.WalletPayload(wrapper.PayloadChecksum), addresses,
	); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	}
	logger.WithField("checksum", payload.Checksum).Debug("wallet saved to remote")

	// From here on the remote holds the new payload, cache failures must not
	// prevent the state holder from mirroring it.
	if s.credentialsCache != nil {
		if err := s.credentialsCache.SetPassword(
			ctx, wrapper.GUID(), password,
		); err != nil {
			logger.WithError(err).Warn("failed to cache wallet password")
		}
	}
	if s.payloadCache != nil {
		if err := s.payloadCache.SavePayload(ctx, ports.CachedPayload{
			GUID:         wrapper.GUID(),
			Checksum:     payload.Checksum,
			Timestamp:    s.now(),
			InnerPayload: payload.InnerPayload,
		}); err != nil {
			logger.WithError(err).Warn("failed to cache wallet payload")
		}
	}

	synced := wrapper.WithChecksum(payload.Checksum)
	state := s.stateHolder.PublishWrapper(synced)
	logger.WithField("status", state.Status().String()).Debug("wallet synced")

	return &synced, nil
}

func syncResult(err error) string {
	switch {
	case err == nil:
		return stats.ResultSuccess
	case errors.Is(err, ErrVerificationFailure):
		return "verification_failure"
	case errors.Is(err, ErrEncoding):
		return "encoding_failure"
	case errors.Is(err, ErrNetworkFailure):
		return "network_failure"
	default:
		return stats.ResultFailure
	}
}
