package main

import (
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/walletsync/internal/config"
	"github.com/tdex-network/walletsync/internal/core/application"
	"github.com/tdex-network/walletsync/internal/core/ports"
	"github.com/tdex-network/walletsync/internal/infrastructure/entropy"
	"github.com/tdex-network/walletsync/internal/infrastructure/legacy"
	remotehttp "github.com/tdex-network/walletsync/internal/infrastructure/remote/http"
	dbbadger "github.com/tdex-network/walletsync/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/walletsync/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/walletsync/pkg/stats"
)

const metricsFile = "metrics.txt"

type services struct {
	stateHolder    *application.WalletStateHolder
	walletService  application.WalletService
	upgradeService application.UpgradeService
	close          func()
}

func newServices() (*services, error) {
	addressPolicy, err := application.ParseAddressPolicy(
		config.GetString(config.AddressPolicyKey),
	)
	if err != nil {
		return nil, err
	}

	remoteStore, err := remotehttp.NewService(remotehttp.Opts{
		URL:            config.GetString(config.RemoteURLKey),
		RequestTimeout: config.GetRemoteTimeout(),
		RateLimit:      config.GetInt(config.RemoteRateLimitKey),
	})
	if err != nil {
		return nil, err
	}

	var payloadCache ports.PayloadCache
	switch config.GetString(config.DBTypeKey) {
	case config.DBInMemory:
		payloadCache = inmemory.NewPayloadCacheImpl()
	default:
		payloadCache, err = dbbadger.NewPayloadCache(config.GetDbDir(), nil)
		if err != nil {
			return nil, err
		}
	}
	credentialsCache := inmemory.NewCredentialsCacheImpl()
	entropySource := entropy.NewService()

	var legacyDecrypter ports.LegacyDecrypter
	if cmd := config.GetLegacyDecryptCmd(); len(cmd) > 0 {
		legacyDecrypter, err = legacy.NewDecrypter(
			legacy.NewCommandInterpreter(cmd[0], cmd[1:]...),
		)
		if err != nil {
			payloadCache.Close()
			return nil, err
		}
	}
	stateHolder := application.NewWalletStateHolder()

	stopStats := func() {}
	if config.GetBool(config.EnableMetricsKey) {
		if err := stats.Register(prometheus.DefaultRegisterer); err != nil {
			payloadCache.Close()
			return nil, err
		}
		dumpPath := filepath.Join(
			config.GetDatadir(), config.MetricsLocation, metricsFile,
		)
		stopStats = stats.EnableMemoryStatistics(
			config.GetStatsInterval(), prometheus.DefaultGatherer, dumpPath,
		)
	}

	syncService, err := application.NewSyncService(application.SyncServiceOpts{
		RemoteStore:      remoteStore,
		CredentialsCache: credentialsCache,
		PayloadCache:     payloadCache,
		StateHolder:      stateHolder,
		AddressPolicy:    addressPolicy,
	})
	if err != nil {
		stopStats()
		payloadCache.Close()
		return nil, err
	}

	walletService, err := application.NewWalletService(
		application.WalletServiceOpts{
			RemoteStore:      remoteStore,
			CredentialsCache: credentialsCache,
			PayloadCache:     payloadCache,
			EntropySource:    entropySource,
			LegacyDecrypter:  legacyDecrypter,
			StateHolder:      stateHolder,
			SyncService:      syncService,
			Language:         config.GetString(config.LanguageKey),
			Iterations:       config.GetUint32(config.PBKDF2IterationsKey),
		},
	)
	if err != nil {
		stopStats()
		payloadCache.Close()
		return nil, err
	}

	engine, err := application.NewUpgradeEngine(
		application.DefaultWorkflows(entropySource)...,
	)
	if err != nil {
		stopStats()
		payloadCache.Close()
		return nil, err
	}

	return &services{
		stateHolder:    stateHolder,
		walletService:  walletService,
		upgradeService: application.NewUpgradeService(engine, syncService),
		close: func() {
			stopStats()
			payloadCache.Close()
			log.Debug("services closed")
		},
	}, nil
}
