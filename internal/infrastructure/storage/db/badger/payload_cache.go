package dbbadger

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/walletsync/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const (
	payloadDbDir = "payloads"

	gcInterval     = 5 * time.Minute
	gcDiscardRatio = 0.5
)

type payloadCache struct {
	store *badgerhold.Store
	quit  chan struct{}
}

// NewPayloadCache opens (or creates if not exists) the badger store of the
// cached wallet payloads under baseDbDir. The store is in-memory if
// baseDbDir is empty.
func NewPayloadCache(
	baseDbDir string, logger badger.Logger,
) (ports.PayloadCache, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, payloadDbDir)
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening payload db: %w", err)
	}

	cache := &payloadCache{store, make(chan struct{})}
	if len(dbDir) > 0 {
		go cache.runGC()
	}
	return cache, nil
}

func (c *payloadCache) SavePayload(
	_ context.Context, payload ports.CachedPayload,
) error {
	if len(payload.GUID) <= 0 {
		return fmt.Errorf("missing payload guid")
	}
	return c.store.Upsert(payload.GUID, payload)
}

func (c *payloadCache) GetPayload(
	_ context.Context, guid string,
) (*ports.CachedPayload, error) {
	var payload ports.CachedPayload
	if err := c.store.Get(guid, &payload); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, ports.ErrPayloadNotFound
		}
		return nil, err
	}
	return &payload, nil
}

func (c *payloadCache) DeletePayload(_ context.Context, guid string) error {
	err := c.store.Delete(guid, ports.CachedPayload{})
	if err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
		return err
	}
	return nil
}

func (c *payloadCache) Close() {
	close(c.quit)
	if err := c.store.Close(); err != nil {
		log.WithError(err).Warn("failed to close payload db")
	}
}

func (c *payloadCache) runGC() {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.store.Badger().RunValueLogGC(gcDiscardRatio); err != nil {
				if !errors.Is(err, badger.ErrNoRewrite) {
					log.WithError(err).Error("payload db garbage collection failed")
				}
			}
		case <-c.quit:
			return
		}
	}
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
