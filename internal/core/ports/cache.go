package ports

import (
	"context"
	"time"
)

// CredentialsCache keeps the wallet password for the lifetime of a session
type CredentialsCache interface {
	SetPassword(ctx context.Context, guid, password string) error
	GetPassword(ctx context.Context, guid string) (string, error)
	DeletePassword(ctx context.Context, guid string) error
}

// CachedPayload is the local copy of the last payload synced for a wallet
type CachedPayload struct {
	GUID         string
	Checksum     string
	Timestamp    time.Time
	InnerPayload []byte
}

// PayloadCache persists the last synced payload of every wallet
type PayloadCache interface {
	SavePayload(ctx context.Context, payload CachedPayload) error
	GetPayload(ctx context.Context, guid string) (*CachedPayload, error)
	DeletePayload(ctx context.Context, guid string) error
	Close()
}
