package domain

import (
	"encoding/json"
	"fmt"
)

// WalletPayload is the shape of a wallet persisted to and retrieved from the
// remote store.
type WalletPayload struct {
	GUID     string `json:"guid"`
	Language string `json:"language"`
	// Payload is the serialized InnerPayload. v1 wallets may carry the bare
	// cypher text.
	Payload          string  `json:"payload"`
	PayloadChecksum  string  `json:"payload_checksum"`
	Version          Version `json:"version"`
	PBKDF2Iterations uint32  `json:"pbkdf2_iterations"`
	// OldChecksum is the checksum the client expects the remote to hold
	// before the save. Empty for a brand new wallet.
	OldChecksum string `json:"old_checksum,omitempty"`
}

// InnerPayload is the canonical envelope of an encrypted wallet document.
// Its serialization is what the payload checksum is computed over.
type InnerPayload struct {
	PBKDF2Iterations uint32  `json:"pbkdf2_iterations"`
	Version          Version `json:"version"`
	Payload          string  `json:"payload"`
}

// Serialize returns the canonical JSON form of the inner payload
func (p InnerPayload) Serialize() ([]byte, error) {
	if len(p.Payload) <= 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedDocument)
	}
	return json.Marshal(p)
}

// DeserializeInnerPayload parses the canonical JSON form of an inner payload
func DeserializeInnerPayload(data []byte) (*InnerPayload, error) {
	var p InnerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDocument, err)
	}
	if len(p.Payload) <= 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedDocument)
	}
	return &p, nil
}
