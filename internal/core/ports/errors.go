package ports

import "errors"

var (
	// ErrChecksumConflict is returned by a RemoteStore when the old checksum
	// of a save does not match the one stored remotely.
	ErrChecksumConflict = errors.New("remote payload checksum conflict")
	// ErrWalletNotFound ...
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrPasswordNotFound ...
	ErrPasswordNotFound = errors.New("password not found in cache")
	// ErrPayloadNotFound ...
	ErrPayloadNotFound = errors.New("payload not found in cache")
)
