package inmemory

import "errors"

var (
	// ErrPayloadNullGUID ...
	ErrPayloadNullGUID = errors.New("payload guid must not be null")
)
