package legacy

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/walletsync/internal/core/ports"
)

var (
	// ErrNullInterpreter ...
	ErrNullInterpreter = errors.New("legacy interpreter must not be null")
	// ErrDecryptionFailed is returned when the interpreter reports a failure
	// through its failure callback.
	ErrDecryptionFailed = errors.New("legacy interpreter failed to decrypt")
	// ErrEmptyResult ...
	ErrEmptyResult = errors.New("legacy interpreter returned an empty result")
)

// Interpreter is the callback based contract exposed by the legacy wallet
// interpreter. Exactly one of onSuccess and onFailure is expected to be
// invoked, possibly from another goroutine and after Decrypt returned.
type Interpreter interface {
	Decrypt(
		cypherText, password string,
		onSuccess func(plainText string), onFailure func(reason string),
	)
}

// InterpreterFunc adapts an ordinary function to the Interpreter interface.
type InterpreterFunc func(
	cypherText, password string,
	onSuccess func(plainText string), onFailure func(reason string),
)

func (f InterpreterFunc) Decrypt(
	cypherText, password string,
	onSuccess func(string), onFailure func(string),
) {
	f(cypherText, password, onSuccess, onFailure)
}

type result struct {
	plainText []byte
	err       error
}

type decrypter struct {
	interpreter Interpreter
}

// NewDecrypter returns a ports.LegacyDecrypter on top of the given
// interpreter.
func NewDecrypter(interpreter Interpreter) (ports.LegacyDecrypter, error) {
	if interpreter == nil {
		return nil, ErrNullInterpreter
	}
	return &decrypter{interpreter}, nil
}

// Decrypt blocks until the interpreter invokes one of its callbacks or ctx is
// done. Only the first callback is taken into account.
func (d *decrypter) Decrypt(
	ctx context.Context, cypherText, password string,
) ([]byte, error) {
	resultCh := make(chan result, 1)
	once := &sync.Once{}
	deliver := func(r result) {
		delivered := false
		once.Do(func() {
			resultCh <- r
			delivered = true
		})
		if !delivered {
			log.Debug("legacy interpreter: ignoring duplicated callback")
		}
	}

	onSuccess := func(plainText string) {
		if len(plainText) <= 0 {
			deliver(result{err: ErrEmptyResult})
			return
		}
		deliver(result{plainText: []byte(plainText)})
	}
	onFailure := func(reason string) {
		deliver(result{err: fmt.Errorf("%w: %s", ErrDecryptionFailed, reason)})
	}

	go d.interpreter.Decrypt(cypherText, password, onSuccess, onFailure)

	select {
	case r := <-resultCh:
		return r.plainText, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
