package remotehttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/walletsync/internal/core/domain"
	"github.com/tdex-network/walletsync/internal/core/ports"
	"github.com/tdex-network/walletsync/pkg/circuitbreaker"
	"go.uber.org/ratelimit"
)

const (
	walletPath = "wallet"

	// DefaultRequestTimeout ...
	DefaultRequestTimeout = 15 * time.Second
	// DefaultRateLimit is the max number of requests per second.
	DefaultRateLimit = 10
)

var (
	// ErrMissingURL ...
	ErrMissingURL = errors.New("missing remote url")
	// ErrInvalidURL ...
	ErrInvalidURL = errors.New("invalid remote url")
	// ErrInvalidRateLimit ...
	ErrInvalidRateLimit = errors.New("rate limit must be a positive number")
	// ErrUnexpectedStatus is returned when the remote answers with a status
	// code that does not map to any known outcome.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Opts ...
type Opts struct {
	URL            string
	RequestTimeout time.Duration
	// RateLimit is the max number of requests per second.
	RateLimit int
}

func (o Opts) validate() error {
	if len(o.URL) <= 0 {
		return ErrMissingURL
	}
	u, err := url.Parse(o.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %s", ErrInvalidURL, o.URL)
	}
	if o.RateLimit < 0 {
		return ErrInvalidRateLimit
	}
	return nil
}

type saveWalletRequest struct {
	domain.WalletPayload
	Addresses []string `json:"addresses,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type service struct {
	baseURL    string
	httpClient *client
	cb         *gobreaker.CircuitBreaker
	limiter    ratelimit.Limiter
}

// NewService returns a ports.RemoteStore talking to the wallet server
// reachable at opts.URL.
func NewService(opts Opts) (ports.RemoteStore, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	rateLimit := opts.RateLimit
	if rateLimit == 0 {
		rateLimit = DefaultRateLimit
	}

	return &service{
		baseURL:    strings.TrimSuffix(opts.URL, "/"),
		httpClient: newHTTPClient(timeout),
		cb:         circuitbreaker.NewCircuitBreaker("remote-store"),
		limiter:    ratelimit.New(rateLimit),
	}, nil
}

func (s *service) SaveWallet(
	ctx context.Context, payload domain.WalletPayload, addresses []string,
) error {
	body, err := json.Marshal(saveWalletRequest{payload, addresses})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s", s.baseURL, walletPath)
	headers := map[string]string{
		"Content-Type": "application/json",
	}
	status, resp, err := s.doRequest(func() (int, []byte, error) {
		return s.httpClient.post(ctx, endpoint, body, headers)
	})
	if err != nil {
		return err
	}

	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		log.WithFields(log.Fields{
			"guid":     payload.GUID,
			"checksum": payload.PayloadChecksum,
		}).Debug("wallet saved on remote")
		return nil
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ports.ErrChecksumConflict, parseError(resp))
	default:
		return unexpectedStatus(status, resp)
	}
}

func (s *service) FetchWallet(
	ctx context.Context, guid string,
) (*domain.WalletPayload, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", s.baseURL, walletPath, url.PathEscape(guid))
	headers := map[string]string{
		"Accept": "application/json",
	}
	status, resp, err := s.doRequest(func() (int, []byte, error) {
		return s.httpClient.get(ctx, endpoint, headers)
	})
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ports.ErrWalletNotFound, guid)
	default:
		return nil, unexpectedStatus(status, resp)
	}

	var payload domain.WalletPayload
	if err := json.Unmarshal(resp, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse remote payload: %w", err)
	}
	if payload.GUID != guid {
		return nil, fmt.Errorf(
			"remote returned payload for wallet %s, expected %s", payload.GUID, guid,
		)
	}
	return &payload, nil
}

// doRequest rate limits the request and runs it through the circuit breaker.
// Only transport errors and server errors count as breaker failures, any
// other status is handed back to the caller.
func (s *service) doRequest(
	request func() (int, []byte, error),
) (int, []byte, error) {
	s.limiter.Take()

	type response struct {
		status int
		body   []byte
	}
	var rs response
	_, err := s.cb.Execute(func() (interface{}, error) {
		status, body, err := request()
		if err != nil {
			return nil, err
		}
		rs = response{status, body}
		if status >= http.StatusInternalServerError {
			return nil, unexpectedStatus(status, body)
		}
		return nil, nil
	})
	if err != nil {
		return 0, nil, err
	}
	return rs.status, rs.body, nil
}

func unexpectedStatus(status int, body []byte) error {
	return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, status, parseError(body))
}

func parseError(body []byte) string {
	var rs errorResponse
	if err := json.Unmarshal(body, &rs); err == nil && rs.Error != "" {
		return rs.Error
	}
	return strings.TrimSpace(string(body))
}
