package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domainErrors "github.com/abilic/ordergate/internal/domain/errors"
	"github.com/abilic/ordergate/internal/participant/api"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ParticipantError wraps a failed participant call with enough context for
// the coordinator to log and classify it.
type ParticipantError struct {
	Participant string
	Action      string
	Err         error
}

func (e *ParticipantError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Participant, e.Action, e.Err)
}

func (e *ParticipantError) Unwrap() error {
	return e.Err
}

// codeMappings translate error codes from participant responses back into
// domain sentinels so the coordinator can classify failures with errors.Is.
var codeMappings = map[string]error{
	"not_found":                domainErrors.ErrOrderNotFound,
	"insufficient_stock":       domainErrors.ErrInsufficientStock,
	"duplicate_payment":        domainErrors.ErrDuplicatePayment,
	"duplicate_shipment":       domainErrors.ErrDuplicateShipment,
	"fina_unavailable":         domainErrors.ErrFinaUnavailable,
	"carrier_unavailable":      domainErrors.ErrCarrierUnavailable,
	"invalid_payment_method":   domainErrors.ErrInvalidPaymentMethod,
	"invalid_address":          domainErrors.ErrInvalidAddress,
	"invalid_state_transition": domainErrors.ErrInvalidStateTransition,
	"validation_error":         domainErrors.ErrValidationFailed,
}

// baseClient is the shared HTTP plumbing for participant clients: JSON
// round-trips behind a per-participant circuit breaker, with traces
// propagated through the otelhttp transport.
type baseClient struct {
	participant string
	baseURL     string
	http        *http.Client
	breaker     *gobreaker.CircuitBreaker[[]byte]
	logger      zerolog.Logger
}

func newBaseClient(participant, baseURL string, timeout time.Duration, logger zerolog.Logger) *baseClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &baseClient{
		participant: participant,
		baseURL:     baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:        participant,
			MaxRequests: 10,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 10 && failureRatio >= 0.6
			},
		}),
		logger: logger,
	}
}

// do performs one JSON round-trip. Business failures reported by the
// participant (4xx with a mapped code) do not count against the breaker.
func (c *baseClient) do(ctx context.Context, action, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return &ParticipantError{Participant: c.participant, Action: action, Err: err}
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &ParticipantError{Participant: c.participant, Action: action, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		res, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domainErrors.ErrParticipantUnavailable, err)
		}
		defer res.Body.Close()

		data, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domainErrors.ErrParticipantUnavailable, err)
		}
		if res.StatusCode >= 200 && res.StatusCode < 300 {
			return data, nil
		}
		return nil, c.responseError(res.StatusCode, data)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			err = fmt.Errorf("%w: %v", domainErrors.ErrParticipantUnavailable, err)
		}
		return &ParticipantError{Participant: c.participant, Action: action, Err: err}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return &ParticipantError{Participant: c.participant, Action: action, Err: err}
		}
	}
	return nil
}

// responseError turns a non-2xx participant response into a domain error.
func (c *baseClient) responseError(status int, body []byte) error {
	var er api.ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Code != "" {
		if sentinel, ok := codeMappings[er.Code]; ok {
			return domainErrors.NewDomainError(er.Code, er.Error, sentinel)
		}
		if status >= 500 {
			return domainErrors.NewDomainError(er.Code, er.Error, domainErrors.ErrParticipantUnavailable)
		}
		return domainErrors.NewDomainError(er.Code, er.Error, nil)
	}
	if status >= 500 {
		return fmt.Errorf("%w: status %d", domainErrors.ErrParticipantUnavailable, status)
	}
	return fmt.Errorf("unexpected status %d", status)
}

// compensate runs a best-effort compensation call. Failures are logged, never
// returned; a broken compensation must not mask the original failure.
func (c *baseClient) compensate(ctx context.Context, action, path string) {
	if err := c.do(ctx, action, http.MethodPost, path, nil, nil); err != nil {
		c.logger.Error().Err(err).
			Str("participant", c.participant).
			Str("action", action).
			Msg("compensation failed")
	}
}
