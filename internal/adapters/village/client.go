package village

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
	"github.com/kevin07696/payment-simulator/internal/domain/ports"
	"github.com/kevin07696/payment-simulator/pkg/errors"
	"github.com/kevin07696/payment-simulator/pkg/observability"
	"github.com/kevin07696/payment-simulator/pkg/resilience"
)

// maxReadAttempts bounds backoff retries of idempotent GETs
const maxReadAttempts = 3

// client is the shared request plumbing for the customer and merchant
// adapters: marshal, sign with API key + bearer token, execute behind the
// circuit breaker, map status codes to the error taxonomy, unmarshal.
type client struct {
	baseURL    string
	apiKey     string
	bearer     string
	httpClient ports.HTTPClient
	logger     ports.Logger
	breaker    *CircuitBreaker
	backoff    resilience.BackoffStrategy
}

func newClient(origin, apiKey, token string, httpClient ports.HTTPClient, logger ports.Logger) *client {
	return &client{
		baseURL:    models.SDKBaseURL(origin),
		apiKey:     apiKey,
		bearer:     "Bearer " + token,
		httpClient: httpClient,
		logger:     logger,
		breaker:    NewCircuitBreaker(DefaultCircuitBreakerConfig()),
		backoff:    resilience.DefaultExponentialBackoff(),
	}
}

// do executes one request. response may be nil when the caller only cares
// about the status.
func (c *client) do(ctx context.Context, method, path, operation string, request, response interface{}) error {
	var body io.Reader
	if request != nil {
		payload, err := json.Marshal(request)
		if err != nil {
			return errors.NewProtocolError("marshal " + operation + " request: " + err.Error())
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.NewProtocolError("build " + operation + " request: " + err.Error())
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("Authorization", c.bearer)

	c.logger.Debug("calling payment platform",
		ports.String("method", method),
		ports.String("path", path),
		ports.String("operation", operation))

	start := time.Now()
	var httpResp *http.Response
	err = c.breaker.Call(func() error {
		var doErr error
		httpResp, doErr = c.httpClient.Do(httpReq)
		return doErr
	})
	if err != nil {
		observability.RecordAPICall(operation, "network_error", time.Since(start))
		return errors.NewNetworkError(operation, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		observability.RecordAPICall(operation, "read_error", time.Since(start))
		return errors.NewProtocolError("read " + operation + " response: " + err.Error())
	}

	observability.RecordAPICall(operation, httpResp.Status, time.Since(start))

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return errors.NewAPIError(operation, httpResp.StatusCode, httpResp.Header, string(respBody))
	}

	if response == nil {
		return nil
	}
	if len(respBody) == 0 {
		return errors.NewProtocolError("no response body")
	}
	if err := json.Unmarshal(respBody, response); err != nil {
		return errors.NewProtocolError("unmarshal " + operation + " response: " + err.Error())
	}
	return nil
}

// get executes an idempotent read, retrying transient failures with backoff
func (c *client) get(ctx context.Context, path, operation string, response interface{}) error {
	var lastErr error
	for attempt := 0; attempt < maxReadAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff.NextDelay(attempt - 1)):
			}
		}

		lastErr = c.do(ctx, http.MethodGet, path, operation, nil, response)
		if lastErr == nil || !errors.IsRetriable(lastErr) {
			return lastErr
		}

		c.logger.Warn("retrying platform read",
			ports.String("operation", operation),
			ports.Int("attempt", attempt+1),
			ports.Err(lastErr))
	}
	return lastErr
}
