package idm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
	"github.com/kevin07696/payment-simulator/internal/domain/ports"
	"github.com/kevin07696/payment-simulator/pkg/errors"
)

// tokenPath is the identity server's token endpoint under the platform base
const tokenPath = "/idm/servers/token"

// cacheSafetyMargin is subtracted from a token's lifetime before caching so
// a cached token is never handed out moments before it expires
const cacheSafetyMargin = 30 * time.Second

// Authenticator implements ports.CustomerAuthenticator against the identity
// server. Successful tokens are cached per customer until shortly before
// expiry.
type Authenticator struct {
	baseURL    string
	apiKey     string
	httpClient ports.HTTPClient
	logger     ports.Logger
	tokens     *gocache.Cache
}

// NewAuthenticator creates an authenticator for the given platform origin
func NewAuthenticator(baseURL, apiKey string, httpClient ports.HTTPClient, logger ports.Logger) *Authenticator {
	return &Authenticator{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
		tokens:     gocache.New(gocache.NoExpiration, time.Minute),
	}
}

// Authenticate exchanges a customer identifier for an access token. Non-2xx
// responses map to an auth error carrying status, headers and body. A 2xx
// response without a parsable body is a protocol error. No retry at this
// layer.
func (a *Authenticator) Authenticate(ctx context.Context, customerID string) (*models.AccessToken, error) {
	if cached, ok := a.tokens.Get(customerID); ok {
		token := cached.(*models.AccessToken)
		a.logger.Debug("using cached access token", ports.String("customer_id", customerID))
		return token, nil
	}

	credentials, err := json.Marshal(map[string]string{
		"shopperId": customerID,
		"username":  customerID,
	})
	if err != nil {
		return nil, errors.NewProtocolError("marshal credentials: " + err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+tokenPath, bytes.NewReader(credentials))
	if err != nil {
		return nil, errors.NewProtocolError("build token request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("x-api-key", a.apiKey)

	a.logger.Info("authenticating customer", ports.String("customer_id", customerID))

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError("authenticate", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewProtocolError("read token response: " + err.Error())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewAuthError(resp.StatusCode, resp.Header, string(body))
	}

	if len(body) == 0 {
		return nil, errors.NewProtocolError("no response body")
	}

	var token models.AccessToken
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, errors.NewProtocolError("unmarshal token response: " + err.Error())
	}

	if ttl := time.Duration(token.AccessTokenExpiresIn)*time.Second - cacheSafetyMargin; ttl > 0 {
		a.tokens.Set(customerID, &token, ttl)
	}

	a.logger.Info("customer authenticated",
		ports.String("customer_id", customerID),
		ports.Bool("guest", token.IsGuestToken))

	return &token, nil
}
