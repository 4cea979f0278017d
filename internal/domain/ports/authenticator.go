package ports

import (
	"context"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
)

// CustomerAuthenticator exchanges a customer identifier for an access token
// against the identity server. No retry at this layer; retry policy belongs
// to the caller.
type CustomerAuthenticator interface {
	Authenticate(ctx context.Context, customerID string) (*models.AccessToken, error)
}
