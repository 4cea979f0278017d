package ports

import (
	"context"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
)

// MerchantAPI is the merchant-side payment platform client
type MerchantAPI interface {
	// CreatePaymentRequest submits the request and returns the server-assigned
	// payment request id
	CreatePaymentRequest(ctx context.Context, req models.NewPaymentRequest) (string, error)

	// PaymentRequestDetails fetches the full state of a created payment
	// request by id
	PaymentRequestDetails(ctx context.Context, paymentRequestID string) (*models.MerchantPaymentDetails, error)
}
