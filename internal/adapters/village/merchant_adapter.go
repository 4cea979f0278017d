package village

import (
	"context"
	"net/http"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
	"github.com/kevin07696/payment-simulator/internal/domain/ports"
)

// MerchantAdapter implements ports.MerchantAPI against the platform's
// merchant surface
type MerchantAdapter struct {
	opts   models.MerchantOptions
	client *client
}

// NewMerchantClient binds merchant options and a bearer token into a client.
// No network calls happen at construction time.
func NewMerchantClient(opts models.MerchantOptions, token string, httpClient ports.HTTPClient, logger ports.Logger) *MerchantAdapter {
	return &MerchantAdapter{
		opts:   opts,
		client: newClient(opts.BaseURL, opts.APIKey, token, httpClient, logger),
	}
}

type createPaymentRequestResponse struct {
	PaymentRequestID string `json:"paymentRequestId"`
}

// CreatePaymentRequest implements ports.MerchantAPI.CreatePaymentRequest
func (a *MerchantAdapter) CreatePaymentRequest(ctx context.Context, req models.NewPaymentRequest) (string, error) {
	var resp createPaymentRequestResponse
	if err := a.client.do(ctx, http.MethodPost, "/merchant/payments", "create payment request", req, &resp); err != nil {
		return "", err
	}
	return resp.PaymentRequestID, nil
}

// PaymentRequestDetails implements ports.MerchantAPI.PaymentRequestDetails
func (a *MerchantAdapter) PaymentRequestDetails(ctx context.Context, paymentRequestID string) (*models.MerchantPaymentDetails, error) {
	var details models.MerchantPaymentDetails
	if err := a.client.get(ctx, "/merchant/payments/"+paymentRequestID, "get payment request details", &details); err != nil {
		return nil, err
	}
	return &details, nil
}
