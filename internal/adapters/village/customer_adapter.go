package village

import (
	"context"
	"net/http"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
	"github.com/kevin07696/payment-simulator/internal/domain/ports"
)

// CustomerAdapter implements ports.CustomerAPI against the platform's
// customer surface
type CustomerAdapter struct {
	opts   models.CustomerOptions
	client *client
}

// NewCustomerClient binds customer options and a bearer token into a client.
// No network calls happen at construction time.
func NewCustomerClient(opts models.CustomerOptions, token string, httpClient ports.HTTPClient, logger ports.Logger) *CustomerAdapter {
	return &CustomerAdapter{
		opts:   opts,
		client: newClient(opts.BaseURL, opts.APIKey, token, httpClient, logger),
	}
}

// ListInstruments implements ports.CustomerAPI.ListInstruments
func (a *CustomerAdapter) ListInstruments(ctx context.Context) (*ports.InstrumentList, error) {
	var list ports.InstrumentList
	if err := a.client.get(ctx, "/customer/instruments", "list instruments", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteInstrument implements ports.CustomerAPI.DeleteInstrument
func (a *CustomerAdapter) DeleteInstrument(ctx context.Context, instrumentID string) error {
	return a.client.do(ctx, http.MethodDelete, "/customer/instruments/"+instrumentID, "delete instrument", nil, nil)
}

type makePaymentRequest struct {
	PrimaryInstrumentID  string                     `json:"primaryInstrumentId"`
	SecondaryInstruments []string                   `json:"secondaryInstruments"`
	ClientReference      *string                    `json:"clientReference"`
	Preferences          map[string]string          `json:"preferences,omitempty"`
	ChallengeResponses   []models.ChallengeResponse `json:"challengeResponses"`
	FraudPayload         *models.FraudPayload       `json:"fraudPayload,omitempty"`
	TransactionType      *string                    `json:"transactionType"`
	AllowPartialSuccess  *bool                      `json:"allowPartialSuccess"`
}

// MakePayment implements ports.CustomerAPI.MakePayment
func (a *CustomerAdapter) MakePayment(ctx context.Context, submission ports.PaymentSubmission) (*ports.PaymentResult, error) {
	req := makePaymentRequest{
		PrimaryInstrumentID:  submission.PrimaryInstrument,
		SecondaryInstruments: submission.SecondaryInstruments,
		ClientReference:      submission.ClientReference,
		Preferences:          submission.Preferences,
		ChallengeResponses:   submission.ChallengeResponses,
		FraudPayload:         submission.FraudPayload,
		TransactionType:      submission.TransactionType,
		AllowPartialSuccess:  submission.AllowPartialSuccess,
	}
	if req.SecondaryInstruments == nil {
		req.SecondaryInstruments = []string{}
	}
	if req.ChallengeResponses == nil {
		req.ChallengeResponses = []models.ChallengeResponse{}
	}

	var result ports.PaymentResult
	if err := a.client.do(ctx, http.MethodPut, "/customer/payments/"+submission.PaymentRequestID, "make payment", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Wallet returns the wallet this client was configured with
func (a *CustomerAdapter) Wallet() models.Wallet {
	return a.opts.Wallet
}
