package ports

import (
	"context"
	"strings"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
)

// WalletInstruments groups the instruments held in a secondary wallet
type WalletInstruments struct {
	CreditCards []models.CreditCard `json:"creditCards"`
}

// InstrumentList is the customer API's instrument listing. Which card list
// applies depends on the wallet the client was configured with.
type InstrumentList struct {
	CreditCards []models.CreditCard `json:"creditCards"`
	EverydayPay *WalletInstruments  `json:"everydayPay,omitempty"`
}

// CardsForWallet returns the instrument list appropriate for the wallet
func (l *InstrumentList) CardsForWallet(wallet models.Wallet) []models.CreditCard {
	if wallet == models.WalletEverydayPay {
		if l.EverydayPay == nil {
			return nil
		}
		return l.EverydayPay.CreditCards
	}
	return l.CreditCards
}

// PaymentSubmission carries everything the customer API needs to pay a
// payment request with a stored instrument
type PaymentSubmission struct {
	PaymentRequestID     string
	PrimaryInstrument    string
	SecondaryInstruments []string
	ClientReference      *string
	Preferences          map[string]string
	ChallengeResponses   []models.ChallengeResponse
	FraudPayload         *models.FraudPayload
	TransactionType      *string
	AllowPartialSuccess  *bool
}

// PaymentResult is the customer API's response to a payment submission
type PaymentResult struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// Approved reports whether the server approved the payment. The platform has
// been seen reporting both "APPROVED" and "approved", so the comparison is
// case-insensitive.
func (r *PaymentResult) Approved() bool {
	return strings.EqualFold(r.Status, "APPROVED")
}

// CustomerAPI is the customer-side payment platform client
type CustomerAPI interface {
	ListInstruments(ctx context.Context) (*InstrumentList, error)
	DeleteInstrument(ctx context.Context, instrumentID string) error
	MakePayment(ctx context.Context, submission PaymentSubmission) (*PaymentResult, error)
}
