package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MerchantPayloadSchemaID identifies the merchant payload schema understood
// by the payment platform.
const MerchantPayloadSchemaID = "0a221353-b26c-4848-9a77-4a8bcbacf228"

// DefaultTimeToLive is how long a created payment request stays payable,
// in seconds.
const DefaultTimeToLive = 300

// MerchantPayload is an opaque key/value payload attached to a payment
// request, carrying the requires3DS flag among other merchant data
type MerchantPayload struct {
	SchemaID string                 `json:"schemaId"`
	Payload  map[string]interface{} `json:"payload"`
}

// NewPaymentRequest is the client-side specification of a payment request.
// Sent once; the server assigns a paymentRequestId which becomes the join
// key for later submission.
type NewPaymentRequest struct {
	GrossAmount         decimal.Decimal `json:"grossAmount"`
	MaxUses             int             `json:"maxUses"`
	MerchantReferenceID string          `json:"merchantReferenceId"`
	MerchantPayload     MerchantPayload `json:"merchantPayload"`
	TimeToLivePayment   int             `json:"timeToLivePayment"`
}

// NewPaymentRequestSpec builds a payment request with a freshly generated
// merchant reference and the requires3DS flag embedded in the merchant
// payload
func NewPaymentRequestSpec(grossAmount decimal.Decimal, maxUses int, require3DS bool) NewPaymentRequest {
	return NewPaymentRequest{
		GrossAmount:         grossAmount,
		MaxUses:             maxUses,
		MerchantReferenceID: uuid.New().String(),
		MerchantPayload: MerchantPayload{
			SchemaID: MerchantPayloadSchemaID,
			Payload: map[string]interface{}{
				"requires3DS": require3DS,
			},
		},
		TimeToLivePayment: DefaultTimeToLive,
	}
}

// MerchantPaymentDetails is the server-assigned identity and status of a
// created payment request. Immutable once fetched; may be re-fetched.
type MerchantPaymentDetails struct {
	PaymentRequestID    string          `json:"paymentRequestId"`
	MerchantReferenceID string          `json:"merchantReferenceId"`
	GrossAmount         decimal.Decimal `json:"grossAmount"`
	MaxUses             int             `json:"maxUses"`
	Status              string          `json:"status"`
	MerchantPayload     MerchantPayload `json:"merchantPayload"`
}

// FraudPayload is vendor-specific fraud data passed through unmodified to
// the payment submission call
type FraudPayload struct {
	Format         string `json:"format"`
	Message        string `json:"message"`
	Provider       string `json:"provider"`
	ResponseFormat string `json:"responseFormat"`
	Version        string `json:"version"`
}

// ChallengeResponse is one 3DS validation round-trip result, passed verbatim
// into the payment submission call
type ChallengeResponse struct {
	Instrument string `json:"instrumentId,omitempty"`
	Token      string `json:"token"`
	Type       string `json:"type"`
	Reference  string `json:"reference,omitempty"`
}
