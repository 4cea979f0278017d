package frames

import (
	"encoding/json"
	"strings"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
	pkgerrors "github.com/kevin07696/payment-simulator/pkg/errors"
)

// ThreeDSError is the widget's 3DS disposition on a capture response
type ThreeDSError string

const (
	// ThreeDSTokenRequired means the card needs a step-up challenge before
	// the capture can complete
	ThreeDSTokenRequired ThreeDSError = "TOKEN_REQUIRED"

	// ThreeDSValidationFailed means the challenge was attempted and failed
	ThreeDSValidationFailed ThreeDSError = "VALIDATION_FAILED"
)

// ResponseStatus carries the widget's capture status text
type ResponseStatus struct {
	ResponseText string `json:"responseText"`
}

// PaymentInstrumentRef is the nested instrument reference some capture
// responses carry instead of a top-level item id
type PaymentInstrumentRef struct {
	ItemID string `json:"itemId"`
}

// CardCaptureResponse is the decoded completion payload of a cardCapture
// action
type CardCaptureResponse struct {
	ItemID            string                `json:"itemId"`
	PaymentInstrument *PaymentInstrumentRef `json:"paymentInstrument"`
	Status            *ResponseStatus       `json:"status"`
	Message           string                `json:"message"`
	ThreeDSError      ThreeDSError          `json:"threeDSError"`
	ThreeDSToken      string                `json:"threeDSToken"`
}

// ParseCardCaptureResponse decodes a capture completion payload
func ParseCardCaptureResponse(data string) (*CardCaptureResponse, error) {
	if strings.TrimSpace(data) == "" {
		return nil, pkgerrors.NewProtocolError("empty card capture response")
	}
	var resp CardCaptureResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return nil, pkgerrors.NewProtocolError("malformed card capture response: " + err.Error())
	}
	return &resp, nil
}

// InstrumentID resolves the captured instrument id, falling back to the
// nested payment instrument reference when the top-level id is absent
func (r *CardCaptureResponse) InstrumentID() string {
	if r.ItemID != "" {
		return r.ItemID
	}
	if r.PaymentInstrument != nil {
		return r.PaymentInstrument.ItemID
	}
	return ""
}

// Accepted reports whether the capture was accepted by the platform
func (r *CardCaptureResponse) Accepted() bool {
	return r.Status != nil && r.Status.ResponseText == "ACCEPTED"
}

// ThreeDSFailureReason returns a non-empty reason when the response message
// signals a 3DS rejection, failure or timeout
func (r *CardCaptureResponse) ThreeDSFailureReason() string {
	msg := strings.ToUpper(r.Message)
	if !strings.Contains(msg, "3DS") {
		return ""
	}
	for _, marker := range []string{"REJECT", "FAIL", "TIMEOUT"} {
		if strings.Contains(msg, marker) {
			return r.Message
		}
	}
	return ""
}

// ValidateCardResponse is the decoded completion payload of a validateCard
// action
type ValidateCardResponse struct {
	ChallengeResponse *models.ChallengeResponse `json:"challengeResponse"`
}

// ParseValidateCardResponse decodes a validation completion payload
func ParseValidateCardResponse(data string) (*ValidateCardResponse, error) {
	if strings.TrimSpace(data) == "" {
		return nil, pkgerrors.NewProtocolError("empty validate card response")
	}
	var resp ValidateCardResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return nil, pkgerrors.NewProtocolError("malformed validate card response: " + err.Error())
	}
	return &resp, nil
}
