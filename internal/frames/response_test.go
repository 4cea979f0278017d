package frames_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/payment-simulator/internal/frames"
	pkgerrors "github.com/kevin07696/payment-simulator/pkg/errors"
)

func TestParseCardCaptureResponse_TopLevelInstrumentID(t *testing.T) {
	resp, err := frames.ParseCardCaptureResponse(`{
		"itemId": "INST-9",
		"status": {"responseText": "ACCEPTED"}
	}`)
	require.NoError(t, err)

	assert.Equal(t, "INST-9", resp.InstrumentID())
	assert.True(t, resp.Accepted())
}

func TestParseCardCaptureResponse_FallsBackToNestedInstrument(t *testing.T) {
	resp, err := frames.ParseCardCaptureResponse(`{
		"paymentInstrument": {"itemId": "INST-3"},
		"status": {"responseText": "ACCEPTED"}
	}`)
	require.NoError(t, err)

	assert.Equal(t, "INST-3", resp.InstrumentID())
}

func TestParseCardCaptureResponse_TokenRequired(t *testing.T) {
	resp, err := frames.ParseCardCaptureResponse(`{
		"threeDSError": "TOKEN_REQUIRED",
		"threeDSToken": "tok-1"
	}`)
	require.NoError(t, err)

	assert.Equal(t, frames.ThreeDSTokenRequired, resp.ThreeDSError)
	assert.Equal(t, "tok-1", resp.ThreeDSToken)
	assert.False(t, resp.Accepted())
}

func TestThreeDSFailureReason(t *testing.T) {
	tests := []struct {
		name    string
		message string
		failure bool
	}{
		{"rejected", "3DS Validation Rejected", true},
		{"timeout", "3DS Validation Timeout", true},
		{"failed", "3DS Validation Failed", true},
		{"unrelated message", "card captured", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &frames.CardCaptureResponse{Message: tt.message}
			if tt.failure {
				assert.Equal(t, tt.message, resp.ThreeDSFailureReason())
			} else {
				assert.Empty(t, resp.ThreeDSFailureReason())
			}
		})
	}
}

func TestParseCardCaptureResponse_Malformed(t *testing.T) {
	_, err := frames.ParseCardCaptureResponse(`{not json`)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CategoryProtocol, pkgerrors.CategoryOf(err))

	_, err = frames.ParseCardCaptureResponse("  ")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CategoryProtocol, pkgerrors.CategoryOf(err))
}

func TestParseValidateCardResponse(t *testing.T) {
	resp, err := frames.ParseValidateCardResponse(`{
		"challengeResponse": {"token": "tok-1", "type": "3DS"}
	}`)
	require.NoError(t, err)
	require.NotNil(t, resp.ChallengeResponse)
	assert.Equal(t, "tok-1", resp.ChallengeResponse.Token)

	resp, err = frames.ParseValidateCardResponse(`{}`)
	require.NoError(t, err)
	assert.Nil(t, resp.ChallengeResponse)
}
