package models_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
)

func TestNewPaymentRequestSpec_Embeds3DSFlag(t *testing.T) {
	req := models.NewPaymentRequestSpec(decimal.NewFromFloat(12.50), 3, true)

	assert.Equal(t, models.MerchantPayloadSchemaID, req.MerchantPayload.SchemaID)
	assert.Equal(t, true, req.MerchantPayload.Payload["requires3DS"])
	assert.Equal(t, models.DefaultTimeToLive, req.TimeToLivePayment)
	assert.NotEmpty(t, req.MerchantReferenceID)
}

func TestNewPaymentRequestSpec_GeneratesUniqueReferences(t *testing.T) {
	a := models.NewPaymentRequestSpec(decimal.NewFromInt(1), 1, false)
	b := models.NewPaymentRequestSpec(decimal.NewFromInt(1), 1, false)

	assert.NotEqual(t, a.MerchantReferenceID, b.MerchantReferenceID)
}

func TestNewPaymentRequest_RoundTrip(t *testing.T) {
	req := models.NewPaymentRequestSpec(decimal.RequireFromString("42.95"), 5, true)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded models.NewPaymentRequest
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.True(t, decoded.GrossAmount.Equal(req.GrossAmount))
	assert.Equal(t, 5, decoded.MaxUses)
	assert.Equal(t, req.MerchantReferenceID, decoded.MerchantReferenceID)
	assert.Equal(t, true, decoded.MerchantPayload.Payload["requires3DS"])
}

func TestPaymentOptionValidity(t *testing.T) {
	card := models.CreditCard{PaymentInstrumentID: "INST-1"}

	tests := []struct {
		name   string
		option models.PaymentOption
		valid  bool
	}{
		{"no option", models.NoOption{}, false},
		{"new card invalid form", models.NewCard{IsValid: false}, false},
		{"new card valid form", models.NewCard{IsValid: true}, true},
		{"existing card missing", models.ExistingCard{Card: nil}, false},
		{"existing card present", models.ExistingCard{Card: &card}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.option.Valid())
		})
	}
}

func TestPaymentOutcomeTerminality(t *testing.T) {
	assert.False(t, models.IsTerminal(models.NoOutcome{}))
	assert.True(t, models.IsTerminal(models.Success{}))
	assert.True(t, models.IsTerminal(models.Failure{Reason: "declined"}))
}
