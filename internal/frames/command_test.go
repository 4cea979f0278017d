package frames_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
	"github.com/kevin07696/payment-simulator/internal/frames"
)

func TestCardCaptureCommand_MountsAllControls(t *testing.T) {
	cmd := frames.CardCaptureCommand(frames.CardCaptureOptions{Wallet: models.WalletDefault})

	assert.Equal(t, frames.CaptureCardAction, cmd.Name)
	assert.Contains(t, cmd.Script, frames.CardNoDOMID)
	assert.Contains(t, cmd.Script, frames.CardExpiryDOMID)
	assert.Contains(t, cmd.Script, frames.CardCVVDOMID)
	assert.Contains(t, cmd.Script, `"useEverydayPay":false`)
	assert.NotContains(t, cmd.Script, "env3DS")
}

func TestCardCaptureCommand_EverydayPayWith3DS(t *testing.T) {
	cmd := frames.CardCaptureCommand(frames.CardCaptureOptions{
		Wallet:     models.WalletEverydayPay,
		Require3DS: true,
	})

	assert.Contains(t, cmd.Script, `"useEverydayPay":true`)
	assert.Contains(t, cmd.Script, `"env3DS":"staging"`)
}

func TestCardValidateCommand_EmbedsSessionAndWindowSize(t *testing.T) {
	cmd := frames.CardValidateCommand("tok-1", models.AcsWindow500x600)

	assert.Equal(t, frames.ValidateCardAction, cmd.Name)
	assert.Contains(t, cmd.Script, `"sessionId":"tok-1"`)
	assert.Contains(t, cmd.Script, `"acsWindowSize":"03"`)
	assert.Contains(t, cmd.Script, frames.ValidateCardDOMID)
}

func TestSubmitFormCommand_TargetsAction(t *testing.T) {
	cmd := frames.SubmitFormCommand(frames.CaptureCardAction)

	assert.Equal(t, "submitForm", cmd.Name)
	assert.Contains(t, cmd.Script, frames.CaptureCardAction)
	assert.Contains(t, cmd.Script, ".submit()")
}

func TestCompleteActionCommand_CarriesChallengeResponses(t *testing.T) {
	cmd := frames.CompleteActionCommand(frames.CaptureCardAction, []models.ChallengeResponse{
		{Token: "tok-1", Type: "3DS"},
	})

	assert.Equal(t, "completeCardCapture", cmd.Name)
	assert.Contains(t, cmd.Script, `"token":"tok-1"`)
	assert.Contains(t, cmd.Script, ".complete(")
}

func TestCompleteActionCommand_EmptyChallengeList(t *testing.T) {
	cmd := frames.CompleteActionCommand(frames.CaptureCardAction, nil)
	assert.Contains(t, cmd.Script, ".complete([])")
}

func TestChallengeToggleCommands(t *testing.T) {
	assert.Contains(t, frames.ShowValidationChallenge.Script, frames.ValidateCardDOMID)
	assert.Contains(t, frames.ShowValidationChallenge.Script, "'block'")
	assert.Contains(t, frames.HideValidationChallenge.Script, frames.CardCaptureDOMID)
	assert.Contains(t, frames.HideValidationChallenge.Script, "'none'")
}
