package orchestrator

import (
	"github.com/kevin07696/payment-simulator/internal/domain/models"
	"github.com/kevin07696/payment-simulator/internal/frames"
	pkgerrors "github.com/kevin07696/payment-simulator/pkg/errors"
	"github.com/kevin07696/payment-simulator/pkg/observability"
)

// The orchestrator is the bridge's handler: widget lifecycle events land
// here and drive the capture/validate state machine.

// issue publishes a command for observers and hands it to the bridge
func (o *Orchestrator) issue(cmd *frames.Command) {
	o.Command.Set(cmd)
	o.bridge.Issue(cmd)
}

// HandlePageLoaded issues the initial card capture command once the widget
// is ready
func (o *Orchestrator) HandlePageLoaded() {
	o.mu.Lock()
	wallet := o.wallet
	require3DS := o.require3DS
	o.mu.Unlock()

	observability.RecordCaptureCycle(string(wallet))
	o.issue(frames.CardCaptureCommand(frames.CardCaptureOptions{
		Wallet:     wallet,
		Require3DS: require3DS,
	}))
}

// HandleValidationChange tracks per-control validity. While a new card is
// the selected option its validity follows the form, and the displayed
// widget message clears once the form becomes valid.
func (o *Orchestrator) HandleValidationChange(domID string, valid bool) {
	o.mu.Lock()
	switch domID {
	case frames.CardNoDOMID:
		o.cardNumberValid = valid
	case frames.CardExpiryDOMID:
		o.cardExpiryValid = valid
	case frames.CardCVVDOMID:
		o.cardCVVValid = valid
	}
	o.mu.Unlock()

	if _, selected := o.Option.Get().(models.NewCard); selected {
		o.SelectNewCardPaymentOption()
	}

	if o.newCardValid() {
		o.Message.Set("")
	}
}

// HandleErrorMessage surfaces a widget error message for display
func (o *Orchestrator) HandleErrorMessage(message string) {
	o.Message.Set(message)
}

// HandleRendered shows the challenge surface when the validate action
// renders
func (o *Orchestrator) HandleRendered(actionID string) {
	if actionID == frames.ValidateCardAction {
		o.issue(frames.ShowValidationChallenge)
	}
}

// HandleRemoved restores the card entry surface when the validate action is
// torn down
func (o *Orchestrator) HandleRemoved(actionID string) {
	if actionID == frames.ValidateCardAction {
		o.issue(frames.HideValidationChallenge)
	}
}

// HandleComplete interprets an action completion according to the active
// mode
func (o *Orchestrator) HandleComplete(response string) error {
	o.mu.Lock()
	mode := o.mode
	o.mu.Unlock()

	switch mode {
	case modeValidateCard:
		return o.handleValidateComplete(response)
	default:
		return o.handleCaptureComplete(response)
	}
}

// handleCaptureComplete drives the capture side of the step-up state
// machine
func (o *Orchestrator) handleCaptureComplete(data string) error {
	resp, err := frames.ParseCardCaptureResponse(data)
	if err != nil {
		return err
	}

	if reason := resp.ThreeDSFailureReason(); reason != "" {
		o.failTerminal(pkgerrors.NewThreeDSRejectedError(reason))
		return nil
	}

	if resp.ThreeDSError == frames.ThreeDSTokenRequired {
		o.validateCard(resp.ThreeDSToken)
		return nil
	}

	if resp.ThreeDSError == frames.ThreeDSValidationFailed {
		o.failTerminal(pkgerrors.NewThreeDSRejectedError("three ds validation failed"))
		return nil
	}

	if resp.Accepted() {
		ctx, cancel := o.timeouts.WithOperationTimeout(o.baseCtx)
		defer cancel()

		cards := o.listPaymentInstruments(ctx)
		instrumentID := resp.InstrumentID()

		var card *models.CreditCard
		for i := range cards {
			if cards[i].PaymentInstrumentID == instrumentID {
				card = &cards[i]
				break
			}
		}

		return o.MakePayment(ctx, models.ExistingCard{Card: card})
	}

	return nil
}

// validateCard issues a 3DS step-up for the captured card. At most two
// validation attempts run per capture cycle; the next token-required
// response terminally fails the run without another validate command.
func (o *Orchestrator) validateCard(threeDSToken string) {
	o.mu.Lock()
	if o.validateAttempts > 1 {
		o.mu.Unlock()
		observability.RecordThreeDSValidation("exceeded")
		o.failTerminal(pkgerrors.NewValidationExceededError())
		return
	}
	o.validateAttempts++
	o.mode = modeValidateCard
	windowSize := o.windowSize
	o.mu.Unlock()

	observability.RecordThreeDSValidation("issued")
	o.issue(frames.CardValidateCommand(threeDSToken, windowSize))
}

// handleValidateComplete re-enters capture mode and completes the original
// capture action with the accumulated challenge responses attached
func (o *Orchestrator) handleValidateComplete(data string) error {
	resp, err := frames.ParseValidateCardResponse(data)
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.mode = modeCaptureCard
	if resp.ChallengeResponse != nil {
		o.challenges = append(o.challenges, *resp.ChallengeResponse)
	}
	challenges := append([]models.ChallengeResponse(nil), o.challenges...)
	o.mu.Unlock()

	o.issue(frames.CompleteActionCommand(frames.CaptureCardAction, challenges))
	return nil
}
