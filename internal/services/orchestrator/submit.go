package orchestrator

import (
	"context"
	"errors"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
	"github.com/kevin07696/payment-simulator/internal/domain/ports"
	"github.com/kevin07696/payment-simulator/internal/frames"
	pkgerrors "github.com/kevin07696/payment-simulator/pkg/errors"
	"github.com/kevin07696/payment-simulator/pkg/observability"
)

// maxSubmitAttempts bounds the submission loop. In practice a single real
// attempt runs because the outcome guard breaks the loop as soon as an
// outcome is set.
const maxSubmitAttempts = 3

// ErrSubmissionInFlight is returned when a payment submission is already
// running for this orchestrator instance
var ErrSubmissionInFlight = errors.New("payment submission already in flight")

// MakePayment dispatches on the selected payment option. A new card submits
// the capture form and the payment continues from the widget's completion
// callback; an existing card submits the payment directly. Unusable options
// fail with an invalid-selection error and issue no network call.
func (o *Orchestrator) MakePayment(ctx context.Context, option models.PaymentOption) error {
	switch opt := option.(type) {
	case models.NewCard:
		o.completeCapturingCard()
		return nil

	case models.ExistingCard:
		if opt.Card == nil {
			err := pkgerrors.NewInvalidSelectionError("missing card")
			o.ReportError(err)
			return err
		}
		return o.payWithCard(ctx, *opt.Card)

	case models.NoOption:
		err := pkgerrors.NewInvalidSelectionError("cannot pay with nothing")
		o.ReportError(err)
		return err

	default:
		err := pkgerrors.NewInvalidSelectionError("unknown payment option")
		o.ReportError(err)
		return err
	}
}

// payWithCard submits the payment request with a stored instrument.
//
// The loop allows up to three attempts but every iteration is guarded by the
// outcome still being unresolved, and both the success and the failure path
// set an outcome and break, so only one attempt is ever observed.
// TODO: confirm with product whether a real 3-attempt retry was intended
// before changing the guard.
func (o *Orchestrator) payWithCard(ctx context.Context, card models.CreditCard) error {
	if !o.beginSubmission() {
		o.ReportError(ErrSubmissionInFlight)
		return ErrSubmissionInFlight
	}
	defer o.endSubmission()

	pr := o.PaymentRequest.Get()
	if pr == nil {
		err := pkgerrors.NewProtocolError("no payment request to pay")
		o.ReportError(err)
		return err
	}

	o.mu.Lock()
	api := o.customerAPI
	fraud := o.fraudPayload
	challenges := append([]models.ChallengeResponse(nil), o.challenges...)
	o.mu.Unlock()

	for attempt := 1; attempt <= maxSubmitAttempts; attempt++ {
		if _, unresolved := o.Outcome.Get().(models.NoOutcome); !unresolved {
			continue
		}

		callCtx, cancel := o.timeouts.WithAPITimeout(ctx)
		result, err := api.MakePayment(callCtx, ports.PaymentSubmission{
			PaymentRequestID:     pr.PaymentRequestID,
			PrimaryInstrument:    card.PaymentInstrumentID,
			SecondaryInstruments: []string{},
			ClientReference:      nil,
			Preferences:          nil,
			ChallengeResponses:   challenges,
			FraudPayload:         fraud,
			TransactionType:      nil,
			AllowPartialSuccess:  nil,
		})
		cancel()

		if err != nil {
			o.failPayment(err.Error())
			break
		}

		if result.Approved() {
			o.resolveSuccess()
		} else {
			o.logger.Warn("payment not approved",
				ports.String("status", result.Status),
				ports.String("message", result.Message))
			o.failPayment("payment rejected")
		}
		break
	}

	return nil
}

func (o *Orchestrator) beginSubmission() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.submitting {
		return false
	}
	o.submitting = true
	return true
}

func (o *Orchestrator) endSubmission() {
	o.mu.Lock()
	o.submitting = false
	o.mu.Unlock()
}

// completeCapturingCard starts a fresh capture cycle: the 3DS attempt
// counter resets and the widget is told to submit the entered card details
func (o *Orchestrator) completeCapturingCard() {
	o.mu.Lock()
	o.validateAttempts = 0
	o.mode = modeCaptureCard
	o.mu.Unlock()

	o.issue(frames.SubmitFormCommand(frames.CaptureCardAction))
}

func (o *Orchestrator) resolveSuccess() {
	o.Outcome.Set(models.Success{})
	observability.RecordPaymentOutcome("success")
	o.logger.Info("payment approved")
}

func (o *Orchestrator) failPayment(reason string) {
	o.Outcome.Set(models.Failure{Reason: reason})
	observability.RecordPaymentOutcome("failure")
	o.logger.Error("payment failed", ports.String("reason", reason))
}

// failTerminal resolves a categorized terminal error into a Failure outcome
// rather than bubbling it to the UI
func (o *Orchestrator) failTerminal(err *pkgerrors.PaymentError) {
	o.failPayment(err.Message)
}
