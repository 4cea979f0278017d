package frames

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
)

// Action names understood by the capture widget
const (
	CaptureCardAction  = "cardCapture"
	ValidateCardAction = "validateCard"
)

// DOM element ids the widget mounts its controls into
const (
	CardCaptureDOMID  = "cardCaptureElement"
	CardNoDOMID       = "cardNoElement"
	CardExpiryDOMID   = "cardExpiryElement"
	CardCVVDOMID      = "cardCvvElement"
	ValidateCardDOMID = "validateCardElement"
)

// Command is an opaque instruction sent to the embedded capture widget. It
// wraps a generated script payload and is compared by identity: the bridge
// only forwards a command whose reference differs from the last one issued,
// so a UI re-render replaying the same value cannot execute it twice.
type Command struct {
	Name   string
	Script string
}

// Post asks the driver to execute the command inside the widget
func (c *Command) Post(d Driver) {
	d.Post(c)
}

func newCommand(name string, script ...string) *Command {
	return &Command{
		Name:   name,
		Script: strings.Join(script, "\n"),
	}
}

// CardCaptureOptions configures the initial capture action
type CardCaptureOptions struct {
	Wallet     models.Wallet
	Require3DS bool
}

type capturePayload struct {
	Verify         bool    `json:"verify"`
	Save           bool    `json:"save"`
	UseEverydayPay bool    `json:"useEverydayPay"`
	Env3DS         *string `json:"env3DS,omitempty"`
}

type validatePayload struct {
	SessionID     string `json:"sessionId"`
	AcsWindowSize string `json:"acsWindowSize"`
	Env3DS        string `json:"env3DS"`
}

const threeDSEnvStaging = "staging"

// CardCaptureCommand builds the "begin card capture" command: create the
// capture action, start it, and mount the card number/expiry/CVV controls.
func CardCaptureCommand(options CardCaptureOptions) *Command {
	payload := capturePayload{
		Verify:         true,
		Save:           true,
		UseEverydayPay: options.Wallet == models.WalletEverydayPay,
	}
	if options.Require3DS {
		env := threeDSEnvStaging
		payload.Env3DS = &env
	}

	return newCommand(CaptureCardAction,
		actionScript(CaptureCardAction, "CaptureCard", payload),
		startActionScript(CaptureCardAction),
		controlScript(CaptureCardAction, "CardNo", CardNoDOMID),
		controlScript(CaptureCardAction, "CardExpiry", CardExpiryDOMID),
		controlScript(CaptureCardAction, "CardCVV", CardCVVDOMID),
	)
}

// CardValidateCommand builds the 3DS step-up command for the given session
// token
func CardValidateCommand(threeDSToken string, windowSize models.AcsWindowSize) *Command {
	payload := validatePayload{
		SessionID:     threeDSToken,
		AcsWindowSize: string(windowSize),
		Env3DS:        threeDSEnvStaging,
	}

	return newCommand(ValidateCardAction,
		actionScript(ValidateCardAction, "ValidateCard", payload),
		startActionScript(ValidateCardAction),
		controlScript(ValidateCardAction, "ValidateCard", ValidateCardDOMID),
		completeActionScript(ValidateCardAction, nil),
	)
}

// SubmitFormCommand builds the command that submits the entered card details
// for the given action
func SubmitFormCommand(action string) *Command {
	return newCommand("submitForm",
		fmt.Sprintf("frames.actions['%s'].submit();", action))
}

// CompleteActionCommand builds the command that completes a started action,
// carrying any accumulated 3DS challenge responses
func CompleteActionCommand(action string, challengeResponses []models.ChallengeResponse) *Command {
	return newCommand("completeCardCapture",
		completeActionScript(action, challengeResponses))
}

// ShowValidationChallenge swaps the card entry surface for the 3DS challenge
// surface
var ShowValidationChallenge = newCommand("showValidationChallenge",
	toggleScript(CardCaptureDOMID, "none", ValidateCardDOMID, "block"))

// HideValidationChallenge restores the card entry surface
var HideValidationChallenge = newCommand("hideValidationChallenge",
	toggleScript(CardCaptureDOMID, "block", ValidateCardDOMID, "none"))

func actionScript(action, actionType string, payload interface{}) string {
	data, _ := json.Marshal(payload)
	return fmt.Sprintf("frames.actions['%s'] = new frames.%s(frames, %s);", action, actionType, data)
}

func startActionScript(action string) string {
	return fmt.Sprintf("frames.actions['%s'].start();", action)
}

func controlScript(action, controlType, domID string) string {
	return fmt.Sprintf("frames.actions['%s'].createFramesControl('%s', '%s');", action, controlType, domID)
}

func completeActionScript(action string, challengeResponses []models.ChallengeResponse) string {
	responses := make([]json.RawMessage, 0, len(challengeResponses))
	for _, cr := range challengeResponses {
		data, _ := json.Marshal(cr)
		responses = append(responses, data)
	}
	data, _ := json.Marshal(responses)
	return fmt.Sprintf("frames.actions['%s'].complete(%s);", action, data)
}

func toggleScript(hideID, hideDisplay, showID, showDisplay string) string {
	return fmt.Sprintf(
		"document.getElementById('%s').style.display = '%s';\n"+
			"document.getElementById('%s').style.display = '%s';",
		hideID, hideDisplay, showID, showDisplay)
}
