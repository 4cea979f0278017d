package orchestrator

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
	"github.com/kevin07696/payment-simulator/internal/domain/ports"
	"github.com/kevin07696/payment-simulator/internal/frames"
	pkgerrors "github.com/kevin07696/payment-simulator/pkg/errors"
	"github.com/kevin07696/payment-simulator/pkg/observability"
	"github.com/kevin07696/payment-simulator/pkg/observe"
	"github.com/kevin07696/payment-simulator/pkg/resilience"
)

// captureMode selects which interpreter handles the widget's next action
// completion. The same completion event means different things depending on
// which action is in flight, so the active mode is explicit, inspectable
// state rather than a rebindable handler.
type captureMode int

const (
	modeCaptureCard captureMode = iota
	modeValidateCard
)

func (m captureMode) String() string {
	switch m {
	case modeCaptureCard:
		return "capture_card"
	case modeValidateCard:
		return "validate_card"
	default:
		return "unknown"
	}
}

// Orchestrator drives one payment run end to end: authenticate the customer,
// bind API clients, create the payment request, capture or select an
// instrument through the embedded widget, submit the payment and resolve a
// terminal outcome.
//
// One instance owns one logical orchestration session. Abandon a run by
// cancelling the base context and discarding the instance; there is no
// resume from checkpoint.
type Orchestrator struct {
	authenticator ports.CustomerAuthenticator
	factory       ports.ClientFactory
	logger        ports.Logger
	timeouts      *resilience.TimeoutConfig
	validate      *validator.Validate
	bridge        *frames.Bridge
	baseCtx       context.Context

	// UI-bound observable state, last-value-wins for slow observers
	Errors         *observe.Value[error]
	PaymentRequest *observe.Value[*models.MerchantPaymentDetails]
	Instruments    *observe.Value[[]models.CreditCard]
	Option         *observe.Value[models.PaymentOption]
	Outcome        *observe.Value[models.PaymentOutcome]
	Command        *observe.Value[*frames.Command]
	Message        *observe.Value[string]

	mu               sync.Mutex
	customerAPI      ports.CustomerAPI
	merchantAPI      ports.MerchantAPI
	framesConfig     *frames.Config
	mode             captureMode
	validateAttempts int
	fraudPayload     *models.FraudPayload
	challenges       []models.ChallengeResponse
	wallet           models.Wallet
	windowSize       models.AcsWindowSize
	require3DS       bool
	cardNumberValid  bool
	cardExpiryValid  bool
	cardCVVValid     bool
	submitting       bool
}

// New creates an orchestrator bound to a widget driver. baseCtx scopes the
// whole run: cancelling it aborts pending platform calls triggered by widget
// callbacks.
func New(baseCtx context.Context, authenticator ports.CustomerAuthenticator, factory ports.ClientFactory, driver frames.Driver, logger ports.Logger, timeouts *resilience.TimeoutConfig) *Orchestrator {
	if timeouts == nil {
		timeouts = resilience.DefaultTimeoutConfig()
	}

	o := &Orchestrator{
		authenticator: authenticator,
		factory:       factory,
		logger:        logger,
		timeouts:      timeouts,
		validate:      validator.New(),
		baseCtx:       baseCtx,

		Errors:         observe.NewValue[error](nil),
		PaymentRequest: observe.NewValue[*models.MerchantPaymentDetails](nil),
		Instruments:    observe.NewValue[[]models.CreditCard](nil),
		Option:         observe.NewValue[models.PaymentOption](models.NoOption{}),
		Outcome:        observe.NewValue[models.PaymentOutcome](models.NoOutcome{}),
		Command:        observe.NewValue[*frames.Command](nil),
		Message:        observe.NewValue[string](""),

		mode:       modeCaptureCard,
		windowSize: models.AcsWindow250x400,
	}
	o.bridge = frames.NewBridge(driver, o, o, logger)
	return o
}

// Bridge returns the capture bridge so the hosting surface can forward
// widget callbacks into it
func (o *Orchestrator) Bridge() *frames.Bridge {
	return o.bridge
}

// ReportError surfaces an error on the generic error channel
func (o *Orchestrator) ReportError(err error) {
	o.logger.Error("orchestration error", ports.Err(err))
	o.Errors.Set(err)
}

// ClientsBound reports whether the customer and merchant clients have been
// provisioned for this run
func (o *Orchestrator) ClientsBound() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.customerAPI != nil && o.merchantAPI != nil
}

// FramesConfig returns the widget bootstrap configuration, nil until
// authentication has succeeded
func (o *Orchestrator) FramesConfig() *frames.Config {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.framesConfig
}

// CreatePaymentRequest runs the provisioning sequence for one orchestration
// run: authenticate, bind both API clients and the widget configuration,
// create the payment request, fetch its details and list the customer's
// instruments.
//
// Each step reports its own failure on the error channel and later steps
// still run, with one exception: client provisioning is gated on
// authentication success, so an auth failure leaves the clients unbound and
// ends the sequence.
func (o *Orchestrator) CreatePaymentRequest(ctx context.Context, merchant models.MerchantOptions, customer models.CustomerOptions, request models.NewPaymentRequest, fraud *models.FraudPayload) {
	// The merchant client inherits the customer's API key and wallet when
	// the merchant options leave them unset.
	if merchant.APIKey == "" {
		merchant.APIKey = customer.APIKey
	}
	if merchant.Wallet == "" {
		merchant.Wallet = customer.Wallet
	}

	if err := o.validate.Struct(customer); err != nil {
		o.ReportError(pkgerrors.NewProtocolError("invalid customer options: " + err.Error()))
		return
	}
	if err := o.validate.Struct(merchant); err != nil {
		o.ReportError(pkgerrors.NewProtocolError("invalid merchant options: " + err.Error()))
		return
	}

	token, err := o.authenticator.Authenticate(ctx, customer.CustomerID)
	observability.RecordAuthentication(err == nil)
	if err != nil {
		o.ReportError(err)
		return
	}

	o.bindClients(merchant, customer, token.AccessToken)

	o.mu.Lock()
	o.fraudPayload = fraud
	o.mu.Unlock()

	if id, err := o.createRequest(ctx, request); err != nil {
		o.ReportError(err)
	} else if err := o.fetchRequestDetails(ctx, id); err != nil {
		o.ReportError(err)
	}

	o.listPaymentInstruments(ctx)
}

func (o *Orchestrator) bindClients(merchant models.MerchantOptions, customer models.CustomerOptions, token string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.wallet = customer.Wallet
	o.require3DS = merchant.Require3DS
	if merchant.WindowSize != "" {
		o.windowSize = merchant.WindowSize
	}

	o.customerAPI = o.factory.CustomerClient(customer, token)
	o.merchantAPI = o.factory.MerchantClient(merchant, token)
	o.framesConfig = &frames.Config{
		APIKey:    customer.APIKey,
		AuthToken: "Bearer " + token,
		APIBase:   models.SDKBaseURL(customer.BaseURL) + "/instore",
		LogLevel:  "debug",
	}

	o.logger.Info("platform clients provisioned",
		ports.String("wallet", string(o.wallet)),
		ports.Bool("require_3ds", o.require3DS))
}

func (o *Orchestrator) createRequest(ctx context.Context, request models.NewPaymentRequest) (string, error) {
	o.mu.Lock()
	api := o.merchantAPI
	o.mu.Unlock()

	callCtx, cancel := o.timeouts.WithAPITimeout(ctx)
	defer cancel()

	id, err := api.CreatePaymentRequest(callCtx, request)
	if err != nil {
		return "", err
	}

	o.logger.Info("payment request created", ports.String("payment_request_id", id))
	return id, nil
}

func (o *Orchestrator) fetchRequestDetails(ctx context.Context, paymentRequestID string) error {
	o.mu.Lock()
	api := o.merchantAPI
	o.mu.Unlock()

	callCtx, cancel := o.timeouts.WithAPITimeout(ctx)
	defer cancel()

	details, err := api.PaymentRequestDetails(callCtx, paymentRequestID)
	if err != nil {
		return err
	}

	o.PaymentRequest.Set(details)
	return nil
}

// listPaymentInstruments refreshes the observable instrument list, selecting
// the card list for the configured wallet. Failures are reported and leave
// the current list untouched.
func (o *Orchestrator) listPaymentInstruments(ctx context.Context) []models.CreditCard {
	o.mu.Lock()
	api := o.customerAPI
	wallet := o.wallet
	o.mu.Unlock()

	if api == nil {
		o.ReportError(pkgerrors.NewProtocolError("customer client not provisioned"))
		return nil
	}

	callCtx, cancel := o.timeouts.WithAPITimeout(ctx)
	defer cancel()

	list, err := api.ListInstruments(callCtx)
	if err != nil {
		o.ReportError(err)
		return nil
	}

	cards := list.CardsForWallet(wallet)
	o.Instruments.Set(cards)
	return cards
}

// SelectNewCardPaymentOption switches the selection to a new card, carrying
// the widget's current form validity. Pure state transition, no I/O.
func (o *Orchestrator) SelectNewCardPaymentOption() {
	o.Option.Set(models.NewCard{IsValid: o.newCardValid()})
}

// SelectExistingCardPaymentOption switches the selection to a stored
// instrument. Pure state transition, no I/O.
func (o *Orchestrator) SelectExistingCardPaymentOption(card models.CreditCard) {
	o.Option.Set(models.ExistingCard{Card: &card})
}

// DeleteCard removes a stored instrument. On success the instrument list is
// refreshed; on failure the error is reported and the list stays untouched.
func (o *Orchestrator) DeleteCard(ctx context.Context, card models.CreditCard) error {
	o.mu.Lock()
	api := o.customerAPI
	o.mu.Unlock()

	if api == nil {
		err := pkgerrors.NewProtocolError("customer client not provisioned")
		o.ReportError(err)
		return err
	}

	callCtx, cancel := o.timeouts.WithAPITimeout(ctx)
	defer cancel()

	if err := api.DeleteInstrument(callCtx, card.PaymentInstrumentID); err != nil {
		o.ReportError(err)
		return err
	}

	o.listPaymentInstruments(ctx)
	return nil
}

func (o *Orchestrator) newCardValid() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cardNumberValid && o.cardExpiryValid && o.cardCVVValid
}
