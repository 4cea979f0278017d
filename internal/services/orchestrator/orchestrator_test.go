package orchestrator_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/payment-simulator/internal/domain/models"
	"github.com/kevin07696/payment-simulator/internal/domain/ports"
	"github.com/kevin07696/payment-simulator/internal/services/orchestrator"
	"github.com/kevin07696/payment-simulator/internal/testutil/mocks"
	pkgerrors "github.com/kevin07696/payment-simulator/pkg/errors"
)

// MockAuthenticator is a mock implementation of ports.CustomerAuthenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, customerID string) (*models.AccessToken, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccessToken), args.Error(1)
}

// MockClientFactory is a mock implementation of ports.ClientFactory
type MockClientFactory struct {
	mock.Mock
}

func (m *MockClientFactory) CustomerClient(opts models.CustomerOptions, token string) ports.CustomerAPI {
	args := m.Called(opts, token)
	return args.Get(0).(ports.CustomerAPI)
}

func (m *MockClientFactory) MerchantClient(opts models.MerchantOptions, token string) ports.MerchantAPI {
	args := m.Called(opts, token)
	return args.Get(0).(ports.MerchantAPI)
}

// MockCustomerAPI is a mock implementation of ports.CustomerAPI
type MockCustomerAPI struct {
	mock.Mock
}

func (m *MockCustomerAPI) ListInstruments(ctx context.Context) (*ports.InstrumentList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.InstrumentList), args.Error(1)
}

func (m *MockCustomerAPI) DeleteInstrument(ctx context.Context, instrumentID string) error {
	args := m.Called(ctx, instrumentID)
	return args.Error(0)
}

func (m *MockCustomerAPI) MakePayment(ctx context.Context, submission ports.PaymentSubmission) (*ports.PaymentResult, error) {
	args := m.Called(ctx, submission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PaymentResult), args.Error(1)
}

// MockMerchantAPI is a mock implementation of ports.MerchantAPI
type MockMerchantAPI struct {
	mock.Mock
}

func (m *MockMerchantAPI) CreatePaymentRequest(ctx context.Context, req models.NewPaymentRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockMerchantAPI) PaymentRequestDetails(ctx context.Context, paymentRequestID string) (*models.MerchantPaymentDetails, error) {
	args := m.Called(ctx, paymentRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MerchantPaymentDetails), args.Error(1)
}

type fixture struct {
	auth     *MockAuthenticator
	factory  *MockClientFactory
	customer *MockCustomerAPI
	merchant *MockMerchantAPI
	driver   *mocks.FramesDriver
	orch     *orchestrator.Orchestrator
}

func newFixture() *fixture {
	f := &fixture{
		auth:     new(MockAuthenticator),
		factory:  new(MockClientFactory),
		customer: new(MockCustomerAPI),
		merchant: new(MockMerchantAPI),
		driver:   mocks.NewFramesDriver(),
	}
	f.orch = orchestrator.New(context.Background(), f.auth, f.factory, f.driver, mocks.NewLogger(), nil)
	return f
}

func testCustomerOptions() models.CustomerOptions {
	return models.CustomerOptions{
		APIKey:     "key-1",
		BaseURL:    "https://pay.example.com",
		Wallet:     models.WalletDefault,
		CustomerID: "shopper-42",
	}
}

func testMerchantOptions() models.MerchantOptions {
	// APIKey and Wallet stay unset so they inherit from the customer side.
	return models.MerchantOptions{
		BaseURL:    "https://pay.example.com",
		MerchantID: "merchant-7",
		Require3DS: true,
	}
}

func storedCard() models.CreditCard {
	return models.CreditCard{
		PaymentInstrumentID: "INST-9",
		Scheme:              "VISA",
		CardSuffix:          "1234",
		Status:              models.InstrumentVerified,
	}
}

// provision walks the happy-path provisioning sequence so a test can start
// with bound clients, a created payment request and one stored card.
func (f *fixture) provision(t *testing.T) {
	t.Helper()

	token := &models.AccessToken{AccessToken: "token-abc", AccessTokenExpiresIn: 1800}
	f.auth.On("Authenticate", mock.Anything, "shopper-42").Return(token, nil)
	f.factory.On("CustomerClient", mock.Anything, "token-abc").Return(f.customer)
	f.factory.On("MerchantClient", mock.Anything, "token-abc").Return(f.merchant)
	f.merchant.On("CreatePaymentRequest", mock.Anything, mock.Anything).Return("PR-1", nil)
	f.merchant.On("PaymentRequestDetails", mock.Anything, "PR-1").Return(&models.MerchantPaymentDetails{
		PaymentRequestID: "PR-1",
		GrossAmount:      decimal.RequireFromString("12.50"),
		MaxUses:          3,
		Status:           "CREATED",
	}, nil)
	f.customer.On("ListInstruments", mock.Anything).Return(&ports.InstrumentList{
		CreditCards: []models.CreditCard{storedCard()},
	}, nil)

	f.orch.CreatePaymentRequest(context.Background(), testMerchantOptions(), testCustomerOptions(),
		models.NewPaymentRequestSpec(decimal.RequireFromString("12.50"), 3, true), nil)

	require.True(t, f.orch.ClientsBound())
}

func TestCreatePaymentRequest_HappyPath(t *testing.T) {
	f := newFixture()
	f.provision(t)

	pr := f.orch.PaymentRequest.Get()
	require.NotNil(t, pr)
	assert.Equal(t, "PR-1", pr.PaymentRequestID)

	cards := f.orch.Instruments.Get()
	require.Len(t, cards, 1)
	assert.Equal(t, "INST-9", cards[0].PaymentInstrumentID)
	assert.Equal(t, "VISA", cards[0].Scheme)
	assert.Equal(t, "1234", cards[0].CardSuffix)

	cfg := f.orch.FramesConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "key-1", cfg.APIKey)
	assert.Equal(t, "Bearer token-abc", cfg.AuthToken)
	assert.Equal(t, "https://pay.example.com/wow/v1/pay/instore", cfg.APIBase)
}

func TestCreatePaymentRequest_AuthFailureLeavesClientsUnbound(t *testing.T) {
	f := newFixture()

	f.auth.On("Authenticate", mock.Anything, "shopper-42").
		Return(nil, pkgerrors.NewAuthError(http.StatusUnauthorized, nil, `{"error":"bad shopper"}`))

	f.orch.CreatePaymentRequest(context.Background(), testMerchantOptions(), testCustomerOptions(),
		models.NewPaymentRequestSpec(decimal.RequireFromString("12.50"), 3, true), nil)

	assert.False(t, f.orch.ClientsBound())
	assert.Nil(t, f.orch.FramesConfig())
	assert.True(t, pkgerrors.IsAuthError(f.orch.Errors.Get()))

	f.factory.AssertNotCalled(t, "CustomerClient", mock.Anything, mock.Anything)
	f.factory.AssertNotCalled(t, "MerchantClient", mock.Anything, mock.Anything)
}

func TestCreatePaymentRequest_MerchantInheritsCustomerCredentials(t *testing.T) {
	f := newFixture()

	token := &models.AccessToken{AccessToken: "token-abc"}
	f.auth.On("Authenticate", mock.Anything, "shopper-42").Return(token, nil)
	f.factory.On("CustomerClient", mock.Anything, "token-abc").Return(f.customer)
	f.factory.On("MerchantClient", mock.MatchedBy(func(opts models.MerchantOptions) bool {
		return opts.APIKey == "key-1" && opts.Wallet == models.WalletDefault
	}), "token-abc").Return(f.merchant)
	f.merchant.On("CreatePaymentRequest", mock.Anything, mock.Anything).Return("PR-1", nil)
	f.merchant.On("PaymentRequestDetails", mock.Anything, "PR-1").Return(&models.MerchantPaymentDetails{PaymentRequestID: "PR-1"}, nil)
	f.customer.On("ListInstruments", mock.Anything).Return(&ports.InstrumentList{}, nil)

	f.orch.CreatePaymentRequest(context.Background(), testMerchantOptions(), testCustomerOptions(),
		models.NewPaymentRequestSpec(decimal.RequireFromString("12.50"), 3, true), nil)

	f.factory.AssertExpectations(t)
}

func TestCreatePaymentRequest_InvalidOptionsRejectedBeforeAuth(t *testing.T) {
	f := newFixture()

	customer := testCustomerOptions()
	customer.CustomerID = ""

	f.orch.CreatePaymentRequest(context.Background(), testMerchantOptions(), customer,
		models.NewPaymentRequestSpec(decimal.RequireFromString("12.50"), 3, true), nil)

	assert.False(t, f.orch.ClientsBound())
	assert.Equal(t, pkgerrors.CategoryProtocol, pkgerrors.CategoryOf(f.orch.Errors.Get()))
	f.auth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestCreatePaymentRequest_CreateFailureStillListsInstruments(t *testing.T) {
	f := newFixture()

	token := &models.AccessToken{AccessToken: "token-abc"}
	f.auth.On("Authenticate", mock.Anything, "shopper-42").Return(token, nil)
	f.factory.On("CustomerClient", mock.Anything, "token-abc").Return(f.customer)
	f.factory.On("MerchantClient", mock.Anything, "token-abc").Return(f.merchant)
	f.merchant.On("CreatePaymentRequest", mock.Anything, mock.Anything).
		Return("", pkgerrors.NewAPIError("create payment request", http.StatusBadGateway, nil, ""))
	f.customer.On("ListInstruments", mock.Anything).Return(&ports.InstrumentList{
		CreditCards: []models.CreditCard{storedCard()},
	}, nil)

	f.orch.CreatePaymentRequest(context.Background(), testMerchantOptions(), testCustomerOptions(),
		models.NewPaymentRequestSpec(decimal.RequireFromString("12.50"), 3, true), nil)

	assert.Equal(t, pkgerrors.CategoryAPI, pkgerrors.CategoryOf(f.orch.Errors.Get()))
	assert.Nil(t, f.orch.PaymentRequest.Get())
	assert.Len(t, f.orch.Instruments.Get(), 1)
	f.merchant.AssertNotCalled(t, "PaymentRequestDetails", mock.Anything, mock.Anything)
}

func TestCreatePaymentRequest_EverydayPayWalletSelectsSecondaryList(t *testing.T) {
	f := newFixture()

	customer := testCustomerOptions()
	customer.Wallet = models.WalletEverydayPay

	token := &models.AccessToken{AccessToken: "token-abc"}
	f.auth.On("Authenticate", mock.Anything, "shopper-42").Return(token, nil)
	f.factory.On("CustomerClient", mock.Anything, "token-abc").Return(f.customer)
	f.factory.On("MerchantClient", mock.Anything, "token-abc").Return(f.merchant)
	f.merchant.On("CreatePaymentRequest", mock.Anything, mock.Anything).Return("PR-1", nil)
	f.merchant.On("PaymentRequestDetails", mock.Anything, "PR-1").Return(&models.MerchantPaymentDetails{PaymentRequestID: "PR-1"}, nil)
	f.customer.On("ListInstruments", mock.Anything).Return(&ports.InstrumentList{
		CreditCards: []models.CreditCard{storedCard()},
		EverydayPay: &ports.WalletInstruments{
			CreditCards: []models.CreditCard{{PaymentInstrumentID: "INST-EDP", Scheme: "MASTERCARD"}},
		},
	}, nil)

	f.orch.CreatePaymentRequest(context.Background(), testMerchantOptions(), customer,
		models.NewPaymentRequestSpec(decimal.RequireFromString("12.50"), 3, true), nil)

	cards := f.orch.Instruments.Get()
	require.Len(t, cards, 1)
	assert.Equal(t, "INST-EDP", cards[0].PaymentInstrumentID)
}

func TestSelectPaymentOptions(t *testing.T) {
	f := newFixture()

	assert.IsType(t, models.NoOption{}, f.orch.Option.Get())

	f.orch.SelectNewCardPaymentOption()
	option, ok := f.orch.Option.Get().(models.NewCard)
	require.True(t, ok)
	assert.False(t, option.Valid())

	card := storedCard()
	f.orch.SelectExistingCardPaymentOption(card)
	existing, ok := f.orch.Option.Get().(models.ExistingCard)
	require.True(t, ok)
	require.NotNil(t, existing.Card)
	assert.Equal(t, "INST-9", existing.Card.PaymentInstrumentID)
	assert.True(t, existing.Valid())
}

func TestDeleteCard_SuccessRefreshesInstruments(t *testing.T) {
	f := newFixture()

	token := &models.AccessToken{AccessToken: "token-abc"}
	f.auth.On("Authenticate", mock.Anything, "shopper-42").Return(token, nil)
	f.factory.On("CustomerClient", mock.Anything, "token-abc").Return(f.customer)
	f.factory.On("MerchantClient", mock.Anything, "token-abc").Return(f.merchant)
	f.merchant.On("CreatePaymentRequest", mock.Anything, mock.Anything).Return("PR-1", nil)
	f.merchant.On("PaymentRequestDetails", mock.Anything, "PR-1").Return(&models.MerchantPaymentDetails{PaymentRequestID: "PR-1"}, nil)

	other := models.CreditCard{PaymentInstrumentID: "INST-2", Scheme: "AMEX"}
	f.customer.On("ListInstruments", mock.Anything).Return(&ports.InstrumentList{
		CreditCards: []models.CreditCard{storedCard(), other},
	}, nil).Once()
	f.customer.On("ListInstruments", mock.Anything).Return(&ports.InstrumentList{
		CreditCards: []models.CreditCard{other},
	}, nil)

	f.orch.CreatePaymentRequest(context.Background(), testMerchantOptions(), testCustomerOptions(),
		models.NewPaymentRequestSpec(decimal.RequireFromString("12.50"), 3, true), nil)
	require.Len(t, f.orch.Instruments.Get(), 2)

	f.customer.On("DeleteInstrument", mock.Anything, "INST-9").Return(nil)

	require.NoError(t, f.orch.DeleteCard(context.Background(), storedCard()))

	cards := f.orch.Instruments.Get()
	require.Len(t, cards, 1)
	assert.Equal(t, "INST-2", cards[0].PaymentInstrumentID)
}

func TestDeleteCard_FailureLeavesInstrumentsUntouched(t *testing.T) {
	f := newFixture()
	f.provision(t)

	apiErr := pkgerrors.NewAPIError("delete instrument", http.StatusConflict, nil, "")
	f.customer.On("DeleteInstrument", mock.Anything, "INST-9").Return(apiErr)

	err := f.orch.DeleteCard(context.Background(), storedCard())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CategoryAPI, pkgerrors.CategoryOf(err))
	assert.Equal(t, pkgerrors.CategoryAPI, pkgerrors.CategoryOf(f.orch.Errors.Get()))

	assert.Len(t, f.orch.Instruments.Get(), 1)
	f.customer.AssertNumberOfCalls(t, "ListInstruments", 1)
}

func TestDeleteCard_WithoutProvisionedClient(t *testing.T) {
	f := newFixture()

	err := f.orch.DeleteCard(context.Background(), storedCard())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CategoryProtocol, pkgerrors.CategoryOf(err))
}
