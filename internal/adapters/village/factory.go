package village

import (
	"github.com/kevin07696/payment-simulator/internal/domain/models"
	"github.com/kevin07696/payment-simulator/internal/domain/ports"
)

// Factory implements ports.ClientFactory. Both constructors are pure
// configuration binding.
type Factory struct {
	httpClient ports.HTTPClient
	logger     ports.Logger
}

// NewFactory creates a client factory sharing one HTTP client
func NewFactory(httpClient ports.HTTPClient, logger ports.Logger) *Factory {
	return &Factory{
		httpClient: httpClient,
		logger:     logger,
	}
}

// CustomerClient implements ports.ClientFactory.CustomerClient
func (f *Factory) CustomerClient(opts models.CustomerOptions, token string) ports.CustomerAPI {
	return NewCustomerClient(opts, token, f.httpClient, f.logger)
}

// MerchantClient implements ports.ClientFactory.MerchantClient
func (f *Factory) MerchantClient(opts models.MerchantOptions, token string) ports.MerchantAPI {
	return NewMerchantClient(opts, token, f.httpClient, f.logger)
}
