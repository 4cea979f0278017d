package ports

import "github.com/kevin07696/payment-simulator/internal/domain/models"

// ClientFactory builds configured API clients bound to a base URL, API key
// and bearer token. Construction is pure configuration binding; no network
// calls happen until a client method is invoked.
type ClientFactory interface {
	CustomerClient(opts models.CustomerOptions, token string) CustomerAPI
	MerchantClient(opts models.MerchantOptions, token string) MerchantAPI
}
