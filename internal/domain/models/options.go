package models

import "strings"

// sdkPathPrefix is appended to a configured platform origin to form the
// payment SDK's API base
const sdkPathPrefix = "/wow/v1/pay"

// SDKBaseURL derives the payment SDK API base from a configured origin. Both
// the platform API clients and the capture widget bootstrap address this base.
func SDKBaseURL(origin string) string {
	return strings.TrimRight(origin, "/") + sdkPathPrefix
}

// Wallet selects which instrument store a payment draws from
type Wallet string

const (
	WalletDefault     Wallet = "DEFAULT"
	WalletEverydayPay Wallet = "EVERYDAY_PAY"
)

// AcsWindowSize is the 3DS challenge window size requested from the ACS
type AcsWindowSize string

const (
	AcsWindow250x400  AcsWindowSize = "01"
	AcsWindow390x400  AcsWindowSize = "02"
	AcsWindow500x600  AcsWindowSize = "03"
	AcsWindow600x400  AcsWindowSize = "04"
	AcsWindowFullPage AcsWindowSize = "05"
)

// CustomerOptions configures a customer API client for one orchestration run
type CustomerOptions struct {
	APIKey     string `validate:"required"`
	BaseURL    string `validate:"required,url"`
	Wallet     Wallet
	WalletID   string
	CustomerID string `validate:"required"`
}

// MerchantOptions configures a merchant API client for one orchestration run
type MerchantOptions struct {
	APIKey     string `validate:"required"`
	BaseURL    string `validate:"required,url"`
	Wallet     Wallet
	MerchantID string
	WindowSize AcsWindowSize
	Require3DS bool
}
